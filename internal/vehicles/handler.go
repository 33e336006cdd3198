package vehicles

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/autolux/marketplace-api/internal/auth"
	"github.com/autolux/marketplace-api/internal/storage"
	"github.com/autolux/marketplace-api/internal/utils"
)

const maxUploadMemory = storage.MaxVehicleFiles*storage.MaxImageSize + 1<<20

type Handler struct {
	Service *Service
	Log     *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Service: svc, Log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router, protect mux.MiddlewareFunc) {
	r.HandleFunc("/vehicles", h.List).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/{id}", h.Get).Methods(http.MethodGet)
	r.Handle("/vehicles", protect(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.Handle("/vehicles/{id}", protect(http.HandlerFunc(h.Update))).Methods(http.MethodPut)
	r.Handle("/vehicles/{id}", protect(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

// Create handles POST /vehicles as multipart/form-data with 1 to 5
// "images" files. The caller becomes the seller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadMemory)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "malformed or oversized multipart form", http.StatusBadRequest)
		return
	}
	req, err := parseCreateForm(r)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	v, err := h.Service.Create(r.Context(), req, sellerID, r.MultipartForm.File["images"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, v)
}

// List handles GET /vehicles.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.FindAll(r.Context())
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []Vehicle{}
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /vehicles/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.FindOne(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

// Update handles PUT /vehicles/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateVehicleRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	v, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

// Delete handles DELETE /vehicles/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	v, err := h.Service.Remove(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}
