package simulations

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/autolux/marketplace-api/internal/auth"
	"github.com/autolux/marketplace-api/internal/utils"
)

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

// RegisterRoutes mounts the routes on r; writes go through protect.
func (h *Handler) RegisterRoutes(r *mux.Router, protect mux.MiddlewareFunc) {
	r.HandleFunc("/simulations", h.List).Methods(http.MethodGet)
	r.HandleFunc("/simulations/{id}", h.Get).Methods(http.MethodGet)
	r.Handle("/simulations", protect(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.Handle("/simulations/{id}", protect(http.HandlerFunc(h.Update))).Methods(http.MethodPut)
	r.Handle("/simulations/{id}", protect(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

// Create handles POST /simulations. The owner is always the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	sim, err := h.Service.Create(r.Context(), req, userID)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, sim)
}

// List handles GET /simulations.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.FindAll(r.Context())
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []Simulation{}
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /simulations/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sim, err := h.Service.FindOne(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sim)
}

// Update handles PUT /simulations/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	sim, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sim)
}

// Delete handles DELETE /simulations/{id} and echoes the removed simulation.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sim, err := h.Service.Remove(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, sim)
}
