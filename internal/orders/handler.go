package orders

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/autolux/marketplace-api/internal/auth"
	"github.com/autolux/marketplace-api/internal/utils"
)

type Handler struct {
	Repo Repository
	Log  *zap.Logger
}

func NewHandler(repo Repository, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Repo: repo, Log: log}
}

// RegisterRoutes mounts every order route behind protect.
func (h *Handler) RegisterRoutes(r *mux.Router, protect mux.MiddlewareFunc) {
	r.Handle("/orders", protect(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.Handle("/orders", protect(http.HandlerFunc(h.List))).Methods(http.MethodGet)
	r.Handle("/orders/{id}", protect(http.HandlerFunc(h.Get))).Methods(http.MethodGet)
	r.Handle("/orders/{id}", protect(http.HandlerFunc(h.Update))).Methods(http.MethodPut)
	r.Handle("/orders/{id}", protect(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

// POST /orders, the buyer is the caller.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req CreateOrderRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	o := Order{Status: req.Status, BuyerID: buyerID, VehicleID: req.VehicleID}
	if err := h.Repo.Create(r.Context(), &o); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("order placed", zap.String("order_id", o.ID), zap.String("vehicle_id", o.VehicleID))
	utils.WriteJSON(w, http.StatusCreated, o)
}

// GET /orders
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.FindAll(r.Context())
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []Order{}
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// GET /orders/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.Repo.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

// PUT /orders/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateOrderRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	if _, err := h.Repo.FindByID(r.Context(), id); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	fields := map[string]any{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.VehicleID != nil {
		fields["vehicle_id"] = *req.VehicleID
	}
	if err := h.Repo.Update(r.Context(), id, fields); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	o, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

// DELETE /orders/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	o, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}
