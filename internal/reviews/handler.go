package reviews

import (
	"context"
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

// RegisterRoutes exposes reads publicly; writes need a token.
func (h *Handler) RegisterRoutes(r *mux.Router, protect mux.MiddlewareFunc) {
	r.HandleFunc("/reviews", h.List).Methods(http.MethodGet)
	r.HandleFunc("/reviews/{id}", h.Get).Methods(http.MethodGet)
	r.Handle("/reviews", protect(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.Handle("/reviews/{id}", protect(http.HandlerFunc(h.Update))).Methods(http.MethodPut)
	r.Handle("/reviews/{id}", protect(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req CreateReviewRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	rv := Review{Rating: req.Rating, Comment: req.Comment, UserID: userID, VehicleID: req.VehicleID}
	if err := h.Repo.Create(r.Context(), &rv); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, rv)
}

// GET /reviews?vehicleId=...
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.FindAll(r.Context(), r.URL.Query().Get("vehicleId"))
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []Review{}
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rv, err := h.Repo.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rv)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateReviewRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	rv, err := h.owned(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if req.Rating != nil {
		rv.Rating = *req.Rating
	}
	if req.Comment != nil {
		rv.Comment = *req.Comment
	}
	if err := h.Repo.Save(r.Context(), rv); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rv)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	rv, err := h.owned(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := h.Repo.Delete(r.Context(), rv.ID); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rv)
}

// owned loads a review the caller wrote, admins may touch any.
func (h *Handler) owned(ctx context.Context, id string) (*Review, error) {
	rv, err := h.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	userID, _ := auth.UserID(ctx)
	if rv.UserID != userID && !auth.IsAdmin(ctx) {
		return nil, utils.ErrForbidden
	}
	return rv, nil
}
