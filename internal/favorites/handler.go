package favorites

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/autolux/marketplace-api/internal/auth"
	"github.com/autolux/marketplace-api/internal/utils"
)

type FavoriteRequest struct {
	VehicleID string `json:"vehicleId"`
}

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

func (h *Handler) RegisterRoutes(r *mux.Router, protect mux.MiddlewareFunc) {
	r.Handle("/favorites", protect(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.Handle("/favorites", protect(http.HandlerFunc(h.List))).Methods(http.MethodGet)
	r.Handle("/favorites/{id}", protect(http.HandlerFunc(h.Get))).Methods(http.MethodGet)
	r.Handle("/favorites/{id}", protect(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req FavoriteRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if strings.TrimSpace(req.VehicleID) == "" {
		utils.WriteError(w, h.Log, utils.Invalid("vehicleId is required"))
		return
	}

	f := Favorite{UserID: userID, VehicleID: req.VehicleID}
	if err := h.Repo.Create(r.Context(), &f); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, f)
}

// GET /favorites lists the caller's favorites only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}
	list, err := h.Repo.FindByUser(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []Favorite{}
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	f, err := h.load(r)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	f, err := h.load(r)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := h.Repo.Delete(r.Context(), f.ID); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, f)
}

// load hides other users' favorites behind a 404.
func (h *Handler) load(r *http.Request) (*Favorite, error) {
	f, err := h.Repo.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return nil, err
	}
	userID, _ := auth.UserID(r.Context())
	if f.UserID != userID && !auth.IsAdmin(r.Context()) {
		return nil, utils.NotFound("favorite")
	}
	return f, nil
}
