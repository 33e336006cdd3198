package categories

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/autolux/marketplace-api/internal/cache"
	"github.com/autolux/marketplace-api/internal/utils"
)

const listCacheKey = "categories:all"

type Handler struct {
	Repo     Repository
	Cache    cache.Cache
	CacheTTL time.Duration
	Log      *zap.Logger
}

func NewHandler(repo Repository, c cache.Cache, ttl time.Duration, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Repo: repo, Cache: c, CacheTTL: ttl, Log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router, protect mux.MiddlewareFunc) {
	r.HandleFunc("/categories", h.List).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}", h.Get).Methods(http.MethodGet)
	r.Handle("/categories", protect(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
	r.Handle("/categories/{id}", protect(http.HandlerFunc(h.Update))).Methods(http.MethodPut)
	r.Handle("/categories/{id}", protect(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

func (h *Handler) invalidate(ctx context.Context) {
	if err := h.Cache.Delete(ctx, listCacheKey); err != nil {
		h.Log.Warn("category cache invalidation failed", zap.Error(err))
	}
}

// POST /categories
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	b := Category{Name: req.Name}
	if err := h.Repo.Create(r.Context(), &b); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	h.invalidate(r.Context())
	utils.WriteJSON(w, http.StatusCreated, b)
}

// GET /categories, served from cache when possible.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := cache.Remember(r.Context(), h.Cache, h.Log, listCacheKey, h.CacheTTL, func(ctx context.Context) ([]Category, error) {
		list, err := h.Repo.FindAll(ctx)
		if list == nil {
			list = []Category{}
		}
		return list, err
	})
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// GET /categories/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Repo.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, b)
}

// PUT /categories/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	b, err := h.Repo.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	b.Name = req.Name
	if err := h.Repo.Save(r.Context(), b); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	h.invalidate(r.Context())
	utils.WriteJSON(w, http.StatusOK, b)
}

// DELETE /categories/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	b, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	h.invalidate(r.Context())
	utils.WriteJSON(w, http.StatusOK, b)
}
