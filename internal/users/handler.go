package users

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/autolux/marketplace-api/internal/auth"
	"github.com/autolux/marketplace-api/internal/storage"
	"github.com/autolux/marketplace-api/internal/utils"
)

const maxFormMemory = 10 << 20

type Handler struct {
	Repo    Repository
	Storage storage.Uploader
	Log     *zap.Logger
}

func NewHandler(repo Repository, store storage.Uploader, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Repo: repo, Storage: store, Log: log}
}

func (h *Handler) RegisterRoutes(r *mux.Router, protect mux.MiddlewareFunc) {
	r.HandleFunc("/users", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/users", h.List).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", h.Get).Methods(http.MethodGet)
	r.Handle("/users/{id}", protect(http.HandlerFunc(h.Update))).Methods(http.MethodPut)
	r.Handle("/users/{id}", protect(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

// Create handles POST /users. It accepts JSON or a multipart form with an
// optional profilePic file.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeCreate(r)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if req.Role == RoleAdmin {
		utils.WriteError(w, h.Log, fmt.Errorf("self-registration as admin: %w", utils.ErrForbidden))
		return
	}

	if _, err := h.Repo.FindByEmail(r.Context(), req.Email); err == nil {
		utils.WriteError(w, h.Log, fmt.Errorf("email already registered: %w", utils.ErrConflict))
		return
	} else if !errors.Is(err, utils.ErrNotFound) {
		utils.WriteError(w, h.Log, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	u := User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		City:     req.City,
		State:    req.State,
		Phone:    req.Phone,
	}

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["profilePic"]; len(files) > 0 {
			url, err := storage.UploadImage(r.Context(), h.Storage, storage.ProfilePicFolder, files[0])
			if err != nil {
				utils.WriteError(w, h.Log, err)
				return
			}
			u.ProfilePic = url
		}
	}

	if err := h.Repo.Create(r.Context(), &u); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("user created", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	utils.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) decodeCreate(r *http.Request) (*CreateUserRequest, error) {
	var req CreateUserRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, utils.Invalid("malformed multipart form")
		}
		req = CreateUserRequest{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Role:     Role(r.FormValue("role")),
			City:     r.FormValue("city"),
			State:    r.FormValue("state"),
			Phone:    r.FormValue("phone"),
		}
		return &req, nil
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// List handles GET /users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.FindAll(r.Context())
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if list == nil {
		list = []User{}
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// Get handles GET /users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Repo.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

// Update handles PUT /users/{id}. Users edit themselves; admins edit anyone
// and are the only ones allowed to change a role.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := ownerOrAdmin(r, id); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	var req UpdateUserRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if req.Role != nil && !auth.IsAdmin(r.Context()) {
		utils.WriteError(w, h.Log, fmt.Errorf("role change: %w", utils.ErrForbidden))
		return
	}

	u, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			utils.WriteError(w, h.Log, err)
			return
		}
		u.Password = hash
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.City != nil {
		u.City = *req.City
	}
	if req.State != nil {
		u.State = *req.State
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}

	if err := h.Repo.Save(r.Context(), u); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

// Delete handles DELETE /users/{id} and returns the removed user.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := ownerOrAdmin(r, id); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	u, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}
	h.Log.Info("user deleted", zap.String("user_id", id))
	utils.WriteJSON(w, http.StatusOK, u)
}

func ownerOrAdmin(r *http.Request, id string) error {
	caller, ok := auth.UserID(r.Context())
	if !ok {
		return utils.ErrUnauthorized
	}
	if caller != id && !auth.IsAdmin(r.Context()) {
		return utils.ErrForbidden
	}
	return nil
}
