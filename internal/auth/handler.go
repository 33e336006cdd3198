package auth

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/autolux/marketplace-api/internal/utils"
)

// Identity is what login needs to know about an account. Profile is the
// public representation returned to the client.
type Identity struct {
	ID           string
	PasswordHash string
	Role         string
	Profile      any
}

// IdentityStore looks accounts up by e-mail. It returns an error wrapping
// utils.ErrNotFound for unknown addresses.
type IdentityStore interface {
	FindIdentityByEmail(ctx context.Context, email string) (*Identity, error)
}

type Handler struct {
	Users    IdentityStore
	Sessions *Sessions
	Log      *zap.Logger
}

func NewHandler(users IdentityStore, sessions *Sessions, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Users: users, Sessions: sessions, Log: log}
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.Users.FindIdentityByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		utils.WriteError(w, h.Log, err)
		return
	}
	if !utils.CheckPassword(id.PasswordHash, req.Password) {
		h.Log.Info("login rejected", zap.String("user_id", id.ID))
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.Sessions.IssueOnLogin(r.Context(), w, id.ID, id.Role)
	if err != nil {
		utils.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("login", zap.String("user_id", id.ID), zap.String("role", id.Role))
	utils.WriteJSON(w, http.StatusOK, LoginResponse{Token: token, User: id.Profile})
}
