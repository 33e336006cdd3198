package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/utils"
)

const RefreshCookie = "rt"

// Sessions issues, rotates and revokes refresh tokens.
type Sessions struct {
	DB           *gorm.DB
	Tokens       *Tokens
	RefreshTTL   time.Duration
	CookieSecure bool
	Log          *zap.Logger
}

func NewSessions(db *gorm.DB, tokens *Tokens, refreshTTL time.Duration, cookieSecure bool, log *zap.Logger) *Sessions {
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sessions{DB: db, Tokens: tokens, RefreshTTL: refreshTTL, CookieSecure: cookieSecure, Log: log}
}

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

func (s *Sessions) setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth", // covers /auth/refresh and /auth/logout
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func (s *Sessions) clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   s.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// IssueOnLogin creates a new token family for userID, sets the refresh
// cookie and returns a fresh access token.
func (s *Sessions) IssueOnLogin(ctx context.Context, w http.ResponseWriter, userID, role string) (string, error) {
	return s.issue(ctx, w, userID, role, uuid.NewString())
}

func (s *Sessions) issue(ctx context.Context, w http.ResponseWriter, userID, role, familyID string) (string, error) {
	access, err := s.Tokens.GenerateAccessToken(userID, role)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	raw, err := genRaw()
	if err != nil {
		return "", err
	}
	rt := RefreshToken{
		UserID:    userID,
		FamilyID:  familyID,
		Hash:      hashRaw(raw),
		Role:      role,
		ExpiresAt: time.Now().Add(s.RefreshTTL),
	}
	if err := s.DB.WithContext(ctx).Create(&rt).Error; err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	s.setRTCookie(w, raw, rt.ExpiresAt)
	return access, nil
}

// Rotate revokes the refresh token behind raw and issues a new pair in
// the same family. Presenting an already revoked token revokes the whole
// family.
func (s *Sessions) Rotate(ctx context.Context, w http.ResponseWriter, raw string) (string, error) {
	db := s.DB.WithContext(ctx)

	var cur RefreshToken
	if err := db.Where("hash = ?", hashRaw(raw)).First(&cur).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.ErrUnauthorized
		}
		return "", err
	}
	now := time.Now()
	if cur.RevokedAt != nil {
		s.Log.Warn("refresh token reuse detected", zap.String("family_id", cur.FamilyID), zap.String("user_id", cur.UserID))
		if err := s.revokeFamily(ctx, cur.FamilyID, now); err != nil {
			return "", err
		}
		return "", utils.ErrUnauthorized
	}
	if now.After(cur.ExpiresAt) {
		return "", utils.ErrUnauthorized
	}

	if err := db.Model(&cur).Update("revoked_at", &now).Error; err != nil {
		return "", err
	}
	return s.issue(ctx, w, cur.UserID, cur.Role, cur.FamilyID)
}

func (s *Sessions) revokeFamily(ctx context.Context, familyID string, at time.Time) error {
	return s.DB.WithContext(ctx).Model(&RefreshToken{}).
		Where("family_id = ? AND revoked_at IS NULL", familyID).
		Update("revoked_at", &at).Error
}

// Revoke marks the refresh token behind raw as revoked. Unknown tokens are ignored.
func (s *Sessions) Revoke(ctx context.Context, raw string) error {
	now := time.Now()
	return s.DB.WithContext(ctx).Model(&RefreshToken{}).
		Where("hash = ? AND revoked_at IS NULL", hashRaw(raw)).
		Update("revoked_at", &now).Error
}

// PurgeExpired deletes refresh tokens that are expired or were revoked.
func (s *Sessions) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now()).
		Delete(&RefreshToken{})
	return res.RowsAffected, res.Error
}

// RefreshHandler handles POST /auth/refresh.
func (s *Sessions) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookie)
	if err != nil || c.Value == "" {
		http.Error(w, "no refresh token", http.StatusUnauthorized)
		return
	}

	access, err := s.Rotate(r.Context(), w, c.Value)
	if err != nil {
		s.clearRTCookie(w)
		utils.WriteError(w, s.Log, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.Tokens.TTL().Seconds()),
	})
}

// LogoutHandler handles POST /auth/logout.
func (s *Sessions) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
		if err := s.Revoke(r.Context(), c.Value); err != nil {
			s.Log.Error("revoke refresh token", zap.Error(err))
		}
	}
	s.clearRTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
