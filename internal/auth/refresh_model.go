package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken stores the sha256 of a refresh token handed out as a cookie.
// Tokens rotated from the same login share a FamilyID.
type RefreshToken struct {
	ID        string     `gorm:"primaryKey;size:36"`
	UserID    string     `gorm:"size:36;index"`
	FamilyID  string     `gorm:"size:36;index"`
	Hash      string     `gorm:"uniqueIndex"`
	Role      string     `gorm:"size:20"`
	ExpiresAt time.Time  `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RefreshToken{})
}
