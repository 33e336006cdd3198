package favorites

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite marks a vehicle a user wants to keep an eye on.
type Favorite struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_favorite_user_vehicle" json:"userId"`
	VehicleID string    `gorm:"size:36;not null;uniqueIndex:idx_favorite_user_vehicle" json:"vehicleId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Favorite{})
}
