package reviews

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	UserID    string    `gorm:"size:36;not null;index" json:"userId"`
	VehicleID string    `gorm:"size:36;not null;index" json:"vehicleId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (rv *Review) BeforeCreate(tx *gorm.DB) error {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Review{})
}
