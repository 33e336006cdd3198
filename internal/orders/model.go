package orders

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// Order is a purchase intent of a vehicle by a buyer.
type Order struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Status    Status    `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	BuyerID   string    `gorm:"size:36;not null;index" json:"buyerId"`
	VehicleID string    `gorm:"size:36;not null;index" json:"vehicleId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Order{})
}
