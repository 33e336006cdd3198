package simulations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/financing"
)

// Simulation is a stored financing quote for a vehicle. FinancedAmount,
// TotalInterest, TotalPaid and ScheduleDetails are derived from the input
// fields and the vehicle price at the time of the last write.
type Simulation struct {
	ID                       string                                        `gorm:"primaryKey;size:36" json:"id"`
	DownPayment              float64                                       `gorm:"not null;default:0" json:"downPayment"`
	InstallmentCount         int                                           `gorm:"not null" json:"installmentCount"`
	InterestRate             float64                                       `gorm:"not null" json:"interestRate"`
	InterestModel            financing.InterestModel                       `gorm:"size:20;not null;default:'COMPOUND'" json:"interestModel"`
	CostOfEffectiveFinancing *float64                                      `json:"costOfEffectiveFinancing"`
	FinancedAmount           float64                                       `gorm:"not null" json:"financedAmount"`
	TotalInterest            float64                                       `gorm:"not null" json:"totalInterest"`
	TotalPaid                float64                                       `gorm:"not null" json:"totalPaid"`
	ScheduleDetails          datatypes.JSONType[financing.ScheduleDetails] `gorm:"type:jsonb" json:"scheduleDetails"`
	UserID                   string                                        `gorm:"size:36;not null;index" json:"userId"`
	VehicleID                string                                        `gorm:"size:36;not null;index" json:"vehicleId"`
	CreatedAt                time.Time                                     `json:"createdAt"`
	UpdatedAt                time.Time                                     `json:"updatedAt"`
}

func (s *Simulation) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Migrate creates the simulations table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Simulation{})
}
