package vehicles

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/brands"
	"github.com/autolux/marketplace-api/internal/categories"
	"github.com/autolux/marketplace-api/internal/users"
)

type Transmission string

const (
	Manual    Transmission = "MANUAL"
	Automatic Transmission = "AUTOMATIC"
	CVT       Transmission = "CVT"
)

func (t Transmission) Valid() bool {
	return t == Manual || t == Automatic || t == CVT
}

type Vehicle struct {
	ID           string                      `gorm:"primaryKey;size:36" json:"id"`
	Name         string                      `gorm:"size:255;not null" json:"name"`
	Model        string                      `gorm:"size:255;not null" json:"model"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Price        float64                     `gorm:"not null" json:"price"`
	Year         int                         `gorm:"not null" json:"year"`
	Km           int                         `gorm:"not null" json:"km"`
	Transmission Transmission                `gorm:"size:20;not null" json:"transmission"`
	City         string                      `gorm:"size:120;not null" json:"city"`
	State        string                      `gorm:"size:60;not null" json:"state"`
	Country      string                      `gorm:"size:60;not null" json:"country"`
	Color        string                      `gorm:"size:60" json:"color"`
	Engine       string                      `gorm:"size:60" json:"engine"`
	LicensePlate string                      `gorm:"size:20" json:"licensePlate"`
	ImageURLs    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"imageUrls"`
	Available    bool                        `gorm:"not null;default:true" json:"available"`

	SellerID   string `gorm:"size:36;not null;index" json:"sellerId"`
	CategoryID string `gorm:"size:36;not null;index" json:"categoryId"`
	BrandID    string `gorm:"size:36;not null;index" json:"brandId"`

	Seller   *users.User          `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Category *categories.Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *brands.Brand        `gorm:"foreignKey:BrandID" json:"brand,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Vehicle{})
}
