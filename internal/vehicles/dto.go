package vehicles

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/autolux/marketplace-api/internal/storage"
	"github.com/autolux/marketplace-api/internal/utils"
)

type CreateVehicleRequest struct {
	Name         string       `json:"name"`
	Model        string       `json:"model"`
	Description  string       `json:"description"`
	CategoryID   string       `json:"categoryId"`
	BrandID      string       `json:"brandId"`
	Price        float64      `json:"price"`
	Year         int          `json:"year"`
	Km           int          `json:"km"`
	Transmission Transmission `json:"transmission"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	Country      string       `json:"country"`
	Color        string       `json:"color"`
	Engine       string       `json:"engine"`
	LicensePlate string       `json:"licensePlate"`
	Available    *bool        `json:"available,omitempty"`
}

// parseCreateForm reads a CreateVehicleRequest from multipart form values.
func parseCreateForm(r *http.Request) (CreateVehicleRequest, error) {
	req := CreateVehicleRequest{
		Name:         r.FormValue("name"),
		Model:        r.FormValue("model"),
		Description:  r.FormValue("description"),
		CategoryID:   r.FormValue("categoryId"),
		BrandID:      r.FormValue("brandId"),
		Transmission: Transmission(strings.ToUpper(r.FormValue("transmission"))),
		City:         r.FormValue("city"),
		State:        r.FormValue("state"),
		Country:      r.FormValue("country"),
		Color:        r.FormValue("color"),
		Engine:       r.FormValue("engine"),
		LicensePlate: r.FormValue("licensePlate"),
	}

	var err error
	if req.Price, err = strconv.ParseFloat(r.FormValue("price"), 64); err != nil {
		return req, utils.Invalid("price must be a number")
	}
	if req.Year, err = strconv.Atoi(r.FormValue("year")); err != nil {
		return req, utils.Invalid("year must be an integer")
	}
	if req.Km, err = strconv.Atoi(r.FormValue("km")); err != nil {
		return req, utils.Invalid("km must be an integer")
	}
	if v := r.FormValue("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, utils.Invalid("available must be true or false")
		}
		req.Available = &b
	}
	return req, nil
}

func (r *CreateVehicleRequest) Validate() error {
	required := []struct{ field, value string }{
		{"name", r.Name},
		{"model", r.Model},
		{"description", r.Description},
		{"categoryId", r.CategoryID},
		{"brandId", r.BrandID},
		{"city", r.City},
		{"state", r.State},
		{"country", r.Country},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return utils.Invalid(f.field + " is required")
		}
	}
	if r.Price < 0 {
		return utils.Invalid("price must not be negative")
	}
	if !r.Transmission.Valid() {
		return utils.Invalid("transmission must be MANUAL, AUTOMATIC or CVT")
	}
	return nil
}

// UpdateVehicleRequest is used on PUT /vehicles/{id}; nil fields are kept.
type UpdateVehicleRequest struct {
	Name         *string       `json:"name,omitempty"`
	Model        *string       `json:"model,omitempty"`
	Description  *string       `json:"description,omitempty"`
	CategoryID   *string       `json:"categoryId,omitempty"`
	BrandID      *string       `json:"brandId,omitempty"`
	Price        *float64      `json:"price,omitempty"`
	Year         *int          `json:"year,omitempty"`
	Km           *int          `json:"km,omitempty"`
	Transmission *Transmission `json:"transmission,omitempty"`
	City         *string       `json:"city,omitempty"`
	State        *string       `json:"state,omitempty"`
	Country      *string       `json:"country,omitempty"`
	Color        *string       `json:"color,omitempty"`
	Engine       *string       `json:"engine,omitempty"`
	LicensePlate *string       `json:"licensePlate,omitempty"`
	ImageURLs    []string      `json:"imageUrls,omitempty"`
	Available    *bool         `json:"available,omitempty"`
}

func (r *UpdateVehicleRequest) Validate() error {
	if r.Price != nil && *r.Price < 0 {
		return utils.Invalid("price must not be negative")
	}
	if r.Transmission != nil && !r.Transmission.Valid() {
		return utils.Invalid("transmission must be MANUAL, AUTOMATIC or CVT")
	}
	if r.ImageURLs != nil && (len(r.ImageURLs) == 0 || len(r.ImageURLs) > storage.MaxVehicleFiles) {
		return utils.Invalid("imageUrls must hold between 1 and 5 entries")
	}
	return nil
}

func (r *UpdateVehicleRequest) apply(v *Vehicle) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&v.Name, r.Name)
	setString(&v.Model, r.Model)
	setString(&v.Description, r.Description)
	setString(&v.CategoryID, r.CategoryID)
	setString(&v.BrandID, r.BrandID)
	setString(&v.City, r.City)
	setString(&v.State, r.State)
	setString(&v.Country, r.Country)
	setString(&v.Color, r.Color)
	setString(&v.Engine, r.Engine)
	setString(&v.LicensePlate, r.LicensePlate)
	if r.Price != nil {
		v.Price = *r.Price
	}
	if r.Year != nil {
		v.Year = *r.Year
	}
	if r.Km != nil {
		v.Km = *r.Km
	}
	if r.Transmission != nil {
		v.Transmission = *r.Transmission
	}
	if r.ImageURLs != nil {
		v.ImageURLs = r.ImageURLs
	}
	if r.Available != nil {
		v.Available = *r.Available
	}
}
