package reviews

import (
	"strings"

	"github.com/autolux/marketplace-api/internal/utils"
)

const (
	MinRating = 1
	MaxRating = 5
)

type CreateReviewRequest struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	VehicleID string `json:"vehicleId"`
}

func (r *CreateReviewRequest) Validate() error {
	r.Comment = strings.TrimSpace(r.Comment)
	if err := validateRating(r.Rating); err != nil {
		return err
	}
	if r.Comment == "" {
		return utils.Invalid("comment is required")
	}
	if strings.TrimSpace(r.VehicleID) == "" {
		return utils.Invalid("vehicleId is required")
	}
	return nil
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

func (r *UpdateReviewRequest) Validate() error {
	if r.Rating != nil {
		if err := validateRating(*r.Rating); err != nil {
			return err
		}
	}
	if r.Comment != nil {
		c := strings.TrimSpace(*r.Comment)
		if c == "" {
			return utils.Invalid("comment must not be empty")
		}
		r.Comment = &c
	}
	return nil
}

func validateRating(n int) error {
	if n < MinRating || n > MaxRating {
		return utils.Invalid("rating must be between 1 and 5")
	}
	return nil
}
