package orders

import (
	"strings"

	"github.com/autolux/marketplace-api/internal/utils"
)

type CreateOrderRequest struct {
	Status    Status `json:"status,omitempty"`
	VehicleID string `json:"vehicleId"`
}

func (r *CreateOrderRequest) Validate() error {
	if strings.TrimSpace(r.VehicleID) == "" {
		return utils.Invalid("vehicleId is required")
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	if !r.Status.Valid() {
		return utils.Invalid("unknown order status")
	}
	return nil
}

// UpdateOrderRequest has no buyer field: the buyer of an order is fixed.
type UpdateOrderRequest struct {
	Status    *Status `json:"status,omitempty"`
	VehicleID *string `json:"vehicleId,omitempty"`
}

func (r *UpdateOrderRequest) Validate() error {
	if r.Status != nil && !r.Status.Valid() {
		return utils.Invalid("unknown order status")
	}
	if r.VehicleID != nil && strings.TrimSpace(*r.VehicleID) == "" {
		return utils.Invalid("vehicleId must not be empty")
	}
	return nil
}
