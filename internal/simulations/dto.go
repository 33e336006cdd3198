package simulations

import (
	"strings"

	"github.com/autolux/marketplace-api/internal/financing"
	"github.com/autolux/marketplace-api/internal/utils"
)

type CreateRequest struct {
	VehicleID                string                  `json:"vehicleId"`
	DownPayment              float64                 `json:"downPayment"`
	InstallmentCount         int                     `json:"installmentCount"`
	InterestRate             float64                 `json:"interestRate"`
	InterestModel            financing.InterestModel `json:"interestModel,omitempty"`
	CostOfEffectiveFinancing *float64                `json:"costOfEffectiveFinancing,omitempty"`
}

// UpdateRequest carries the fields a caller wants to change. Nil means
// "keep the stored value". VehicleID is accepted for compatibility but a
// simulation always stays bound to its original vehicle.
type UpdateRequest struct {
	VehicleID                *string                  `json:"vehicleId,omitempty"`
	DownPayment              *float64                 `json:"downPayment,omitempty"`
	InstallmentCount         *int                     `json:"installmentCount,omitempty"`
	InterestRate             *float64                 `json:"interestRate,omitempty"`
	InterestModel            *financing.InterestModel `json:"interestModel,omitempty"`
	CostOfEffectiveFinancing *float64                 `json:"costOfEffectiveFinancing,omitempty"`
}

func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.VehicleID) == "" {
		return utils.Invalid("vehicleId is required")
	}
	if err := validateInputs(&r.DownPayment, &r.InstallmentCount, &r.InterestRate); err != nil {
		return err
	}
	if r.InterestModel != "" {
		m, err := financing.ParseInterestModel(string(r.InterestModel))
		if err != nil {
			return utils.Invalid(err.Error())
		}
		r.InterestModel = m
	}
	return nil
}

func (r *UpdateRequest) Validate() error {
	if err := validateInputs(r.DownPayment, r.InstallmentCount, r.InterestRate); err != nil {
		return err
	}
	if r.InterestModel != nil {
		m, err := financing.ParseInterestModel(string(*r.InterestModel))
		if err != nil {
			return utils.Invalid(err.Error())
		}
		r.InterestModel = &m
	}
	return nil
}

func validateInputs(downPayment *float64, installmentCount *int, interestRate *float64) error {
	if downPayment != nil && *downPayment < 0 {
		return utils.Invalid("downPayment must not be negative")
	}
	if installmentCount != nil && *installmentCount < 1 {
		return utils.Invalid("installmentCount must be at least 1")
	}
	if interestRate != nil && *interestRate < 0 {
		return utils.Invalid("interestRate must not be negative")
	}
	return nil
}
