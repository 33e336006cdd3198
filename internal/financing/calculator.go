// Package financing computes the cost of paying for a vehicle in installments.
//
// The calculator is pure: it performs no validation and never fails. Inputs
// that make no financial sense (a down payment above the price, zero
// installments) produce negative amounts or IEEE Inf/NaN values that the
// caller is expected to have ruled out beforehand.
package financing

import (
	"fmt"
	"math"
	"strings"
)

type InterestModel string

const (
	Simple   InterestModel = "SIMPLE"
	Compound InterestModel = "COMPOUND"
)

// DefaultModel applies when a request omits the interest model.
const DefaultModel = Compound

// ParseInterestModel accepts SIMPLE or COMPOUND in any case. An empty string
// resolves to DefaultModel.
func ParseInterestModel(s string) (InterestModel, error) {
	switch InterestModel(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return DefaultModel, nil
	case Simple:
		return Simple, nil
	case Compound:
		return Compound, nil
	default:
		return "", fmt.Errorf("unknown interest model %q", s)
	}
}

func (m InterestModel) Valid() bool {
	return m == Simple || m == Compound
}

// OrDefault returns m, or DefaultModel when m is empty.
func (m InterestModel) OrDefault() InterestModel {
	if m == "" {
		return DefaultModel
	}
	return m
}

// ScheduleDetails is the breakdown persisted next to a simulation.
type ScheduleDetails struct {
	FinancedAmount     float64       `json:"financedAmount"`
	TotalInterest      float64       `json:"totalInterest"`
	InstallmentCount   int           `json:"installmentCount"`
	AverageInstallment float64       `json:"averageInstallment"`
	InterestModel      InterestModel `json:"interestModel"`
}

type Result struct {
	FinancedAmount  float64
	TotalInterest   float64
	TotalPaid       float64
	ScheduleDetails ScheduleDetails
}

// Compute prices a financing plan. interestRate is a percentage per
// installment period (2 means 2%). Any model other than Simple is treated
// as Compound.
func Compute(vehiclePrice, downPayment float64, installmentCount int, interestRate float64, model InterestModel) Result {
	model = model.OrDefault()
	financed := vehiclePrice - downPayment
	n := float64(installmentCount)
	rate := interestRate / 100

	var interest float64
	if model == Simple {
		interest = financed * rate * n
	} else {
		model = Compound
		interest = financed*math.Pow(1+rate, n) - financed
	}

	return Result{
		FinancedAmount: financed,
		TotalInterest:  interest,
		TotalPaid:      downPayment + financed + interest,
		ScheduleDetails: ScheduleDetails{
			FinancedAmount:     financed,
			TotalInterest:      interest,
			InstallmentCount:   installmentCount,
			AverageInstallment: (financed + interest) / n,
			InterestModel:      model,
		},
	}
}
