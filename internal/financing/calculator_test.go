package financing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-6

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		price, down  float64
		n            int
		rate         float64
		model        InterestModel
		wantFinanced float64
		wantInterest float64
		wantPaid     float64
		wantAverage  float64
	}{
		{
			name: "simple interest", price: 50000, down: 5000, n: 12, rate: 2, model: Simple,
			wantFinanced: 45000, wantInterest: 10800, wantPaid: 60800, wantAverage: 4650,
		},
		{
			name: "compound interest", price: 50000, down: 5000, n: 12, rate: 2, model: Compound,
			wantFinanced: 45000,
			wantInterest: 45000*math.Pow(1.02, 12) - 45000,
			wantPaid:     5000 + 45000*math.Pow(1.02, 12),
			wantAverage:  45000 * math.Pow(1.02, 12) / 12,
		},
		{
			name: "zero rate", price: 30000, down: 0, n: 10, rate: 0, model: Compound,
			wantFinanced: 30000, wantInterest: 0, wantPaid: 30000, wantAverage: 3000,
		},
		{
			name: "full down payment", price: 20000, down: 20000, n: 6, rate: 1.5, model: Simple,
			wantFinanced: 0, wantInterest: 0, wantPaid: 20000, wantAverage: 0,
		},
		{
			name: "down payment above price passes through", price: 10000, down: 12000, n: 2, rate: 10, model: Simple,
			wantFinanced: -2000, wantInterest: -400, wantPaid: 9600, wantAverage: -1200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.price, tt.down, tt.n, tt.rate, tt.model)

			assert.InDelta(t, tt.wantFinanced, got.FinancedAmount, delta)
			assert.InDelta(t, tt.wantInterest, got.TotalInterest, delta)
			assert.InDelta(t, tt.wantPaid, got.TotalPaid, delta)
			assert.InDelta(t, tt.wantAverage, got.ScheduleDetails.AverageInstallment, delta)
			assert.Equal(t, tt.n, got.ScheduleDetails.InstallmentCount)
			assert.Equal(t, tt.model, got.ScheduleDetails.InterestModel)
			assert.Equal(t, got.FinancedAmount, got.ScheduleDetails.FinancedAmount)
			assert.Equal(t, got.TotalInterest, got.ScheduleDetails.TotalInterest)
		})
	}
}

func TestComputeTotalsAreConsistent(t *testing.T) {
	got := Compute(87500, 12500, 48, 1.29, Compound)

	assert.InDelta(t, 12500+got.FinancedAmount+got.TotalInterest, got.TotalPaid, delta)
	assert.InDelta(t, (got.FinancedAmount+got.TotalInterest)/48, got.ScheduleDetails.AverageInstallment, delta)
}

func TestComputeDefaultsToCompound(t *testing.T) {
	got := Compute(50000, 1000, 12, 1, "")
	want := Compute(50000, 1000, 12, 1, Compound)

	assert.Equal(t, want, got)
	assert.Equal(t, Compound, got.ScheduleDetails.InterestModel)
}

func TestComputeZeroInstallments(t *testing.T) {
	got := Compute(50000, 50000, 0, 2, Simple)
	assert.True(t, math.IsNaN(got.ScheduleDetails.AverageInstallment), "0/0 should be NaN")

	got = Compute(50000, 0, 0, 2, Compound)
	assert.InDelta(t, 0, got.TotalInterest, delta)
	assert.True(t, math.IsInf(got.ScheduleDetails.AverageInstallment, 1))
}

func TestComputeIsDeterministic(t *testing.T) {
	a := Compute(41234.56, 3210.98, 36, 1.87, Compound)
	b := Compute(41234.56, 3210.98, 36, 1.87, Compound)
	assert.Equal(t, a, b)
}

func TestParseInterestModel(t *testing.T) {
	m, err := ParseInterestModel("")
	require.NoError(t, err)
	assert.Equal(t, Compound, m)

	m, err = ParseInterestModel("simple")
	require.NoError(t, err)
	assert.Equal(t, Simple, m)

	_, err = ParseInterestModel("FLAT")
	assert.Error(t, err)
}

func TestInterestModelOrDefault(t *testing.T) {
	assert.Equal(t, Compound, InterestModel("").OrDefault())
	assert.Equal(t, Simple, Simple.OrDefault())
	assert.True(t, Simple.Valid())
	assert.False(t, InterestModel("FLAT").Valid())
}
