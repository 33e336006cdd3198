package simulations

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/autolux/marketplace-api/internal/financing"
	"github.com/autolux/marketplace-api/internal/utils"
)

const delta = 1e-6

func ptr[T any](v T) *T { return &v }

func newTestService() (*Service, *MockStore, *MockVehicles) {
	store := new(MockStore)
	vehicles := new(MockVehicles)
	return NewService(store, vehicles, nil), store, vehicles
}

func storedSimulation() *Simulation {
	result := financing.Compute(50000, 1000, 12, 1, financing.Compound)
	return &Simulation{
		ID:               "sim-1",
		DownPayment:      1000,
		InstallmentCount: 12,
		InterestRate:     1,
		InterestModel:    financing.Compound,
		FinancedAmount:   result.FinancedAmount,
		TotalInterest:    result.TotalInterest,
		TotalPaid:        result.TotalPaid,
		ScheduleDetails:  datatypes.NewJSONType(result.ScheduleDetails),
		UserID:           "user-1",
		VehicleID:        "veh-1",
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, store, vehicles := newTestService()

	vehicles.On("FindVehicleByID", ctx, "veh-1").Return(&VehiclePrice{ID: "veh-1", Price: 50000}, nil)

	var saved *Simulation
	store.On("CreateSimulation", ctx, mock.AnythingOfType("*simulations.Simulation")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*Simulation) }).
		Return(&Simulation{ID: "sim-1"}, nil)

	req := CreateRequest{
		VehicleID:        "veh-1",
		DownPayment:      5000,
		InstallmentCount: 12,
		InterestRate:     2,
		InterestModel:    financing.Simple,
	}
	out, err := svc.Create(ctx, req, "user-7")
	require.NoError(t, err)
	assert.Equal(t, "sim-1", out.ID)

	require.NotNil(t, saved)
	assert.InDelta(t, 45000, saved.FinancedAmount, delta)
	assert.InDelta(t, 10800, saved.TotalInterest, delta)
	assert.InDelta(t, 60800, saved.TotalPaid, delta)
	assert.InDelta(t, 4650, saved.ScheduleDetails.Data().AverageInstallment, delta)
	assert.Equal(t, financing.Simple, saved.InterestModel)
	assert.Equal(t, "user-7", saved.UserID)
	assert.Equal(t, "veh-1", saved.VehicleID)
	assert.Equal(t, 5000.0, saved.DownPayment)
	assert.Nil(t, saved.CostOfEffectiveFinancing)

	store.AssertExpectations(t)
	vehicles.AssertExpectations(t)
}

func TestServiceCreateDefaultsToCompound(t *testing.T) {
	ctx := context.Background()
	svc, store, vehicles := newTestService()

	vehicles.On("FindVehicleByID", ctx, "veh-1").Return(&VehiclePrice{ID: "veh-1", Price: 50000}, nil)
	var saved *Simulation
	store.On("CreateSimulation", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*Simulation) }).
		Return(&Simulation{ID: "sim-2"}, nil)

	_, err := svc.Create(ctx, CreateRequest{
		VehicleID:                "veh-1",
		DownPayment:              5000,
		InstallmentCount:         12,
		InterestRate:             2,
		CostOfEffectiveFinancing: ptr(2.4),
	}, "user-7")
	require.NoError(t, err)

	assert.Equal(t, financing.Compound, saved.InterestModel)
	assert.Equal(t, financing.Compound, saved.ScheduleDetails.Data().InterestModel)
	assert.InDelta(t, 45000*math.Pow(1.02, 12)-45000, saved.TotalInterest, delta)
	require.NotNil(t, saved.CostOfEffectiveFinancing)
	assert.Equal(t, 2.4, *saved.CostOfEffectiveFinancing)
}

func TestServiceCreateMissingVehicle(t *testing.T) {
	ctx := context.Background()
	svc, store, vehicles := newTestService()

	vehicles.On("FindVehicleByID", ctx, "ghost").Return(nil, utils.NotFound("vehicle"))

	_, err := svc.Create(ctx, CreateRequest{VehicleID: "ghost", InstallmentCount: 12}, "user-7")
	assert.ErrorIs(t, err, utils.ErrNotFound)
	store.AssertNotCalled(t, "CreateSimulation", mock.Anything, mock.Anything)
}

func TestServiceCreatePropagatesStoreFailure(t *testing.T) {
	ctx := context.Background()
	svc, store, vehicles := newTestService()
	dbErr := errors.New("connection reset")

	vehicles.On("FindVehicleByID", ctx, "veh-1").Return(&VehiclePrice{ID: "veh-1", Price: 50000}, nil)
	store.On("CreateSimulation", ctx, mock.Anything).Return(nil, dbErr)

	_, err := svc.Create(ctx, CreateRequest{VehicleID: "veh-1", InstallmentCount: 12}, "user-7")
	assert.ErrorIs(t, err, dbErr)
}

func TestServiceFindAll(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	rows := []Simulation{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	store.On("ListSimulations", ctx).Return(rows, nil)

	got, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestServiceFindOne(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	store.On("GetSimulationByID", ctx, "sim-1").Return(storedSimulation(), nil)
	store.On("GetSimulationByID", ctx, "ghost-id").Return(nil, utils.NotFound("simulation"))

	first, err := svc.FindOne(ctx, "sim-1")
	require.NoError(t, err)
	second, err := svc.FindOne(ctx, "sim-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = svc.FindOne(ctx, "ghost-id")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestServiceUpdateRecomputesFromStoredInputs(t *testing.T) {
	ctx := context.Background()
	svc, store, vehicles := newTestService()

	store.On("GetSimulationByID", ctx, "sim-1").Return(storedSimulation(), nil)
	vehicles.On("FindVehicleByID", ctx, "veh-1").Return(&VehiclePrice{ID: "veh-1", Price: 50000}, nil)

	var fields map[string]any
	store.On("UpdateSimulation", ctx, "sim-1", mock.Anything).
		Run(func(args mock.Arguments) { fields = args.Get(2).(map[string]any) }).
		Return(&Simulation{ID: "sim-1"}, nil)

	_, err := svc.Update(ctx, "sim-1", UpdateRequest{InstallmentCount: ptr(10)})
	require.NoError(t, err)

	wantInterest := 49000*math.Pow(1.01, 10) - 49000
	assert.Equal(t, 10, fields["installment_count"])
	assert.InDelta(t, 49000, fields["financed_amount"].(float64), delta)
	assert.InDelta(t, wantInterest, fields["total_interest"].(float64), delta)
	assert.InDelta(t, 1000+49000+wantInterest, fields["total_paid"].(float64), delta)
	assert.Equal(t, financing.Compound, fields["interest_model"])

	schedule := fields["schedule_details"].(datatypes.JSONType[financing.ScheduleDetails]).Data()
	assert.Equal(t, 10, schedule.InstallmentCount)
	assert.InDelta(t, (49000+wantInterest)/10, schedule.AverageInstallment, delta)

	assert.NotContains(t, fields, "down_payment")
	assert.NotContains(t, fields, "interest_rate")
	assert.NotContains(t, fields, "vehicle_id")
	assert.NotContains(t, fields, "user_id")
}

func TestServiceUpdateUsesCurrentVehicle(t *testing.T) {
	ctx := context.Background()
	svc, store, vehicles := newTestService()

	store.On("GetSimulationByID", ctx, "sim-1").Return(storedSimulation(), nil)
	// the price went up since the simulation was stored
	vehicles.On("FindVehicleByID", ctx, "veh-1").Return(&VehiclePrice{ID: "veh-1", Price: 61000}, nil)

	var fields map[string]any
	store.On("UpdateSimulation", ctx, "sim-1", mock.Anything).
		Run(func(args mock.Arguments) { fields = args.Get(2).(map[string]any) }).
		Return(&Simulation{ID: "sim-1"}, nil)

	_, err := svc.Update(ctx, "sim-1", UpdateRequest{
		VehicleID:     ptr("veh-other"),
		InterestModel: ptr(financing.Simple),
		DownPayment:   ptr(11000.0),
	})
	require.NoError(t, err)

	assert.InDelta(t, 50000, fields["financed_amount"].(float64), delta)
	assert.InDelta(t, 50000*0.01*12, fields["total_interest"].(float64), delta)
	assert.Equal(t, financing.Simple, fields["interest_model"])
	assert.Equal(t, 11000.0, fields["down_payment"])
	assert.NotContains(t, fields, "vehicle_id")
	vehicles.AssertNotCalled(t, "FindVehicleByID", ctx, "veh-other")
}

func TestServiceUpdateMissingSimulation(t *testing.T) {
	ctx := context.Background()
	svc, store, vehicles := newTestService()

	store.On("GetSimulationByID", ctx, "ghost-id").Return(nil, utils.NotFound("simulation"))

	_, err := svc.Update(ctx, "ghost-id", UpdateRequest{InstallmentCount: ptr(10)})
	assert.ErrorIs(t, err, utils.ErrNotFound)
	store.AssertNotCalled(t, "UpdateSimulation", mock.Anything, mock.Anything, mock.Anything)
	vehicles.AssertNotCalled(t, "FindVehicleByID", mock.Anything, mock.Anything)
}

func TestServiceUpdateVehicleGone(t *testing.T) {
	ctx := context.Background()
	svc, store, vehicles := newTestService()

	store.On("GetSimulationByID", ctx, "sim-1").Return(storedSimulation(), nil)
	vehicles.On("FindVehicleByID", ctx, "veh-1").Return(nil, utils.NotFound("vehicle"))

	_, err := svc.Update(ctx, "sim-1", UpdateRequest{InstallmentCount: ptr(10)})
	assert.ErrorIs(t, err, utils.ErrNotFound)
	store.AssertNotCalled(t, "UpdateSimulation", mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceRemove(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	existing := storedSimulation()
	store.On("GetSimulationByID", ctx, "sim-1").Return(existing, nil)
	store.On("DeleteSimulation", ctx, "sim-1").Return(existing, nil)

	removed, err := svc.Remove(ctx, "sim-1")
	require.NoError(t, err)
	assert.Equal(t, existing, removed)
	store.AssertExpectations(t)
}

func TestServiceRemoveMissingSimulation(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService()

	store.On("GetSimulationByID", ctx, "ghost-id").Return(nil, utils.NotFound("simulation"))

	_, err := svc.Remove(ctx, "ghost-id")
	assert.ErrorIs(t, err, utils.ErrNotFound)
	store.AssertNotCalled(t, "DeleteSimulation", mock.Anything, mock.Anything)
}

func TestMergePrefersPayload(t *testing.T) {
	current := storedSimulation()

	m := merge(current, UpdateRequest{InterestRate: ptr(3.5)})
	assert.Equal(t, mergedInputs{DownPayment: 1000, InstallmentCount: 12, InterestRate: 3.5, InterestModel: financing.Compound}, m)

	current.InterestModel = ""
	m = merge(current, UpdateRequest{})
	assert.Equal(t, financing.Compound, m.InterestModel)
}
