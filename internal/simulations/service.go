package simulations

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/autolux/marketplace-api/internal/financing"
)

// Service owns the simulation lifecycle. Every write prices the plan again
// against the vehicle's current price, so the derived columns always match
// the stored inputs.
//
// Read-compute-write runs without locking; two concurrent updates of the
// same simulation resolve as last write wins.
type Service struct {
	store    Store
	vehicles VehicleLookup
	log      *zap.Logger
}

func NewService(store Store, vehicles VehicleLookup, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, vehicles: vehicles, log: log}
}

// Create prices req against the referenced vehicle and stores the result
// owned by userID.
func (s *Service) Create(ctx context.Context, req CreateRequest, userID string) (*Simulation, error) {
	vehicle, err := s.vehicles.FindVehicleByID(ctx, req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("resolve vehicle %s: %w", req.VehicleID, err)
	}

	model := req.InterestModel.OrDefault()
	result := financing.Compute(vehicle.Price, req.DownPayment, req.InstallmentCount, req.InterestRate, model)

	sim := &Simulation{
		DownPayment:              req.DownPayment,
		InstallmentCount:         req.InstallmentCount,
		InterestRate:             req.InterestRate,
		InterestModel:            model,
		CostOfEffectiveFinancing: req.CostOfEffectiveFinancing,
		FinancedAmount:           result.FinancedAmount,
		TotalInterest:            result.TotalInterest,
		TotalPaid:                result.TotalPaid,
		ScheduleDetails:          datatypes.NewJSONType(result.ScheduleDetails),
		UserID:                   userID,
		VehicleID:                req.VehicleID,
	}

	created, err := s.store.CreateSimulation(ctx, sim)
	if err != nil {
		return nil, fmt.Errorf("create simulation: %w", err)
	}
	s.log.Info("simulation created",
		zap.String("simulation_id", created.ID),
		zap.String("vehicle_id", created.VehicleID),
		zap.String("user_id", userID),
		zap.String("interest_model", string(model)),
	)
	return created, nil
}

func (s *Service) FindAll(ctx context.Context) ([]Simulation, error) {
	list, err := s.store.ListSimulations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	return list, nil
}

func (s *Service) FindOne(ctx context.Context, id string) (*Simulation, error) {
	sim, err := s.store.GetSimulationByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find simulation %s: %w", id, err)
	}
	return sim, nil
}

// Update merges req over the stored simulation and prices the result
// against the current price of the simulation's own vehicle. A VehicleID in
// req is ignored.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Simulation, error) {
	current, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.FindVehicleByID(ctx, current.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("resolve vehicle %s: %w", current.VehicleID, err)
	}

	merged := merge(current, req)
	result := financing.Compute(vehicle.Price, merged.DownPayment, merged.InstallmentCount, merged.InterestRate, merged.InterestModel)

	fields := map[string]any{}
	if req.DownPayment != nil {
		fields["down_payment"] = *req.DownPayment
	}
	if req.InstallmentCount != nil {
		fields["installment_count"] = *req.InstallmentCount
	}
	if req.InterestRate != nil {
		fields["interest_rate"] = *req.InterestRate
	}
	if req.CostOfEffectiveFinancing != nil {
		fields["cost_of_effective_financing"] = *req.CostOfEffectiveFinancing
	}
	// derived columns are always rewritten
	fields["interest_model"] = merged.InterestModel
	fields["financed_amount"] = result.FinancedAmount
	fields["total_interest"] = result.TotalInterest
	fields["total_paid"] = result.TotalPaid
	fields["schedule_details"] = datatypes.NewJSONType(result.ScheduleDetails)

	updated, err := s.store.UpdateSimulation(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update simulation %s: %w", id, err)
	}
	s.log.Info("simulation repriced",
		zap.String("simulation_id", id),
		zap.Float64("vehicle_price", vehicle.Price),
		zap.Float64("total_paid", result.TotalPaid),
	)
	return updated, nil
}

func (s *Service) Remove(ctx context.Context, id string) (*Simulation, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return nil, err
	}
	removed, err := s.store.DeleteSimulation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete simulation %s: %w", id, err)
	}
	s.log.Info("simulation removed", zap.String("simulation_id", id))
	return removed, nil
}

// mergedInputs holds the financial inputs after applying an update.
type mergedInputs struct {
	DownPayment      float64
	InstallmentCount int
	InterestRate     float64
	InterestModel    financing.InterestModel
}

func merge(current *Simulation, req UpdateRequest) mergedInputs {
	m := mergedInputs{
		DownPayment:      current.DownPayment,
		InstallmentCount: current.InstallmentCount,
		InterestRate:     current.InterestRate,
		InterestModel:    current.InterestModel,
	}
	if req.DownPayment != nil {
		m.DownPayment = *req.DownPayment
	}
	if req.InstallmentCount != nil {
		m.InstallmentCount = *req.InstallmentCount
	}
	if req.InterestRate != nil {
		m.InterestRate = *req.InterestRate
	}
	if req.InterestModel != nil {
		m.InterestModel = *req.InterestModel
	}
	m.InterestModel = m.InterestModel.OrDefault()
	return m
}
