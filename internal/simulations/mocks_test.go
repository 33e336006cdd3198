package simulations

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateSimulation(ctx context.Context, s *Simulation) (*Simulation, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Simulation), args.Error(1)
}

func (m *MockStore) ListSimulations(ctx context.Context) ([]Simulation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Simulation), args.Error(1)
}

func (m *MockStore) GetSimulationByID(ctx context.Context, id string) (*Simulation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Simulation), args.Error(1)
}

func (m *MockStore) UpdateSimulation(ctx context.Context, id string, fields map[string]any) (*Simulation, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Simulation), args.Error(1)
}

func (m *MockStore) DeleteSimulation(ctx context.Context, id string) (*Simulation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Simulation), args.Error(1)
}

type MockVehicles struct {
	mock.Mock
}

func (m *MockVehicles) FindVehicleByID(ctx context.Context, id string) (*VehiclePrice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VehiclePrice), args.Error(1)
}
