package simulations

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/utils"
)

// Store persists simulations.
type Store interface {
	CreateSimulation(ctx context.Context, s *Simulation) (*Simulation, error)
	ListSimulations(ctx context.Context) ([]Simulation, error)
	GetSimulationByID(ctx context.Context, id string) (*Simulation, error)
	UpdateSimulation(ctx context.Context, id string, fields map[string]any) (*Simulation, error)
	DeleteSimulation(ctx context.Context, id string) (*Simulation, error)
}

// VehiclePrice is what the financing math needs to know about a vehicle.
type VehiclePrice struct {
	ID    string
	Price float64
}

// VehicleLookup resolves a vehicle's current price. It returns an error
// wrapping utils.ErrNotFound when the vehicle does not exist.
type VehicleLookup interface {
	FindVehicleByID(ctx context.Context, id string) (*VehiclePrice, error)
}

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) CreateSimulation(ctx context.Context, s *Simulation) (*Simulation, error) {
	if err := r.DB.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repository) ListSimulations(ctx context.Context) ([]Simulation, error) {
	var list []Simulation
	err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *Repository) GetSimulationByID(ctx context.Context, id string) (*Simulation, error) {
	var s Simulation
	if err := r.DB.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("simulation")
		}
		return nil, err
	}
	return &s, nil
}

// UpdateSimulation applies fields (keyed by column name) and returns the
// row as stored afterwards.
func (r *Repository) UpdateSimulation(ctx context.Context, id string, fields map[string]any) (*Simulation, error) {
	res := r.DB.WithContext(ctx).Model(&Simulation{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, utils.NotFound("simulation")
	}
	return r.GetSimulationByID(ctx, id)
}

func (r *Repository) DeleteSimulation(ctx context.Context, id string) (*Simulation, error) {
	s, err := r.GetSimulationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Delete(&Simulation{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return s, nil
}
