package vehicles

import (
	"context"

	"github.com/autolux/marketplace-api/internal/simulations"
)

// PriceLookup exposes vehicle prices to the simulation service.
type PriceLookup struct {
	Repo Repository
}

func (l PriceLookup) FindVehicleByID(ctx context.Context, id string) (*simulations.VehiclePrice, error) {
	price, err := l.Repo.FindPrice(ctx, id)
	if err != nil {
		return nil, err
	}
	return &simulations.VehiclePrice{ID: id, Price: price}, nil
}
