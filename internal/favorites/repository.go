package favorites

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/utils"
)

type Repository interface {
	Create(ctx context.Context, f *Favorite) error
	FindByUser(ctx context.Context, userID string) ([]Favorite, error)
	FindByID(ctx context.Context, id string) (*Favorite, error)
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// Create is idempotent per user and vehicle: an existing favorite is returned in f.
func (r *repositoryImpl) Create(ctx context.Context, f *Favorite) error {
	return r.db.WithContext(ctx).
		Where(Favorite{UserID: f.UserID, VehicleID: f.VehicleID}).
		FirstOrCreate(f).Error
}

func (r *repositoryImpl) FindByUser(ctx context.Context, userID string) ([]Favorite, error) {
	var list []Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(ctx context.Context, id string) (*Favorite, error) {
	var f Favorite
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("favorite")
		}
		return nil, err
	}
	return &f, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Favorite{}, "id = ?", id).Error
}
