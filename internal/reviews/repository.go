package reviews

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/utils"
)

type Repository interface {
	Create(ctx context.Context, rv *Review) error
	FindAll(ctx context.Context, vehicleID string) ([]Review, error)
	FindByID(ctx context.Context, id string) (*Review, error)
	Save(ctx context.Context, rv *Review) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

// FindAll lists reviews, optionally narrowed to one vehicle.
func (r *repositoryImpl) FindAll(ctx context.Context, vehicleID string) ([]Review, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if vehicleID != "" {
		q = q.Where("vehicle_id = ?", vehicleID)
	}
	var list []Review
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(ctx context.Context, id string) (*Review, error) {
	var rv Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("review")
		}
		return nil, err
	}
	return &rv, nil
}

func (r *repositoryImpl) Save(ctx context.Context, rv *Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Review{}, "id = ?", id).Error
}
