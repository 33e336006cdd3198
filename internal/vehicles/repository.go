package vehicles

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/brands"
	"github.com/autolux/marketplace-api/internal/categories"
	"github.com/autolux/marketplace-api/internal/users"
	"github.com/autolux/marketplace-api/internal/utils"
)

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	FindAll(ctx context.Context) ([]Vehicle, error)
	FindByID(ctx context.Context, id string) (*Vehicle, error)
	FindPrice(ctx context.Context, id string) (float64, error)
	Save(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id string) error

	SellerExists(ctx context.Context, id string) (bool, error)
	CategoryExists(ctx context.Context, id string) (bool, error)
	BrandExists(ctx context.Context, id string) (bool, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Category").Preload("Brand").Preload("Seller")
}

func (r *repositoryImpl) Create(ctx context.Context, v *Vehicle) error {
	return r.db.WithContext(ctx).Omit("Seller", "Category", "Brand").Create(v).Error
}

func (r *repositoryImpl) FindAll(ctx context.Context) ([]Vehicle, error) {
	var list []Vehicle
	err := r.withRelations(ctx).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(ctx context.Context, id string) (*Vehicle, error) {
	var v Vehicle
	if err := r.withRelations(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("vehicle")
		}
		return nil, err
	}
	return &v, nil
}

// FindPrice reads only the price column.
func (r *repositoryImpl) FindPrice(ctx context.Context, id string) (float64, error) {
	var v Vehicle
	err := r.db.WithContext(ctx).Select("id", "price").First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, utils.NotFound("vehicle")
	}
	return v.Price, err
}

func (r *repositoryImpl) Save(ctx context.Context, v *Vehicle) error {
	return r.db.WithContext(ctx).Omit("Seller", "Category", "Brand").Save(v).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Vehicle{}, "id = ?", id).Error
}

func (r *repositoryImpl) exists(ctx context.Context, model any, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repositoryImpl) SellerExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, &users.User{}, id)
}

func (r *repositoryImpl) CategoryExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, &categories.Category{}, id)
}

func (r *repositoryImpl) BrandExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, &brands.Brand{}, id)
}
