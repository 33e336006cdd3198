package orders

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/utils"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	FindAll(ctx context.Context) ([]Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repositoryImpl) FindAll(ctx context.Context) ([]Order, error) {
	var list []Order
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("order")
		}
		return nil, err
	}
	return &o, nil
}

// Update writes only the given columns; buyer_id is never among them.
func (r *repositoryImpl) Update(ctx context.Context, id string, fields map[string]any) error {
	delete(fields, "buyer_id")
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Order{}).Where("id = ?", id).Updates(fields).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Order{}, "id = ?", id).Error
}
