package categories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/autolux/marketplace-api/internal/utils"
)

type Repository interface {
	Create(ctx context.Context, b *Category) error
	FindAll(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id string) (*Category, error)
	Save(ctx context.Context, b *Category) error
	Delete(ctx context.Context, id string) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, b *Category) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repositoryImpl) FindAll(ctx context.Context) ([]Category, error) {
	var list []Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(ctx context.Context, id string) (*Category, error) {
	var b Category
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("category")
		}
		return nil, err
	}
	return &b, nil
}

func (r *repositoryImpl) Save(ctx context.Context, b *Category) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Category{}, "id = ?", id).Error
}
