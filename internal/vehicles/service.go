package vehicles

import (
	"context"
	"fmt"
	"mime/multipart"

	"go.uber.org/zap"

	"github.com/autolux/marketplace-api/internal/auth"
	"github.com/autolux/marketplace-api/internal/storage"
	"github.com/autolux/marketplace-api/internal/utils"
)

type Service struct {
	repo    Repository
	storage storage.Uploader
	log     *zap.Logger
}

func NewService(repo Repository, up storage.Uploader, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, storage: up, log: log}
}

// Create checks the seller, category and brand before uploading any image,
// so a rejected listing never leaves files behind.
func (s *Service) Create(ctx context.Context, req CreateVehicleRequest, sellerID string, images []*multipart.FileHeader) (*Vehicle, error) {
	if len(images) == 0 {
		return nil, utils.Invalid("at least one image is required")
	}
	if len(images) > storage.MaxVehicleFiles {
		return nil, utils.Invalid(fmt.Sprintf("at most %d images are allowed", storage.MaxVehicleFiles))
	}

	if err := s.mustExist(ctx, "seller", sellerID, s.repo.SellerExists); err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, "category", req.CategoryID, s.repo.CategoryExists); err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, "brand", req.BrandID, s.repo.BrandExists); err != nil {
		return nil, err
	}

	urls, err := storage.UploadImages(ctx, s.storage, storage.VehicleFolder, images)
	if err != nil {
		return nil, err
	}

	v := &Vehicle{
		Name:         req.Name,
		Model:        req.Model,
		Description:  req.Description,
		Price:        req.Price,
		Year:         req.Year,
		Km:           req.Km,
		Transmission: req.Transmission,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Color:        req.Color,
		Engine:       req.Engine,
		LicensePlate: req.LicensePlate,
		ImageURLs:    urls,
		Available:    true,
		SellerID:     sellerID,
		CategoryID:   req.CategoryID,
		BrandID:      req.BrandID,
	}
	if req.Available != nil {
		v.Available = *req.Available
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	s.log.Info("vehicle listed",
		zap.String("vehicle_id", v.ID),
		zap.String("seller_id", sellerID),
		zap.Int("images", len(urls)),
	)
	return v, nil
}

func (s *Service) FindAll(ctx context.Context) ([]Vehicle, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) FindOne(ctx context.Context, id string) (*Vehicle, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateVehicleRequest) (*Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, v); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.mustExist(ctx, "category", *req.CategoryID, s.repo.CategoryExists); err != nil {
			return nil, err
		}
	}
	if req.BrandID != nil {
		if err := s.mustExist(ctx, "brand", *req.BrandID, s.repo.BrandExists); err != nil {
			return nil, err
		}
	}

	req.apply(v)
	// drop stale preloads so Save writes the new foreign keys
	v.Category, v.Brand = nil, nil
	if err := s.repo.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("update vehicle %s: %w", id, err)
	}
	return v, nil
}

func (s *Service) Remove(ctx context.Context, id string) (*Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, v); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete vehicle %s: %w", id, err)
	}
	s.log.Info("vehicle removed", zap.String("vehicle_id", id))
	return v, nil
}

// authorize lets the seller or an admin change a listing.
func authorize(ctx context.Context, v *Vehicle) error {
	caller, ok := auth.UserID(ctx)
	if !ok {
		return utils.ErrUnauthorized
	}
	if caller != v.SellerID && !auth.IsAdmin(ctx) {
		return fmt.Errorf("vehicle %s belongs to another seller: %w", v.ID, utils.ErrForbidden)
	}
	return nil
}

func (s *Service) mustExist(ctx context.Context, entity, id string, check func(context.Context, string) (bool, error)) error {
	ok, err := check(ctx, id)
	if err != nil {
		return fmt.Errorf("check %s %s: %w", entity, id, err)
	}
	if !ok {
		return utils.NotFound(entity)
	}
	return nil
}
