package vehicles

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db"
	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
	"github.com/juvoapp/juvo-backend/pkg/pagination"
)

var keyRe = regexp.MustCompile(`^[a-z][a-z0-9_-]{1,62}$`)

type vehicleTypeRepository interface {
	Create(ctx context.Context, vt *models.VehicleType) error
	Update(ctx context.Context, vt *models.VehicleType) error
	FindByKey(ctx context.Context, key string) (*models.VehicleType, error)
	ListActive(ctx context.Context) ([]models.VehicleType, error)
	List(ctx context.Context, params pagination.Params) ([]models.VehicleType, string, error)
}

// Service exposes vehicle catalog operations.
type Service interface {
	List(ctx context.Context, params pagination.Params) (VehicleTypesPageDTO, error)
	GetByKey(ctx context.Context, key string) (*VehicleTypeDTO, error)
	Create(ctx context.Context, input CreateVehicleTypeInput) (*VehicleTypeDTO, error)
	Update(ctx context.Context, key string, input UpdateVehicleTypeInput) (*VehicleTypeDTO, error)
	EligibleForShopType(ctx context.Context, shopType enums.ShopType) ([]models.VehicleType, error)
}

type service struct {
	repo vehicleTypeRepository
}

// NewService builds a vehicle catalog service with the provided repository.
func NewService(repo vehicleTypeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicle type repository required")
	}
	return &service{repo: repo}, nil
}

// List returns a page of the full catalog including inactive rows.
func (s *service) List(ctx context.Context, params pagination.Params) (VehicleTypesPageDTO, error) {
	records, nextCursor, err := s.repo.List(ctx, params)
	if err != nil {
		return VehicleTypesPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicle types")
	}
	items := make([]VehicleTypeDTO, 0, len(records))
	for _, record := range records {
		items = append(items, toDTO(record))
	}
	return VehicleTypesPageDTO{Items: items, NextCursor: nextCursor}, nil
}

// GetByKey loads a single catalog entry.
func (s *service) GetByKey(ctx context.Context, key string) (*VehicleTypeDTO, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle type key is required")
	}
	vt, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehicle type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle type")
	}
	dto := toDTO(*vt)
	return &dto, nil
}

// Create validates and persists a new catalog entry.
func (s *service) Create(ctx context.Context, input CreateVehicleTypeInput) (*VehicleTypeDTO, error) {
	input.Key = strings.TrimSpace(strings.ToLower(input.Key))
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	if !keyRe.MatchString(input.Key) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle type key must be a lowercase slug")
	}
	if input.DisplayName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name is required")
	}
	if input.MaxWeightKG != nil && *input.MaxWeightKG <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max weight must be positive when set")
	}
	if input.BaseRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base rate cannot be negative")
	}

	vt := &models.VehicleType{
		Key:         input.Key,
		DisplayName: input.DisplayName,
		Active:      input.Active,
		SortOrder:   input.SortOrder,
		MaxWeightKG: input.MaxWeightKG,
		BaseRate:    input.BaseRate,
	}
	if err := s.repo.Create(ctx, vt); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "vehicle type key already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vehicle type")
	}

	dto := toDTO(*vt)
	return &dto, nil
}

// Update applies partial mutations to an existing catalog entry.
func (s *service) Update(ctx context.Context, key string, input UpdateVehicleTypeInput) (*VehicleTypeDTO, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle type key is required")
	}

	vt, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "vehicle type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle type")
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name cannot be empty")
		}
		vt.DisplayName = name
	}
	if input.Active != nil {
		vt.Active = *input.Active
	}
	if input.SortOrder != nil {
		vt.SortOrder = *input.SortOrder
	}
	if input.ClearMaxWeight {
		vt.MaxWeightKG = nil
	} else if input.MaxWeightKG != nil {
		if *input.MaxWeightKG <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "max weight must be positive when set")
		}
		vt.MaxWeightKG = input.MaxWeightKG
	}
	if input.BaseRate != nil {
		if input.BaseRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base rate cannot be negative")
		}
		vt.BaseRate = *input.BaseRate
	}

	if err := s.repo.Update(ctx, vt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle type")
	}

	dto := toDTO(*vt)
	return &dto, nil
}

// EligibleForShopType returns the active vehicles allowed to deliver for the
// given shop classification. Errors are surfaced so callers can apply the
// hardcoded fallback set.
func (s *service) EligibleForShopType(ctx context.Context, shopType enums.ShopType) ([]models.VehicleType, error) {
	catalog, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle catalog")
	}
	return EligibleForShopType(catalog, shopType), nil
}
