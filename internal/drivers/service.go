package drivers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/internal/vehicles"
	"github.com/juvoapp/juvo-backend/pkg/db"
	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
	"github.com/juvoapp/juvo-backend/pkg/types"
)

type driverRepository interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.DriverProfile, error)
	CreateProfile(ctx context.Context, profile *models.DriverProfile) error
	UpdateProfile(ctx context.Context, profile *models.DriverProfile) error
	UpdatePresence(ctx context.Context, userID uuid.UUID, online bool, location *types.GeographyPoint, now time.Time) error
	UpdatePushToken(ctx context.Context, userID uuid.UUID, token *string) error
	FindAvailable(ctx context.Context, query AvailabilityQuery) ([]CandidateDriver, error)
}

type vehicleCatalog interface {
	GetByKey(ctx context.Context, key string) (*vehicles.VehicleTypeDTO, error)
}

// Service exposes driver profile and availability operations.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*DriverProfileDTO, error)
	RegisterProfile(ctx context.Context, input RegisterProfileInput) (*DriverProfileDTO, error)
	UpdatePresence(ctx context.Context, userID uuid.UUID, input PresenceInput) error
	Heartbeat(ctx context.Context, userID uuid.UUID) error
	SetPushToken(ctx context.Context, userID uuid.UUID, token string) error
	FindAvailableForShop(ctx context.Context, shopID uuid.UUID, vehicleKeys []string, window time.Duration) ([]CandidateDriver, error)
}

type service struct {
	repo    driverRepository
	catalog vehicleCatalog
	now     func() time.Time
}

// NewService builds a driver service with the provided dependencies.
func NewService(repo driverRepository, catalog vehicleCatalog) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("driver repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("vehicle catalog required")
	}
	return &service{
		repo:    repo,
		catalog: catalog,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// GetProfile loads a driver profile by user ID.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*DriverProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "driver profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load driver profile")
	}
	dto := profileToDTO(*profile)
	return &dto, nil
}

// RegisterProfile enrolls a driver user with a vehicle from the catalog.
func (s *service) RegisterProfile(ctx context.Context, input RegisterProfileInput) (*DriverProfileDTO, error) {
	input.VehicleTypeKey = strings.TrimSpace(input.VehicleTypeKey)
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.VehicleTypeKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle type key is required")
	}

	user, err := s.repo.FindUserByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user.Role != enums.UserRoleDriver {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "only driver accounts can register a profile")
	}

	vt, err := s.catalog.GetByKey(ctx, input.VehicleTypeKey)
	if err != nil {
		return nil, err
	}
	if !vt.Active {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle type is not active")
	}

	profile := &models.DriverProfile{
		UserID:         input.UserID,
		VehicleTypeKey: vt.Key,
	}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "driver profile already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create driver profile")
	}

	dto := profileToDTO(*profile)
	return &dto, nil
}

// UpdatePresence records the driver's reported availability and stamps the
// activity heartbeat.
func (s *service) UpdatePresence(ctx context.Context, userID uuid.UUID, input PresenceInput) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.UpdatePresence(ctx, userID, input.Online, input.Location, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "driver profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update presence")
	}
	return nil
}

// Heartbeat refreshes last_active_at without changing the online flag.
func (s *service) Heartbeat(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "driver profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load driver profile")
	}
	if err := s.repo.UpdatePresence(ctx, userID, profile.Online, nil, s.now()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record heartbeat")
	}
	return nil
}

// SetPushToken stores or clears the driver's device token.
func (s *service) SetPushToken(ctx context.Context, userID uuid.UUID, token string) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	var value *string
	if trimmed := strings.TrimSpace(token); trimmed != "" {
		value = &trimmed
	}
	if err := s.repo.UpdatePushToken(ctx, userID, value); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update push token")
	}
	return nil
}

// FindAvailableForShop runs the availability query for the given shop and
// vehicle set. An empty vehicle set yields no candidates.
func (s *service) FindAvailableForShop(ctx context.Context, shopID uuid.UUID, vehicleKeys []string, window time.Duration) ([]CandidateDriver, error) {
	if shopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if window <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity window must be positive")
	}
	if len(vehicleKeys) == 0 {
		return []CandidateDriver{}, nil
	}

	candidates, err := s.repo.FindAvailable(ctx, AvailabilityQuery{
		ShopID:         shopID,
		VehicleKeys:    vehicleKeys,
		ActivityWindow: window,
		Now:            s.now(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query available drivers")
	}
	return candidates, nil
}
