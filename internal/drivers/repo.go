package drivers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/types"
)

// Repository handles driver profile persistence and the availability query.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to driver operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindUserByID loads the user row backing a driver account.
func (r *Repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindProfileByUserID loads the driver profile for a user.
func (r *Repository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.DriverProfile, error) {
	var profile models.DriverProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateProfile persists a new driver profile row.
func (r *Repository) CreateProfile(ctx context.Context, profile *models.DriverProfile) error {
	if profile == nil {
		return fmt.Errorf("driver profile is required")
	}
	return r.db.WithContext(ctx).Create(profile).Error
}

// UpdateProfile saves the provided profile.
func (r *Repository) UpdateProfile(ctx context.Context, profile *models.DriverProfile) error {
	if profile == nil {
		return fmt.Errorf("driver profile is required")
	}
	return r.db.WithContext(ctx).Save(profile).Error
}

// UpdatePresence flips the online flag and stamps the activity heartbeat.
func (r *Repository) UpdatePresence(ctx context.Context, userID uuid.UUID, online bool, location *types.GeographyPoint, now time.Time) error {
	updates := map[string]any{
		"online":         online,
		"last_active_at": now,
	}
	if location != nil {
		updates["location"] = location
	}
	result := r.db.WithContext(ctx).
		Model(&models.DriverProfile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePushToken stores the device token used for dispatch notifications.
func (r *Repository) UpdatePushToken(ctx context.Context, userID uuid.UUID, token *string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("push_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindAvailable returns drivers who can be offered a delivery for the shop:
// online, recently active, invited by the shop, riding an allowed vehicle,
// and reachable by push. The cutoff comparison is inclusive.
func (r *Repository) FindAvailable(ctx context.Context, query AvailabilityQuery) ([]CandidateDriver, error) {
	if query.ShopID == uuid.Nil {
		return nil, fmt.Errorf("shop id is required")
	}
	if len(query.VehicleKeys) == 0 {
		return []CandidateDriver{}, nil
	}

	now := query.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	cutoff := now.Add(-query.ActivityWindow)

	var candidates []CandidateDriver
	err := r.db.WithContext(ctx).
		Table("driver_profiles dp").
		Select("u.id AS user_id, dp.id AS profile_id, u.first_name, u.last_name, u.push_token, dp.vehicle_type_key, dp.last_active_at").
		Joins("JOIN users u ON u.id = dp.user_id").
		Where("dp.deleted_at IS NULL").
		Where("dp.online = ?", true).
		Where("dp.vehicle_type_key IN ?", query.VehicleKeys).
		Where("dp.last_active_at IS NOT NULL AND dp.last_active_at >= ?", cutoff).
		Where("u.is_active = ?", true).
		Where("u.push_token IS NOT NULL AND u.push_token <> ''").
		Where("EXISTS (SELECT 1 FROM shop_invitations si WHERE si.shop_id = ? AND si.driver_user_id = u.id)", query.ShopID).
		Order("dp.last_active_at DESC").
		Order("u.id ASC").
		Scan(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}
