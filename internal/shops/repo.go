package shops

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/pagination"
)

// Repository handles shop and invitation persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to shop operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new shop row.
func (r *Repository) Create(ctx context.Context, shop *models.Shop) error {
	if shop == nil {
		return fmt.Errorf("shop is required")
	}
	return r.db.WithContext(ctx).Create(shop).Error
}

// FindByID loads a shop by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// Update saves the provided shop.
func (r *Repository) Update(ctx context.Context, shop *models.Shop) error {
	if shop == nil {
		return fmt.Errorf("shop is required")
	}
	return r.db.WithContext(ctx).Save(shop).Error
}

// InviteDriver inserts an invitation and ignores duplicates.
func (r *Repository) InviteDriver(ctx context.Context, shopID, driverUserID uuid.UUID) error {
	if shopID == uuid.Nil || driverUserID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO shop_invitations (id, shop_id, driver_user_id) VALUES (?, ?, ?) ON CONFLICT (shop_id, driver_user_id) DO NOTHING`,
			uuid.New(), shopID, driverUserID).
		Error
}

// RevokeInvitation deletes the shop-driver link if it exists.
func (r *Repository) RevokeInvitation(ctx context.Context, shopID, driverUserID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("shop_id = ? AND driver_user_id = ?", shopID, driverUserID).
		Delete(&models.ShopInvitation{}).
		Error
}

// HasInvitation reports whether the driver is invited to the shop.
func (r *Repository) HasInvitation(ctx context.Context, shopID, driverUserID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShopInvitation{}).
		Where("shop_id = ? AND driver_user_id = ?", shopID, driverUserID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListInvitations returns a cursor-paginated invitation list for a shop.
func (r *Repository) ListInvitations(ctx context.Context, shopID uuid.UUID, params pagination.Params) ([]models.ShopInvitation, string, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(params.Cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.ShopInvitation{}).
		Where("shop_id = ?", shopID)
	if decodedCursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var records []models.ShopInvitation
	if err := query.
		Order("created_at DESC").Order("id DESC").
		Limit(limitWithBuffer).
		Find(&records).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return records, nextCursor, nil
}
