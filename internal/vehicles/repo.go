package vehicles

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/pagination"
)

// Repository handles vehicle catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to vehicle type operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new vehicle type row.
func (r *Repository) Create(ctx context.Context, vt *models.VehicleType) error {
	if vt == nil {
		return fmt.Errorf("vehicle type is required")
	}
	return r.db.WithContext(ctx).Create(vt).Error
}

// Update saves the provided vehicle type.
func (r *Repository) Update(ctx context.Context, vt *models.VehicleType) error {
	if vt == nil {
		return fmt.Errorf("vehicle type is required")
	}
	return r.db.WithContext(ctx).Save(vt).Error
}

// FindByID loads a vehicle type by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.VehicleType, error) {
	var vt models.VehicleType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vt).Error; err != nil {
		return nil, err
	}
	return &vt, nil
}

// FindByKey loads a vehicle type by its catalog key.
func (r *Repository) FindByKey(ctx context.Context, key string) (*models.VehicleType, error) {
	var vt models.VehicleType
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&vt).Error; err != nil {
		return nil, err
	}
	return &vt, nil
}

// ListActive returns every active vehicle type ordered for display.
func (r *Repository) ListActive(ctx context.Context) ([]models.VehicleType, error) {
	var out []models.VehicleType
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").Order("key ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// List returns a cursor-paginated slice of the full catalog, newest first.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.VehicleType, string, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(params.Cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).Model(&models.VehicleType{})
	if decodedCursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var records []models.VehicleType
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
