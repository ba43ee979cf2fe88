package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
)

// Repository handles order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to order operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new order row.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID loads an order by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber loads an order by its public number.
func (r *Repository) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Claim assigns the driver if and only if no driver holds the order yet.
// The conditional update is what makes acceptance first-wins under
// concurrency. Returns false when another driver already claimed it.
func (r *Repository) Claim(ctx context.Context, orderID, driverUserID uuid.UUID, now time.Time) (bool, error) {
	if orderID == uuid.Nil || driverUserID == uuid.Nil {
		return false, fmt.Errorf("order id and driver user id are required")
	}

	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND assigned_driver_id IS NULL", orderID).
		Updates(map[string]any{
			"assigned_driver_id": driverUserID,
			"assigned_at":        now,
			"status":             enums.OrderStatusAssigned,
			"updated_at":         now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
