package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
)

// Repository persists the audit trail of dispatch push attempts.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to dispatch persistence.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RecordNotification stores one push attempt.
func (r *Repository) RecordNotification(ctx context.Context, record *models.DispatchNotification) error {
	if record == nil {
		return fmt.Errorf("notification record is required")
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByOrder returns the push attempts made for an order, oldest first.
func (r *Repository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DispatchNotification, error) {
	var records []models.DispatchNotification
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("sent_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
