package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juvoapp/juvo-backend/pkg/enums"
)

// Order is the dispatch view of a customer order. AssignedDriverID is the
// claim slot: a conditional update on its NULL state is what makes driver
// acceptance first-wins.
type Order struct {
	ID               uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber      string             `gorm:"column:order_number;type:text;not null;uniqueIndex"`
	ShopID           uuid.UUID          `gorm:"column:shop_id;type:uuid;not null;index"`
	CustomerUserID   uuid.UUID          `gorm:"column:customer_user_id;type:uuid;not null"`
	DeliveryType     enums.DeliveryType `gorm:"column:delivery_type;type:delivery_type;not null"`
	Status           enums.OrderStatus  `gorm:"column:status;type:order_status;not null;default:'pending'"`
	Total            decimal.Decimal    `gorm:"column:total;type:numeric(10,2);not null;default:0"`
	AssignedDriverID *uuid.UUID         `gorm:"column:assigned_driver_id;type:uuid;index"`
	AssignedAt       *time.Time         `gorm:"column:assigned_at"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// IsAssigned reports whether a driver already claimed the order.
func (o Order) IsAssigned() bool {
	return o.AssignedDriverID != nil
}
