package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
)

// OrderDTO is the API projection of an order as dispatch sees it.
type OrderDTO struct {
	ID               uuid.UUID          `json:"id"`
	OrderNumber      string             `json:"order_number"`
	ShopID           uuid.UUID          `json:"shop_id"`
	CustomerUserID   uuid.UUID          `json:"customer_user_id"`
	DeliveryType     enums.DeliveryType `json:"delivery_type"`
	Status           enums.OrderStatus  `json:"status"`
	Total            decimal.Decimal    `json:"total"`
	AssignedDriverID *uuid.UUID         `json:"assigned_driver_id"`
	AssignedAt       *time.Time         `json:"assigned_at"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// CreateOrderInput captures the fields accepted when registering an order.
type CreateOrderInput struct {
	OrderNumber    string
	ShopID         uuid.UUID
	CustomerUserID uuid.UUID
	DeliveryType   enums.DeliveryType
	Total          decimal.Decimal
}

func toDTO(m models.Order) OrderDTO {
	return OrderDTO{
		ID:               m.ID,
		OrderNumber:      m.OrderNumber,
		ShopID:           m.ShopID,
		CustomerUserID:   m.CustomerUserID,
		DeliveryType:     m.DeliveryType,
		Status:           m.Status,
		Total:            m.Total,
		AssignedDriverID: m.AssignedDriverID,
		AssignedAt:       m.AssignedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
