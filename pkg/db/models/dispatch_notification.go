package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/juvoapp/juvo-backend/pkg/enums"
)

// DispatchNotification is the audit record for one push attempt made while
// offering an order to a driver.
type DispatchNotification struct {
	ID           uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index"`
	DriverUserID uuid.UUID             `gorm:"column:driver_user_id;type:uuid;not null"`
	Token        string                `gorm:"column:token;type:text;not null"`
	Outcome      enums.DispatchOutcome `gorm:"column:outcome;type:dispatch_outcome;not null"`
	Error        *string               `gorm:"column:error"`
	SentAt       time.Time             `gorm:"column:sent_at;autoCreateTime"`
}
