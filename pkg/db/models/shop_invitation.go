package models

import (
	"time"

	"github.com/google/uuid"
)

// ShopInvitation links a driver to a shop whose deliveries they may take.
// A driver with no invitation for a shop is never considered for its orders.
type ShopInvitation struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID       uuid.UUID `gorm:"column:shop_id;type:uuid;not null;uniqueIndex:idx_shop_invitations_shop_driver"`
	DriverUserID uuid.UUID `gorm:"column:driver_user_id;type:uuid;not null;uniqueIndex:idx_shop_invitations_shop_driver"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
