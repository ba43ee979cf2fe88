package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/juvoapp/juvo-backend/pkg/enums"
	"github.com/juvoapp/juvo-backend/pkg/types"
)

// Shop represents a merchant storefront. Type is nullable; legacy rows
// predate the classification column and are treated as retail.
type Shop struct {
	ID          uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerUserID uuid.UUID             `gorm:"column:owner_user_id;type:uuid;not null"`
	DisplayName string                `gorm:"column:display_name;not null"`
	Type        *enums.ShopType       `gorm:"column:type;type:shop_type"`
	Phone       *string               `gorm:"column:phone"`
	Active      bool                  `gorm:"column:active;not null;default:true"`
	Location    *types.GeographyPoint `gorm:"column:location;type:geography(Point,4326)"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectiveType resolves the nullable classification to the value the
// eligibility rules use.
func (s Shop) EffectiveType() enums.ShopType {
	if s.Type == nil {
		return enums.ShopTypeRetail
	}
	return *s.Type
}
