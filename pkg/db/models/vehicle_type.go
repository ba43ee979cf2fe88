package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleType is a catalog row describing one kind of delivery vehicle.
// MaxWeightKG is nil for vehicles with no practical payload ceiling.
type VehicleType struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key         string          `gorm:"column:key;type:text;not null;uniqueIndex"`
	DisplayName string          `gorm:"column:display_name;not null"`
	Active      bool            `gorm:"column:active;not null;default:true"`
	SortOrder   int             `gorm:"column:sort_order;not null;default:0"`
	MaxWeightKG *int            `gorm:"column:max_weight_kg"`
	BaseRate    decimal.Decimal `gorm:"column:base_rate;type:numeric(10,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
