package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/types"
)

// DriverProfile carries the dispatch-relevant state for a driver user.
// Online is a self-reported flag; LastActiveAt is the heartbeat that
// decides whether the flag is still trusted.
type DriverProfile struct {
	ID             uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID             `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	VehicleTypeKey string                `gorm:"column:vehicle_type_key;type:text;not null"`
	Online         bool                  `gorm:"column:online;not null;default:false"`
	LastActiveAt   *time.Time            `gorm:"column:last_active_at"`
	Location       *types.GeographyPoint `gorm:"column:location;type:geography(Point,4326)"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time             `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt        `gorm:"column:deleted_at;index"`
}
