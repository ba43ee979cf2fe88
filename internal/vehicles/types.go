package vehicles

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
)

// VehicleTypeDTO is the API projection of a catalog row.
type VehicleTypeDTO struct {
	ID          uuid.UUID       `json:"id"`
	Key         string          `json:"key"`
	DisplayName string          `json:"display_name"`
	Active      bool            `json:"active"`
	SortOrder   int             `json:"sort_order"`
	MaxWeightKG *int            `json:"max_weight_kg"`
	BaseRate    decimal.Decimal `json:"base_rate"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// VehicleTypesPageDTO is a cursor-paginated catalog listing.
type VehicleTypesPageDTO struct {
	Items      []VehicleTypeDTO `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// CreateVehicleTypeInput captures the fields accepted when adding a vehicle type.
type CreateVehicleTypeInput struct {
	Key         string
	DisplayName string
	Active      bool
	SortOrder   int
	MaxWeightKG *int
	BaseRate    decimal.Decimal
}

// UpdateVehicleTypeInput holds optional mutations; nil fields are left untouched.
// ClearMaxWeight removes the payload ceiling, making the vehicle unlimited.
type UpdateVehicleTypeInput struct {
	DisplayName    *string
	Active         *bool
	SortOrder      *int
	MaxWeightKG    *int
	ClearMaxWeight bool
	BaseRate       *decimal.Decimal
}

func toDTO(m models.VehicleType) VehicleTypeDTO {
	return VehicleTypeDTO{
		ID:          m.ID,
		Key:         m.Key,
		DisplayName: m.DisplayName,
		Active:      m.Active,
		SortOrder:   m.SortOrder,
		MaxWeightKG: m.MaxWeightKG,
		BaseRate:    m.BaseRate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
