package drivers

import (
	"time"

	"github.com/google/uuid"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/types"
)

// CandidateDriver is one row of the availability query: a driver who can be
// offered a delivery right now.
type CandidateDriver struct {
	UserID         uuid.UUID  `gorm:"column:user_id" json:"user_id"`
	ProfileID      uuid.UUID  `gorm:"column:profile_id" json:"profile_id"`
	FirstName      string     `gorm:"column:first_name" json:"first_name"`
	LastName       string     `gorm:"column:last_name" json:"last_name"`
	PushToken      string     `gorm:"column:push_token" json:"-"`
	VehicleTypeKey string     `gorm:"column:vehicle_type_key" json:"vehicle_type_key"`
	LastActiveAt   *time.Time `gorm:"column:last_active_at" json:"last_active_at"`
}

// AvailabilityQuery bundles the inputs for one candidate search.
type AvailabilityQuery struct {
	ShopID         uuid.UUID
	VehicleKeys    []string
	ActivityWindow time.Duration
	Now            time.Time
}

// DriverProfileDTO is the API projection of a driver profile.
type DriverProfileDTO struct {
	ID             uuid.UUID             `json:"id"`
	UserID         uuid.UUID             `json:"user_id"`
	VehicleTypeKey string                `json:"vehicle_type_key"`
	Online         bool                  `json:"online"`
	LastActiveAt   *time.Time            `json:"last_active_at"`
	Location       *types.GeographyPoint `json:"location,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// RegisterProfileInput captures the fields needed to enroll a driver.
type RegisterProfileInput struct {
	UserID         uuid.UUID
	VehicleTypeKey string
}

// PresenceInput carries a driver's self-reported availability update.
type PresenceInput struct {
	Online   bool
	Location *types.GeographyPoint
}

func profileToDTO(m models.DriverProfile) DriverProfileDTO {
	return DriverProfileDTO{
		ID:             m.ID,
		UserID:         m.UserID,
		VehicleTypeKey: m.VehicleTypeKey,
		Online:         m.Online,
		LastActiveAt:   m.LastActiveAt,
		Location:       m.Location,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
