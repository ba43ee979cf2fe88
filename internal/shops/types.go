package shops

import (
	"time"

	"github.com/google/uuid"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	"github.com/juvoapp/juvo-backend/pkg/types"
)

// ShopDTO is the API projection of a shop.
type ShopDTO struct {
	ID            uuid.UUID             `json:"id"`
	OwnerUserID   uuid.UUID             `json:"owner_user_id"`
	DisplayName   string                `json:"display_name"`
	Type          *enums.ShopType       `json:"type"`
	EffectiveType enums.ShopType        `json:"effective_type"`
	Phone         *string               `json:"phone,omitempty"`
	Active        bool                  `json:"active"`
	Location      *types.GeographyPoint `json:"location,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// CreateShopInput captures the fields accepted when registering a shop.
type CreateShopInput struct {
	OwnerUserID uuid.UUID
	DisplayName string
	Type        *enums.ShopType
	Phone       *string
	Location    *types.GeographyPoint
}

// UpdateShopInput holds optional mutations; nil fields are left untouched.
type UpdateShopInput struct {
	DisplayName *string
	Type        *enums.ShopType
	Phone       *string
	Active      *bool
	Location    *types.GeographyPoint
}

// InvitationDTO is the API projection of a shop-driver invitation.
type InvitationDTO struct {
	ID           uuid.UUID `json:"id"`
	ShopID       uuid.UUID `json:"shop_id"`
	DriverUserID uuid.UUID `json:"driver_user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// InvitationsPageDTO is a cursor-paginated invitation listing.
type InvitationsPageDTO struct {
	Items      []InvitationDTO `json:"items"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func toDTO(m models.Shop) ShopDTO {
	return ShopDTO{
		ID:            m.ID,
		OwnerUserID:   m.OwnerUserID,
		DisplayName:   m.DisplayName,
		Type:          m.Type,
		EffectiveType: m.EffectiveType(),
		Phone:         m.Phone,
		Active:        m.Active,
		Location:      m.Location,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func invitationToDTO(m models.ShopInvitation) InvitationDTO {
	return InvitationDTO{
		ID:           m.ID,
		ShopID:       m.ShopID,
		DriverUserID: m.DriverUserID,
		CreatedAt:    m.CreatedAt,
	}
}
