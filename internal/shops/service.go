package shops

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
	"github.com/juvoapp/juvo-backend/pkg/pagination"
)

type shopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	InviteDriver(ctx context.Context, shopID, driverUserID uuid.UUID) error
	RevokeInvitation(ctx context.Context, shopID, driverUserID uuid.UUID) error
	HasInvitation(ctx context.Context, shopID, driverUserID uuid.UUID) (bool, error)
	ListInvitations(ctx context.Context, shopID uuid.UUID, params pagination.Params) ([]models.ShopInvitation, string, error)
}

type userDirectory interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service exposes shop management and driver invitation operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ShopDTO, error)
	Create(ctx context.Context, input CreateShopInput) (*ShopDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateShopInput) (*ShopDTO, error)
	ClassifyForDispatch(ctx context.Context, shopID uuid.UUID) (enums.ShopType, error)
	InviteDriver(ctx context.Context, shopID, driverUserID uuid.UUID) error
	RevokeDriver(ctx context.Context, shopID, driverUserID uuid.UUID) error
	ListInvitations(ctx context.Context, shopID uuid.UUID, params pagination.Params) (InvitationsPageDTO, error)
}

type service struct {
	repo  shopRepository
	users userDirectory
}

// NewService builds a shop service with the provided repositories.
func NewService(repo shopRepository, users userDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user directory required")
	}
	return &service{repo: repo, users: users}, nil
}

// GetByID loads a shop.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ShopDTO, error) {
	shop, err := s.loadShop(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*shop)
	return &dto, nil
}

// Create validates and persists a new shop.
func (s *service) Create(ctx context.Context, input CreateShopInput) (*ShopDTO, error) {
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.OwnerUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner user id is required")
	}
	if input.DisplayName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name is required")
	}
	if input.Type != nil && !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shop type")
	}

	shop := &models.Shop{
		OwnerUserID: input.OwnerUserID,
		DisplayName: input.DisplayName,
		Type:        input.Type,
		Phone:       input.Phone,
		Active:      true,
		Location:    input.Location,
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}

	dto := toDTO(*shop)
	return &dto, nil
}

// Update applies partial mutations to a shop.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateShopInput) (*ShopDTO, error) {
	shop, err := s.loadShop(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name cannot be empty")
		}
		shop.DisplayName = name
	}
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shop type")
		}
		shop.Type = input.Type
	}
	if input.Phone != nil {
		shop.Phone = input.Phone
	}
	if input.Active != nil {
		shop.Active = *input.Active
	}
	if input.Location != nil {
		shop.Location = input.Location
	}

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}

	dto := toDTO(*shop)
	return &dto, nil
}

// ClassifyForDispatch resolves the shop classification used by the vehicle
// eligibility rules. Unclassified shops count as retail.
func (s *service) ClassifyForDispatch(ctx context.Context, shopID uuid.UUID) (enums.ShopType, error) {
	shop, err := s.loadShop(ctx, shopID)
	if err != nil {
		return "", err
	}
	return shop.EffectiveType(), nil
}

// InviteDriver links a driver user to the shop. Repeat invitations are a no-op.
func (s *service) InviteDriver(ctx context.Context, shopID, driverUserID uuid.UUID) error {
	if _, err := s.loadShop(ctx, shopID); err != nil {
		return err
	}

	user, err := s.users.FindUserByID(ctx, driverUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "driver not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load driver")
	}
	if user.Role != enums.UserRoleDriver {
		return pkgerrors.New(pkgerrors.CodeValidation, "invitations can only target driver accounts")
	}

	if err := s.repo.InviteDriver(ctx, shopID, driverUserID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invite driver")
	}
	return nil
}

// RevokeDriver removes the shop-driver link regardless of prior state.
func (s *service) RevokeDriver(ctx context.Context, shopID, driverUserID uuid.UUID) error {
	if driverUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "driver user id is required")
	}
	if err := s.repo.RevokeInvitation(ctx, shopID, driverUserID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke invitation")
	}
	return nil
}

// ListInvitations returns the paginated driver roster for a shop.
func (s *service) ListInvitations(ctx context.Context, shopID uuid.UUID, params pagination.Params) (InvitationsPageDTO, error) {
	if shopID == uuid.Nil {
		return InvitationsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	records, nextCursor, err := s.repo.ListInvitations(ctx, shopID, params)
	if err != nil {
		return InvitationsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invitations")
	}
	items := make([]InvitationDTO, 0, len(records))
	for _, record := range records {
		items = append(items, invitationToDTO(record))
	}
	return InvitationsPageDTO{Items: items, NextCursor: nextCursor}, nil
}

func (s *service) loadShop(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	return shop, nil
}
