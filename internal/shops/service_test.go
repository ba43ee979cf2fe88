package shops

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
	"github.com/juvoapp/juvo-backend/pkg/pagination"
)

type stubShopRepo struct {
	shop       *models.Shop
	findErr    error
	invited    []uuid.UUID
	revoked    []uuid.UUID
	inviteErr  error
	updateErr  error
	lastUpdate *models.Shop
}

func (s *stubShopRepo) Create(ctx context.Context, shop *models.Shop) error {
	s.shop = shop
	return nil
}

func (s *stubShopRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.shop, nil
}

func (s *stubShopRepo) Update(ctx context.Context, shop *models.Shop) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.lastUpdate = shop
	return nil
}

func (s *stubShopRepo) InviteDriver(ctx context.Context, shopID, driverUserID uuid.UUID) error {
	if s.inviteErr != nil {
		return s.inviteErr
	}
	s.invited = append(s.invited, driverUserID)
	return nil
}

func (s *stubShopRepo) RevokeInvitation(ctx context.Context, shopID, driverUserID uuid.UUID) error {
	s.revoked = append(s.revoked, driverUserID)
	return nil
}

func (s *stubShopRepo) HasInvitation(ctx context.Context, shopID, driverUserID uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubShopRepo) ListInvitations(ctx context.Context, shopID uuid.UUID, params pagination.Params) ([]models.ShopInvitation, string, error) {
	return nil, "", nil
}

type stubUserDirectory struct {
	user *models.User
	err  error
}

func (s stubUserDirectory) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func baseShop(shopType *enums.ShopType) *models.Shop {
	return &models.Shop{
		ID:          uuid.New(),
		OwnerUserID: uuid.New(),
		DisplayName: "Pratunam Fresh Market",
		Type:        shopType,
		Active:      true,
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, stubUserDirectory{}); err == nil {
		t.Fatal("expected error creating service without repo")
	}
	if _, err := NewService(&stubShopRepo{}, nil); err == nil {
		t.Fatal("expected error creating service without user directory")
	}
}

func TestClassifyForDispatchDefaultsToRetail(t *testing.T) {
	repo := &stubShopRepo{shop: baseShop(nil)}
	svc, err := NewService(repo, stubUserDirectory{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.ClassifyForDispatch(context.Background(), repo.shop.ID)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got != enums.ShopTypeRetail {
		t.Fatalf("expected retail for unclassified shop, got %s", got)
	}
}

func TestClassifyForDispatchUsesStoredType(t *testing.T) {
	agri := enums.ShopTypeAgricultural
	repo := &stubShopRepo{shop: baseShop(&agri)}
	svc, err := NewService(repo, stubUserDirectory{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.ClassifyForDispatch(context.Background(), repo.shop.ID)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got != enums.ShopTypeAgricultural {
		t.Fatalf("expected agricultural, got %s", got)
	}
}

func TestClassifyForDispatchNotFound(t *testing.T) {
	repo := &stubShopRepo{findErr: gorm.ErrRecordNotFound}
	svc, err := NewService(repo, stubUserDirectory{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.ClassifyForDispatch(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", gotErr)
	}
}

func TestInviteDriverValidatesRole(t *testing.T) {
	repo := &stubShopRepo{shop: baseShop(nil)}
	users := stubUserDirectory{user: &models.User{ID: uuid.New(), Role: enums.UserRoleShop}}
	svc, err := NewService(repo, users)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.InviteDriver(context.Background(), repo.shop.ID, users.user.ID)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for non-driver, got %v", gotErr)
	}
	if len(repo.invited) != 0 {
		t.Fatal("non-driver should not be invited")
	}
}

func TestInviteDriverSuccess(t *testing.T) {
	repo := &stubShopRepo{shop: baseShop(nil)}
	driver := &models.User{ID: uuid.New(), Role: enums.UserRoleDriver}
	svc, err := NewService(repo, stubUserDirectory{user: driver})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.InviteDriver(context.Background(), repo.shop.ID, driver.ID); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if len(repo.invited) != 1 || repo.invited[0] != driver.ID {
		t.Fatalf("expected driver to be invited, got %v", repo.invited)
	}
}

func TestInviteDriverUserNotFound(t *testing.T) {
	repo := &stubShopRepo{shop: baseShop(nil)}
	svc, err := NewService(repo, stubUserDirectory{err: gorm.ErrRecordNotFound})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.InviteDriver(context.Background(), repo.shop.ID, uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", gotErr)
	}
}

func TestUpdateShopType(t *testing.T) {
	repo := &stubShopRepo{shop: baseShop(nil)}
	svc, err := NewService(repo, stubUserDirectory{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	agri := enums.ShopTypeAgricultural
	dto, err := svc.Update(context.Background(), repo.shop.ID, UpdateShopInput{Type: &agri})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.EffectiveType != enums.ShopTypeAgricultural {
		t.Fatalf("expected effective type agricultural, got %s", dto.EffectiveType)
	}

	bad := enums.ShopType("warehouse")
	_, gotErr := svc.Update(context.Background(), repo.shop.ID, UpdateShopInput{Type: &bad})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad type, got %v", gotErr)
	}
}

func TestInviteDriverDependencyError(t *testing.T) {
	repo := &stubShopRepo{shop: baseShop(nil), inviteErr: errors.New("db down")}
	driver := &models.User{ID: uuid.New(), Role: enums.UserRoleDriver}
	svc, err := NewService(repo, stubUserDirectory{user: driver})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.InviteDriver(context.Background(), repo.shop.ID, driver.ID)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
}
