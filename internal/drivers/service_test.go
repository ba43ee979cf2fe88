package drivers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/internal/vehicles"
	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
	"github.com/juvoapp/juvo-backend/pkg/types"
)

type stubDriverRepo struct {
	user          *models.User
	userErr       error
	profile       *models.DriverProfile
	profileErr    error
	created       *models.DriverProfile
	createErr     error
	presenceCalls []presenceCall
	presenceErr   error
	tokenValue    *string
	tokenSet      bool
	available     []CandidateDriver
	availableErr  error
	lastQuery     AvailabilityQuery
}

type presenceCall struct {
	userID uuid.UUID
	online bool
	at     time.Time
}

func (s *stubDriverRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func (s *stubDriverRepo) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.DriverProfile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profile, nil
}

func (s *stubDriverRepo) CreateProfile(ctx context.Context, profile *models.DriverProfile) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = profile
	return nil
}

func (s *stubDriverRepo) UpdateProfile(ctx context.Context, profile *models.DriverProfile) error {
	return nil
}

func (s *stubDriverRepo) UpdatePresence(ctx context.Context, userID uuid.UUID, online bool, location *types.GeographyPoint, now time.Time) error {
	if s.presenceErr != nil {
		return s.presenceErr
	}
	s.presenceCalls = append(s.presenceCalls, presenceCall{userID: userID, online: online, at: now})
	return nil
}

func (s *stubDriverRepo) UpdatePushToken(ctx context.Context, userID uuid.UUID, token *string) error {
	s.tokenValue = token
	s.tokenSet = true
	return nil
}

func (s *stubDriverRepo) FindAvailable(ctx context.Context, query AvailabilityQuery) ([]CandidateDriver, error) {
	s.lastQuery = query
	if s.availableErr != nil {
		return nil, s.availableErr
	}
	return s.available, nil
}

type stubCatalog struct {
	vt  *vehicles.VehicleTypeDTO
	err error
}

func (s stubCatalog) GetByKey(ctx context.Context, key string) (*vehicles.VehicleTypeDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vt, nil
}

func newTestService(t *testing.T, repo *stubDriverRepo, catalog stubCatalog) *service {
	t.Helper()
	svc, err := NewService(repo, catalog)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc.(*service)
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, stubCatalog{}); err == nil {
		t.Fatal("expected error creating service without repo")
	}
	if _, err := NewService(&stubDriverRepo{}, nil); err == nil {
		t.Fatal("expected error creating service without catalog")
	}
}

func TestRegisterProfileValidatesRole(t *testing.T) {
	repo := &stubDriverRepo{user: &models.User{ID: uuid.New(), Role: enums.UserRoleShop}}
	svc := newTestService(t, repo, stubCatalog{})

	_, gotErr := svc.RegisterProfile(context.Background(), RegisterProfileInput{
		UserID:         repo.user.ID,
		VehicleTypeKey: "bike",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestRegisterProfileRejectsInactiveVehicle(t *testing.T) {
	repo := &stubDriverRepo{user: &models.User{ID: uuid.New(), Role: enums.UserRoleDriver}}
	catalog := stubCatalog{vt: &vehicles.VehicleTypeDTO{Key: "bike", Active: false}}
	svc := newTestService(t, repo, catalog)

	_, gotErr := svc.RegisterProfile(context.Background(), RegisterProfileInput{
		UserID:         repo.user.ID,
		VehicleTypeKey: "bike",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestRegisterProfileSuccess(t *testing.T) {
	repo := &stubDriverRepo{user: &models.User{ID: uuid.New(), Role: enums.UserRoleDriver}}
	catalog := stubCatalog{vt: &vehicles.VehicleTypeDTO{Key: "bike", Active: true}}
	svc := newTestService(t, repo, catalog)

	dto, err := svc.RegisterProfile(context.Background(), RegisterProfileInput{
		UserID:         repo.user.ID,
		VehicleTypeKey: " bike ",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.VehicleTypeKey != "bike" {
		t.Fatalf("expected trimmed vehicle key, got %q", dto.VehicleTypeKey)
	}
	if repo.created == nil || repo.created.UserID != repo.user.ID {
		t.Fatal("profile was not persisted")
	}
}

func TestRegisterProfileDuplicateConflict(t *testing.T) {
	repo := &stubDriverRepo{
		user:      &models.User{ID: uuid.New(), Role: enums.UserRoleDriver},
		createErr: errors.New("UNIQUE constraint failed: driver_profiles.user_id"),
	}
	catalog := stubCatalog{vt: &vehicles.VehicleTypeDTO{Key: "bike", Active: true}}
	svc := newTestService(t, repo, catalog)

	_, gotErr := svc.RegisterProfile(context.Background(), RegisterProfileInput{
		UserID:         repo.user.ID,
		VehicleTypeKey: "bike",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", gotErr)
	}
}

func TestUpdatePresenceUsesClock(t *testing.T) {
	repo := &stubDriverRepo{}
	svc := newTestService(t, repo, stubCatalog{})
	fixed := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	userID := uuid.New()
	if err := svc.UpdatePresence(context.Background(), userID, PresenceInput{Online: true}); err != nil {
		t.Fatalf("update presence: %v", err)
	}
	if len(repo.presenceCalls) != 1 {
		t.Fatalf("expected one presence call, got %d", len(repo.presenceCalls))
	}
	call := repo.presenceCalls[0]
	if call.userID != userID || !call.online || !call.at.Equal(fixed) {
		t.Fatalf("unexpected presence call %+v", call)
	}
}

func TestHeartbeatPreservesOnlineFlag(t *testing.T) {
	repo := &stubDriverRepo{
		profile: &models.DriverProfile{UserID: uuid.New(), Online: true},
	}
	svc := newTestService(t, repo, stubCatalog{})

	if err := svc.Heartbeat(context.Background(), repo.profile.UserID); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	if len(repo.presenceCalls) != 1 || !repo.presenceCalls[0].online {
		t.Fatalf("heartbeat should keep online flag, calls=%+v", repo.presenceCalls)
	}
}

func TestSetPushTokenClearsOnEmpty(t *testing.T) {
	repo := &stubDriverRepo{}
	svc := newTestService(t, repo, stubCatalog{})

	if err := svc.SetPushToken(context.Background(), uuid.New(), "   "); err != nil {
		t.Fatalf("set push token: %v", err)
	}
	if !repo.tokenSet || repo.tokenValue != nil {
		t.Fatalf("expected cleared token, got %v", repo.tokenValue)
	}
}

func TestFindAvailableForShopEmptyVehicleSet(t *testing.T) {
	repo := &stubDriverRepo{}
	svc := newTestService(t, repo, stubCatalog{})

	candidates, err := svc.FindAvailableForShop(context.Background(), uuid.New(), nil, 10*time.Minute)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
	if repo.lastQuery.ShopID != uuid.Nil {
		t.Fatal("repository should not be queried for an empty vehicle set")
	}
}

func TestFindAvailableForShopValidatesWindow(t *testing.T) {
	svc := newTestService(t, &stubDriverRepo{}, stubCatalog{})

	_, gotErr := svc.FindAvailableForShop(context.Background(), uuid.New(), []string{"bike"}, 0)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestFindAvailableForShopPassesQuery(t *testing.T) {
	repo := &stubDriverRepo{
		available: []CandidateDriver{{UserID: uuid.New(), PushToken: "tok"}},
	}
	svc := newTestService(t, repo, stubCatalog{})
	fixed := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	shopID := uuid.New()
	candidates, err := svc.FindAvailableForShop(context.Background(), shopID, []string{"bike", "foot"}, 10*time.Minute)
	if err != nil {
		t.Fatalf("find available: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected one candidate, got %d", len(candidates))
	}
	if repo.lastQuery.ShopID != shopID || len(repo.lastQuery.VehicleKeys) != 2 || !repo.lastQuery.Now.Equal(fixed) {
		t.Fatalf("unexpected query %+v", repo.lastQuery)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	repo := &stubDriverRepo{profileErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo, stubCatalog{})

	_, gotErr := svc.GetProfile(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", gotErr)
	}
}
