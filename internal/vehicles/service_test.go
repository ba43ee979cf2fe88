package vehicles

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
	"github.com/juvoapp/juvo-backend/pkg/pagination"
)

type stubVehicleRepo struct {
	created   *models.VehicleType
	updated   *models.VehicleType
	found     *models.VehicleType
	active    []models.VehicleType
	createErr error
	findErr   error
	listErr   error
}

func (s *stubVehicleRepo) Create(ctx context.Context, vt *models.VehicleType) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = vt
	return nil
}

func (s *stubVehicleRepo) Update(ctx context.Context, vt *models.VehicleType) error {
	s.updated = vt
	return nil
}

func (s *stubVehicleRepo) FindByKey(ctx context.Context, key string) (*models.VehicleType, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *stubVehicleRepo) ListActive(ctx context.Context) ([]models.VehicleType, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.active, nil
}

func (s *stubVehicleRepo) List(ctx context.Context, params pagination.Params) ([]models.VehicleType, string, error) {
	if s.listErr != nil {
		return nil, "", s.listErr
	}
	return s.active, "", nil
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc, err := NewService(&stubVehicleRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cases := []struct {
		name  string
		input CreateVehicleTypeInput
	}{
		{"bad key", CreateVehicleTypeInput{Key: "Not A Slug", DisplayName: "X"}},
		{"empty display name", CreateVehicleTypeInput{Key: "cargo-bike", DisplayName: "  "}},
		{"zero max weight", CreateVehicleTypeInput{Key: "cargo-bike", DisplayName: "Cargo Bike", MaxWeightKG: intPtr(0)}},
		{"negative rate", CreateVehicleTypeInput{Key: "cargo-bike", DisplayName: "Cargo Bike", BaseRate: decimal.NewFromInt(-1)}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, gotErr := svc.Create(context.Background(), c.input)
			if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", gotErr)
			}
		})
	}
}

func TestCreateNormalizesKey(t *testing.T) {
	repo := &stubVehicleRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateVehicleTypeInput{
		Key:         "  Cargo-Bike ",
		DisplayName: "Cargo Bike",
		Active:      true,
		MaxWeightKG: intPtr(60),
		BaseRate:    decimal.NewFromFloat(2.5),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Key != "cargo-bike" {
		t.Fatalf("expected normalized key, got %q", dto.Key)
	}
	if repo.created == nil || repo.created.Key != "cargo-bike" {
		t.Fatalf("repo did not receive normalized model")
	}
}

func TestCreateDuplicateKeyConflict(t *testing.T) {
	repo := &stubVehicleRepo{createErr: errors.New(`duplicate key value violates unique constraint "vehicle_types_key_key"`)}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateVehicleTypeInput{
		Key:         "bike",
		DisplayName: "Bicycle",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", gotErr)
	}
}

func TestGetByKeyNotFound(t *testing.T) {
	repo := &stubVehicleRepo{findErr: gorm.ErrRecordNotFound}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByKey(context.Background(), "ghost")
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", gotErr)
	}
}

func TestUpdateClearsMaxWeight(t *testing.T) {
	repo := &stubVehicleRepo{
		found: &models.VehicleType{Key: "truck", DisplayName: "Truck", Active: true, MaxWeightKG: intPtr(900)},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Update(context.Background(), "truck", UpdateVehicleTypeInput{ClearMaxWeight: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.MaxWeightKG != nil {
		t.Fatalf("expected cleared max weight, got %v", *dto.MaxWeightKG)
	}
	if repo.updated == nil || repo.updated.MaxWeightKG != nil {
		t.Fatalf("repo did not receive cleared model")
	}
}

func TestEligibleForShopTypePropagatesError(t *testing.T) {
	repo := &stubVehicleRepo{listErr: errors.New("db down")}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.EligibleForShopType(context.Background(), enums.ShopTypeRetail)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
}

func TestEligibleForShopTypeFiltersCatalog(t *testing.T) {
	repo := &stubVehicleRepo{
		active: []models.VehicleType{
			{Key: "bike", Active: true, MaxWeightKG: intPtr(30)},
			{Key: "truck", Active: true},
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	eligible, err := svc.EligibleForShopType(context.Background(), enums.ShopTypeAgricultural)
	if err != nil {
		t.Fatalf("eligible: %v", err)
	}
	if len(eligible) != 1 || eligible[0].Key != "truck" {
		t.Fatalf("expected [truck], got %v", Keys(eligible))
	}
}
