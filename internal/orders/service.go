package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juvoapp/juvo-backend/pkg/db"
	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
)

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	Claim(ctx context.Context, orderID, driverUserID uuid.UUID, now time.Time) (bool, error)
}

type invitationChecker interface {
	HasInvitation(ctx context.Context, shopID, driverUserID uuid.UUID) (bool, error)
}

// Service exposes the order operations dispatch relies on.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	GetByNumber(ctx context.Context, orderNumber string) (*OrderDTO, error)
	Claim(ctx context.Context, orderID, driverUserID uuid.UUID) (*OrderDTO, error)
}

type service struct {
	repo        orderRepository
	invitations invitationChecker
	now         func() time.Time
}

// NewService builds an order service with the provided dependencies.
func NewService(repo orderRepository, invitations invitationChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if invitations == nil {
		return nil, fmt.Errorf("invitation checker required")
	}
	return &service{
		repo:        repo,
		invitations: invitations,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create validates and persists a new order.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	input.OrderNumber = strings.TrimSpace(input.OrderNumber)
	if input.OrderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	if input.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if input.CustomerUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer user id is required")
	}
	if !input.DeliveryType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery type")
	}
	if input.Total.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total cannot be negative")
	}

	order := &models.Order{
		OrderNumber:    input.OrderNumber,
		ShopID:         input.ShopID,
		CustomerUserID: input.CustomerUserID,
		DeliveryType:   input.DeliveryType,
		Status:         enums.OrderStatusPending,
		Total:          input.Total,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	dto := toDTO(*order)
	return &dto, nil
}

// GetByID loads an order.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*order)
	return &dto, nil
}

// GetByNumber loads an order by the public number printed on receipts.
func (s *service) GetByNumber(ctx context.Context, orderNumber string) (*OrderDTO, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	dto := toDTO(*order)
	return &dto, nil
}

// Claim lets a driver accept an order. The first accepted claim wins;
// later attempts get a state conflict.
func (s *service) Claim(ctx context.Context, orderID, driverUserID uuid.UUID) (*OrderDTO, error) {
	if driverUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "driver user id is required")
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DeliveryType != enums.DeliveryTypeDriverDispatch {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is not dispatched to independent drivers")
	}

	invited, err := s.invitations.HasInvitation(ctx, order.ShopID, driverUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check invitation")
	}
	if !invited {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "driver is not invited by this shop")
	}

	claimed, err := s.repo.Claim(ctx, orderID, driverUserID, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim order")
	}
	if !claimed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already assigned to a driver")
	}

	updated, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*updated)
	return &dto, nil
}

func (s *service) loadOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
