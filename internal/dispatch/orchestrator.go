package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/juvoapp/juvo-backend/internal/drivers"
	"github.com/juvoapp/juvo-backend/internal/orders"
	"github.com/juvoapp/juvo-backend/internal/shops"
	"github.com/juvoapp/juvo-backend/internal/vehicles"
	"github.com/juvoapp/juvo-backend/pkg/db/models"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	"github.com/juvoapp/juvo-backend/pkg/logger"
	"github.com/juvoapp/juvo-backend/pkg/metrics"
)

type orderReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*orders.OrderDTO, error)
}

type shopDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*shops.ShopDTO, error)
}

type vehiclePolicy interface {
	EligibleForShopType(ctx context.Context, shopType enums.ShopType) ([]models.VehicleType, error)
}

type candidateFinder interface {
	FindAvailableForShop(ctx context.Context, shopID uuid.UUID, vehicleKeys []string, window time.Duration) ([]drivers.CandidateDriver, error)
}

type driverNotifier interface {
	DispatchSequentially(ctx context.Context, order orders.OrderDTO, title string, candidates []drivers.CandidateDriver, delay time.Duration) []NotificationResult
}

type runtimeSettings interface {
	DispatchEnabled(ctx context.Context) bool
	AcceptanceDelay(ctx context.Context) time.Duration
}

type notificationRecorder interface {
	RecordNotification(ctx context.Context, record *models.DispatchNotification) error
}

// Orchestrator runs the driver assignment workflow for one order at a time.
type Orchestrator struct {
	orders   orderReader
	shops    shopDirectory
	vehicles vehiclePolicy
	drivers  candidateFinder
	notifier driverNotifier
	settings runtimeSettings
	recorder notificationRecorder
	metrics  *metrics.DispatchMetrics
	logg     *logger.Logger
	window   time.Duration
	now      func() time.Time
}

// OrchestratorDeps bundles the collaborators Assign needs.
type OrchestratorDeps struct {
	Orders         orderReader
	Shops          shopDirectory
	Vehicles       vehiclePolicy
	Drivers        candidateFinder
	Notifier       driverNotifier
	Settings       runtimeSettings
	Recorder       notificationRecorder
	Metrics        *metrics.DispatchMetrics
	Logger         *logger.Logger
	ActivityWindow time.Duration
}

// NewOrchestrator validates and wires the assignment workflow.
func NewOrchestrator(deps OrchestratorDeps) (*Orchestrator, error) {
	switch {
	case deps.Orders == nil:
		return nil, fmt.Errorf("order reader required")
	case deps.Shops == nil:
		return nil, fmt.Errorf("shop directory required")
	case deps.Vehicles == nil:
		return nil, fmt.Errorf("vehicle policy required")
	case deps.Drivers == nil:
		return nil, fmt.Errorf("candidate finder required")
	case deps.Notifier == nil:
		return nil, fmt.Errorf("notifier required")
	case deps.Settings == nil:
		return nil, fmt.Errorf("settings required")
	case deps.Recorder == nil:
		return nil, fmt.Errorf("notification recorder required")
	case deps.Logger == nil:
		return nil, fmt.Errorf("logger required")
	}
	window := deps.ActivityWindow
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &Orchestrator{
		orders:   deps.Orders,
		shops:    deps.Shops,
		vehicles: deps.Vehicles,
		drivers:  deps.Drivers,
		notifier: deps.Notifier,
		settings: deps.Settings,
		recorder: deps.Recorder,
		metrics:  deps.Metrics,
		logg:     deps.Logger,
		window:   window,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Assign offers the order to eligible drivers. It is a best-effort side
// channel: failures are logged and counted but never surface to the
// triggering consumer.
func (o *Orchestrator) Assign(ctx context.Context, orderID uuid.UUID) {
	start := o.now()
	ctx = o.logg.WithOrderID(ctx, orderID.String())

	defer func() {
		if r := recover(); r != nil {
			o.logg.Error(ctx, "dispatch run panicked", fmt.Errorf("panic: %v", r))
			o.metrics.ObserveRun("panicked", o.now().Sub(start))
		}
	}()

	outcome := o.run(ctx, orderID)
	o.metrics.ObserveRun(outcome, o.now().Sub(start))
}

func (o *Orchestrator) run(ctx context.Context, orderID uuid.UUID) string {
	if !o.settings.DispatchEnabled(ctx) {
		o.logg.Debug(ctx, "dispatch disabled, skipping order")
		o.metrics.IncSkip("disabled")
		return "skipped"
	}

	order, err := o.orders.GetByID(ctx, orderID)
	if err != nil {
		o.logg.Error(ctx, "dispatch could not load order", err)
		o.metrics.IncSkip("order_load_failed")
		return "failed"
	}
	if order.DeliveryType != enums.DeliveryTypeDriverDispatch {
		o.logg.Debug(o.logg.WithField(ctx, "delivery_type", order.DeliveryType), "order does not use driver dispatch, skipping")
		o.metrics.IncSkip("delivery_type")
		return "skipped"
	}
	if order.AssignedDriverID != nil {
		o.logg.Debug(ctx, "order already has a driver, skipping")
		o.metrics.IncSkip("already_assigned")
		return "skipped"
	}

	shopType, title := o.resolveShop(ctx, order)
	keys := o.resolveVehicleKeys(ctx, shopType)

	candidates, err := o.drivers.FindAvailableForShop(ctx, order.ShopID, keys, o.window)
	if err != nil {
		o.logg.Error(ctx, "dispatch candidate query failed", err)
		return "failed"
	}
	o.metrics.ObserveCandidates(len(candidates))

	summary := o.logg.WithFields(ctx, map[string]any{
		"shop_type":       shopType,
		"vehicle_keys":    keys,
		"candidate_count": len(candidates),
	})
	if len(candidates) == 0 {
		o.logg.Info(summary, "no drivers available for order")
		o.metrics.IncSkip("no_candidates")
		return "empty"
	}

	delay := o.settings.AcceptanceDelay(ctx)
	results := o.notifier.DispatchSequentially(ctx, *order, title, candidates, delay)

	sent := 0
	for _, result := range results {
		if result.Outcome == enums.DispatchOutcomeSent {
			sent++
		}
		o.metrics.IncNotification(string(result.Outcome))
		o.record(ctx, order.ID, result)
	}

	o.logg.Info(o.logg.WithFields(summary, map[string]any{
		"notified": len(results),
		"sent":     sent,
		"failed":   len(results) - sent,
	}), "dispatch run completed")
	return "completed"
}

// resolveShop classifies the shop and builds the push title. A missing or
// unreadable shop degrades to retail rules and a generic title.
func (o *Orchestrator) resolveShop(ctx context.Context, order *orders.OrderDTO) (enums.ShopType, string) {
	shop, err := o.shops.GetByID(ctx, order.ShopID)
	if err != nil {
		o.logg.Warn(o.logg.WithShopID(ctx, order.ShopID.String()), "shop lookup failed, applying retail rules")
		return enums.ShopTypeRetail, fmt.Sprintf("New delivery %s", order.OrderNumber)
	}
	return shop.EffectiveType, fmt.Sprintf("%s: order %s", shop.DisplayName, order.OrderNumber)
}

// resolveVehicleKeys asks the catalog for eligible vehicles; a catalog
// failure falls back to the hardcoded light-vehicle set.
func (o *Orchestrator) resolveVehicleKeys(ctx context.Context, shopType enums.ShopType) []string {
	eligible, err := o.vehicles.EligibleForShopType(ctx, shopType)
	if err != nil {
		o.logg.Warn(ctx, "vehicle catalog unavailable, using fallback vehicle set")
		return vehicles.FallbackVehicleKeys
	}
	return vehicles.Keys(eligible)
}

func (o *Orchestrator) record(ctx context.Context, orderID uuid.UUID, result NotificationResult) {
	record := &models.DispatchNotification{
		OrderID:      orderID,
		DriverUserID: result.DriverUserID,
		Token:        result.Token,
		Outcome:      result.Outcome,
		SentAt:       result.SentAt,
	}
	if result.Err != nil {
		msg := result.Err.Error()
		record.Error = &msg
	}
	if err := o.recorder.RecordNotification(ctx, record); err != nil {
		o.logg.Error(ctx, "could not record dispatch notification", err)
	}
}
