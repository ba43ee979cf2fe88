package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/juvoapp/juvo-backend/api/controllers"
	"github.com/juvoapp/juvo-backend/api/middleware"
	"github.com/juvoapp/juvo-backend/internal/drivers"
	"github.com/juvoapp/juvo-backend/internal/orders"
	"github.com/juvoapp/juvo-backend/internal/shops"
	"github.com/juvoapp/juvo-backend/internal/vehicles"
	"github.com/juvoapp/juvo-backend/pkg/config"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	"github.com/juvoapp/juvo-backend/pkg/logger"
	"github.com/juvoapp/juvo-backend/pkg/redis"
)

// Deps collects everything the HTTP surface needs.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DBPinger      controllers.Pinger
	RedisClient   *redis.Client
	VehiclesSvc   vehicles.Service
	DriversSvc    drivers.Service
	ShopsSvc      shops.Service
	OrdersSvc     orders.Service
	DispatchAudit controllers.DispatchAuditReader
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	// Claims hammer the same row under contention, keep a per-driver budget.
	claimLimiter := func(next http.Handler) http.Handler { return next }
	if deps.RedisClient != nil {
		claimPolicy := middleware.NewRateLimitPolicy("order_claim", time.Minute, 30)
		claimLimiter = middleware.RateLimit(claimPolicy, deps.RedisClient, logg)
	}

	var redisPinger controllers.Pinger
	if deps.RedisClient != nil {
		redisPinger = deps.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, redisPinger))
	})

	// Public catalog reads.
	r.Route("/api/v1/vehicle-types", func(r chi.Router) {
		r.Get("/", controllers.VehicleTypeList(deps.VehiclesSvc, logg))
		r.Get("/{key}", controllers.VehicleTypeDetail(deps.VehiclesSvc, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/v1/driver", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleDriver), logg))
			r.Get("/profile", controllers.DriverProfile(deps.DriversSvc, logg))
			r.Post("/profile", controllers.DriverRegister(deps.DriversSvc, logg))
			r.Put("/presence", controllers.DriverPresence(deps.DriversSvc, logg))
			r.Post("/heartbeat", controllers.DriverHeartbeat(deps.DriversSvc, logg))
			r.Put("/push-token", controllers.DriverPushToken(deps.DriversSvc, logg))
			r.With(claimLimiter).
				Post("/orders/{orderId}/claim", controllers.OrderClaim(deps.OrdersSvc, logg))
		})

		r.Route("/v1/shop", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleShop), logg))
			r.Post("/invitations", controllers.ShopInviteDriver(deps.ShopsSvc, logg))
			r.Get("/invitations", controllers.ShopListInvitations(deps.ShopsSvc, logg))
			r.Delete("/invitations/{driverUserId}", controllers.ShopRevokeDriver(deps.ShopsSvc, logg))
			r.Post("/orders", controllers.OrderCreate(deps.OrdersSvc, logg))
		})

		r.Get("/v1/orders/number/{orderNumber}", controllers.OrderByNumber(deps.OrdersSvc, logg))
		r.Get("/v1/orders/{orderId}", controllers.OrderDetail(deps.OrdersSvc, logg))
		r.Get("/v1/shops/{shopId}", controllers.ShopDetail(deps.ShopsSvc, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Route("/v1/vehicle-types", func(r chi.Router) {
			r.Post("/", controllers.VehicleTypeCreate(deps.VehiclesSvc, logg))
			r.Patch("/{key}", controllers.VehicleTypeUpdate(deps.VehiclesSvc, logg))
		})
		r.Get("/v1/orders/{orderId}/dispatch-audit", controllers.DispatchAudit(deps.DispatchAudit, logg))
	})

	return r
}
