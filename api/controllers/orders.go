package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juvoapp/juvo-backend/api/middleware"
	"github.com/juvoapp/juvo-backend/api/responses"
	"github.com/juvoapp/juvo-backend/api/validators"
	"github.com/juvoapp/juvo-backend/internal/orders"
	"github.com/juvoapp/juvo-backend/pkg/enums"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
	"github.com/juvoapp/juvo-backend/pkg/logger"
)

type createOrderRequest struct {
	OrderNumber    string    `json:"order_number" validate:"required"`
	ShopID         uuid.UUID `json:"shop_id" validate:"required"`
	CustomerUserID uuid.UUID `json:"customer_user_id" validate:"required"`
	DeliveryType   string    `json:"delivery_type" validate:"required,oneof=driver_dispatch pickup shop_courier"`
	Total          string    `json:"total" validate:"required"`
}

func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deliveryType, err := enums.ParseDeliveryType(body.DeliveryType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery type"))
			return
		}
		total, err := decimal.NewFromString(body.Total)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "total must be a decimal string"))
			return
		}

		dto, err := svc.Create(r.Context(), orders.CreateOrderInput{
			OrderNumber:    body.OrderNumber,
			ShopID:         body.ShopID,
			CustomerUserID: body.CustomerUserID,
			DeliveryType:   deliveryType,
			Total:          total,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.GetByID(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// OrderByNumber resolves an order from the public number printed on
// receipts, for support lookups where the UUID is not at hand.
func OrderByNumber(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto, err := svc.GetByNumber(r.Context(), chi.URLParam(r, "orderNumber"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// OrderClaim lets the authenticated driver accept an offered order. The
// first claim wins; later drivers get a state conflict.
func OrderClaim(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Claim(r.Context(), orderID, middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
