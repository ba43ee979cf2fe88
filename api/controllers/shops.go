package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/juvoapp/juvo-backend/api/middleware"
	"github.com/juvoapp/juvo-backend/api/responses"
	"github.com/juvoapp/juvo-backend/api/validators"
	"github.com/juvoapp/juvo-backend/internal/shops"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
	"github.com/juvoapp/juvo-backend/pkg/logger"
	"github.com/juvoapp/juvo-backend/pkg/pagination"
)

type inviteDriverRequest struct {
	DriverUserID uuid.UUID `json:"driver_user_id" validate:"required"`
}

func ShopDetail(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := validators.ParseUUIDParam(r, "shopId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.GetByID(r.Context(), shopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func ShopInviteDriver(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID := middleware.ShopIDFromContext(r.Context())
		if shopID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "no shop scope on session"))
			return
		}

		var body inviteDriverRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.InviteDriver(r.Context(), *shopID, body.DriverUserID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "invited"})
	}
}

func ShopRevokeDriver(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID := middleware.ShopIDFromContext(r.Context())
		if shopID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "no shop scope on session"))
			return
		}

		driverUserID, err := validators.ParseUUIDParam(r, "driverUserId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RevokeDriver(r.Context(), *shopID, driverUserID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "revoked"})
	}
}

func ShopListInvitations(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID := middleware.ShopIDFromContext(r.Context())
		if shopID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "no shop scope on session"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListInvitations(r.Context(), *shopID, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
