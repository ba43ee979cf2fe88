package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/juvoapp/juvo-backend/api/responses"
	"github.com/juvoapp/juvo-backend/api/validators"
	"github.com/juvoapp/juvo-backend/pkg/db/models"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
	"github.com/juvoapp/juvo-backend/pkg/logger"
)

// DispatchAuditReader exposes the per-order notification trail.
type DispatchAuditReader interface {
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DispatchNotification, error)
}

// DispatchAudit returns the push attempts made for an order, for back
// office troubleshooting of "why did no driver show up".
func DispatchAudit(repo DispatchAuditReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := repo.ListByOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load dispatch audit"))
			return
		}
		responses.WriteSuccess(w, records)
	}
}
