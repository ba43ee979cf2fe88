package controllers

import (
	"net/http"

	"github.com/juvoapp/juvo-backend/api/middleware"
	"github.com/juvoapp/juvo-backend/api/responses"
	"github.com/juvoapp/juvo-backend/api/validators"
	"github.com/juvoapp/juvo-backend/internal/drivers"
	"github.com/juvoapp/juvo-backend/pkg/logger"
	"github.com/juvoapp/juvo-backend/pkg/types"
)

type registerDriverRequest struct {
	VehicleTypeKey string `json:"vehicle_type_key" validate:"required"`
}

type presenceRequest struct {
	Online bool     `json:"online"`
	Lat    *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lng    *float64 `json:"lng" validate:"omitempty,min=-180,max=180"`
}

type pushTokenRequest struct {
	Token string `json:"token"`
}

func DriverProfile(svc drivers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto, err := svc.GetProfile(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func DriverRegister(svc drivers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registerDriverRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.RegisterProfile(r.Context(), drivers.RegisterProfileInput{
			UserID:         middleware.UserIDFromContext(r.Context()),
			VehicleTypeKey: body.VehicleTypeKey,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

func DriverPresence(svc drivers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body presenceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := drivers.PresenceInput{Online: body.Online}
		if body.Lat != nil && body.Lng != nil {
			input.Location = &types.GeographyPoint{Lat: *body.Lat, Lng: *body.Lng}
		}

		if err := svc.UpdatePresence(r.Context(), middleware.UserIDFromContext(r.Context()), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"online": body.Online})
	}
}

func DriverHeartbeat(svc drivers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Heartbeat(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

func DriverPushToken(svc drivers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body pushTokenRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetPushToken(r.Context(), middleware.UserIDFromContext(r.Context()), body.Token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
