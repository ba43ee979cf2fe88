package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/juvoapp/juvo-backend/api/responses"
	"github.com/juvoapp/juvo-backend/api/validators"
	"github.com/juvoapp/juvo-backend/internal/vehicles"
	pkgerrors "github.com/juvoapp/juvo-backend/pkg/errors"
	"github.com/juvoapp/juvo-backend/pkg/logger"
	"github.com/juvoapp/juvo-backend/pkg/pagination"
)

type createVehicleTypeRequest struct {
	Key         string  `json:"key" validate:"required"`
	DisplayName string  `json:"display_name" validate:"required"`
	Active      bool    `json:"active"`
	SortOrder   int     `json:"sort_order"`
	MaxWeightKG *int    `json:"max_weight_kg" validate:"omitempty,min=1"`
	BaseRate    *string `json:"base_rate"`
}

type updateVehicleTypeRequest struct {
	DisplayName    *string `json:"display_name" validate:"omitempty,min=1"`
	Active         *bool   `json:"active"`
	SortOrder      *int    `json:"sort_order"`
	MaxWeightKG    *int    `json:"max_weight_kg" validate:"omitempty,min=1"`
	ClearMaxWeight bool    `json:"clear_max_weight"`
	BaseRate       *string `json:"base_rate"`
}

func VehicleTypeList(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.List(r.Context(), pagination.Params{
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

func VehicleTypeDetail(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(chi.URLParam(r, "key"))
		dto, err := svc.GetByKey(r.Context(), key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func VehicleTypeCreate(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createVehicleTypeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := vehicles.CreateVehicleTypeInput{
			Key:         body.Key,
			DisplayName: body.DisplayName,
			Active:      body.Active,
			SortOrder:   body.SortOrder,
			MaxWeightKG: body.MaxWeightKG,
		}
		if body.BaseRate != nil {
			rate, err := decimal.NewFromString(*body.BaseRate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "base_rate must be a decimal string"))
				return
			}
			input.BaseRate = rate
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

func VehicleTypeUpdate(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(chi.URLParam(r, "key"))

		var body updateVehicleTypeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := vehicles.UpdateVehicleTypeInput{
			DisplayName:    body.DisplayName,
			Active:         body.Active,
			SortOrder:      body.SortOrder,
			MaxWeightKG:    body.MaxWeightKG,
			ClearMaxWeight: body.ClearMaxWeight,
		}
		if body.BaseRate != nil {
			rate, err := decimal.NewFromString(*body.BaseRate)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "base_rate must be a decimal string"))
				return
			}
			input.BaseRate = &rate
		}

		dto, err := svc.Update(r.Context(), key, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
