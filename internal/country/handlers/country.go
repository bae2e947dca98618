package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"nations-server/internal/country"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

type CountryHandler struct {
	service *country.Service
}

func NewCountryHandler(service *country.Service) *CountryHandler {
	return &CountryHandler{service: service}
}

func (h *CountryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_countries")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	countries, err := h.service.GetAll(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if countries == nil {
		countries = []country.Snapshot{}
	}

	response.Success(w, http.StatusOK, countries)
}

func (h *CountryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_country")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	countryID, err := parseCountryID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	snapshot, err := h.service.GetSnapshot(ctx, countryID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, snapshot)
}

func (h *CountryHandler) GetWorldAverages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_world_averages")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	averages, err := h.service.GetWorldAverages(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, averages)
}

func parseCountryID(r *http.Request) (int, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return 0, errors.Validation("country ID is required")
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.WrapValidation("invalid country ID format", err)
	}
	return id, nil
}
