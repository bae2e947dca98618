package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"nations-server/internal/military"
	"nations-server/internal/projection"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

type MilitaryHandler struct {
	militaryService   *military.Service
	projectionService *projection.Service
}

func NewMilitaryHandler(militaryService *military.Service, projectionService *projection.Service) *MilitaryHandler {
	return &MilitaryHandler{
		militaryService:   militaryService,
		projectionService: projectionService,
	}
}

// GetBranches lists the military branches.
func (h *MilitaryHandler) GetBranches(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_military_branches")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, military.Branches)
}

// GetUnits returns the country's units with their effective limits,
// costs and upkeep after effects.
func (h *MilitaryHandler) GetUnits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_military_units")

	countryID, err := parseCountryID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	inputs, err := h.projectionService.LoadInputs(ctx, countryID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	statuses, err := h.militaryService.GetUnitStatuses(ctx, countryID, inputs.Effects)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if statuses == nil {
		statuses = []military.UnitStatus{}
	}

	response.Success(w, http.StatusOK, statuses)
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
