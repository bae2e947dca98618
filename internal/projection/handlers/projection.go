package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"nations-server/internal/projection"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

type ProjectionHandler struct {
	service *projection.Service
}

func NewProjectionHandler(service *projection.Service) *ProjectionHandler {
	return &ProjectionHandler{service: service}
}

type previewResponse struct {
	Expected  *projection.Projection `json:"expected"`
	Breakdown *projection.Breakdown  `json:"breakdown"`
}

// Preview returns the expected next tick and its source-by-source
// breakdown for the country pages.
func (h *ProjectionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "projection_preview")

	countryID, err := parseCountryID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	breakdown, expected, err := h.service.Preview(ctx, countryID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, previewResponse{
		Expected:  expected,
		Breakdown: breakdown,
	})
}

// Debug exposes every raw intermediate of the projection. Admin only;
// the numbers mirror the engine exactly, which is the point.
func (h *ProjectionHandler) Debug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "projection_debug")

	countryID, err := parseCountryID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	inputs, err := h.service.LoadInputs(ctx, countryID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	expected := projection.ProjectNextTick(inputs.Snapshot, inputs.Allocation, inputs.Rules, inputs.World, inputs.Effects)

	response.Success(w, http.StatusOK, map[string]interface{}{
		"snapshot":           inputs.Snapshot,
		"allocation":         inputs.Allocation,
		"world_averages":     inputs.World,
		"mobilisation_level": inputs.MobilisationLevel,
		"effects":            inputs.Effects,
		"expected":           expected,
		"inputs":             expected.Inputs,
	})
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
