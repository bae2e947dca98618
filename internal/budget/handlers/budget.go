package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"nations-server/internal/budget"
	"nations-server/internal/projection"
	"nations-server/internal/rules"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

// BudgetHandler serves a country's ministry allocation. Updates are
// validated against the country's resolved effects, which come from the
// same loader the projection uses.
type BudgetHandler struct {
	budgetService     *budget.Service
	projectionService *projection.Service
}

func NewBudgetHandler(budgetService *budget.Service, projectionService *projection.Service) *BudgetHandler {
	return &BudgetHandler{
		budgetService:     budgetService,
		projectionService: projectionService,
	}
}

type allocationRequest struct {
	Allocations map[string]float64 `json:"allocations"`
}

func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_budget")

	countryID, err := parseCountryID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	allocation, err := h.budgetService.GetAllocation(ctx, countryID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, allocation)
}

func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "update_budget")

	countryID, err := parseCountryID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req allocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	allocation := &budget.Allocation{CountryID: countryID}
	for id, pct := range req.Allocations {
		ministryID := rules.MinistryID(id)
		if !rules.IsMinistry(ministryID) {
			response.Error(w, r, logger, errors.Validationf("unknown ministry: %s", id))
			return
		}
		allocation.SetPct(ministryID, pct)
	}

	inputs, err := h.projectionService.LoadInputs(ctx, countryID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	updated, err := h.budgetService.UpdateAllocation(ctx, allocation, inputs.Effects)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, updated)
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
