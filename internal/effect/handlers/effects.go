package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"nations-server/internal/effect"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

type EffectHandler struct {
	repo *effect.Repository
}

func NewEffectHandler(repo *effect.Repository) *EffectHandler {
	return &EffectHandler{repo: repo}
}

// effectView decorates a stored effect with its display rendering.
type effectView struct {
	effect.CountryEffect
	Display string `json:"display"`
}

type createEffectRequest struct {
	Kind          effect.Kind         `json:"kind"`
	Target        string              `json:"target"`
	Value         float64             `json:"value"`
	DurationKind  effect.DurationKind `json:"duration_kind"`
	DaysRemaining int                 `json:"days_remaining"`
	Name          string              `json:"name"`
}

func (h *EffectHandler) GetByCountry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_country_effects")

	countryID, err := parseCountryID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	rows, err := h.repo.GetActiveByCountryID(ctx, countryID, nil)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	views := make([]effectView, 0, len(rows))
	for _, row := range rows {
		views = append(views, effectView{
			CountryEffect: row,
			Display:       effect.FormatValue(row.Kind, row.Value),
		})
	}

	response.Success(w, http.StatusOK, views)
}

func (h *EffectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_effect")

	countryID, err := parseCountryID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req createEffectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	if !effect.IsKnown(req.Kind) {
		response.Error(w, r, logger, errors.Validationf("unknown effect kind: %s", req.Kind))
		return
	}
	if req.DurationKind != effect.DurationPermanent && req.DurationKind != effect.DurationDays {
		response.Error(w, r, logger, errors.Validationf("unknown duration kind: %s", req.DurationKind))
		return
	}
	if req.DurationKind == effect.DurationDays && req.DaysRemaining <= 0 {
		response.Error(w, r, logger, errors.Validation("days_remaining must be positive for day-scoped effects"))
		return
	}
	if req.Name == "" {
		response.Error(w, r, logger, errors.Validation("effect name is required"))
		return
	}

	created, err := h.repo.Create(ctx, &effect.CountryEffect{
		CountryID:     countryID,
		Kind:          req.Kind,
		Target:        req.Target,
		Value:         req.Value,
		DurationKind:  req.DurationKind,
		DaysRemaining: req.DaysRemaining,
		Name:          req.Name,
	})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Info("Effect created",
		"country_id", countryID,
		"kind", created.Kind,
		"effect_id", created.ID)

	response.Success(w, http.StatusCreated, created)
}

func (h *EffectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "delete_effect")

	effectIDStr := r.PathValue("effectID")
	effectID, err := uuid.Parse(effectIDStr)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid effect ID format", err))
		return
	}

	deleted, err := h.repo.Delete(ctx, effectID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if deleted == 0 {
		response.Error(w, r, logger, errors.NotFoundf("effect not found with id: %s", effectID))
		return
	}

	logger.Info("Effect deleted", "effect_id", effectID)
	response.Success(w, http.StatusOK, map[string]interface{}{"deleted": deleted})
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
