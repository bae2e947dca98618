package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"nations-server/internal/country"
	"nations-server/internal/mobilisation"
	"nations-server/internal/rules"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

type MobilisationHandler struct {
	countryService *country.Service
	rulesRepo      *rules.Repository
}

func NewMobilisationHandler(countryService *country.Service, rulesRepo *rules.Repository) *MobilisationHandler {
	return &MobilisationHandler{
		countryService: countryService,
		rulesRepo:      rulesRepo,
	}
}

type mobilisationStatus struct {
	Score      int            `json:"score"`
	Level      string         `json:"level"`
	LevelLabel string         `json:"level_label"`
	ScoreMax   int            `json:"score_max"`
	Thresholds map[string]int `json:"thresholds"`
}

type scoreRequest struct {
	Score int `json:"score"`
}

// GetLevels lists the mobilisation ladder in escalation order.
func (h *MobilisationHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_mobilisation_levels")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, mobilisation.Levels)
}

func (h *MobilisationHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_mobilisation_status")

	countryID, err := parseCountryID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	snapshot, err := h.countryService.GetSnapshot(ctx, countryID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	ruleSet, err := h.rulesRepo.GetAll(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	thresholds := ruleSet.LevelThresholds()
	level := mobilisation.LevelForScore(snapshot.MobilisationScore, thresholds)

	response.Success(w, http.StatusOK, mobilisationStatus{
		Score:      snapshot.MobilisationScore,
		Level:      level,
		LevelLabel: mobilisation.LabelFor(level),
		ScoreMax:   mobilisation.ScoreMax,
		Thresholds: thresholds,
	})
}

func (h *MobilisationHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "update_mobilisation_score")

	countryID, err := parseCountryID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}

	if err := h.countryService.SetMobilisationScore(ctx, countryID, req.Score); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	h.GetStatus(w, r)
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
