package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"nations-server/internal/rules"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

// RulesHandler exposes the rule parameter store to admins. Values are
// opaque JSON; malformed values degrade to defaults at read time instead
// of failing here, so the only validation is that the body parses.
type RulesHandler struct {
	repo *rules.Repository
}

func NewRulesHandler(repo *rules.Repository) *RulesHandler {
	return &RulesHandler{repo: repo}
}

func (h *RulesHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_rules")

	ruleSet, err := h.repo.GetAll(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, ruleSet)
}

func (h *RulesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_rule")

	key := r.PathValue("key")
	if key == "" {
		response.Error(w, r, logger, errors.Validation("rule key is required"))
		return
	}

	parameter, err := h.repo.Get(ctx, key)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, parameter)
}

func (h *RulesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "update_rule")

	key := r.PathValue("key")
	if key == "" {
		response.Error(w, r, logger, errors.Validation("rule key is required"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("failed to read request body", err))
		return
	}
	if !json.Valid(body) {
		response.Error(w, r, logger, errors.Validation("rule value must be valid JSON"))
		return
	}

	parameter, err := h.repo.Upsert(ctx, key, json.RawMessage(body))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Info("Rule parameter updated", "key", key)
	response.Success(w, http.StatusOK, parameter)
}
