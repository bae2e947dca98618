package handlers

import (
	"log/slog"
	"net/http"

	"nations-server/internal/shared/response"
	"nations-server/internal/tick"
)

type TickHandler struct {
	service *tick.Service
}

func NewTickHandler(service *tick.Service) *TickHandler {
	return &TickHandler{service: service}
}

// Run triggers one simulation tick. Admin only; the scheduler calls the
// same service method.
func (h *TickHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "run_tick")

	result, err := h.service.RunTick(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, result)
}
