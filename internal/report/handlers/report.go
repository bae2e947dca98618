package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"nations-server/internal/report"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

type ReportHandler struct {
	service *report.Service
}

func NewReportHandler(service *report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) GetCabinetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_cabinet_report")

	idStr := r.PathValue("id")
	if idStr == "" {
		response.Error(w, r, logger, errors.Validation("country ID is required"))
		return
	}

	countryID, err := strconv.Atoi(idStr)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid country ID format", err))
		return
	}

	cabinetReport, err := h.service.GetCabinetReport(ctx, countryID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, cabinetReport)
}
