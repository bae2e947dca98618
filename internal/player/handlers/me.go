package handlers

import (
	"log/slog"
	"net/http"

	"nations-server/internal/middleware"
	"nations-server/internal/player"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

// MeHandler returns the authenticated player's fresh database record,
// so a country assignment made after login shows up without a re-login.
type MeHandler struct {
	service *player.Service
}

func NewMeHandler(service *player.Service) *MeHandler {
	return &MeHandler{service: service}
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "me")

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("no user claims found in context"))
		return
	}

	p, err := h.service.GetPlayerByID(r.Context(), claims.PlayerID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if p == nil {
		response.Error(w, r, logger, errors.NotFoundf("player not found with id: %d", claims.PlayerID))
		return
	}

	response.Success(w, http.StatusOK, p)
}
