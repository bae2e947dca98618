package handlers

import (
	"log/slog"
	"net/http"

	"nations-server/internal/player"
	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/response"
)

type PlayersHandler struct {
	service *player.Service
}

func NewPlayersHandler(service *player.Service) *PlayersHandler {
	return &PlayersHandler{service: service}
}

func (h *PlayersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "players")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	players, err := h.service.GetAllPlayers(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if players == nil {
		players = []player.Player{}
	}

	response.Success(w, http.StatusOK, players)
}
