package handlers

import (
	"log/slog"
	"net/http"

	"nations-server/internal/country"
	"nations-server/internal/player"
	"nations-server/internal/shared/response"
	"nations-server/internal/world"
)

// StatusHandler reports the public game status: the in-game date, the
// tick count and how populated the world is.
type StatusHandler struct {
	worldService   *world.Service
	playerService  *player.Service
	countryService *country.Service
}

func NewStatusHandler(worldService *world.Service, playerService *player.Service, countryService *country.Service) *StatusHandler {
	return &StatusHandler{
		worldService:   worldService,
		playerService:  playerService,
		countryService: countryService,
	}
}

type statusResponse struct {
	Date      world.GameDate `json:"date"`
	TickCount int64          `json:"tick_count"`
	Players   int            `json:"players"`
	Countries int            `json:"countries"`
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "game_status")

	state, err := h.worldService.GetState(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	players, err := h.playerService.GetPlayerCount(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	countries, err := h.countryService.GetAll(ctx)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, statusResponse{
		Date:      state.Date,
		TickCount: state.TickCount,
		Players:   players,
		Countries: len(countries),
	})
}
