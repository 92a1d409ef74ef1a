package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/turnherald/internal/api/apierr"
	"github.com/mcoot/turnherald/internal/api/response"
	"github.com/mcoot/turnherald/internal/model"
	"github.com/mcoot/turnherald/internal/services/history"
	"github.com/mcoot/turnherald/internal/services/turn"
)

// GamesHandler handles active-game introspection and removal endpoints
type GamesHandler struct {
	processor *turn.Processor
	history   *history.Service
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(processor *turn.Processor, historyService *history.Service) *GamesHandler {
	return &GamesHandler{
		processor: processor,
		history:   historyService,
	}
}

// List handles GET /api/v1/games
func (h *GamesHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.processor.ListActiveGames(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp := response.ActiveGamesResponse{
		ActiveGames: make([]response.ActiveGame, 0, len(games)),
		Count:       len(games),
	}
	for _, g := range games {
		resp.ActiveGames = append(resp.ActiveGames, response.ActiveGameFromModel(g))
	}

	response.JSON(w, http.StatusOK, resp)
}

// End handles DELETE /api/v1/games/{game_id}
func (h *GamesHandler) End(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	if err := h.processor.EndGame(r.Context(), gameID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// History handles GET /api/v1/games/{game_id}/history
func (h *GamesHandler) History(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	records, err := h.history.ForGame(r.Context(), gameID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	resp := response.TurnHistoryResponse{
		GameID:  string(gameID),
		Records: make([]response.TurnRecord, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, response.TurnRecordFromModel(rec))
	}

	response.JSON(w, http.StatusOK, resp)
}
