package handler

import (
	"context"
	"net/http"

	"github.com/delta/codecharacter/api/internal/model"
)

// GameService is the game behaviour the handler needs
type GameService interface {
	GetGameLog(ctx context.Context, gameID int) (*model.LogDetails, error)
	StoreGameLog(ctx context.Context, gameID int, details *model.LogDetails) error
	RecordGameResult(ctx context.Context, gameID int, req *model.GameResultRequest) (*model.Game, error)
}

// GameHandler handles game HTTP requests
type GameHandler struct {
	svc GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(svc GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

// GetLog handles GET /game/log/game/{gameId}
func (h *GameHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "gameId")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	details, err := h.svc.GetGameLog(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, details)
}

// PutLog handles PUT /game/log/game/{gameId} (admin)
func (h *GameHandler) PutLog(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "gameId")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	var details model.LogDetails
	if err := DecodeJSON(r, &details); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.svc.StoreGameLog(r.Context(), id, &details); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}

// PutResult handles PUT /game/{gameId}/result (admin)
func (h *GameHandler) PutResult(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "gameId")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	var req model.GameResultRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	game, err := h.svc.RecordGameResult(r.Context(), id, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, game)
}
