package handler

import (
	"context"
	"net/http"

	"github.com/delta/codecharacter/api/internal/model"
)

// MatchService is the match behaviour the handler needs
type MatchService interface {
	GetTopMatches(ctx context.Context, pageNo, pageSize int) ([]*model.MatchResponse, error)
	GetMatch(ctx context.Context, id int) (*model.Match, error)
	CreateMatch(ctx context.Context, req *model.CreateMatchRequest) (*model.Match, []*model.Game, error)
	StartMatch(ctx context.Context, id int) (*model.Match, error)
	FinishMatch(ctx context.Context, id, score1, score2 int) (*model.Match, error)
}

// MatchHandler handles match HTTP requests
type MatchHandler struct {
	svc MatchService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(svc MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// createdMatch is the body of a successful POST /match
type createdMatch struct {
	*model.Match
	Games []*model.Game `json:"games"`
}

// TopMatches handles GET /match/top/{PageNo}/{PageSize}
func (h *MatchHandler) TopMatches(w http.ResponseWriter, r *http.Request) {
	pageNo, pd := pathInt(r, "PageNo")
	if pd != nil {
		WriteError(w, pd)
		return
	}
	pageSize, pd := pathInt(r, "PageSize")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	matches, err := h.svc.GetTopMatches(r.Context(), pageNo, pageSize)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteJSON(w, http.StatusOK, matches)
}

// Get handles GET /match/{matchId}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "matchId")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	m, err := h.svc.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, m)
}

// Create handles POST /match (admin)
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMatchRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	m, games, err := h.svc.CreateMatch(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if games == nil {
		games = []*model.Game{}
	}
	WriteData(w, http.StatusCreated, createdMatch{Match: m, Games: games})
}

// Start handles POST /match/{matchId}/start (admin)
func (h *MatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "matchId")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	m, err := h.svc.StartMatch(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, m)
}

// Finish handles POST /match/{matchId}/finish (admin)
func (h *MatchHandler) Finish(w http.ResponseWriter, r *http.Request) {
	id, pd := pathID(r, "matchId")
	if pd != nil {
		WriteError(w, pd)
		return
	}

	var req model.FinishMatchRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	m, err := h.svc.FinishMatch(r.Context(), id, req.Score1, req.Score2)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, m)
}
