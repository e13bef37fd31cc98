package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/delta/codecharacter/api/internal/model"
	"github.com/delta/codecharacter/api/internal/storage"
)

// GameRepository defines the interface for game storage
type GameRepository interface {
	GetByID(ctx context.Context, id int) (*model.Game, error)
	UpdateResult(ctx context.Context, game *model.Game) error
}

// LogStore defines the interface for game log blobs
type LogStore interface {
	GetGameLog(ctx context.Context, gameID int) (*model.LogDetails, error)
	PutGameLog(ctx context.Context, gameID int, details *model.LogDetails) error
}

// GameService serves game results and logs
type GameService struct {
	repo GameRepository
	logs LogStore
}

// GameServiceConfig holds configuration for the game service
type GameServiceConfig struct {
	Repo GameRepository
	Logs LogStore
}

// NewGameService creates a new game service
func NewGameService(cfg GameServiceConfig) *GameService {
	return &GameService{
		repo: cfg.Repo,
		logs: cfg.Logs,
	}
}

// GetGameLog returns the logs of a game. An unknown game is ErrGameNotFound;
// a known game without uploaded logs is ErrGameLogNotFound.
func (s *GameService) GetGameLog(ctx context.Context, gameID int) (*model.LogDetails, error) {
	if _, err := s.getGame(ctx, gameID); err != nil {
		return nil, err
	}

	details, err := s.logs.GetGameLog(ctx, gameID)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrGameLogNotFound
		}
		return nil, err
	}
	return details, nil
}

// StoreGameLog uploads the logs of an existing game
func (s *GameService) StoreGameLog(ctx context.Context, gameID int, details *model.LogDetails) error {
	if err := validationError(details.Validate()); err != nil {
		return err
	}
	if _, err := s.getGame(ctx, gameID); err != nil {
		return err
	}

	if err := s.logs.PutGameLog(ctx, gameID, details); err != nil {
		return err
	}

	slog.Info("game log stored",
		slog.Int("game_id", gameID),
		slog.Int("game_log_bytes", len(details.GameLog)))
	return nil
}

// RecordGameResult stores the points and status reported for a game.
// The verdict follows from the points.
func (s *GameService) RecordGameResult(ctx context.Context, gameID int, req *model.GameResultRequest) (*model.Game, error) {
	if err := validationError(req.Validate()); err != nil {
		return nil, err
	}
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game.Points1 = req.Points1
	game.Points2 = req.Points2
	game.Status = req.Status
	game.Verdict = model.VerdictFromScores(req.Points1, req.Points2)
	if err := s.repo.UpdateResult(ctx, game); err != nil {
		return nil, err
	}

	slog.Info("game result recorded",
		slog.Int("game_id", gameID),
		slog.String("status", string(game.Status)),
		slog.String("verdict", string(game.Verdict)))
	return game, nil
}

func (s *GameService) getGame(ctx context.Context, gameID int) (*model.Game, error) {
	if gameID <= 0 {
		return nil, ErrInvalidGameID
	}
	game, err := s.repo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}
