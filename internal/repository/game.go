package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/delta/codecharacter/api/internal/database"
	"github.com/delta/codecharacter/api/internal/model"
)

const gameFields = `record::id(id) AS id, match_id, map_id, points_1, points_2, verdict, status`

// GameRepository handles game data access. Games are created with their
// match by MatchRepository.Create.
type GameRepository struct {
	db database.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db database.Database) *GameRepository {
	return &GameRepository{db: db}
}

// GetByID retrieves a game by id. Returns nil, nil when absent.
func (r *GameRepository) GetByID(ctx context.Context, id int) (*model.Game, error) {
	query := `SELECT ` + gameFields + ` FROM ONLY type::thing('game', $id)`

	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := asMap(result)
	if err != nil {
		return nil, err
	}
	return parseGame(data), nil
}

// ListByMatchIDs returns the games of every listed match, grouped by match id
// and ordered by game id within a match.
func (r *GameRepository) ListByMatchIDs(ctx context.Context, matchIDs []int) (map[int][]*model.Game, error) {
	grouped := make(map[int][]*model.Game, len(matchIDs))
	if len(matchIDs) == 0 {
		return grouped, nil
	}

	query := `SELECT ` + gameFields + ` FROM game WHERE match_id IN $match_ids ORDER BY id ASC`

	results, err := r.db.Query(ctx, query, map[string]interface{}{"match_ids": intsToAny(matchIDs)})
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	for _, data := range rowMaps(statementRows(results, 0)) {
		game := parseGame(data)
		grouped[game.MatchID] = append(grouped[game.MatchID], game)
	}
	return grouped, nil
}

// UpdateResult records the outcome of an executed game
func (r *GameRepository) UpdateResult(ctx context.Context, game *model.Game) error {
	query := `
		UPDATE type::thing('game', $id) SET
			points_1 = $points_1,
			points_2 = $points_2,
			verdict = $verdict,
			status = $status
	`
	vars := map[string]interface{}{
		"id":       game.ID,
		"points_1": game.Points1,
		"points_2": game.Points2,
		"verdict":  string(game.Verdict),
		"status":   string(game.Status),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return nil
}

func parseGame(data map[string]interface{}) *model.Game {
	return &model.Game{
		ID:      getInt(data, "id"),
		MatchID: getInt(data, "match_id"),
		MapID:   getInt(data, "map_id"),
		Points1: getInt(data, "points_1"),
		Points2: getInt(data, "points_2"),
		Verdict: model.Verdict(getString(data, "verdict")),
		Status:  model.GameStatus(getString(data, "status")),
	}
}
