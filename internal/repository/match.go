package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/delta/codecharacter/api/internal/database"
	"github.com/delta/codecharacter/api/internal/model"
)

const matchFields = `record::id(id) AS id, player_id_1, player_id_2, verdict, status, score_1, score_2, match_mode, created_at`

// MatchRepository handles match data access
type MatchRepository struct {
	db  database.Database
	seq *SequenceRepository
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db database.Database, seq *SequenceRepository) *MatchRepository {
	return &MatchRepository{db: db, seq: seq}
}

// Create stores m together with one IDLE game per map id, all or nothing.
// Ids are allocated before the batch runs, so a failed batch leaves a gap.
func (r *MatchRepository) Create(ctx context.Context, m *model.Match, mapIDs []int) ([]*model.Game, error) {
	matchID, err := r.seq.Next(ctx, TableMatch)
	if err != nil {
		return nil, err
	}

	batch := database.NewAtomicBatch().Add(`
		CREATE ONLY type::thing('match', $id) CONTENT {
			player_id_1: $player_id_1,
			player_id_2: $player_id_2,
			verdict: $verdict,
			status: $status,
			score_1: 0,
			score_2: 0,
			match_mode: $match_mode,
			created_at: time::now()
		}
	`, map[string]interface{}{
		"id":          matchID,
		"player_id_1": m.PlayerID1,
		"player_id_2": m.PlayerID2,
		"verdict":     string(m.Verdict),
		"status":      string(m.Status),
		"match_mode":  string(m.MatchMode),
	})

	games := make([]*model.Game, 0, len(mapIDs))
	for _, mapID := range mapIDs {
		gameID, err := r.seq.Next(ctx, TableGame)
		if err != nil {
			return nil, err
		}
		game := &model.Game{
			ID:      gameID,
			MatchID: matchID,
			MapID:   mapID,
			Verdict: model.VerdictTie,
			Status:  model.GameStatusIdle,
		}
		batch.Add(`
			CREATE ONLY type::thing('game', $id) CONTENT {
				match_id: $match_id,
				map_id: $map_id,
				points_1: 0,
				points_2: 0,
				verdict: $verdict,
				status: $status
			}
		`, map[string]interface{}{
			"id":       game.ID,
			"match_id": game.MatchID,
			"map_id":   game.MapID,
			"verdict":  string(game.Verdict),
			"status":   string(game.Status),
		})
		games = append(games, game)
	}

	if err := batch.Execute(ctx, r.db); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	created, err := r.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("match %d missing after create", matchID)
	}
	*m = *created
	return games, nil
}

// GetByID retrieves a match by id. Returns nil, nil when absent.
func (r *MatchRepository) GetByID(ctx context.Context, id int) (*model.Match, error) {
	query := `SELECT ` + matchFields + ` FROM ONLY type::thing('match', $id)`

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
	return parseMatch(data), nil
}

// TransitionStatus moves a match from one status to the next only if it is
// still in from. Returns the updated match, or nil when the guard failed.
func (r *MatchRepository) TransitionStatus(ctx context.Context, id int, from, to model.MatchStatus) (*model.Match, error) {
	query := `
		UPDATE type::thing('match', $id) SET status = $to
		WHERE status = $from
		RETURN ` + matchFields
	vars := map[string]interface{}{
		"id":   id,
		"from": string(from),
		"to":   string(to),
	}

	return r.updateOne(ctx, query, vars)
}

// Finish settles a RUNNING match with its final scores and verdict.
// Returns nil when the match was not RUNNING.
func (r *MatchRepository) Finish(ctx context.Context, id, score1, score2 int, verdict model.Verdict) (*model.Match, error) {
	query := `
		UPDATE type::thing('match', $id) SET
			status = $finished,
			score_1 = $score_1,
			score_2 = $score_2,
			verdict = $verdict
		WHERE status = $running
		RETURN ` + matchFields
	vars := map[string]interface{}{
		"id":       id,
		"score_1":  score1,
		"score_2":  score2,
		"verdict":  string(verdict),
		"running":  string(model.MatchStatusRunning),
		"finished": string(model.MatchStatusFinished),
	}

	return r.updateOne(ctx, query, vars)
}

// ListTopFinished returns FINISHED matches ranked by combined score,
// then newest first, then highest id.
func (r *MatchRepository) ListTopFinished(ctx context.Context, offset, limit int) ([]*model.Match, error) {
	query := `
		SELECT ` + matchFields + `, score_1 + score_2 AS total_score FROM match
		WHERE status = $finished
		ORDER BY total_score DESC, created_at DESC, id DESC
		LIMIT $limit START $offset
	`
	vars := map[string]interface{}{
		"finished": string(model.MatchStatusFinished),
		"limit":    limit,
		"offset":   offset,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list top matches: %w", err)
	}

	rows := rowMaps(statementRows(results, 0))
	matches := make([]*model.Match, 0, len(rows))
	for _, data := range rows {
		matches = append(matches, parseMatch(data))
	}
	return matches, nil
}

// ListByStatus returns up to limit matches in status with an id above
// afterID, oldest first. Pass the last id of one batch to read the next.
func (r *MatchRepository) ListByStatus(ctx context.Context, status model.MatchStatus, afterID, limit int) ([]*model.Match, error) {
	query := `
		SELECT ` + matchFields + ` FROM match
		WHERE status = $status AND record::id(id) > $after
		ORDER BY id ASC
		LIMIT $limit
	`
	vars := map[string]interface{}{
		"status": string(status),
		"after":  afterID,
		"limit":  limit,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	rows := rowMaps(statementRows(results, 0))
	matches := make([]*model.Match, 0, len(rows))
	for _, data := range rows {
		matches = append(matches, parseMatch(data))
	}
	return matches, nil
}

func (r *MatchRepository) updateOne(ctx context.Context, query string, vars map[string]interface{}) (*model.Match, error) {
	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	rows := rowMaps(statementRows(results, 0))
	if len(rows) == 0 {
		return nil, nil
	}
	return parseMatch(rows[0]), nil
}

func parseMatch(data map[string]interface{}) *model.Match {
	return &model.Match{
		ID:        getInt(data, "id"),
		PlayerID1: getInt(data, "player_id_1"),
		PlayerID2: getInt(data, "player_id_2"),
		Verdict:   model.Verdict(getString(data, "verdict")),
		Status:    model.MatchStatus(getString(data, "status")),
		Score1:    getInt(data, "score_1"),
		Score2:    getInt(data, "score_2"),
		MatchMode: model.MatchMode(getString(data, "match_mode")),
		CreatedAt: getTime(data, "created_at"),
	}
}
