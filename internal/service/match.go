package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/delta/codecharacter/api/internal/model"
)

// MatchRepository defines the interface for match storage
type MatchRepository interface {
	Create(ctx context.Context, m *model.Match, mapIDs []int) ([]*model.Game, error)
	GetByID(ctx context.Context, id int) (*model.Match, error)
	TransitionStatus(ctx context.Context, id int, from, to model.MatchStatus) (*model.Match, error)
	Finish(ctx context.Context, id, score1, score2 int, verdict model.Verdict) (*model.Match, error)
	ListTopFinished(ctx context.Context, offset, limit int) ([]*model.Match, error)
	ListByStatus(ctx context.Context, status model.MatchStatus, afterID, limit int) ([]*model.Match, error)
}

// MatchGameRepository loads the games belonging to matches
type MatchGameRepository interface {
	ListByMatchIDs(ctx context.Context, matchIDs []int) (map[int][]*model.Game, error)
}

// PlayerRepository resolves player ids to users
type PlayerRepository interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByIDs(ctx context.Context, ids []int) (map[int]*model.User, error)
}

// MatchService handles match lifecycle and the top matches leaderboard
type MatchService struct {
	repo        MatchRepository
	games       MatchGameRepository
	players     PlayerRepository
	maxPageSize int
}

// MatchServiceConfig holds configuration for the match service
type MatchServiceConfig struct {
	Repo        MatchRepository
	Games       MatchGameRepository
	Players     PlayerRepository
	MaxPageSize int
}

// NewMatchService creates a new match service
func NewMatchService(cfg MatchServiceConfig) *MatchService {
	return &MatchService{
		repo:        cfg.Repo,
		games:       cfg.Games,
		players:     cfg.Players,
		maxPageSize: maxPageSizeOrDefault(cfg.MaxPageSize),
	}
}

// GetTopMatches returns one page of finished matches ranked by combined
// score, newest first among equals. Both arguments must be positive.
func (s *MatchService) GetTopMatches(ctx context.Context, pageNo, pageSize int) ([]*model.MatchResponse, error) {
	if pageNo < 1 {
		return nil, ErrInvalidPageNumber
	}
	if pageSize < 1 {
		return nil, ErrInvalidPageSize
	}
	if err := validatePage(pageNo, pageSize, s.maxPageSize); err != nil {
		return nil, err
	}

	matches, err := s.repo.ListTopFinished(ctx, model.Offset(pageNo, pageSize), pageSize)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []*model.MatchResponse{}, nil
	}

	matchIDs := make([]int, 0, len(matches))
	playerIDs := make([]int, 0, 2*len(matches))
	seen := make(map[int]bool)
	for _, m := range matches {
		matchIDs = append(matchIDs, m.ID)
		for _, id := range []int{m.PlayerID1, m.PlayerID2} {
			if !seen[id] {
				seen[id] = true
				playerIDs = append(playerIDs, id)
			}
		}
	}

	users, err := s.players.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, err
	}
	games, err := s.games.ListByMatchIDs(ctx, matchIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.MatchResponse, 0, len(matches))
	for _, m := range matches {
		responses = append(responses, buildMatchResponse(m, users, games[m.ID]))
	}
	return responses, nil
}

// GetMatch retrieves a match by id
func (s *MatchService) GetMatch(ctx context.Context, id int) (*model.Match, error) {
	if id <= 0 {
		return nil, ErrInvalidMatchID
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// CreateMatch sets up an IDLE match between two existing players, with one
// game per requested map.
func (s *MatchService) CreateMatch(ctx context.Context, req *model.CreateMatchRequest) (*model.Match, []*model.Game, error) {
	if err := validationError(req.Validate()); err != nil {
		return nil, nil, err
	}

	for _, playerID := range []int{req.PlayerID1, req.PlayerID2} {
		player, err := s.players.GetByID(ctx, playerID)
		if err != nil {
			return nil, nil, err
		}
		if player == nil {
			return nil, nil, ErrUserNotFound
		}
	}

	m := model.NewMatch(0, req.PlayerID1, req.PlayerID2, req.MatchMode)
	games, err := s.repo.Create(ctx, m, req.MapIDs)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("match created",
		slog.Int("match_id", m.ID),
		slog.Int("player_id_1", m.PlayerID1),
		slog.Int("player_id_2", m.PlayerID2),
		slog.Int("games", len(games)))
	return m, games, nil
}

// StartMatch moves an IDLE match to RUNNING
func (s *MatchService) StartMatch(ctx context.Context, id int) (*model.Match, error) {
	current, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsFinished() {
		return nil, ErrMatchFinished
	}
	if !current.Status.CanTransitionTo(model.MatchStatusRunning) {
		return nil, ErrInvalidMatchTransition
	}

	updated, err := s.repo.TransitionStatus(ctx, id, model.MatchStatusIdle, model.MatchStatusRunning)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// another request moved it first
		return nil, ErrInvalidMatchTransition
	}

	slog.Info("match started", slog.Int("match_id", id))
	return updated, nil
}

// FinishMatch records final scores on a RUNNING match and settles the verdict
func (s *MatchService) FinishMatch(ctx context.Context, id, score1, score2 int) (*model.Match, error) {
	req := model.FinishMatchRequest{Score1: score1, Score2: score2}
	if err := validationError(req.Validate()); err != nil {
		return nil, err
	}

	current, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsFinished() {
		return nil, ErrMatchFinished
	}
	if !current.Status.CanTransitionTo(model.MatchStatusFinished) {
		return nil, ErrInvalidMatchTransition
	}

	verdict := model.VerdictFromScores(score1, score2)
	updated, err := s.repo.Finish(ctx, id, score1, score2, verdict)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrMatchFinished
	}

	slog.Info("match finished",
		slog.Int("match_id", id),
		slog.Int("score_1", score1),
		slog.Int("score_2", score2),
		slog.String("verdict", string(verdict)))
	return updated, nil
}

// settleBatchSize is how many RUNNING matches are loaded per round trip
const settleBatchSize = 100

// SettleRunningMatches finishes every RUNNING match whose games have all
// stopped executing. Match scores are the summed game points. Matches
// without games are left for an explicit FinishMatch. RUNNING matches are
// read in id order, one batch at a time, until a short batch comes back.
func (s *MatchService) SettleRunningMatches(ctx context.Context) ([]*model.Match, error) {
	var settled []*model.Match
	afterID := 0
	for {
		running, err := s.repo.ListByStatus(ctx, model.MatchStatusRunning, afterID, settleBatchSize)
		if err != nil {
			return settled, err
		}
		if len(running) == 0 {
			return settled, nil
		}

		finished, err := s.settleBatch(ctx, running)
		settled = append(settled, finished...)
		if err != nil {
			return settled, err
		}

		if len(running) < settleBatchSize {
			return settled, nil
		}
		afterID = running[len(running)-1].ID
	}
}

func (s *MatchService) settleBatch(ctx context.Context, running []*model.Match) ([]*model.Match, error) {
	ids := make([]int, 0, len(running))
	for _, m := range running {
		ids = append(ids, m.ID)
	}
	games, err := s.games.ListByMatchIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var settled []*model.Match
	for _, m := range running {
		score1, score2, done := gameTotals(games[m.ID])
		if !done {
			continue
		}

		finished, err := s.FinishMatch(ctx, m.ID, score1, score2)
		switch {
		case err == nil:
			settled = append(settled, finished)
		case errors.Is(err, ErrMatchFinished), errors.Is(err, ErrInvalidMatchTransition):
			// finished by someone else since it was listed
		default:
			return settled, err
		}
	}
	return settled, nil
}

// gameTotals sums the points of games that have all reached a final status
func gameTotals(games []*model.Game) (score1, score2 int, done bool) {
	if len(games) == 0 {
		return 0, 0, false
	}
	for _, g := range games {
		if g.Status != model.GameStatusExecuted && g.Status != model.GameStatusExecuteError {
			return 0, 0, false
		}
		score1 += g.Points1
		score2 += g.Points2
	}
	return score1, score2, true
}

func buildMatchResponse(m *model.Match, users map[int]*model.User, games []*model.Game) *model.MatchResponse {
	summaries := make([]model.GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, g.Summary())
	}

	return &model.MatchResponse{
		ID:        m.ID,
		Player1:   playerSummary(m.PlayerID1, users),
		Player2:   playerSummary(m.PlayerID2, users),
		Verdict:   m.Verdict,
		Score1:    m.Score1,
		Score2:    m.Score2,
		MatchMode: m.MatchMode,
		CreatedAt: m.CreatedAt,
		Games:     summaries,
	}
}

func playerSummary(id int, users map[int]*model.User) model.PlayerSummary {
	summary := model.PlayerSummary{UserID: id}
	if u, ok := users[id]; ok {
		summary.Username = u.Username
	}
	return summary
}
