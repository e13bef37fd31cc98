package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/delta/codecharacter/api/internal/model"
)

// MatchSettlerService finishes RUNNING matches whose games are done
type MatchSettlerService interface {
	SettleRunningMatches(ctx context.Context) ([]*model.Match, error)
}

// ResultNotifier tells a player how a match ended
type ResultNotifier interface {
	CreateNotification(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error)
}

// MatchSettler runs scheduled match settlement
//   - Finishes RUNNING matches once every game has executed or failed
//   - Sends each player a MATCH notification with the result
type MatchSettler struct {
	matches  MatchSettlerService
	notifier ResultNotifier
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewMatchSettler creates a new match settler job. notifier may be nil.
func NewMatchSettler(matches MatchSettlerService, notifier ResultNotifier, interval time.Duration) *MatchSettler {
	if interval == 0 {
		interval = 30 * time.Second
	}
	return &MatchSettler{
		matches:  matches,
		notifier: notifier,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the match settler job
func (s *MatchSettler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	slog.Info("match settler started", slog.Duration("interval", s.interval))
}

// Stop gracefully stops the match settler job
func (s *MatchSettler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	slog.Info("match settler stopped")
}

// run is the main loop
func (s *MatchSettler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.settle()
		case <-s.stopCh:
			return
		}
	}
}

func (s *MatchSettler) settle() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		slog.Error("match settlement failed", slog.String("error", err.Error()))
	}
}

// RunOnce settles matches once and notifies their players (for testing or manual trigger)
func (s *MatchSettler) RunOnce(ctx context.Context) (int, error) {
	settled, err := s.matches.SettleRunningMatches(ctx)
	for _, m := range settled {
		s.notifyPlayers(ctx, m)
	}
	return len(settled), err
}

// IsRunning returns whether the settler is running
func (s *MatchSettler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// notifyPlayers failures are logged only; the match is already settled
func (s *MatchSettler) notifyPlayers(ctx context.Context, m *model.Match) {
	if s.notifier == nil {
		return
	}
	for _, userID := range []int{m.PlayerID1, m.PlayerID2} {
		req := &model.CreateNotificationRequest{
			UserID:  userID,
			Title:   resultTitle(m, userID),
			Content: fmt.Sprintf("Match %d finished %d - %d", m.ID, m.Score1, m.Score2),
			Type:    model.NotificationTypeMatch,
		}
		if _, err := s.notifier.CreateNotification(ctx, req); err != nil {
			slog.Warn("failed to notify player of match result",
				slog.Int("match_id", m.ID),
				slog.Int("user_id", userID),
				slog.String("error", err.Error()))
		}
	}
}

func resultTitle(m *model.Match, userID int) string {
	switch {
	case m.Verdict == model.VerdictTie:
		return "Match tied"
	case (m.Verdict == model.VerdictPlayer1) == (userID == m.PlayerID1):
		return "Match won"
	default:
		return "Match lost"
	}
}
