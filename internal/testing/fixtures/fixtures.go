package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/delta/codecharacter/api/internal/database"
	"github.com/delta/codecharacter/api/internal/model"
)

// Factory creates test records directly in the database, bypassing the
// repositories so tests can pin ids, timestamps and statuses.
type Factory struct {
	db database.Database

	mu  sync.Mutex
	ids map[string]int
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db, ids: make(map[string]int)}
}

// randomID generates a random hex suffix for unique names
func randomID() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ctx returns a context with timeout that is cancelled when the test ends
func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// nextID hands out ids per table starting at 1. The id sequence skips past
// them on its next allocation.
func (f *Factory) nextID(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids[table]++
	return f.ids[table]
}

func (f *Factory) create(t *testing.T, table string, id int, content map[string]interface{}) {
	t.Helper()

	query := `CREATE ONLY type::thing($table, $id) CONTENT $content`
	vars := map[string]interface{}{
		"table":   table,
		"id":      id,
		"content": content,
	}
	if err := f.db.Execute(ctx(t), query, vars); err != nil {
		t.Fatalf("fixtures: failed to create %s:%d: %v", table, id, err)
	}
}

// stamp formats a time the way the datetime casts in create expect
func stamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339Nano)
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	suffix := randomID()
	o := &UserOpts{
		Username: "user_" + suffix,
		Email:    fmt.Sprintf("user_%s@test.local", suffix),
		Password: "testpass123",
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	user := &model.User{
		ID:        f.nextID("user"),
		Username:  o.Username,
		Email:     o.Email,
		Hash:      string(hash),
		IsAdmin:   o.IsAdmin,
		CreatedAt: time.Now().UTC(),
	}
	f.createWithTime(t, "user", user.ID, user.CreatedAt, map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
		"hash":     user.Hash,
		"is_admin": user.IsAdmin,
	})
	return user
}

// CreateAdmin creates an admin user
func (f *Factory) CreateAdmin(t *testing.T) *model.User {
	return f.CreateUser(t, func(o *UserOpts) {
		o.IsAdmin = true
	})
}

// ============================================================================
// Match Fixtures
// ============================================================================

// MatchOpts customizes match creation
type MatchOpts struct {
	Status    model.MatchStatus
	Score1    int
	Score2    int
	Mode      model.MatchMode
	CreatedAt time.Time
}

// Finished sets the match FINISHED with the given scores
func Finished(score1, score2 int) func(*MatchOpts) {
	return func(o *MatchOpts) {
		o.Status = model.MatchStatusFinished
		o.Score1, o.Score2 = score1, score2
	}
}

// Running sets the match RUNNING
func Running() func(*MatchOpts) {
	return func(o *MatchOpts) {
		o.Status = model.MatchStatusRunning
	}
}

// CreatedAt pins the match creation time
func CreatedAt(ts time.Time) func(*MatchOpts) {
	return func(o *MatchOpts) {
		o.CreatedAt = ts
	}
}

// CreateMatch creates a match between two players. The verdict follows the
// scores once the match is FINISHED and is TIE before that.
func (f *Factory) CreateMatch(t *testing.T, player1, player2 *model.User, opts ...func(*MatchOpts)) *model.Match {
	t.Helper()

	o := &MatchOpts{
		Status:    model.MatchStatusIdle,
		Mode:      model.MatchModeAuto,
		CreatedAt: time.Now().UTC(),
	}
	for _, fn := range opts {
		fn(o)
	}

	m := model.NewMatch(f.nextID("match"), player1.ID, player2.ID, o.Mode)
	m.Status = o.Status
	m.Score1, m.Score2 = o.Score1, o.Score2
	m.CreatedAt = o.CreatedAt.UTC()
	if m.IsFinished() {
		m.Verdict = model.VerdictFromScores(m.Score1, m.Score2)
	}

	f.createWithTime(t, "match", m.ID, m.CreatedAt, map[string]interface{}{
		"player_id_1": m.PlayerID1,
		"player_id_2": m.PlayerID2,
		"verdict":     string(m.Verdict),
		"status":      string(m.Status),
		"score_1":     m.Score1,
		"score_2":     m.Score2,
		"match_mode":  string(m.MatchMode),
	})
	return m
}

// ============================================================================
// Game Fixtures
// ============================================================================

// GameOpts customizes game creation
type GameOpts struct {
	MapID   int
	Points1 int
	Points2 int
	Status  model.GameStatus
}

// Executed marks the game EXECUTED with the given points
func Executed(points1, points2 int) func(*GameOpts) {
	return func(o *GameOpts) {
		o.Status = model.GameStatusExecuted
		o.Points1, o.Points2 = points1, points2
	}
}

// CreateGame adds a game to a match
func (f *Factory) CreateGame(t *testing.T, m *model.Match, opts ...func(*GameOpts)) *model.Game {
	t.Helper()

	o := &GameOpts{MapID: 1, Status: model.GameStatusIdle}
	for _, fn := range opts {
		fn(o)
	}

	g := &model.Game{
		ID:      f.nextID("game"),
		MatchID: m.ID,
		MapID:   o.MapID,
		Points1: o.Points1,
		Points2: o.Points2,
		Verdict: model.VerdictFromScores(o.Points1, o.Points2),
		Status:  o.Status,
	}
	f.create(t, "game", g.ID, map[string]interface{}{
		"match_id": g.MatchID,
		"map_id":   g.MapID,
		"points_1": g.Points1,
		"points_2": g.Points2,
		"verdict":  string(g.Verdict),
		"status":   string(g.Status),
	})
	return g
}

// ============================================================================
// Notification Fixtures
// ============================================================================

// NotificationOpts customizes notification creation
type NotificationOpts struct {
	Title   string
	Content string
	Type    model.NotificationType
	IsRead  bool
}

// Read creates the notification already read
func Read() func(*NotificationOpts) {
	return func(o *NotificationOpts) {
		o.IsRead = true
	}
}

// OfType sets the notification type
func OfType(nt model.NotificationType) func(*NotificationOpts) {
	return func(o *NotificationOpts) {
		o.Type = nt
	}
}

// CreateNotification creates a notification for userID
func (f *Factory) CreateNotification(t *testing.T, userID int, opts ...func(*NotificationOpts)) *model.Notification {
	t.Helper()

	o := &NotificationOpts{
		Title: "notice " + randomID(),
		Type:  model.NotificationTypeInfo,
	}
	for _, fn := range opts {
		fn(o)
	}

	n := &model.Notification{
		ID:      f.nextID("notification"),
		UserID:  userID,
		Title:   o.Title,
		Content: o.Content,
		Type:    o.Type,
		IsRead:  o.IsRead,
	}
	f.create(t, "notification", n.ID, map[string]interface{}{
		"user_id": n.UserID,
		"title":   n.Title,
		"content": n.Content,
		"type":    string(n.Type),
		"is_read": n.IsRead,
	})
	return n
}

// createWithTime creates a record whose created_at is set explicitly
func (f *Factory) createWithTime(t *testing.T, table string, id int, createdAt time.Time, content map[string]interface{}) {
	t.Helper()

	query := `
		CREATE ONLY type::thing($table, $id) CONTENT $content;
		UPDATE type::thing($table, $id) SET created_at = <datetime>$created_at;
	`
	vars := map[string]interface{}{
		"table":      table,
		"id":         id,
		"content":    content,
		"created_at": stamp(createdAt),
	}
	if err := f.db.Execute(ctx(t), query, vars); err != nil {
		t.Fatalf("fixtures: failed to create %s:%d: %v", table, id, err)
	}
}
