package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/delta/codecharacter/api/internal/middleware"
	"github.com/delta/codecharacter/api/internal/model"
)

// ============================================================================
// Mock Services
// ============================================================================

type mockNotificationService struct {
	createFunc       func(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error)
	markReadFunc     func(ctx context.Context, id int) error
	deleteFunc       func(ctx context.Context, id int) error
	deleteByTypeFunc func(ctx context.Context, t model.NotificationType, userID int) (int, error)
	listFunc         func(ctx context.Context, userID, page, size int) (*model.Page[*model.Notification], error)
	listUnreadFunc   func(ctx context.Context, userID, page, size int) (*model.Page[*model.Notification], error)
	listByTypeFunc   func(ctx context.Context, t model.NotificationType, userID, page, size int) (*model.Page[*model.Notification], error)
	accessFunc       func(ctx context.Context, userID, notificationID int) (bool, error)
	findFunc         func(ctx context.Context, id int) (*model.Notification, bool, error)
}

func (m *mockNotificationService) CreateNotification(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockNotificationService) SetIsReadNotificationByID(ctx context.Context, id int) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, id)
	}
	return nil
}

func (m *mockNotificationService) DeleteNotificationByID(ctx context.Context, id int) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockNotificationService) DeleteNotificationsByTypeAndUserID(ctx context.Context, t model.NotificationType, userID int) (int, error) {
	if m.deleteByTypeFunc != nil {
		return m.deleteByTypeFunc(ctx, t, userID)
	}
	return 0, nil
}

func (m *mockNotificationService) GetAllNotificationsByUserIDPaginated(ctx context.Context, userID, page, size int) (*model.Page[*model.Notification], error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, page, size)
	}
	return model.EmptyPage[*model.Notification](page, size, 0), nil
}

func (m *mockNotificationService) GetAllUnreadNotificationsByUserIDPaginated(ctx context.Context, userID, page, size int) (*model.Page[*model.Notification], error) {
	if m.listUnreadFunc != nil {
		return m.listUnreadFunc(ctx, userID, page, size)
	}
	return model.EmptyPage[*model.Notification](page, size, 0), nil
}

func (m *mockNotificationService) GetAllNotificationsByTypeAndUserIDPaginated(ctx context.Context, t model.NotificationType, userID, page, size int) (*model.Page[*model.Notification], error) {
	if m.listByTypeFunc != nil {
		return m.listByTypeFunc(ctx, t, userID, page, size)
	}
	return model.EmptyPage[*model.Notification](page, size, 0), nil
}

func (m *mockNotificationService) CheckNotificationAccess(ctx context.Context, userID, notificationID int) (bool, error) {
	if m.accessFunc != nil {
		return m.accessFunc(ctx, userID, notificationID)
	}
	return true, nil
}

func (m *mockNotificationService) FindNotificationByID(ctx context.Context, id int) (*model.Notification, bool, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, id)
	}
	return nil, false, nil
}

type mockMatchService struct {
	topFunc    func(ctx context.Context, pageNo, pageSize int) ([]*model.MatchResponse, error)
	getFunc    func(ctx context.Context, id int) (*model.Match, error)
	createFunc func(ctx context.Context, req *model.CreateMatchRequest) (*model.Match, []*model.Game, error)
	startFunc  func(ctx context.Context, id int) (*model.Match, error)
	finishFunc func(ctx context.Context, id, score1, score2 int) (*model.Match, error)
}

func (m *mockMatchService) GetTopMatches(ctx context.Context, pageNo, pageSize int) ([]*model.MatchResponse, error) {
	if m.topFunc != nil {
		return m.topFunc(ctx, pageNo, pageSize)
	}
	return []*model.MatchResponse{}, nil
}

func (m *mockMatchService) GetMatch(ctx context.Context, id int) (*model.Match, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockMatchService) CreateMatch(ctx context.Context, req *model.CreateMatchRequest) (*model.Match, []*model.Game, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, nil, nil
}

func (m *mockMatchService) StartMatch(ctx context.Context, id int) (*model.Match, error) {
	if m.startFunc != nil {
		return m.startFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockMatchService) FinishMatch(ctx context.Context, id, score1, score2 int) (*model.Match, error) {
	if m.finishFunc != nil {
		return m.finishFunc(ctx, id, score1, score2)
	}
	return nil, nil
}

type mockGameService struct {
	getLogFunc   func(ctx context.Context, gameID int) (*model.LogDetails, error)
	storeLogFunc func(ctx context.Context, gameID int, details *model.LogDetails) error
	resultFunc   func(ctx context.Context, gameID int, req *model.GameResultRequest) (*model.Game, error)
}

func (m *mockGameService) GetGameLog(ctx context.Context, gameID int) (*model.LogDetails, error) {
	if m.getLogFunc != nil {
		return m.getLogFunc(ctx, gameID)
	}
	return nil, nil
}

func (m *mockGameService) StoreGameLog(ctx context.Context, gameID int, details *model.LogDetails) error {
	if m.storeLogFunc != nil {
		return m.storeLogFunc(ctx, gameID, details)
	}
	return nil
}

func (m *mockGameService) RecordGameResult(ctx context.Context, gameID int, req *model.GameResultRequest) (*model.Game, error) {
	if m.resultFunc != nil {
		return m.resultFunc(ctx, gameID, req)
	}
	return nil, nil
}

type mockAuthService struct {
	registerFunc func(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	loginFunc    func(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	meFunc       func(ctx context.Context, userID int) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, nil
}

func (m *mockAuthService) Me(ctx context.Context, userID int) (*model.User, error) {
	if m.meFunc != nil {
		return m.meFunc(ctx, userID)
	}
	return nil, nil
}

// stubTokens maps fixed token strings to claims
type stubTokens map[string]*model.TokenClaims

func (s stubTokens) ValidateAccessToken(token string) (*model.TokenClaims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("unknown token")
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// ============================================================================
// Test Router
// ============================================================================

const (
	playerToken = "player-token"
	otherToken  = "other-token"
	adminToken  = "admin-token"
)

type testServices struct {
	notifications *mockNotificationService
	matches       *mockMatchService
	games         *mockGameService
	auth          *mockAuthService
	pings         map[string]Pinger
}

func newTestRouter(t *testing.T, svcs testServices) http.Handler {
	t.Helper()
	if svcs.notifications == nil {
		svcs.notifications = &mockNotificationService{}
	}
	if svcs.matches == nil {
		svcs.matches = &mockMatchService{}
	}
	if svcs.games == nil {
		svcs.games = &mockGameService{}
	}
	if svcs.auth == nil {
		svcs.auth = &mockAuthService{}
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{Limit: 3, Period: time.Minute})
	store := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{})
	t.Cleanup(limiter.Stop)
	t.Cleanup(store.Stop)

	return NewRouter(RouterConfig{
		Auth:          NewAuthHandler(svcs.auth),
		Notifications: NewNotificationHandler(svcs.notifications),
		Matches:       NewMatchHandler(svcs.matches),
		Games:         NewGameHandler(svcs.games),
		Health:        NewHealthHandler(svcs.pings),
		Tokens: stubTokens{
			playerToken: {UserID: 42, Username: "player"},
			otherToken:  {UserID: 7, Username: "other"},
			adminToken:  {UserID: 1, Username: "admin", IsAdmin: true},
		},
		LoginLimit:  limiter,
		Idempotency: store,
	})
}

// do sends a request through router with an optional bearer token
func do(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode body %q: %v", rr.Body.String(), err)
	}
	return v
}

type dataEnvelope[T any] struct {
	Data T `json:"data"`
}
