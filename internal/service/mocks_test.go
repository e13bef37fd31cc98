package service

import (
	"context"
	"sort"
	"sync"

	"github.com/delta/codecharacter/api/internal/model"
)

// ============================================================================
// In-memory Notification Store
// ============================================================================

// memNotificationRepo mirrors NotificationRepository semantics in memory:
// ids are max+1, lists are id-descending with a total count.
type memNotificationRepo struct {
	mu    sync.Mutex
	items map[int]*model.Notification

	listCalls int
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{items: make(map[int]*model.Notification)}
}

func (m *memNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	maxID := 0
	for id := range m.items {
		if id > maxID {
			maxID = id
		}
	}
	n.ID = maxID + 1
	n.IsRead = false
	stored := *n
	m.items[n.ID] = &stored
	return nil
}

func (m *memNotificationRepo) GetByID(ctx context.Context, id int) (*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	out := *n
	return &out, nil
}

func (m *memNotificationRepo) MarkRead(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.items[id]; ok {
		n.IsRead = true
	}
	return nil
}

func (m *memNotificationRepo) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func (m *memNotificationRepo) DeleteByTypeAndUserID(ctx context.Context, t model.NotificationType, userID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := 0
	for id, n := range m.items {
		if n.Type == t && n.UserID == userID {
			delete(m.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memNotificationRepo) ListByUserID(ctx context.Context, userID, offset, limit int) ([]*model.Notification, int, error) {
	return m.list(offset, limit, func(n *model.Notification) bool { return n.UserID == userID })
}

func (m *memNotificationRepo) ListUnreadByUserID(ctx context.Context, userID, offset, limit int) ([]*model.Notification, int, error) {
	return m.list(offset, limit, func(n *model.Notification) bool { return n.UserID == userID && !n.IsRead })
}

func (m *memNotificationRepo) ListByTypeAndUserID(ctx context.Context, t model.NotificationType, userID, offset, limit int) ([]*model.Notification, int, error) {
	return m.list(offset, limit, func(n *model.Notification) bool { return n.UserID == userID && n.Type == t })
}

func (m *memNotificationRepo) list(offset, limit int, keep func(*model.Notification) bool) ([]*model.Notification, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++

	var all []*model.Notification
	for _, n := range m.items {
		if keep(n) {
			out := *n
			all = append(all, &out)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := len(all)
	if offset >= total {
		return []*model.Notification{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	createFunc        func(ctx context.Context, user *model.User) error
	getByIDFunc       func(ctx context.Context, id int) (*model.User, error)
	getByIDsFunc      func(ctx context.Context, ids []int) (map[int]*model.User, error)
	getByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []int) (map[int]*model.User, error) {
	if m.getByIDsFunc != nil {
		return m.getByIDsFunc(ctx, ids)
	}
	return map[int]*model.User{}, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, nil
}

// usersByID answers GetByID/GetByIDs from a fixed set
func usersByID(users ...*model.User) *mockUserRepo {
	byID := make(map[int]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id int) (*model.User, error) {
			return byID[id], nil
		},
		getByIDsFunc: func(ctx context.Context, ids []int) (map[int]*model.User, error) {
			out := make(map[int]*model.User)
			for _, id := range ids {
				if u, ok := byID[id]; ok {
					out[id] = u
				}
			}
			return out, nil
		},
	}
}

type mockMatchRepo struct {
	createFunc          func(ctx context.Context, m *model.Match, mapIDs []int) ([]*model.Game, error)
	getByIDFunc         func(ctx context.Context, id int) (*model.Match, error)
	transitionFunc      func(ctx context.Context, id int, from, to model.MatchStatus) (*model.Match, error)
	finishFunc          func(ctx context.Context, id, score1, score2 int, verdict model.Verdict) (*model.Match, error)
	listTopFinishedFunc func(ctx context.Context, offset, limit int) ([]*model.Match, error)
	listByStatusFunc    func(ctx context.Context, status model.MatchStatus, afterID, limit int) ([]*model.Match, error)
}

func (m *mockMatchRepo) Create(ctx context.Context, match *model.Match, mapIDs []int) ([]*model.Game, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, match, mapIDs)
	}
	match.ID = 1
	return nil, nil
}

func (m *mockMatchRepo) GetByID(ctx context.Context, id int) (*model.Match, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockMatchRepo) TransitionStatus(ctx context.Context, id int, from, to model.MatchStatus) (*model.Match, error) {
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, id, from, to)
	}
	return nil, nil
}

func (m *mockMatchRepo) Finish(ctx context.Context, id, score1, score2 int, verdict model.Verdict) (*model.Match, error) {
	if m.finishFunc != nil {
		return m.finishFunc(ctx, id, score1, score2, verdict)
	}
	return nil, nil
}

func (m *mockMatchRepo) ListTopFinished(ctx context.Context, offset, limit int) ([]*model.Match, error) {
	if m.listTopFinishedFunc != nil {
		return m.listTopFinishedFunc(ctx, offset, limit)
	}
	return nil, nil
}

func (m *mockMatchRepo) ListByStatus(ctx context.Context, status model.MatchStatus, afterID, limit int) ([]*model.Match, error) {
	if m.listByStatusFunc != nil {
		return m.listByStatusFunc(ctx, status, afterID, limit)
	}
	return nil, nil
}

type mockGameRepo struct {
	getByIDFunc        func(ctx context.Context, id int) (*model.Game, error)
	updateResultFunc   func(ctx context.Context, game *model.Game) error
	listByMatchIDsFunc func(ctx context.Context, matchIDs []int) (map[int][]*model.Game, error)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id int) (*model.Game, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockGameRepo) UpdateResult(ctx context.Context, game *model.Game) error {
	if m.updateResultFunc != nil {
		return m.updateResultFunc(ctx, game)
	}
	return nil
}

func (m *mockGameRepo) ListByMatchIDs(ctx context.Context, matchIDs []int) (map[int][]*model.Game, error) {
	if m.listByMatchIDsFunc != nil {
		return m.listByMatchIDsFunc(ctx, matchIDs)
	}
	return map[int][]*model.Game{}, nil
}

type mockLogStore struct {
	getFunc func(ctx context.Context, gameID int) (*model.LogDetails, error)
	putFunc func(ctx context.Context, gameID int, details *model.LogDetails) error
}

func (m *mockLogStore) GetGameLog(ctx context.Context, gameID int) (*model.LogDetails, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, gameID)
	}
	return nil, nil
}

func (m *mockLogStore) PutGameLog(ctx context.Context, gameID int, details *model.LogDetails) error {
	if m.putFunc != nil {
		return m.putFunc(ctx, gameID, details)
	}
	return nil
}
