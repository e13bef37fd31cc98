package service

import (
	"context"
	"log/slog"

	"github.com/delta/codecharacter/api/internal/model"
)

// NotificationRepository defines the interface for notification storage.
// List methods return items newest (highest id) first plus the total count.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id int) (*model.Notification, error)
	MarkRead(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	DeleteByTypeAndUserID(ctx context.Context, notificationType model.NotificationType, userID int) (int, error)
	ListByUserID(ctx context.Context, userID, offset, limit int) ([]*model.Notification, int, error)
	ListUnreadByUserID(ctx context.Context, userID, offset, limit int) ([]*model.Notification, int, error)
	ListByTypeAndUserID(ctx context.Context, notificationType model.NotificationType, userID, offset, limit int) ([]*model.Notification, int, error)
}

// UserLookup finds users by id
type UserLookup interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
}

// NotificationService handles notification business logic
type NotificationService struct {
	repo        NotificationRepository
	users       UserLookup
	maxPageSize int
}

// NotificationServiceConfig holds configuration for the notification service
type NotificationServiceConfig struct {
	Repo        NotificationRepository
	Users       UserLookup
	MaxPageSize int
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg NotificationServiceConfig) *NotificationService {
	return &NotificationService{
		repo:        cfg.Repo,
		users:       cfg.Users,
		maxPageSize: maxPageSizeOrDefault(cfg.MaxPageSize),
	}
}

// CreateNotification stores a new unread notification under the next id
func (s *NotificationService) CreateNotification(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if err := validationError(req.Validate()); err != nil {
		return nil, err
	}

	n := &model.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
		Type:    req.Type,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	slog.Info("notification created",
		slog.Int("notification_id", n.ID),
		slog.Int("user_id", n.UserID),
		slog.String("type", string(n.Type)))
	return n, nil
}

// SetIsReadNotificationByID marks a notification read. Already-read
// notifications stay read.
func (s *NotificationService) SetIsReadNotificationByID(ctx context.Context, id int) error {
	if _, err := s.getNotification(ctx, id); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, id)
}

// DeleteNotificationByID removes a notification
func (s *NotificationService) DeleteNotificationByID(ctx context.Context, id int) error {
	if _, err := s.getNotification(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("notification deleted", slog.Int("notification_id", id))
	return nil
}

// DeleteNotificationsByTypeAndUserID removes all of a user's notifications of
// one type and returns how many were removed. Removing none is not an error.
func (s *NotificationService) DeleteNotificationsByTypeAndUserID(ctx context.Context, notificationType model.NotificationType, userID int) (int, error) {
	if !notificationType.IsValid() {
		return 0, ErrInvalidNotificationType
	}
	if userID <= 0 {
		return 0, ErrInvalidUserID
	}

	deleted, err := s.repo.DeleteByTypeAndUserID(ctx, notificationType, userID)
	if err != nil {
		return 0, err
	}

	slog.Info("notifications deleted",
		slog.Int("user_id", userID),
		slog.String("type", string(notificationType)),
		slog.Int("count", deleted))
	return deleted, nil
}

// GetAllNotificationsByUserIDPaginated returns one page of a user's notifications
func (s *NotificationService) GetAllNotificationsByUserIDPaginated(ctx context.Context, userID, pageNumber, size int) (*model.Page[*model.Notification], error) {
	return s.page(pageNumber, size, func(offset, limit int) ([]*model.Notification, int, error) {
		return s.repo.ListByUserID(ctx, userID, offset, limit)
	})
}

// GetAllUnreadNotificationsByUserIDPaginated returns one page of a user's unread notifications
func (s *NotificationService) GetAllUnreadNotificationsByUserIDPaginated(ctx context.Context, userID, pageNumber, size int) (*model.Page[*model.Notification], error) {
	return s.page(pageNumber, size, func(offset, limit int) ([]*model.Notification, int, error) {
		return s.repo.ListUnreadByUserID(ctx, userID, offset, limit)
	})
}

// GetAllNotificationsByTypeAndUserIDPaginated returns one page of a user's notifications of one type
func (s *NotificationService) GetAllNotificationsByTypeAndUserIDPaginated(ctx context.Context, notificationType model.NotificationType, userID, pageNumber, size int) (*model.Page[*model.Notification], error) {
	if !notificationType.IsValid() {
		return nil, ErrInvalidNotificationType
	}
	return s.page(pageNumber, size, func(offset, limit int) ([]*model.Notification, int, error) {
		return s.repo.ListByTypeAndUserID(ctx, notificationType, userID, offset, limit)
	})
}

// CheckNotificationAccess reports whether userID may see notificationID:
// admins may see every notification, other users only their own.
// An absent notification is visible to admins only.
func (s *NotificationService) CheckNotificationAccess(ctx context.Context, userID, notificationID int) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user != nil && user.IsAdmin {
		return true, nil
	}

	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return false, err
	}
	if n == nil {
		return false, nil
	}
	return n.UserID == userID, nil
}

// FindNotificationByID looks a notification up. found is false when it does not exist.
func (s *NotificationService) FindNotificationByID(ctx context.Context, id int) (n *model.Notification, found bool, err error) {
	n, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return n, n != nil, nil
}

func (s *NotificationService) getNotification(ctx context.Context, id int) (*model.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotificationNotFound
	}
	return n, nil
}

// page validates paging input and runs list. A zero size never reaches the store.
func (s *NotificationService) page(pageNumber, size int, list func(offset, limit int) ([]*model.Notification, int, error)) (*model.Page[*model.Notification], error) {
	if err := validatePage(pageNumber, size, s.maxPageSize); err != nil {
		return nil, err
	}
	if size == 0 {
		return model.EmptyPage[*model.Notification](pageNumber, size, 0), nil
	}

	items, total, err := list(model.Offset(pageNumber, size), size)
	if err != nil {
		return nil, err
	}

	return &model.Page[*model.Notification]{
		Items:      items,
		Number:     pageNumber,
		Size:       size,
		TotalItems: total,
	}, nil
}
