package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/delta/codecharacter/api/internal/database"
	"github.com/delta/codecharacter/api/internal/model"
)

const notificationFields = `record::id(id) AS id, user_id, title, content, type, is_read`

// NotificationRepository handles notification data access
type NotificationRepository struct {
	db  database.Database
	seq *SequenceRepository
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db database.Database, seq *SequenceRepository) *NotificationRepository {
	return &NotificationRepository{db: db, seq: seq}
}

// Create allocates the next notification id and stores n unread
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	id, err := r.seq.Next(ctx, TableNotification)
	if err != nil {
		return err
	}

	query := `
		CREATE ONLY type::thing('notification', $id) CONTENT {
			user_id: $user_id,
			title: $title,
			content: $content,
			type: $type,
			is_read: false
		}
	`
	vars := map[string]interface{}{
		"id":      id,
		"user_id": n.UserID,
		"title":   n.Title,
		"content": n.Content,
		"type":    string(n.Type),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: notification %d", database.ErrDuplicate, id)
		}
		return fmt.Errorf("failed to create notification: %w", err)
	}

	n.ID = id
	n.IsRead = false
	return nil
}

// GetByID retrieves a notification by id. Returns nil, nil when absent.
func (r *NotificationRepository) GetByID(ctx context.Context, id int) (*model.Notification, error) {
	query := `SELECT ` + notificationFields + ` FROM ONLY type::thing('notification', $id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
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
	return parseNotification(data), nil
}

// MarkRead sets is_read on a notification. Marking twice is harmless.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int) error {
	query := `UPDATE type::thing('notification', $id) SET is_read = true`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// Delete removes a notification by id
func (r *NotificationRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE type::thing('notification', $id)`
	if err := r.db.Execute(ctx, query, map[string]interface{}{"id": id}); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// DeleteByTypeAndUserID removes every notification of type owned by userID
// and returns how many were removed. Zero matches is not an error.
func (r *NotificationRepository) DeleteByTypeAndUserID(ctx context.Context, notificationType model.NotificationType, userID int) (int, error) {
	query := `DELETE notification WHERE type = $type AND user_id = $user_id RETURN BEFORE`
	vars := map[string]interface{}{
		"type":    string(notificationType),
		"user_id": userID,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	return len(statementRows(results, 0)), nil
}

// ListByUserID returns the user's notifications, newest (highest id) first,
// along with the total number of matching notifications.
func (r *NotificationRepository) ListByUserID(ctx context.Context, userID, offset, limit int) ([]*model.Notification, int, error) {
	return r.list(ctx, `user_id = $user_id`, map[string]interface{}{"user_id": userID}, offset, limit)
}

// ListUnreadByUserID is ListByUserID restricted to is_read = false
func (r *NotificationRepository) ListUnreadByUserID(ctx context.Context, userID, offset, limit int) ([]*model.Notification, int, error) {
	return r.list(ctx, `user_id = $user_id AND is_read = false`, map[string]interface{}{"user_id": userID}, offset, limit)
}

// ListByTypeAndUserID is ListByUserID restricted to one notification type
func (r *NotificationRepository) ListByTypeAndUserID(ctx context.Context, notificationType model.NotificationType, userID, offset, limit int) ([]*model.Notification, int, error) {
	vars := map[string]interface{}{
		"user_id": userID,
		"type":    string(notificationType),
	}
	return r.list(ctx, `user_id = $user_id AND type = $type`, vars, offset, limit)
}

// list runs the page query and the count query in one round trip
func (r *NotificationRepository) list(ctx context.Context, where string, vars map[string]interface{}, offset, limit int) ([]*model.Notification, int, error) {
	query := `
		SELECT ` + notificationFields + ` FROM notification
		WHERE ` + where + `
		ORDER BY id DESC
		LIMIT $limit START $offset;
		SELECT count() AS count FROM notification WHERE ` + where + ` GROUP ALL;
	`
	vars["limit"] = limit
	vars["offset"] = offset

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	rows := rowMaps(statementRows(results, 0))
	notifications := make([]*model.Notification, 0, len(rows))
	for _, data := range rows {
		notifications = append(notifications, parseNotification(data))
	}

	return notifications, extractCount(statementRows(results, 1)), nil
}

func parseNotification(data map[string]interface{}) *model.Notification {
	return &model.Notification{
		ID:      getInt(data, "id"),
		UserID:  getInt(data, "user_id"),
		Title:   getString(data, "title"),
		Content: getString(data, "content"),
		Type:    model.NotificationType(getString(data, "type")),
		IsRead:  getBool(data, "is_read"),
	}
}
