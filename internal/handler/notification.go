package handler

import (
	"context"
	"net/http"

	"github.com/delta/codecharacter/api/internal/middleware"
	"github.com/delta/codecharacter/api/internal/model"
)

// NotificationService is the notification behaviour the handler needs
type NotificationService interface {
	CreateNotification(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error)
	SetIsReadNotificationByID(ctx context.Context, id int) error
	DeleteNotificationByID(ctx context.Context, id int) error
	DeleteNotificationsByTypeAndUserID(ctx context.Context, notificationType model.NotificationType, userID int) (int, error)
	GetAllNotificationsByUserIDPaginated(ctx context.Context, userID, pageNumber, size int) (*model.Page[*model.Notification], error)
	GetAllUnreadNotificationsByUserIDPaginated(ctx context.Context, userID, pageNumber, size int) (*model.Page[*model.Notification], error)
	GetAllNotificationsByTypeAndUserIDPaginated(ctx context.Context, notificationType model.NotificationType, userID, pageNumber, size int) (*model.Page[*model.Notification], error)
	CheckNotificationAccess(ctx context.Context, userID, notificationID int) (bool, error)
	FindNotificationByID(ctx context.Context, id int) (*model.Notification, bool, error)
}

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	svc NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(svc NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// Create handles POST /notifications (admin)
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateNotificationRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	n, err := h.svc.CreateNotification(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, n)
}

// List handles GET /notifications?page=&size=
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	page, size, pd := pageParams(r)
	if pd != nil {
		WriteError(w, pd)
		return
	}

	result, err := h.svc.GetAllNotificationsByUserIDPaginated(r.Context(), userID, page, size)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WritePage(w, result)
}

// ListUnread handles GET /notifications/unread?page=&size=
func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	page, size, pd := pageParams(r)
	if pd != nil {
		WriteError(w, pd)
		return
	}

	result, err := h.svc.GetAllUnreadNotificationsByUserIDPaginated(r.Context(), userID, page, size)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WritePage(w, result)
}

// ListByType handles GET /notifications/type/{type}?page=&size=
func (h *NotificationHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	notificationType, ok := pathNotificationType(w, r)
	if !ok {
		return
	}
	page, size, pd := pageParams(r)
	if pd != nil {
		WriteError(w, pd)
		return
	}

	result, err := h.svc.GetAllNotificationsByTypeAndUserIDPaginated(r.Context(), notificationType, userID, page, size)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WritePage(w, result)
}

// DeleteByType handles DELETE /notifications/type/{type}
func (h *NotificationHandler) DeleteByType(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	notificationType, ok := pathNotificationType(w, r)
	if !ok {
		return
	}

	deleted, err := h.svc.DeleteNotificationsByTypeAndUserID(r.Context(), notificationType, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// Get handles GET /notifications/{notificationId}
func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	n, found, err := h.svc.FindNotificationByID(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	if !found {
		WriteError(w, model.NewNotFoundError("notification"))
		return
	}
	WriteData(w, http.StatusOK, n)
}

// MarkRead handles PATCH /notifications/{notificationId}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.svc.SetIsReadNotificationByID(r.Context(), id); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}

// Delete handles DELETE /notifications/{notificationId}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteNotificationByID(r.Context(), id); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteNoContent(w)
}

// authorize resolves the path id and checks the caller may touch it.
// Notifications of other users answer 404 so their existence is not revealed.
func (h *NotificationHandler) authorize(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return 0, false
	}
	id, pd := pathID(r, "notificationId")
	if pd != nil {
		WriteError(w, pd)
		return 0, false
	}

	allowed, err := h.svc.CheckNotificationAccess(r.Context(), userID, id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return 0, false
	}
	if !allowed {
		WriteError(w, model.NewNotFoundError("notification"))
		return 0, false
	}
	return id, true
}

func pathNotificationType(w http.ResponseWriter, r *http.Request) (model.NotificationType, bool) {
	t, ok := model.ParseNotificationType(r.PathValue("type"))
	if !ok {
		WriteError(w, model.NewBadRequestError("type must be INFO, SUCCESS, ERROR, MATCH, or PROMO"))
		return "", false
	}
	return t, true
}

// requireUser reads the authenticated user id set by the Auth middleware
func requireUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return 0, false
	}
	return userID, true
}
