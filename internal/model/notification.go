package model

import "strings"

// NotificationType is the category a notification belongs to
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "INFO"
	NotificationTypeSuccess NotificationType = "SUCCESS"
	NotificationTypeError   NotificationType = "ERROR"
	NotificationTypeMatch   NotificationType = "MATCH"
	NotificationTypePromo   NotificationType = "PROMO"
)

// Validation constants
const (
	MaxNotificationTitleLength   = 200
	MaxNotificationContentLength = 2000
)

// IsValid reports whether t is one of the known notification types
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeSuccess, NotificationTypeError,
		NotificationTypeMatch, NotificationTypePromo:
		return true
	}
	return false
}

// ParseNotificationType accepts the type case-insensitively, as it appears in URLs
func ParseNotificationType(s string) (NotificationType, bool) {
	t := NotificationType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// Notification is a message addressed to a single user
type Notification struct {
	ID      int              `json:"id"`
	UserID  int              `json:"user_id"`
	Title   string           `json:"title"`
	Content string           `json:"content"`
	Type    NotificationType `json:"type"`
	IsRead  bool             `json:"is_read"`
}

// CreateNotificationRequest represents a request to notify a user
type CreateNotificationRequest struct {
	UserID  int              `json:"user_id"`
	Title   string           `json:"title"`
	Content string           `json:"content"`
	Type    NotificationType `json:"type"`
}

// Validate validates the create notification request
func (r *CreateNotificationRequest) Validate() []FieldError {
	var errors []FieldError

	if r.UserID <= 0 {
		errors = append(errors, FieldError{Field: "user_id", Message: "user_id must be a positive integer"})
	}
	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > MaxNotificationTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title must be 200 characters or less"})
	}
	if len(r.Content) > MaxNotificationContentLength {
		errors = append(errors, FieldError{Field: "content", Message: "content must be 2000 characters or less"})
	}
	if r.Type == "" {
		errors = append(errors, FieldError{Field: "type", Message: "type is required"})
	} else if !r.Type.IsValid() {
		errors = append(errors, FieldError{Field: "type", Message: "type must be INFO, SUCCESS, ERROR, MATCH, or PROMO"})
	}

	return errors
}
