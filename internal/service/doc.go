// Package service implements the business rules of the Code Character API.
//
// Each service is built from a config struct holding the narrow repository
// interfaces it needs, declared next to the service that uses them:
//
//	notifications := NewNotificationService(NotificationServiceConfig{
//	    Repo:  notificationRepository,
//	    Users: userRepository,
//	})
//	page, err := notifications.GetAllUnreadNotificationsByUserIDPaginated(ctx, userID, 1, 20)
//
// Repositories report a missing record as (nil, nil). Services turn that into
// sentinel errors such as ErrNotificationNotFound or ErrMatchNotFound, so
// callers never see nil as a stand-in for absence. Bad request input comes
// back as *ValidationError or a pagination sentinel.
//
// Matches move IDLE -> RUNNING -> FINISHED. Every step is a compare-and-set
// in the store, so two concurrent requests cannot both advance a match.
package service
