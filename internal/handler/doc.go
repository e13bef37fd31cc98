// Package handler provides HTTP request handlers for the Code Character API.
//
// Each handler struct wraps one service interface (notifications, matches,
// games, accounts) declared in this package, so tests can swap in a mock.
//
// # Handler Pattern
//
//   - Constructor function (NewXxxHandler) accepts the service it serves
//   - Methods handle specific HTTP endpoints and read path values with r.PathValue
//   - Response helpers from response.go standardize output format
//   - Service errors go through MapServiceError and leave as RFC 9457 Problem Details
//
// # Response Format
//
//   - WriteData: single resource wrapped in {"data": ...}
//   - WritePage: one page of a collection with pagination metadata
//   - WriteJSON: raw JSON, used where clients expect a bare body (top matches, game logs)
//   - WriteError: Problem Details error response
//
// # Routes
//
// NewRouter builds the route table on a net/http ServeMux. Authenticated
// routes pass through middleware.Auth; writes that only the match executor
// or an operator may perform are also wrapped in middleware.AdminOnly.
//
//	mux := handler.NewRouter(handler.RouterConfig{
//	    Notifications: handler.NewNotificationHandler(notificationService),
//	    Matches:       handler.NewMatchHandler(matchService),
//	    ...
//	})
package handler
