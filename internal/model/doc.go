// Package model defines domain entities and data structures for the Code Character API.
//
// The model package contains the struct definitions for domain objects,
// request/response types and error definitions shared by every layer.
//
// # Domain Entities
//
//   - User: player account with login credentials and an admin flag
//   - Match: a contest between two players (IDLE -> RUNNING -> FINISHED)
//   - Game: one round of a match on a single map, with its own log
//   - Notification: a message addressed to one user
//
// Ids are positive integers allocated by the store.
//
// # Validation
//
// Request types expose Validate() []FieldError; handlers turn a non-empty
// result into a 422 problem response.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go.
package model
