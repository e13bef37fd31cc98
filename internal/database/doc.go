// Package database provides database connectivity for the Code Character API.
//
// The database package wraps the SurrealDB client behind a small interface
// so repositories never touch the driver directly.
//
// # Database Interface
//
//	type Database interface {
//	    Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
//	    QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
//	    Execute(ctx context.Context, query string, vars map[string]interface{}) error
//	    BeginTx(ctx context.Context) (Transaction, error)
//	    Ping(ctx context.Context) error
//	    Close() error
//	}
//
// Query returns one result set per statement, so a multi-statement query
// yields a slice with one entry per statement.
//
// # Connection Management
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    User:      "root",
//	    Password:  "root",
//	    Namespace: "codecharacter",
//	    Database:  "main",
//	})
//	if err := db.Connect(ctx); err != nil { ... }
//	defer db.Close()
//
// # Error Types
//
//   - ErrNotFound: record does not exist
//   - ErrDuplicate: unique index or record id already taken
//   - ErrConflict: write conflict, safe to retry
//   - ErrConnection: database unreachable
//   - ErrQuery: statement failed
package database
