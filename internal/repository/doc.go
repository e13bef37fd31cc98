// Package repository implements the data access layer for the Code Character API.
//
// Each repository struct wraps database.Database and handles one table:
// users, matches, games and notifications. Services depend on narrow
// interfaces they declare themselves, so repositories are only referenced
// from cmd/server and their own tests.
//
// # Record Ids
//
// Records use integer keys (notification:7). New ids come from
// SequenceRepository.Next, an atomic UPSERT on sequence:<table> that never
// falls below the highest existing key, so concurrent creates never share
// an id. Creates use CREATE ONLY and surface database.ErrDuplicate if a key
// is taken anyway.
//
// # Conventions
//
//   - Lookups return nil, nil when the record is absent
//   - Status changes are conditional UPDATEs and return nil when the
//     expected current status no longer holds
//   - Lists take offset and limit and, where paged, return the total count
//   - Parameterized queries with $variable syntax, type::thing() for ids
//
// # Testing
//
// Repository tests run against a real SurrealDB via internal/testing/testdb
// and are skipped unless TEST_DB_HOST is set.
package repository
