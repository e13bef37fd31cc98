// Package fixtures provides test data factories for the Code Character API.
//
// Factories write records straight into the test database with sensible
// defaults, so repository tests can set up state the public API cannot
// produce directly (a pinned created_at, a match already FINISHED).
//
// # Factory Pattern
//
// Create a factory over a test database:
//
//	f := fixtures.New(tdb.DB)
//
// # Creating Test Data
//
//	alice := f.CreateUser(t)
//	bob := f.CreateUser(t)
//	m := f.CreateMatch(t, alice, bob, fixtures.Finished(300, 120))
//	f.CreateGame(t, m, fixtures.Executed(300, 120))
//	f.CreateNotification(t, alice.ID, fixtures.OfType(model.NotificationTypeMatch), fixtures.Read())
//
// # Ids
//
// Each table's ids start at 1 per factory. Records created afterwards
// through a repository continue above the highest fixture id.
//
// # Cleanup
//
// Test data is cleaned up when the test database is closed.
package fixtures
