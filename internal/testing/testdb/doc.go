// Package testdb provides a throwaway SurrealDB namespace for repository tests.
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    repo := repository.NewMatchRepository(tdb.DB, repository.NewSequenceRepository(tdb.DB))
//	}
//
// New skips the test when TEST_DB_HOST is unset. Otherwise it creates a
// unique namespace, applies every migrations/*.surql file in name order and
// drops the namespace again on Close.
//
// Ctx returns a context bounded by the test database timeout. MustExec and
// MustQuery fail the test on any error.
package testdb
