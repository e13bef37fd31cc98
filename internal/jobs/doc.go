// Package jobs implements background job processing for the Code Character API.
//
// Jobs run on a ticker independently of HTTP request handling. Each job
// exposes Start and Stop for the server lifecycle and RunOnce for tests
// and manual triggers.
//
// # Job Types
//
//   - MatchSettler: finishes RUNNING matches whose games are all done and
//     notifies both players of the result
//
// # Error Handling
//
// Jobs log errors but don't crash the application. Work left undone is
// picked up on the next tick.
package jobs
