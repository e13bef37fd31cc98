// Package helpers provides common test utilities for API tests.
//
// # JWT Helpers
//
// JWTHelper signs real HS256 tokens and also satisfies the router's token
// validator, so tests exercise the same parsing the server does:
//
//	jwtHelper := helpers.NewJWTHelper(t)
//	token := jwtHelper.GenerateToken(user)
//	expired := jwtHelper.GenerateExpiredToken(user)
//
// # Request Builder
//
//	rr := helpers.NewRequest(t, http.MethodPost, "/match").
//	    WithAuth(jwtHelper, admin).
//	    WithBody(req).
//	    Serve(router)
//
// # Assertions
//
//	helpers.AssertStatus(t, rr, http.StatusOK)
//	helpers.AssertProblemDetails(t, rr, http.StatusNotFound, model.ErrCodeNotFound)
//	helpers.AssertValidationError(t, rr, "title")
//	helpers.AssertRecordNotExists(t, tdb.DB, "notification", 3)
package helpers
