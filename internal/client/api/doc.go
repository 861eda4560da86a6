// Package api is the gateway to the Goowi REST backend.
//
// # Overview
//
// Client lists one method per backend operation (auth, profiles, waves).
// HTTPClient implements it over net/http with JSON bodies:
//
//   - every request carries "Authorization: Bearer <token>" when the token
//     source yields one;
//   - requests are paced by an optional token-bucket limiter;
//   - a 401 response is reported to the UnauthorizedHandler together with the
//     token that was rejected, and surfaces as ErrUnauthorized. The gateway
//     itself never touches session state or navigation.
//
// # Error Handling
//
// Every failure is an *APIError carrying the operation name, HTTP status and
// the backend's "message" field. Its Unwrap exposes one of the sentinels
// ErrUnauthorized, ErrNotFound, ErrValidation, ErrConflict or ErrUnavailable,
// so callers match with errors.Is. Every call returns (data, error); a nil
// error means success.
//
// No call is retried.
package api
