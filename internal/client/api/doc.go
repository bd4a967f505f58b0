// Package api is the HTTP client for the ForKa forum REST API.
//
// A Client wraps net/http with a transport that injects the bearer access
// token into every request and transparently recovers from expired tokens:
// on a 401 it spends the refresh token exactly once and replays the original
// request exactly once. When refresh is impossible the persisted session is
// purged and the registered expiry callback fires, which is the CLI's
// equivalent of being sent back to the login screen.
//
// Endpoint methods return business errors as *Error values carrying the
// server's reported message verbatim; transport-level failures map to the
// ErrUnavailable sentinel, authentication failures to ErrUnauthorized.
package api
