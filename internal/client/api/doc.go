// Package api is the single point through which the console talks to the
// Posko REST API.
//
// # Overview
//
// Client wraps an *http.Client and:
//  1. resolves request paths against a configured base URL
//     (default http://localhost:4000/api);
//  2. attaches "Authorization: Bearer <token>" when the TokenStore holds an
//     access token, read at dispatch time;
//  3. keeps a cookie jar so the server's refresh-token cookie accompanies
//     every call; the client never reads the refresh token itself;
//  4. repairs an expired access token once per request: a 401 triggers a
//     POST /auth/refresh-token, the new token is persisted and the original
//     request is reissued exactly once with it.
//
// # Renewal
//
// A request carries an attempted flag. The first 401 marks it, renews and
// retries; a second 401 is returned as an ordinary *APIError. When renewal
// fails the stored token and profile are cleared and the call fails with a
// *SessionExpiredError wrapping the renewal error, never the original 401.
// Navigating back to login is left to the caller.
//
// Renewals are coalesced: requests that hit 401 while a renewal is already
// in flight wait for it and share its result instead of issuing their own.
//
// # Error Handling
//
// Match with errors.Is / errors.As:
//   - ErrUnavailable: no response (network failure, timeout);
//   - *APIError: non-2xx response, Message carries the server's message;
//   - ErrSessionExpired / *SessionExpiredError: renewal failed;
//   - ErrUnsupportedMethod: method outside GET, POST, PUT, PATCH, DELETE.
//
// The client never logs or swallows errors; it logs dispatches at debug
// level and renewals at info/warn, without token values.
package api
