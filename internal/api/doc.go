// Package api is the client-side adapter for the point-of-sale backend REST
// API.
//
// The backend lives under a single base path (default "/api") and exposes
// auth, product, settings and analytics resources. All calls go through one
// configured *http.Client whose transport attaches the bearer credential and
// a request id to every outgoing request; the adapter itself never stores the
// token — it reads it per request from a TokenSource, so the session store
// stays the single source of truth.
//
// Path forms are part of the backend contract. Collection endpoints that are
// documented with a trailing slash ("products/", "settings/") must be invoked
// exactly so; the server answers the slash-less variant with a redirect that
// would rewrite a write method, and the adapter refuses to follow redirects
// for that reason.
//
// Errors: transport-level failures and 5xx responses match ErrUnavailable,
// 401/403 match ErrUnauthorized and 404 matches ErrNotFound, all via
// errors.Is. Any non-2xx response is returned as *APIError carrying the
// server-supplied message when the body contains one.
package api
