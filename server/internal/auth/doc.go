// Package auth provides authentication middleware for bpcalc-server.
//
// APIKey(mode, header, key) wraps an http.Handler and checks the API key in
// the named request header. The server applies it to the operator endpoints
// (/metrics and /ws/stream); the form API stays public.
//
// When mode != "apikey" or key == "", all requests pass through (useful for
// local development with auth disabled). A missing or incorrect key gets a
// 401 with a JSON error body.
package auth
