// Package auth carries the externally verified caller identity through
// the request context. The execution environment in front of this API
// authenticates addresses; this package only transports them.
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// CallerHeader is the header the fronting environment sets after
// verifying the caller's address.
const CallerHeader = "X-Caller-Address"

type contextKey string

const callerKey contextKey = "caller_address"

// WithCaller returns a context carrying addr as the caller identity.
func WithCaller(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, callerKey, addr)
}

// CallerFromContext returns the caller address, if any.
func CallerFromContext(ctx context.Context) (string, bool) {
	addr, ok := ctx.Value(callerKey).(string)
	return addr, ok && addr != ""
}

// ValidAddress reports whether addr is usable as a caller identity.
// Verification of authenticity is the environment's job; this only
// rejects obviously malformed values.
func ValidAddress(addr string) bool {
	if addr == "" || len(addr) > 128 {
		return false
	}
	return strings.TrimSpace(addr) == addr
}

// RequireCaller is middleware that extracts the caller address from
// CallerHeader and stores it in the request context. Requests without a
// usable address are rejected with 401.
func RequireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := r.Header.Get(CallerHeader)
		if !ValidAddress(addr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), addr)))
	})
}
