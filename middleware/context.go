package middleware

import (
	"context"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/PooyaTarashi/railway-reservation/auth"
)

// contextKey is a private type for context keys defined in this package
type contextKey string

const claimsContextKey contextKey = "claims"

// WithClaims returns a context carrying the validated token claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// GetClaimsFromContext returns the validated claims, if any.
func GetClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

// GetRequestIDFromContext returns the chi request ID for log correlation.
func GetRequestIDFromContext(ctx context.Context) string {
	return chimiddleware.GetReqID(ctx)
}
