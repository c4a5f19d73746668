package httputil

import (
	"context"
	"net/http"

	"atrium/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const claimsKey contextKey = "claims"

// WithClaims adds the verified identity claims to the request context
func WithClaims(r *http.Request, claims *models.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsKey, claims)
	return r.WithContext(ctx)
}

// GetClaims retrieves identity claims from the context; nil if not present
func GetClaims(r *http.Request) *models.Claims {
	claims, _ := r.Context().Value(claimsKey).(*models.Claims)
	return claims
}

// GetUserID returns the requester's user id, or "" when unauthenticated
func GetUserID(r *http.Request) string {
	if claims := GetClaims(r); claims != nil {
		return claims.GetUserID()
	}
	return ""
}
