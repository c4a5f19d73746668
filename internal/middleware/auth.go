package middleware

import (
	"net/http"
	"strings"

	"atrium/internal/auth"
	"atrium/internal/httputil"
)

// Auth validates the bearer token on every request except the health check
// and attaches the verified claims to the request context.
func Auth(verifier auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithClaims(r, claims))
		})
	}
}
