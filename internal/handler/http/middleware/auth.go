package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/wellura/staff-scheduling-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose bearer token failed verification or is
// not an access token. Token verification itself runs in jwtauth.Verifier,
// which must be mounted before this middleware.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing token")
				return
			}

			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.Unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
