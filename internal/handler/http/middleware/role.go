package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/talenthub-id/ess-gateway-go/internal/domain/auth"
	"github.com/talenthub-id/ess-gateway-go/internal/handler/http/response"
	authservice "github.com/talenthub-id/ess-gateway-go/internal/service/auth"
)

// RequireHR requires the hr role carried in the access token.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrNotPermitted)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != authservice.RoleHR {
			response.HandleError(w, auth.ErrNotPermitted)
			return
		}

		next.ServeHTTP(w, r)
	})
}
