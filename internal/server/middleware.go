package server

import (
	"net/http"
	"os"

	"github.com/formlo/formlo/internal/common"
	"github.com/formlo/formlo/internal/repository"
)

// IdentityMiddleware resolves the calling user from trusted headers set by
// the session layer in front of this service (auth itself is out of scope
// here) and injects the opaque owner id into the request context.
type IdentityMiddleware struct {
	users repository.UserRepository
}

func NewIdentityMiddleware(users repository.UserRepository) *IdentityMiddleware {
	return &IdentityMiddleware{users: users}
}

func (m *IdentityMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			if email := r.Header.Get("X-User-Email"); email != "" && m.users != nil {
				user, err := m.users.UpsertByEmail(r.Context(), email, r.Header.Get("X-User-Name"))
				if err != nil {
					writeError(w, http.StatusInternalServerError, "identity lookup failed")
					return
				}
				userID = user.ID
			}
		}
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(common.WithUserID(r.Context(), userID)))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-User-ID, X-User-Email, X-User-Name")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
