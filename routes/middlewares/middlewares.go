package middlewares

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/oauth"
	"github.com/mbolis/quick-forms/httpx"
	"github.com/mbolis/quick-forms/log"
)

// Admin middleware to check for the 'admin' role in an OAuth token.
func Admin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), admin).Handler(next)
	}
}

func admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(oauth.ClaimsContext).(map[string]string)

		if !hasRole(claims, "admin") {
			httpx.LogStatus(w, r, http.StatusForbidden, log.DebugLevel, "auth.admin.forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func hasRole(claims map[string]string, want string) bool {
	rolesClaim, ok := claims["roles"]
	if !ok {
		return false
	}
	for _, role := range strings.Split(rolesClaim, ",") {
		if strings.TrimSpace(role) == want {
			return true
		}
	}
	return false
}

// RequestLogger writes access logs through the application logger.
func RequestLogger(next http.Handler) http.Handler {
	return middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.Logger,
		NoColor: true,
	})(next)
}
