package middleware

import (
	"net/http"

	"github.com/makehaven/tasks-display/pkg/debug"
	"github.com/makehaven/tasks-display/pkg/jwt"
)

// AdminOnly middleware ensures that only admin users can access the route
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		debug.Debug("Checking admin authorization for %s %s", r.Method, r.URL.Path)

		cookie, err := r.Cookie("token")
		if err != nil {
			debug.Warning("No auth token found in cookies from %s", r.RemoteAddr)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := jwt.ValidateToken(cookie.Value)
		if err != nil {
			debug.Warning("Invalid token from %s: %v", r.RemoteAddr, err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if claims.Role != jwt.RoleAdmin {
			debug.Warning("Non-admin user %s attempted to access admin route (role: %s)", claims.UserID, claims.Role)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		debug.Debug("Admin access granted for user %s", claims.UserID)
		next.ServeHTTP(w, r.WithContext(jwt.WithUserID(r.Context(), claims.UserID)))
	})
}
