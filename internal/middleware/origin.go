package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/makehaven/tasks-display/pkg/debug"
)

// SameOrigin rejects state-changing requests whose Origin header names a host
// other than the one being served. Requests without an Origin pass through.
func SameOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		u, err := url.Parse(origin)
		if err != nil || u.Host == "" || !strings.EqualFold(u.Host, r.Host) {
			debug.Warning("Rejected cross-origin %s from %q", r.Method, origin)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
