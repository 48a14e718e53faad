package middleware

import (
	"net/http"

	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/auth"
	"github.com/iamitsinghchouhan/bernardino-martin-hvac/internal/transport"
)

const AccessCookieName = "bmh_access"

// AdminAuth admits requests carrying either the operational API key header
// or a valid admin session cookie. All /admin routes except login sit
// behind it.
func AdminAuth(adminKey string, manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" && manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
				return
			}

			if adminKey != "" && r.Header.Get("X-Admin-Key") == adminKey {
				next.ServeHTTP(w, r)
				return
			}

			if manager != nil {
				cookie, err := r.Cookie(AccessCookieName)
				if err == nil && cookie.Value != "" {
					claims, err := manager.Parse(cookie.Value)
					if err == nil && claims.IsAdmin() {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		})
	}
}
