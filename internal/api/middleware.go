package api

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const adminIDKey ctxKey = 0

// RequireAdmin gates admin routes on the X-Admin-Id header or a bearer token
// set by the frontend after PIN verification. The identity string is trusted
// as-is; a production deployment would validate a signed token here instead.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID := r.Header.Get("X-Admin-Id")
		if adminID == "" {
			adminID = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		}
		if adminID == "" {
			respondError(w, http.StatusForbidden, "Akses admin diperlukan")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminIDKey, adminID)))
	})
}

func adminID(r *http.Request) string {
	if id, ok := r.Context().Value(adminIDKey).(string); ok && id != "" {
		return id
	}
	return "system"
}
