package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"eventcatalog/internal/delivery/http/helpers"
	"eventcatalog/internal/domain"
	"eventcatalog/pkg/logattr"
)

type contextKey string

const organizerIDKey contextKey = "organizerID"

// SetOrganizerID returns a context with the organizer ID set. Used by auth middleware.
func SetOrganizerID(ctx context.Context, organizerID domain.OrganizerID) context.Context {
	return context.WithValue(ctx, organizerIDKey, organizerID)
}

// OrganizerIDFromContext returns the authenticated organizer ID from the context, if present.
func OrganizerIDFromContext(ctx context.Context) (domain.OrganizerID, bool) {
	id, ok := ctx.Value(organizerIDKey).(domain.OrganizerID)
	return id, ok && id != ""
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the organizer ID
// in the request context. If the token is missing or invalid, it responds with 401 and
// does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing token")
				return
			}
			organizerID, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected",
					slog.String("path", r.URL.Path),
					logattr.Error(err.Error()))
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetOrganizerID(r.Context(), organizerID)))
		}
	}
}
