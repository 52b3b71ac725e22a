package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

type contextKey string

const subjectKey contextKey = "tokenSubject"

// SetSubject returns a context carrying the verified token subject.
func SetSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromContext returns the verified token subject, if present.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}

// RequireToken returns a wrapper that validates the Bearer token and checks its subject.
// A nil verifier disables the check. On failure it responds with 401 and does not call next.
func RequireToken(verifier domain.TokenVerifier, subject string, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if verifier == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized", "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized", "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized", "missing token")
				return
			}
			got, err := verifier.Verify(token)
			if err != nil || got != subject {
				logger.WarnContext(r.Context(), "rejected token", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetSubject(r.Context(), got)))
		}
	}
}
