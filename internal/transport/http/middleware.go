package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/light-bringer/cartsync-service/internal/app/cart/domain"
)

type contextKey string

const ownerIDKey contextKey = "ownerID"

// Verifier resolves a bearer token to an owner ID.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// ownerFromContext returns the authenticated owner set by requireAuth.
func ownerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ownerIDKey).(string)
	return owner
}

// requireAuth verifies the bearer credential and stores the owner ID on the
// request context. Requests without a valid credential get a 401.
func requireAuth(verifier Verifier, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondError(w, domain.ErrNotAuthenticated)
				return
			}

			ownerID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.WithError(err).Debug("Credential verification failed")
				respondError(w, domain.ErrNotAuthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests emits one structured line per request.
func logRequests(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   recorder.status,
				"duration": time.Since(start).String(),
			}).Info("Handled request")
		})
	}
}
