package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leaveflow/pkg/logger"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the id assigned by chi's RequestID middleware, or mints a
// uuid, and attaches it to the response and to a request logger derived from base.
func RequestID(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = logger.LoggerWrapper()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chiMiddleware.GetReqID(r.Context())
			if reqID == "" {
				reqID = r.Header.Get(RequestIDHeader)
			}
			if reqID == "" {
				reqID = uuid.NewString()
			}

			ctx := logger.WithOr(r.Context(), base, "request_id", reqID)
			w.Header().Set(RequestIDHeader, reqID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
