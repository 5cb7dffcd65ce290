package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/leaveflow/pkg/logger"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// maxLoggedBody caps how much of a request body is read for logging.
// Leave and auth payloads are a few hundred bytes.
const maxLoggedBody = 4 << 10

// redactedFields are request and response keys whose values never reach the
// log. Register and login bodies carry "password"; login responses carry "token".
var redactedFields = map[string]struct{}{
	"password": {},
	"token":    {},
}

// LoggingMiddleware writes one line when a request arrives and one when it
// completes. Only JSON bodies of writes are logged, with credentials masked;
// Authorization and other headers are never logged.
func LoggingMiddleware(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			log := logger.FromOr(r.Context(), base)

			attrs := []any{"method", r.Method, "path", r.URL.Path}
			if r.URL.RawQuery != "" {
				attrs = append(attrs, "query", r.URL.RawQuery)
			}
			if body := captureBody(r); body != nil {
				attrs = append(attrs, "body", redactBody(body))
			}
			log.Info("request received", attrs...)

			var errBody bytes.Buffer
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&limitedBuffer{buf: &errBody, max: maxLoggedBody})

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			done := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if code := errorCode(errBody.Bytes()); status >= http.StatusBadRequest && code != "" {
				done = append(done, "error_code", code)
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}
			log.Log(r.Context(), level, "request completed", done...)
		})
	}
}

// captureBody reads the body of a JSON write and puts it back for the handler.
func captureBody(r *http.Request) []byte {
	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodDelete {
		return nil
	}
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return nil
	}

	head, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
	r.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(head), r.Body), Closer: r.Body}
	if err != nil || len(head) == 0 {
		return nil
	}
	if len(head) > maxLoggedBody {
		return []byte(`"[body too large]"`)
	}
	return head
}

// redactBody masks redactedFields in a flat JSON object.
func redactBody(body []byte) string {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "[unparsed body omitted]"
	}
	for key := range doc {
		if _, ok := redactedFields[strings.ToLower(key)]; ok {
			doc[key] = "[FILTERED]"
		}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "[unparsed body omitted]"
	}
	return string(out)
}

// errorCode pulls error.code out of an AppError response body.
func errorCode(body []byte) string {
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if len(body) == 0 || json.Unmarshal(body, &resp) != nil {
		return ""
	}
	return resp.Error.Code
}

type readCloser struct {
	io.Reader
	io.Closer
}

// limitedBuffer keeps the first max bytes written and drops the rest.
type limitedBuffer struct {
	buf *bytes.Buffer
	max int
}

func (l *limitedBuffer) Write(p []byte) (int, error) {
	if room := l.max - l.buf.Len(); room > 0 {
		if len(p) > room {
			l.buf.Write(p[:room])
		} else {
			l.buf.Write(p)
		}
	}
	return len(p), nil
}
