package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/frahmantamala/leaveflow/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

var _ = Describe("RequestID", func() {
	It("should echo a caller supplied id", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-123")

		RequestID(discard)(okHandler).ServeHTTP(rec, req)

		Expect(rec.Header().Get(RequestIDHeader)).To(Equal("req-123"))
	})

	It("should mint an id when none is present", func() {
		rec := httptest.NewRecorder()

		RequestID(discard)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(rec.Header().Get(RequestIDHeader)).NotTo(BeEmpty())
	})

	It("should attach the id to the request logger", func() {
		var buf bytes.Buffer
		base := slog.New(slog.NewJSONHandler(&buf, nil))
		handler := RequestID(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.FromOr(r.Context(), slog.Default()).Info("inside")
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-456")

		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(buf.String()).To(ContainSubstring(`"request_id":"req-456"`))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("should turn a panic into a JSON 500", func() {
		rec := httptest.NewRecorder()
		handler := RecoveryMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("kaboom")
		}))

		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).To(ContainSubstring("INTERNAL_ERROR"))
		Expect(rec.Body.String()).NotTo(ContainSubstring("kaboom"))
	})
})

var _ = Describe("Timeout", func() {
	It("should bound the request context", func() {
		var deadline time.Time
		handler := Timeout(2 * time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			deadline, _ = r.Context().Deadline()
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(time.Until(deadline)).To(BeNumerically("<=", 2*time.Second))
		Expect(deadline.IsZero()).To(BeFalse())
	})
})

var _ = Describe("CORS", func() {
	It("should answer preflight requests from allowed origins", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/leaves", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

		CORS(nil)(okHandler).ServeHTTP(rec, req)

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:5173"))
	})
})

var _ = Describe("LoggingMiddleware", func() {
	var buf bytes.Buffer

	BeforeEach(func() {
		buf.Reset()
	})

	serve := func(h http.Handler, req *http.Request) {
		LoggingMiddleware(slog.New(slog.NewTextHandler(&buf, nil)))(h).ServeHTTP(httptest.NewRecorder(), req)
	}

	It("should mask credentials in auth bodies and never log headers", func() {
		var seen string
		echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			seen = string(raw)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"eyJhbGciOi","expiresAt":"2024-01-01T00:00:00Z"}`))
		})
		body := `{"email":"a@example.com","password":"hunter22"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer secret-token")

		serve(echo, req)

		Expect(seen).To(Equal(body))
		Expect(buf.String()).To(ContainSubstring("a@example.com"))
		Expect(buf.String()).NotTo(ContainSubstring("hunter22"))
		Expect(buf.String()).NotTo(ContainSubstring("secret-token"))
		Expect(buf.String()).NotTo(ContainSubstring("eyJhbGciOi"))
	})

	It("should record the error code of failed requests", func() {
		reject := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"type":"INVALID_STATE","code":"LEAVE_ALREADY_REVIEWED","message":"Only pending requests can be reviewed"}}`))
		})
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/leaves/abc/review", strings.NewReader(`{"decision":"Approved"}`))

		serve(reject, req)

		Expect(buf.String()).To(ContainSubstring("status=400"))
		Expect(buf.String()).To(ContainSubstring("error_code=LEAVE_ALREADY_REVIEWED"))
		Expect(buf.String()).To(ContainSubstring("level=WARN"))
	})

	It("should not read bodies of reads", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leaves?page=2", nil)

		serve(okHandler, req)

		Expect(buf.String()).To(ContainSubstring("page=2"))
		Expect(buf.String()).NotTo(ContainSubstring("body="))
	})

	DescribeTable("redactBody",
		func(body, expected string) {
			Expect(redactBody([]byte(body))).To(Equal(expected))
		},
		Entry("register", `{"email":"a@example.com","password":"pw","role":"Manager"}`, `{"email":"a@example.com","password":"[FILTERED]","role":"Manager"}`),
		Entry("review", `{"decision":"Rejected"}`, `{"decision":"Rejected"}`),
		Entry("not json", `password=pw`, "[unparsed body omitted]"),
	)
})
