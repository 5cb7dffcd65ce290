package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type stubService struct {
	principal *Principal
	err       error
}

func (s *stubService) Register(context.Context, RegisterDTO) (*User, error) { return nil, s.err }
func (s *stubService) Login(context.Context, LoginDTO) (*LoginResponse, error) {
	return &LoginResponse{Token: "t", ExpiresAt: time.Now()}, s.err
}
func (s *stubService) ValidateAccessToken(string) (*Principal, error) { return s.principal, s.err }

var _ = ginkgo.Describe("Handler middleware", func() {
	var (
		log     *slog.Logger
		stub    *stubService
		handler *Handler
		seen    *Principal
		next    http.Handler
	)

	ginkgo.BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
		stub = &stubService{principal: &Principal{ID: uuid.New(), Email: "emp@example.com", Role: RoleEmployee}}
		handler = NewHandler(stub, log)
		seen = nil
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = UserFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})
	})

	serve := func(h http.Handler, token string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/leaves", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		h.ServeHTTP(rec, req)
		return rec
	}

	ginkgo.It("should place the principal on the context", func() {
		rec := serve(handler.AuthMiddleware(next), "valid")

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
		gomega.Expect(seen).NotTo(gomega.BeNil())
		gomega.Expect(seen.Email).To(gomega.Equal("emp@example.com"))
	})

	ginkgo.It("should reject requests without a token", func() {
		rec := serve(handler.AuthMiddleware(next), "")

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("MISSING_TOKEN"))
		gomega.Expect(seen).To(gomega.BeNil())
	})

	ginkgo.It("should forbid employees on manager routes", func() {
		rbac := NewRBACAuthorization(log)

		rec := serve(handler.AuthMiddleware(rbac.RequireManager()(next)), "valid")

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(seen).To(gomega.BeNil())
	})

	ginkgo.It("should admit managers on manager routes", func() {
		stub.principal.Role = RoleManager
		rbac := NewRBACAuthorization(log)

		rec := serve(handler.AuthMiddleware(rbac.RequireManager()(next)), "valid")

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
		gomega.Expect(seen.Role).To(gomega.Equal(RoleManager))
	})
})
