package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/audit"
	"github.com/frahmantamala/leaveflow/internal/auth"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Module Suite")
}

type mockRepository struct {
	entries []*audit.Entry
	err     error
	calls   int
}

func (m *mockRepository) List(_ context.Context, page, pageSize int) ([]*audit.Entry, int64, error) {
	m.calls++
	if m.err != nil {
		return nil, 0, m.err
	}
	start := (page - 1) * pageSize
	if start > len(m.entries) {
		start = len(m.entries)
	}
	end := start + pageSize
	if end > len(m.entries) {
		end = len(m.entries)
	}
	return m.entries[start:end], int64(len(m.entries)), nil
}

var _ = Describe("AuditService", func() {
	var (
		ctx     context.Context
		repo    *mockRepository
		service *audit.Service
		manager *auth.Principal
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = &mockRepository{}
		for i := 0; i < 12; i++ {
			repo.entries = append(repo.entries, &audit.Entry{ID: uuid.New(), Action: "Approved", LeaveRequestID: uuid.New()})
		}
		service = audit.NewService(repo, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
		manager = &auth.Principal{ID: uuid.New(), Email: "boss@example.com", Role: auth.RoleManager}
	})

	It("should return a page with the total count", func() {
		page, err := service.ListAudit(ctx, 2, 10, manager)

		Expect(err).NotTo(HaveOccurred())
		Expect(page.Items).To(HaveLen(2))
		Expect(page.TotalCount).To(Equal(int64(12)))
		Expect(page.Page).To(Equal(2))
		Expect(page.PageSize).To(Equal(10))
	})

	It("should forbid employees without touching the store", func() {
		employee := &auth.Principal{ID: uuid.New(), Role: auth.RoleEmployee}

		_, err := service.ListAudit(ctx, 1, 10, employee)

		Expect(errors.Is(err, internal.ErrInsufficientRole)).To(BeTrue())
		Expect(repo.calls).To(BeZero())
	})

	It("should require a caller", func() {
		_, err := service.ListAudit(ctx, 1, 10, nil)

		Expect(errors.Is(err, internal.ErrMissingToken)).To(BeTrue())
	})

	It("should reject invalid pagination", func() {
		_, err := service.ListAudit(ctx, 0, 10, manager)

		Expect(errors.Is(err, internal.ErrInvalidPagination)).To(BeTrue())
	})

	It("should wrap store failures", func() {
		repo.err = errors.New("connection reset")

		_, err := service.ListAudit(ctx, 1, 10, manager)

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
	})
})
