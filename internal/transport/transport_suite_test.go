package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/leaveflow/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTransport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transport Suite")
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var _ = Describe("BaseHandler", func() {
	var h *BaseHandler

	BeforeEach(func() {
		h = NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("should render app errors with their status", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		h.HandleServiceError(rec, req, internal.ErrInsufficientRole)

		Expect(rec.Code).To(Equal(http.StatusForbidden))
		var body errorEnvelope
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Error.Code).To(Equal(string(internal.ErrCodeInsufficientRole)))
	})

	It("should hide unknown errors behind a 500", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		h.HandleServiceError(rec, req, errors.New("pq: relation does not exist"))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).NotTo(ContainSubstring("relation"))
	})

	It("should build errors from a status", func() {
		rec := httptest.NewRecorder()

		h.WriteError(rec, http.StatusNotFound, "route not found")

		var body errorEnvelope
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Error.Type).To(Equal(string(internal.ErrorTypeNotFound)))
		Expect(body.Error.Code).To(Equal("NOT_FOUND"))
	})

	It("should report malformed bodies as validation errors", func() {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
		var dst map[string]string

		appErr := h.DecodeJSON(req, &dst)

		Expect(appErr).NotTo(BeNil())
		Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
	})

	DescribeTable("ExtractTokenFromHeader",
		func(header, expected string) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			Expect(h.ExtractTokenFromHeader(req)).To(Equal(expected))
		},
		Entry("bearer", "Bearer abc.def", "abc.def"),
		Entry("lower case scheme", "bearer abc.def", "abc.def"),
		Entry("basic", "Basic dXNlcg==", ""),
		Entry("missing", "", ""),
	)
})

var _ = DescribeTable("ParsePagination",
	func(query string, page, pageSize int, valid bool) {
		req := httptest.NewRequest(http.MethodGet, "/leaves"+query, nil)

		p, ps, appErr := ParsePagination(req, 1, 10)

		if !valid {
			Expect(errors.Is(appErr, internal.ErrInvalidPagination)).To(BeTrue())
			return
		}
		Expect(appErr).To(BeNil())
		Expect(p).To(Equal(page))
		Expect(ps).To(Equal(pageSize))
	},
	Entry("defaults", "", 1, 10, true),
	Entry("explicit", "?page=3&pageSize=25", 3, 25, true),
	Entry("non numeric", "?page=two", 0, 0, false),
	Entry("zero size", "?pageSize=0", 0, 0, false),
	Entry("negative page", "?page=-2", 0, 0, false),
)
