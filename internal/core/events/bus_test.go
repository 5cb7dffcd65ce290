package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var (
		ctx context.Context
		bus *EventBus
		log *slog.Logger
	)

	BeforeEach(func() {
		ctx = context.Background()
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
		bus = NewEventBus(log)
	})

	It("should deliver synchronously to every subscriber of the type", func() {
		var calls int32
		handler := func(_ context.Context, e Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}
		bus.Subscribe(EventTypeLeaveSubmitted, handler)
		bus.Subscribe(EventTypeLeaveSubmitted, handler)
		bus.Subscribe(EventTypeLeaveReviewed, handler)

		err := bus.PublishSync(ctx, NewLeaveSubmittedEvent(uuid.New(), uuid.New(), time.Now(), time.Now()))

		Expect(err).NotTo(HaveOccurred())
		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(2)))
		Expect(bus.HandlerCount(EventTypeLeaveSubmitted)).To(Equal(2))
		Expect(bus.HandlerCount(EventTypeLeaveReviewed)).To(Equal(1))
	})

	It("should ignore events without subscribers", func() {
		Expect(bus.PublishSync(ctx, NewLeaveReviewedEvent(uuid.New(), uuid.New(), "Approved", time.Now()))).To(Succeed())
	})

	It("should run every subscriber and report each failure", func() {
		var calls int32
		bus.Subscribe(EventTypeLeaveReviewed, func(context.Context, Event) error {
			atomic.AddInt32(&calls, 1)
			return errors.New("mailer down")
		})
		bus.Subscribe(EventTypeLeaveReviewed, func(context.Context, Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
		bus.Subscribe(EventTypeLeaveReviewed, func(context.Context, Event) error {
			atomic.AddInt32(&calls, 1)
			return errors.New("webhook timeout")
		})

		err := bus.PublishSync(ctx, NewLeaveReviewedEvent(uuid.New(), uuid.New(), "Rejected", time.Now()))

		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(3)))
		Expect(err).To(MatchError(ContainSubstring("mailer down")))
		Expect(err).To(MatchError(ContainSubstring("webhook timeout")))
	})

	It("should hand subscribers the publisher's context", func() {
		type key struct{}
		var seen interface{}
		bus.Subscribe(EventTypeLeaveSubmitted, func(c context.Context, _ Event) error {
			seen = c.Value(key{})
			return nil
		})

		Expect(bus.PublishSync(context.WithValue(ctx, key{}, "req-1"), NewLeaveSubmittedEvent(uuid.New(), uuid.New(), time.Now(), time.Now()))).To(Succeed())
		Expect(seen).To(Equal("req-1"))
	})
})

var _ = Describe("Leave events", func() {
	It("should carry the review decision and timestamp", func() {
		leaveID, actorID := uuid.New(), uuid.New()
		at := time.Date(2024, 1, 11, 10, 0, 0, 0, time.UTC)

		e := NewLeaveReviewedEvent(leaveID, actorID, "Approved", at)

		Expect(e.EventType()).To(Equal(EventTypeLeaveReviewed))
		Expect(e.OccurredAt()).To(Equal(at))
		Expect(e.Decision).To(Equal("Approved"))
		Expect(e.Payload()).To(HaveKeyWithValue("leave_request_id", leaveID.String()))
		Expect(e.Payload()).To(HaveKeyWithValue("actor_user_id", actorID.String()))
	})

	It("should format submitted dates as calendar days", func() {
		start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

		e := NewLeaveSubmittedEvent(uuid.New(), uuid.New(), start, end)

		Expect(e.Payload()).To(HaveKeyWithValue("start_date", "2024-01-10"))
		Expect(e.Payload()).To(HaveKeyWithValue("end_date", "2024-01-12"))
		Expect(LogHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))(context.Background(), e)).To(Succeed())
	})
})
