package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLeaveSubmitted = "leave.submitted"
	EventTypeLeaveReviewed  = "leave.reviewed"
)

type LeaveSubmittedEvent struct {
	BaseEvent
	LeaveRequestID string `json:"leave_request_id"`
	UserID         string `json:"user_id"`
}

func NewLeaveSubmittedEvent(leaveRequestID, userID uuid.UUID, startDate, endDate time.Time) *LeaveSubmittedEvent {
	return &LeaveSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveSubmitted,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"leave_request_id": leaveRequestID.String(),
				"user_id":          userID.String(),
				"start_date":       startDate.Format(time.DateOnly),
				"end_date":         endDate.Format(time.DateOnly),
			},
		},
		LeaveRequestID: leaveRequestID.String(),
		UserID:         userID.String(),
	}
}

type LeaveReviewedEvent struct {
	BaseEvent
	LeaveRequestID string `json:"leave_request_id"`
	ActorUserID    string `json:"actor_user_id"`
	Decision       string `json:"decision"`
}

func NewLeaveReviewedEvent(leaveRequestID, actorUserID uuid.UUID, decision string, reviewedAt time.Time) *LeaveReviewedEvent {
	return &LeaveReviewedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLeaveReviewed,
			Timestamp: reviewedAt,
			Data: map[string]interface{}{
				"leave_request_id": leaveRequestID.String(),
				"actor_user_id":    actorUserID.String(),
				"decision":         decision,
			},
		},
		LeaveRequestID: leaveRequestID.String(),
		ActorUserID:    actorUserID.String(),
		Decision:       decision,
	}
}

// LogHandler writes every received event to the structured log.
func LogHandler(log *slog.Logger) Handler {
	return func(_ context.Context, event Event) error {
		log.Info("event received",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}
}
