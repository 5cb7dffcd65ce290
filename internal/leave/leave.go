package leave

import (
	"context"
	"strings"
	"time"

	"github.com/frahmantamala/leaveflow/internal"
	leaveDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/leave"
	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxReasonLength = 500
)

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseStatus accepts a known status name in any letter case.
func ParseStatus(raw string) (Status, bool) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected} {
		if strings.EqualFold(raw, string(s)) {
			return s, true
		}
	}
	return "", false
}

// ParseDecision accepts only the two terminal statuses, exactly as spelled.
func ParseDecision(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsTerminal() {
		return "", internal.ErrInvalidDecision
	}
	return s, nil
}

type LeaveRequest struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	UserEmail  string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     Status
	CreatedAt  time.Time
	ReviewedAt *time.Time
}

// ListQuery selects one page of requests, optionally restricted to a status.
type ListQuery struct {
	Page     int
	PageSize int
	Status   *Status
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type Page struct {
	Page       int
	PageSize   int
	TotalCount int64
	Items      []*LeaveRequest
}

// ReviewCommand carries everything the store needs to apply one decision.
type ReviewCommand struct {
	LeaveRequestID uuid.UUID
	Decision       Status
	ActorID        uuid.UUID
	ActorEmail     string
	ReviewedAt     time.Time
}

type RepositoryAPI interface {
	Create(ctx context.Context, req *LeaveRequest) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*LeaveRequest, error)
	List(ctx context.Context, query ListQuery) ([]*LeaveRequest, int64, error)
	// Review transitions a pending request and appends its audit record atomically.
	Review(ctx context.Context, cmd ReviewCommand) (*LeaveRequest, error)
}

func (l *LeaveRequest) ToDataModel() *leaveDatamodel.LeaveRequest {
	return &leaveDatamodel.LeaveRequest{
		ID:         l.ID,
		UserID:     l.UserID,
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,
		Reason:     l.Reason,
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt,
		ReviewedAt: l.ReviewedAt,
	}
}

func FromDataModel(m *leaveDatamodel.LeaveRequest) *LeaveRequest {
	l := &LeaveRequest{
		ID:         m.ID,
		UserID:     m.UserID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		Reason:     m.Reason,
		Status:     Status(m.Status),
		CreatedAt:  m.CreatedAt,
		ReviewedAt: m.ReviewedAt,
	}
	if m.User != nil {
		l.UserEmail = m.User.Email
	}
	return l
}
