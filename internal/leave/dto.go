package leave

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/core/common/validation"
	"github.com/google/uuid"
)

// Date is a calendar day. It decodes YYYY-MM-DD or RFC 3339 and encodes YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		*d = NewDate(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q", raw)
	}
	*d = NewDate(t)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

type CreateLeaveDTO struct {
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
	Reason    string `json:"reason"`
}

func (d CreateLeaveDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("startDate", d.StartDate.Time).Required()
	v.Field("endDate", d.EndDate.Time).Required()
	v.Field("reason", strings.TrimSpace(d.Reason)).Required().MaxLength(MaxReasonLength)
	if err := v.Validate(); err != nil {
		return err
	}
	// the range is inclusive, so a single-day leave has equal dates
	if d.EndDate.Before(d.StartDate.Time) {
		return internal.ErrInvalidDateRange
	}
	return nil
}

type ReviewLeaveDTO struct {
	Decision string `json:"decision"`
}

type LeaveResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	UserEmail  string     `json:"userEmail,omitempty"`
	StartDate  Date       `json:"startDate"`
	EndDate    Date       `json:"endDate"`
	Reason     string     `json:"reason"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReviewedAt *time.Time `json:"reviewedAt"`
}

type LeaveListResponse struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalCount int64           `json:"totalCount"`
	Data       []LeaveResponse `json:"data"`
}

func ToResponse(l *LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		UserEmail:  l.UserEmail,
		StartDate:  NewDate(l.StartDate),
		EndDate:    NewDate(l.EndDate),
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt,
		ReviewedAt: l.ReviewedAt,
	}
}

func ToResponses(items []*LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(items))
	for _, l := range items {
		out = append(out, ToResponse(l))
	}
	return out
}

func ToListResponse(p *Page) LeaveListResponse {
	return LeaveListResponse{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		Data:       ToResponses(p.Items),
	}
}
