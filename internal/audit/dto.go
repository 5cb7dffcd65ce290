package audit

import (
	"time"

	"github.com/google/uuid"
)

type EntryResponse struct {
	ID             uuid.UUID `json:"id"`
	ActorUserID    uuid.UUID `json:"actorUserId"`
	ActorEmail     string    `json:"actorEmail"`
	LeaveRequestID uuid.UUID `json:"leaveRequestId"`
	Action         string    `json:"action"`
	Entity         string    `json:"entity"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ListResponse struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalCount int64           `json:"totalCount"`
	Data       []EntryResponse `json:"data"`
}

func ToListResponse(p *Page) ListResponse {
	data := make([]EntryResponse, 0, len(p.Items))
	for _, e := range p.Items {
		data = append(data, EntryResponse{
			ID:             e.ID,
			ActorUserID:    e.ActorUserID,
			ActorEmail:     e.ActorEmail,
			LeaveRequestID: e.LeaveRequestID,
			Action:         e.Action,
			Entity:         e.Entity,
			CreatedAt:      e.CreatedAt,
		})
	}
	return ListResponse{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		Data:       data,
	}
}
