package audit

import (
	"context"
	"time"

	auditDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/audit"
	"github.com/google/uuid"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Entry is one recorded review decision.
type Entry struct {
	ID             uuid.UUID
	ActorUserID    uuid.UUID
	ActorEmail     string
	LeaveRequestID uuid.UUID
	Action         string
	Entity         string
	CreatedAt      time.Time
}

type Page struct {
	Page       int
	PageSize   int
	TotalCount int64
	Items      []*Entry
}

type RepositoryAPI interface {
	List(ctx context.Context, page, pageSize int) ([]*Entry, int64, error)
}

func FromDataModel(m *auditDatamodel.AuditLog) *Entry {
	return &Entry{
		ID:             m.ID,
		ActorUserID:    m.ActorUserID,
		ActorEmail:     m.ActorEmail,
		LeaveRequestID: m.LeaveRequestID,
		Action:         m.Action,
		Entity:         m.Entity,
		CreatedAt:      m.CreatedAt,
	}
}
