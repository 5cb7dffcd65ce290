package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityLeaveRequest is the entity tag stored on every review record.
const EntityLeaveRequest = "LeaveRequest"

// AuditLog rows are insert-only.
type AuditLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorUserID    uuid.UUID `gorm:"column:actor_user_id;type:uuid;not null"`
	ActorEmail     string    `gorm:"column:actor_email;size:320;not null"`
	LeaveRequestID uuid.UUID `gorm:"column:leave_request_id;type:uuid;not null;uniqueIndex"`
	Action         string    `gorm:"column:action;size:20;not null"`
	Entity         string    `gorm:"column:entity;size:50;not null;default:LeaveRequest"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Entity == "" {
		a.Entity = EntityLeaveRequest
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return nil
}
