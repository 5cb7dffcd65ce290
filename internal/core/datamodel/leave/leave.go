package leave

import (
	"time"

	userDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	User       *userDatamodel.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	StartDate  time.Time           `gorm:"column:start_date;type:date;not null"`
	EndDate    time.Time           `gorm:"column:end_date;type:date;not null"`
	Reason     string              `gorm:"column:reason;type:text;not null"`
	Status     string              `gorm:"column:status;size:20;not null;default:Pending;index"`
	CreatedAt  time.Time           `gorm:"column:created_at;not null;index"`
	ReviewedAt *time.Time          `gorm:"column:reviewed_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l *LeaveRequest) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return nil
}
