package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/leaveflow/internal"
	auditDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/audit"
	leaveDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/leave"
	"github.com/frahmantamala/leaveflow/internal/leave"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveRepository implements leave.RepositoryAPI using GORM
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(ctx context.Context, req *leave.LeaveRequest) error {
	model := req.ToDataModel()
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	req.ID = model.ID
	req.CreatedAt = model.CreatedAt
	return nil
}

// ListByUser retrieves every request owned by userID, newest first.
func (r *LeaveRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*leave.LeaveRequest, error) {
	var models []*leaveDatamodel.LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(models), nil
}

// List returns one page of requests plus the total matching count.
func (r *LeaveRepository) List(ctx context.Context, query leave.ListQuery) ([]*leave.LeaveRequest, int64, error) {
	base := r.db.WithContext(ctx).Model(&leaveDatamodel.LeaveRequest{})
	if query.Status != nil {
		base = base.Where("status = ?", string(*query.Status))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []*leaveDatamodel.LeaveRequest
	err := base.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at DESC").
		Limit(query.PageSize).
		Offset(query.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	return fromDataModels(models), total, nil
}

// Review updates the status and inserts the audit row in one transaction.
// The update is conditional on the row still being Pending so that only one
// of two concurrent reviews can win.
func (r *LeaveRepository) Review(ctx context.Context, cmd leave.ReviewCommand) (*leave.LeaveRequest, error) {
	var updated leaveDatamodel.LeaveRequest

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current leaveDatamodel.LeaveRequest
		if err := tx.Where("id = ?", cmd.LeaveRequestID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrLeaveNotFound
			}
			return err
		}
		if leave.Status(current.Status) != leave.StatusPending {
			return internal.ErrLeaveAlreadyReviewed
		}

		reviewedAt := cmd.ReviewedAt
		res := tx.Model(&leaveDatamodel.LeaveRequest{}).
			Where("id = ? AND status = ?", cmd.LeaveRequestID, string(leave.StatusPending)).
			Updates(map[string]interface{}{
				"status":      string(cmd.Decision),
				"reviewed_at": reviewedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrLeaveAlreadyReviewed
		}

		entry := &auditDatamodel.AuditLog{
			ActorUserID:    cmd.ActorID,
			ActorEmail:     cmd.ActorEmail,
			LeaveRequestID: cmd.LeaveRequestID,
			Action:         string(cmd.Decision),
			Entity:         auditDatamodel.EntityLeaveRequest,
			CreatedAt:      reviewedAt,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return tx.Preload("User").Where("id = ?", cmd.LeaveRequestID).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return leave.FromDataModel(&updated), nil
}

func fromDataModels(models []*leaveDatamodel.LeaveRequest) []*leave.LeaveRequest {
	out := make([]*leave.LeaveRequest, 0, len(models))
	for _, m := range models {
		out = append(out, leave.FromDataModel(m))
	}
	return out
}
