package postgres

import (
	"context"

	"github.com/frahmantamala/leaveflow/internal/audit"
	auditDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

// AuditRepository is read-only; rows are written by the leave review transaction.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) List(ctx context.Context, page, pageSize int) ([]*audit.Entry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&auditDatamodel.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []*auditDatamodel.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]*audit.Entry, 0, len(models))
	for _, m := range models {
		items = append(items, audit.FromDataModel(m))
	}
	return items, total, nil
}
