package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/leaveflow/internal"
	leaveDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/leave"
	userDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/user"
	"github.com/frahmantamala/leaveflow/internal/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model userDatamodel.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&model), nil
}

// Delete cascades explicitly so the behaviour does not depend on the store
// enforcing foreign keys.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&leaveDatamodel.LeaveRequest{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&userDatamodel.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrUserNotFound
		}
		return nil
	})
}
