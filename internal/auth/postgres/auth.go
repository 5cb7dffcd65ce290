package auth

import (
	"context"
	"errors"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/auth"
	userDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	var model userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return auth.FromDataModel(&model), nil
}

func (r *Repository) Create(ctx context.Context, user *auth.User) error {
	model := user.ToDataModel()
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrEmailTaken
		}
		return err
	}
	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	return nil
}
