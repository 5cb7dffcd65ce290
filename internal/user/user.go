package user

import (
	"context"
	"time"

	userDatamodel "github.com/frahmantamala/leaveflow/internal/core/datamodel/user"
	"github.com/google/uuid"
)

// User is the public profile of a stored identity.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type RepositoryAPI interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// Delete removes the user together with every leave request it owns.
	Delete(ctx context.Context, id uuid.UUID) error
}

func FromDataModel(m *userDatamodel.User) *User {
	return &User{
		ID:        m.ID,
		Email:     m.Email,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}
