package auth

import (
	"time"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/core/common/validation"
	"github.com/google/uuid"
)

const minPasswordLength = 8

type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Normalize trims input and applies the default role.
func (d *RegisterDTO) Normalize() {
	d.Email = NormalizeEmail(d.Email)
	if d.Role == "" {
		d.Role = RoleEmployee
	}
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().MaxLength(255).Email()
	v.Field("password", d.Password).Required().MinLength(minPasswordLength).MaxLength(72)
	v.Field("role", string(d.Role)).OneOf(internal.ErrCodeInvalidRole, string(RoleEmployee), string(RoleManager))
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks required fields.
func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func ToRegisterResponse(u *User) RegisterResponse {
	return RegisterResponse{ID: u.ID, Email: u.Email, Role: u.Role}
}
