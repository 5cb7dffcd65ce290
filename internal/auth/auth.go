package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleManager
}

// Principal is the authenticated identity decoded from a bearer token.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

func (p *Principal) IsManager() bool {
	return p != nil && p.Role == RoleManager
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// TokenGeneratorAPI signs and verifies access tokens.
type TokenGeneratorAPI interface {
	GenerateAccessToken(principal Principal) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret         []byte
	Issuer         string
	Audience       string
	AccessTokenTTL time.Duration
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func ContextWithUser(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ContextUserKey, p)
}

func UserFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ContextUserKey).(*Principal)
	return p, ok && p != nil
}
