package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service is the main auth service with dependencies
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger
}

// NewService creates a new auth service
func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, log *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logger.LoggerWrapper()
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         log,
	}
}

// NewJWTTokenGenerator creates a new JWT token generator
func NewJWTTokenGenerator(secret, issuer, audience string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		Issuer:         issuer,
		Audience:       audience,
		AccessTokenTTL: ttl,
	}
}

func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromOr(ctx, s.logger)

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil && !errors.Is(err, internal.ErrUserNotFound) {
		return nil, internal.NewStoreError("Failed to check email", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("Failed to hash password", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         dto.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, internal.ErrEmailTaken) {
			return nil, internal.ErrEmailTaken
		}
		return nil, internal.NewStoreError("Failed to create user", err)
	}

	log.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromOr(ctx, s.logger)

	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(dto.Email))
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, internal.NewStoreError("Failed to load user", err)
	}

	if err := VerifyPassword(user.PasswordHash, dto.Password); err != nil {
		log.Warn("login rejected", "user_id", user.ID)
		return nil, internal.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenGenerator.GenerateAccessToken(user.Principal())
	if err != nil {
		return nil, internal.NewInternalError("Failed to issue token", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return &LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateAccessToken validates access token and returns the principal it carries.
func (s *Service) ValidateAccessToken(tokenString string) (*Principal, error) {
	claims, err := s.tokenGenerator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims.Principal()
}

func (c *Claims) Principal() (*Principal, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil || !c.Role.IsValid() {
		return nil, internal.ErrInvalidToken
	}
	return &Principal{ID: id, Email: c.Email, Role: c.Role}, nil
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(p Principal) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.AccessTokenTTL)

	claims := &Claims{
		UserID: p.ID.String(),
		Email:  p.Email,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			Audience:  jwt.ClaimStrings{j.Audience},
			Subject:   p.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if j.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.Issuer))
	}
	if j.Audience != "" {
		opts = append(opts, jwt.WithAudience(j.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken.WithCause(err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
