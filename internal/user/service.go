package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/pkg/logger"
	"github.com/google/uuid"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, log *slog.Logger) *Service {
	if log == nil {
		log = logger.LoggerWrapper()
	}
	return &Service{repo: repo, logger: log}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewStoreError("Failed to load user", err)
	}
	return u, nil
}

// Delete removes a user and cascades to its leave requests. Audit rows are kept.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return internal.ErrUserNotFound
		}
		return internal.NewStoreError("Failed to delete user", err)
	}
	logger.FromOr(ctx, s.logger).Info("user deleted", "user_id", id)
	return nil
}
