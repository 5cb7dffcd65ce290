package audit

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/auth"
	"github.com/frahmantamala/leaveflow/internal/core/common/validation"
	"github.com/frahmantamala/leaveflow/pkg/logger"
)

type ServiceAPI interface {
	ListAudit(ctx context.Context, page, pageSize int, actor *auth.Principal) (*Page, error)
}

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

// ListAudit returns one page of review records, newest first.
func (s *Service) ListAudit(ctx context.Context, page, pageSize int, actor *auth.Principal) (*Page, error) {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return nil, err
	}
	if err := validation.ValidatePagination(page, pageSize); err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		logger.FromOr(ctx, s.logger).Error("failed to list audit logs", "error", err)
		return nil, internal.NewStoreError("Failed to list audit logs", err)
	}

	return &Page{Page: page, PageSize: pageSize, TotalCount: total, Items: items}, nil
}
