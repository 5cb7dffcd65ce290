package leave

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/leaveflow/internal"
	"github.com/frahmantamala/leaveflow/internal/auth"
	"github.com/frahmantamala/leaveflow/internal/core/common/validation"
	"github.com/frahmantamala/leaveflow/internal/core/events"
	"github.com/frahmantamala/leaveflow/pkg/logger"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	CreateLeave(ctx context.Context, dto CreateLeaveDTO, owner *auth.Principal) (*LeaveRequest, error)
	ListOwn(ctx context.Context, owner *auth.Principal) ([]*LeaveRequest, error)
	ListAll(ctx context.Context, query ListQuery, actor *auth.Principal) (*Page, error)
	Review(ctx context.Context, id uuid.UUID, dto ReviewLeaveDTO, actor *auth.Principal) (*LeaveRequest, error)
}

// EventPublisher is satisfied by *events.EventBus.
type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

// Service handles leave request business logic
type Service struct {
	repo      RepositoryAPI
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, publisher EventPublisher, log *slog.Logger) *Service {
	if log == nil {
		log = logger.LoggerWrapper()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreateLeave(ctx context.Context, dto CreateLeaveDTO, owner *auth.Principal) (*LeaveRequest, error) {
	if owner == nil {
		return nil, internal.ErrMissingToken
	}
	log := logger.FromOr(ctx, s.logger)

	if err := dto.Validate(); err != nil {
		log.Warn("leave validation failed", "error", err, "user_id", owner.ID)
		return nil, err
	}

	req := &LeaveRequest{
		ID:        uuid.New(),
		UserID:    owner.ID,
		UserEmail: owner.Email,
		StartDate: dto.StartDate.Time,
		EndDate:   dto.EndDate.Time,
		Reason:    strings.TrimSpace(dto.Reason),
		Status:    StatusPending,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, internal.NewStoreError("Failed to create leave request", err)
	}

	log.Info("leave request submitted", "leave_request_id", req.ID, "user_id", owner.ID)
	s.publish(ctx, events.NewLeaveSubmittedEvent(req.ID, req.UserID, req.StartDate, req.EndDate))
	return req, nil
}

// ListOwn returns every request owned by the caller, newest first.
func (s *Service) ListOwn(ctx context.Context, owner *auth.Principal) ([]*LeaveRequest, error) {
	if owner == nil {
		return nil, internal.ErrMissingToken
	}
	items, err := s.repo.ListByUser(ctx, owner.ID)
	if err != nil {
		return nil, internal.NewStoreError("Failed to list leave requests", err)
	}
	return items, nil
}

func (s *Service) ListAll(ctx context.Context, query ListQuery, actor *auth.Principal) (*Page, error) {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return nil, err
	}
	if err := validation.ValidatePagination(query.Page, query.PageSize); err != nil {
		return nil, err
	}
	if query.Status != nil {
		status, ok := ParseStatus(string(*query.Status))
		if !ok {
			return nil, internal.ErrInvalidStatusFilter
		}
		query.Status = &status
	}

	items, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, internal.NewStoreError("Failed to list leave requests", err)
	}

	return &Page{
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalCount: total,
		Items:      items,
	}, nil
}

// Review applies a manager decision to a pending request.
func (s *Service) Review(ctx context.Context, id uuid.UUID, dto ReviewLeaveDTO, actor *auth.Principal) (*LeaveRequest, error) {
	if err := auth.RequireRole(actor, auth.RoleManager); err != nil {
		return nil, err
	}
	decision, err := ParseDecision(dto.Decision)
	if err != nil {
		return nil, err
	}

	log := logger.FromOr(ctx, s.logger)

	updated, err := s.repo.Review(ctx, ReviewCommand{
		LeaveRequestID: id,
		Decision:       decision,
		ActorID:        actor.ID,
		ActorEmail:     actor.Email,
		ReviewedAt:     s.now(),
	})
	if err != nil {
		if errors.Is(err, internal.ErrLeaveNotFound) || errors.Is(err, internal.ErrLeaveAlreadyReviewed) {
			log.Warn("leave review rejected", "leave_request_id", id, "error", err)
			return nil, err
		}
		log.Error("leave review failed", "leave_request_id", id, "error", err)
		return nil, internal.NewStoreError("Failed to review leave request", err)
	}

	log.Info("leave request reviewed", "leave_request_id", id, "decision", decision, "actor_id", actor.ID)
	s.publish(ctx, events.NewLeaveReviewedEvent(updated.ID, actor.ID, string(decision), *updated.ReviewedAt))
	return updated, nil
}

// publish runs after commit; a failing subscriber never undoes the write.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		logger.FromOr(ctx, s.logger).Error("failed to publish event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
	}
}
