package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/SD-18/irs-backend/internal/domain"
	"github.com/SD-18/irs-backend/internal/events"
	"github.com/SD-18/irs-backend/internal/repository"
	apperrors "github.com/SD-18/irs-backend/pkg/util"
)

// IssueService coordinates the issue lifecycle: creation, ownership-scoped
// listing, status transitions and deletion. Any status may transition to any
// other valid status; the model covers administrative correction, not a
// strict workflow.
type IssueService struct {
	issues     repository.IssueRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// IssueDependencies bundles collaborators for the issue service.
type IssueDependencies struct {
	IssueRepo  repository.IssueRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// IssueCreateInput describes issue creation payload.
type IssueCreateInput struct {
	Title       string
	Description string
	Category    string
	Location    string
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	return &IssueService{
		issues:     deps.IssueRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Create records a new issue owned by the creating identity, defaulting to
// the open status. The owner must reference an existing user.
func (s *IssueService) Create(ctx context.Context, ownerID string, input IssueCreateInput) (*domain.Issue, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": ownerID})
		}
		return nil, err
	}

	issue := &domain.Issue{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Location:    input.Location,
		Status:      domain.IssueStatusOpen,
		CreatedBy:   ownerID,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}

	s.logger.Info("issue created",
		zap.String("issue_id", issue.ID),
		zap.String("created_by", ownerID))

	s.publish(ctx, events.Event{
		Type:      events.EventIssueCreated,
		SubjectID: issue.ID,
		ActorID:   ownerID,
		Payload: events.IssueCreatedPayload{
			Title:    issue.Title,
			Category: issue.Category,
			Location: issue.Location,
			Status:   issue.Status,
		},
	})
	return issue, nil
}

// ListForOwner returns only issues created by the given user.
func (s *IssueService) ListForOwner(ctx context.Context, ownerID string) ([]domain.Issue, error) {
	return s.issues.ListByCreator(ctx, ownerID)
}

// ListAll returns every issue. The transport layer gates this to admins.
func (s *IssueService) ListAll(ctx context.Context) ([]domain.Issue, error) {
	return s.issues.ListAll(ctx)
}

// SetStatus transitions an issue to the given status. Re-applying the
// current status is an idempotent no-op: the unchanged record is returned
// without a write, so downstream consumers never see a spurious update.
func (s *IssueService) SetStatus(ctx context.Context, issueID string, status domain.IssueStatus, actorID string) (*domain.Issue, error) {
	if !domain.ValidIssueStatus(status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(status)})
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": issueID})
		}
		return nil, err
	}

	if issue.Status == status {
		s.logger.Info("issue status unchanged, skipping update",
			zap.String("issue_id", issueID),
			zap.String("status", string(status)))
		return issue, nil
	}

	previous := issue.Status
	issue.Status = status
	if err := s.issues.Update(ctx, issue); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": issueID})
		}
		return nil, err
	}

	s.logger.Info("issue status updated",
		zap.String("issue_id", issueID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
		zap.String("changed_by", actorID))

	s.publish(ctx, events.Event{
		Type:      events.EventIssueStatusChanged,
		SubjectID: issue.ID,
		ActorID:   actorID,
		Payload:   events.IssueStatusChangedPayload{OldStatus: previous, NewStatus: status},
	})
	return issue, nil
}

// Delete removes an issue. The admin check runs here as well as at the
// transport layer so the service stays safe when invoked directly.
func (s *IssueService) Delete(ctx context.Context, issueID string, actingRole domain.Role, actorID string) error {
	if actingRole != domain.RoleAdmin {
		s.logger.Warn("unauthorized issue delete attempt",
			zap.String("issue_id", issueID),
			zap.String("user_id", actorID),
			zap.String("role", string(actingRole)))
		return apperrors.NewForbidden("permission denied")
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("issue", map[string]any{"issue_id": issueID})
		}
		return err
	}

	if err := s.issues.Delete(ctx, issueID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("issue", map[string]any{"issue_id": issueID})
		}
		return err
	}

	s.logger.Info("issue deleted",
		zap.String("issue_id", issueID),
		zap.String("deleted_by", actorID))

	s.publish(ctx, events.Event{
		Type:      events.EventIssueDeleted,
		SubjectID: issueID,
		ActorID:   actorID,
		Payload:   events.IssueDeletedPayload{Title: issue.Title},
	})
	return nil
}

func (s *IssueService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
