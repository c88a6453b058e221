package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/SD-18/irs-backend/internal/domain"
	"github.com/SD-18/irs-backend/internal/events"
	"github.com/SD-18/irs-backend/internal/repository"
	apperrors "github.com/SD-18/irs-backend/pkg/util"
)

// UserService handles the account directory: listing, role mutation and
// deletion. Every operation here is admin-gated at the transport layer.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns all accounts. Handlers never serialize password hashes.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// SetRole assigns a new role to the account. The caller constrains the role
// to the defined enum before invocation.
func (s *UserService) SetRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	previous := user.Role
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, err
	}

	s.logger.Info("user role updated",
		zap.String("user_id", userID),
		zap.String("from", string(previous)),
		zap.String("to", string(role)))

	s.publish(ctx, events.Event{
		Type:      events.EventUserRoleChanged,
		SubjectID: userID,
		Payload:   events.UserRoleChangedPayload{OldRole: previous, NewRole: role},
	})
	return user, nil
}

// Remove deletes an account. An administrator may not delete their own.
func (s *UserService) Remove(ctx context.Context, userID, actingUserID string) error {
	if userID == actingUserID {
		s.logger.Warn("self-deletion attempt", zap.String("user_id", actingUserID))
		return apperrors.NewSelfDeletion()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}

	s.logger.Info("user deleted",
		zap.String("user_id", userID),
		zap.String("deleted_by", actingUserID))

	s.publish(ctx, events.Event{
		Type:      events.EventUserDeleted,
		SubjectID: userID,
		ActorID:   actingUserID,
		Payload:   events.UserDeletedPayload{Username: user.Username},
	})
	return nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
