package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SD-18/irs-backend/internal/domain"
	"github.com/SD-18/irs-backend/internal/repository"
)

func newUserFixture(t *testing.T) (*UserService, repository.UserRepository, *domain.User) {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	svc := NewUserService(UserDependencies{UserRepo: users, Logger: zap.NewNop()})

	admin := &domain.User{Username: "superadmin", Role: domain.RoleAdmin, PasswordHash: "x"}
	require.NoError(t, users.Create(context.Background(), admin))
	return svc, users, admin
}

func TestListUsers(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	ctx := context.Background()

	student := &domain.User{Username: "DC2021CSE0456", Role: domain.RoleStudent, PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, student))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestSetRole(t *testing.T) {
	svc, users, _ := newUserFixture(t)
	ctx := context.Background()

	student := &domain.User{Username: "DC2021CSE0456", Role: domain.RoleStudent, PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, student))

	updated, err := svc.SetRole(ctx, student.ID, domain.RoleTeacher)
	require.NoError(t, err)
	require.Equal(t, domain.RoleTeacher, updated.Role)

	reloaded, err := users.GetByID(ctx, student.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleTeacher, reloaded.Role)
}

func TestSetRoleNotFound(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.SetRole(context.Background(), "missing-id", domain.RoleAdmin)
	requireCode(t, err, "NOT_FOUND")
}

func TestRemoveGuardsSelfDeletion(t *testing.T) {
	svc, _, admin := newUserFixture(t)

	err := svc.Remove(context.Background(), admin.ID, admin.ID)
	requireCode(t, err, "SELF_DELETION")
}

func TestRemove(t *testing.T) {
	svc, users, admin := newUserFixture(t)
	ctx := context.Background()

	student := &domain.User{Username: "DC2021CSE0456", Role: domain.RoleStudent, PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, student))

	require.NoError(t, svc.Remove(ctx, student.ID, admin.ID))

	err := svc.Remove(ctx, student.ID, admin.ID)
	requireCode(t, err, "NOT_FOUND")
}
