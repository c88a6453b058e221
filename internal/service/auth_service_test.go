package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SD-18/irs-backend/internal/auth"
	"github.com/SD-18/irs-backend/internal/config"
	"github.com/SD-18/irs-backend/internal/domain"
	"github.com/SD-18/irs-backend/internal/repository"
	apperrors "github.com/SD-18/irs-backend/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
			LoginMaxFailures:      5,
			LoginWindowMinutes:    15,
		},
	}
}

func newAuthService(users repository.UserRepository) *AuthService {
	cfg := testConfig()
	return NewAuthService(cfg, AuthDependencies{
		UserRepo: users,
		Limiter:  auth.NewLoginRateLimiter(cfg.Auth.LoginMaxFailures, cfg.Auth.LoginWindow()),
		Logger:   zap.NewNop(),
	})
}

func seedAdmin(t *testing.T, users repository.UserRepository, username, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	admin := &domain.User{Username: username, Role: domain.RoleAdmin, PasswordHash: hash}
	require.NoError(t, users.Create(context.Background(), admin))
	return admin
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	require.Equal(t, code, de.Code)
}

func TestRegisterClassifiesRoles(t *testing.T) {
	svc := newAuthService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	student, err := svc.Register(ctx, "DC2021ABC1234", "pw")
	require.NoError(t, err)
	require.Equal(t, domain.RoleStudent, student.Role)

	teacher, err := svc.Register(ctx, "JohnSmith", "pw")
	require.NoError(t, err)
	require.Equal(t, domain.RoleTeacher, teacher.Role)

	_, err = svc.Register(ctx, "Jo", "pw")
	requireCode(t, err, "INVALID_USERNAME")
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	svc := newAuthService(users)

	user, err := svc.Register(context.Background(), "DC2021CSE0456", "secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", user.PasswordHash)
	require.NoError(t, auth.ComparePassword(user.PasswordHash, "secret1"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, "DC2021ABC1234", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "DC2021ABC1234", "pw")
	requireCode(t, err, "DUPLICATE_USERNAME")
}

func TestRegisterNeverAssignsAdmin(t *testing.T) {
	svc := newAuthService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	for _, username := range []string{"DC2021ABC1234", "adminlike", "superuser"} {
		user, err := svc.Register(ctx, username, "pw")
		require.NoError(t, err)
		require.NotEqual(t, domain.RoleAdmin, user.Role)
	}
}

func TestLoginAdminRequiresPassword(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	svc := newAuthService(users)
	seedAdmin(t, users, "superadmin", "adminpw")
	ctx := context.Background()

	_, _, _, err := svc.Login(ctx, "10.0.0.1", "superadmin", "wrong")
	requireCode(t, err, "UNAUTHORIZED")

	_, token, _, err := svc.Login(ctx, "10.0.0.1", "superadmin", "adminpw")
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

// Non-admin logins skip password verification: institutional usernames are
// treated as self-authenticating. This pins current behavior; changing it is
// a product decision.
func TestLoginNonAdminBypassesPassword(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	svc := newAuthService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "DC2021CSE0456", "secret1")
	require.NoError(t, err)

	user, token, exp, err := svc.Login(ctx, "10.0.0.1", "DC2021CSE0456", "totally-wrong")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))
	require.Equal(t, domain.RoleStudent, user.Role)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc := newAuthService(repository.NewMemoryUserRepository())

	_, _, _, err := svc.Login(context.Background(), "10.0.0.1", "nobody", "pw")
	requireCode(t, err, "UNAUTHORIZED")
}

func TestLoginRateLimiting(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	svc := newAuthService(users)
	seedAdmin(t, users, "superadmin", "adminpw")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, _, err := svc.Login(ctx, "10.0.0.1", "superadmin", "wrong")
		requireCode(t, err, "UNAUTHORIZED")
	}

	// 6th attempt fails fast even with correct credentials.
	_, _, _, err := svc.Login(ctx, "10.0.0.1", "superadmin", "adminpw")
	requireCode(t, err, "RATE_LIMITED")

	// Other IPs remain unaffected.
	_, _, _, err = svc.Login(ctx, "10.0.0.2", "superadmin", "adminpw")
	require.NoError(t, err)
}

func TestLoginSuccessResetsCounter(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	svc := newAuthService(users)
	seedAdmin(t, users, "superadmin", "adminpw")
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _, _, err := svc.Login(ctx, "10.0.0.1", "superadmin", "wrong")
		requireCode(t, err, "UNAUTHORIZED")
	}

	_, _, _, err := svc.Login(ctx, "10.0.0.1", "superadmin", "adminpw")
	require.NoError(t, err)

	// The budget is fresh again after the successful login.
	for i := 0; i < 5; i++ {
		_, _, _, err := svc.Login(ctx, "10.0.0.1", "superadmin", "wrong")
		requireCode(t, err, "UNAUTHORIZED")
	}
}

func TestLoginTokenRoundTrip(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	svc := newAuthService(users)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "DC2021CSE0456", "secret1")
	require.NoError(t, err)

	_, token, _, err := svc.Login(ctx, "10.0.0.1", "DC2021CSE0456", "secret1")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, registered.ID, claims.UserID)
	require.Equal(t, "DC2021CSE0456", claims.Username)
	require.Equal(t, domain.RoleStudent, claims.Role)
}

func TestCurrentUserVanished(t *testing.T) {
	svc := newAuthService(repository.NewMemoryUserRepository())

	_, err := svc.CurrentUser(context.Background(), "missing-id")
	requireCode(t, err, "NOT_FOUND")
}
