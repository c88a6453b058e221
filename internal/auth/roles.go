package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SD-18/irs-backend/internal/domain"
	apperrors "github.com/SD-18/irs-backend/pkg/util"
)

// RequireRoles enforces role membership uniformly on every route it guards.
// Routes open to all authenticated callers list every role explicitly; there
// is no implicit pass-through for non-admin allow-lists.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
