package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SD-18/irs-backend/internal/api/dto"
	"github.com/SD-18/irs-backend/internal/auth"
	"github.com/SD-18/irs-backend/internal/domain"
	"github.com/SD-18/irs-backend/internal/service"
	apperrors "github.com/SD-18/irs-backend/pkg/util"
)

// IssuesHandler manages issue lifecycle endpoints.
type IssuesHandler struct {
	service *service.IssueService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService) *IssuesHandler {
	return &IssuesHandler{service: issueService}
}

// Create handles POST /api/issues.
func (h *IssuesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError("title required", nil)
	}

	issue, err := h.service.Create(c.Context(), principal.UserID, service.IssueCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.IssueFromDomain(issue)})
}

// ListMine handles GET /api/issues/user.
func (h *IssuesHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	issues, err := h.service.ListForOwner(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueResponses(issues)})
}

// ListAll handles GET /api/issues.
func (h *IssuesHandler) ListAll(c *fiber.Ctx) error {
	issues, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": issueResponses(issues)})
}

// UpdateStatus handles PATCH /api/issues/:id/status.
func (h *IssuesHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateIssueStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	issue, err := h.service.SetStatus(c.Context(), c.Params("id"), req.Status, principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.IssueFromDomain(issue)})
}

// Delete handles DELETE /api/issues/:id.
func (h *IssuesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.Delete(c.Context(), c.Params("id"), principal.Role, principal.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "issue deleted successfully"}})
}

func issueResponses(issues []domain.Issue) []dto.IssueResponse {
	items := make([]dto.IssueResponse, 0, len(issues))
	for i := range issues {
		items = append(items, dto.IssueFromDomain(&issues[i]))
	}
	return items
}
