package dto

import (
	"time"

	"github.com/SD-18/irs-backend/internal/domain"
)

// CreateIssueRequest carries an issue creation payload.
type CreateIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
}

// UpdateIssueStatusRequest carries a status transition payload.
type UpdateIssueStatusRequest struct {
	Status domain.IssueStatus `json:"status"`
}

// IssueResponse is the public issue shape.
type IssueResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category,omitempty"`
	Location    string             `json:"location,omitempty"`
	Status      domain.IssueStatus `json:"status"`
	CreatedBy   string             `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// IssueFromDomain maps a domain issue to its public shape.
func IssueFromDomain(issue *domain.Issue) IssueResponse {
	return IssueResponse{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Category:    issue.Category,
		Location:    issue.Location,
		Status:      issue.Status,
		CreatedBy:   issue.CreatedBy,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
}
