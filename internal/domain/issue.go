package domain

import "time"

// IssueStatus enumerates lifecycle states for reported issues.
type IssueStatus string

const (
	IssueStatusOpen       IssueStatus = "open"
	IssueStatusInProgress IssueStatus = "in-progress"
	IssueStatusResolved   IssueStatus = "resolved"
)

// ValidIssueStatus reports whether the value is one of the defined statuses.
func ValidIssueStatus(s IssueStatus) bool {
	switch s {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusResolved:
		return true
	}
	return false
}

// Issue is the aggregate for operational problem reports. Status is a full
// overwrite on transition; no history is kept on the record itself.
type Issue struct {
	ID          string
	Title       string
	Description string
	Category    string
	Location    string
	Status      IssueStatus
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
