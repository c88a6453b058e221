package auth

import (
	"regexp"

	"github.com/SD-18/irs-backend/internal/domain"
)

// RoleRule maps a username predicate to the role it implies.
type RoleRule struct {
	Match func(username string) bool
	Role  domain.Role
}

// RoleClassifier resolves a role from a username by evaluating rules in
// order. The first matching rule wins; the fallback applies when none do.
// No ruleset ever yields the admin role.
type RoleClassifier struct {
	rules    []RoleRule
	fallback domain.Role
}

// NewRoleClassifier builds a classifier from an ordered ruleset.
func NewRoleClassifier(fallback domain.Role, rules ...RoleRule) *RoleClassifier {
	return &RoleClassifier{rules: rules, fallback: fallback}
}

// Classify returns the role implied by the username.
func (c *RoleClassifier) Classify(username string) domain.Role {
	for _, rule := range c.rules {
		if rule.Match(username) {
			return rule.Role
		}
	}
	return c.fallback
}

// rollNumberPattern: two letters, four digits, three letters, four digits.
var rollNumberPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{4}[A-Z]{3}[0-9]{4}$`)

// DefaultRoleClassifier encodes the institutional convention: usernames
// shaped like roll numbers belong to students, everything else to teachers.
func DefaultRoleClassifier() *RoleClassifier {
	return NewRoleClassifier(domain.RoleTeacher, RoleRule{
		Match: rollNumberPattern.MatchString,
		Role:  domain.RoleStudent,
	})
}
