package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SD-18/irs-backend/internal/domain"
)

func TestDefaultRoleClassifier(t *testing.T) {
	classifier := DefaultRoleClassifier()

	tests := []struct {
		username string
		want     domain.Role
	}{
		{"DC2021ABC1234", domain.RoleStudent},
		{"DC2021CSE0456", domain.RoleStudent},
		{"JohnSmith", domain.RoleTeacher},
		{"Jo", domain.RoleTeacher},
		// lowercase letters do not satisfy the roll number shape
		{"dc2021cse0456", domain.RoleTeacher},
		// wrong digit counts
		{"DC221CSE0456", domain.RoleTeacher},
		{"DC2021CSE045", domain.RoleTeacher},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, classifier.Classify(tt.username), "username %q", tt.username)
	}
}

func TestRoleClassifierRuleOrder(t *testing.T) {
	classifier := NewRoleClassifier(domain.RoleTeacher,
		RoleRule{Match: func(u string) bool { return u == "special" }, Role: domain.RoleStudent},
		RoleRule{Match: func(string) bool { return true }, Role: domain.RoleTeacher},
	)

	require.Equal(t, domain.RoleStudent, classifier.Classify("special"))
	require.Equal(t, domain.RoleTeacher, classifier.Classify("anything"))
}
