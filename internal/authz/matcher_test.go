package authz_test

import (
	"testing"

	"autoquote/internal/authz"

	"github.com/stretchr/testify/require"
)

func TestMatchRule(t *testing.T) {
	t.Parallel()

	rules := []authz.RouteRule{
		{Path: "/", Description: "Home"},
		{Path: "/brands", Description: "Manage brands"},
		{Path: "/brands/:id", Description: "Edit brand"},
		{Path: "/vehicles", Description: "Manage vehicle prices"},
	}

	tests := []struct {
		name     string
		key      string
		wantDesc string
		wantOK   bool
	}{
		{"exact literal", "/brands", "Manage brands", true},
		{"templated segment", "/brands/42", "Edit brand", true},
		{"templated uuid segment", "/brands/6f1c9a30-1111-4222-8333-944455556666", "Edit brand", true},
		{"exact beats template for literal key", "/brands/:id", "Edit brand", true},
		{"prefix fallback", "/vehicles/42/prices", "Manage vehicle prices", true},
		{"root matches only itself", "/unknown", "", false},
		{"template does not span slashes", "/brands/42/extra", "Manage brands", true},
		{"no rule at all", "/reports", "", false},
		{"root exact", "/", "Home", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule, ok := authz.MatchRule(rules, tt.key)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.wantDesc, rule.Description)
			}
		})
	}
}

func TestMatchRulePrefersLongestPrefix(t *testing.T) {
	t.Parallel()

	rules := []authz.RouteRule{
		{Path: "/settings", Description: "Settings"},
		{Path: "/settings/permissions", Description: "Configure permissions"},
	}

	rule, ok := authz.MatchRule(rules, "/settings/permissions/roles")
	require.True(t, ok)
	require.Equal(t, "Configure permissions", rule.Description)
}
