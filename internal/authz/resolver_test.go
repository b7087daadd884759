package authz_test

import (
	"context"
	"errors"
	"testing"

	"autoquote/internal/authz"
	"autoquote/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	overrides authz.Overrides
	err       error
	fetches   int
}

func (f *fakeSource) FetchOverrides(_ context.Context) (authz.Overrides, error) {
	f.fetches++
	return f.overrides, f.err
}

func newResolver(overrides authz.Overrides) *authz.Resolver {
	return authz.NewResolver(&fakeSource{overrides: overrides})
}

func TestResolveDeniesUnknownActions(t *testing.T) {
	t.Parallel()

	r := newResolver(nil)
	for _, role := range []string{model.RoleRegistrar, model.RoleUser, "Ghost"} {
		assert.False(t, r.Resolve(context.Background(), "/no-such-route", role), "role %s", role)
	}
}

func TestResolveHomeAlwaysAllowed(t *testing.T) {
	t.Parallel()

	r := newResolver(nil)
	for _, role := range []string{"", model.RoleAdministrator, model.RoleRegistrar, model.RoleUser, "Ghost"} {
		assert.True(t, r.Resolve(context.Background(), authz.PathHome, role), "role %q", role)
	}
}

func TestResolveAdministratorBypassesEverything(t *testing.T) {
	t.Parallel()

	// Even an override denying the administrator is ignored.
	r := newResolver(authz.Overrides{
		model.RoleAdministrator: {"Manage brands": false},
	})
	for _, key := range []string{"/brands", "/users/42", "/no-such-route", authz.PathPermissions} {
		assert.True(t, r.Resolve(context.Background(), key, model.RoleAdministrator), "key %s", key)
	}
}

func TestResolveUnauthenticatedDenied(t *testing.T) {
	t.Parallel()

	r := newResolver(nil)
	assert.False(t, r.Resolve(context.Background(), "/brands", ""))
	assert.False(t, r.Resolve(context.Background(), authz.PathConfigurator, ""))
}

func TestResolveConfiguratorAllowedForAllAuthenticatedRoles(t *testing.T) {
	t.Parallel()

	// An override can never lock a role out of the configurator.
	r := newResolver(authz.Overrides{
		model.RoleUser: {"Vehicle configurator": false},
	})
	for _, role := range []string{model.RoleAdministrator, model.RoleRegistrar, model.RoleUser, "Ghost"} {
		assert.True(t, r.Resolve(context.Background(), authz.PathConfigurator, role), "role %s", role)
	}
}

func TestResolveDefaultTable(t *testing.T) {
	t.Parallel()

	r := newResolver(nil)

	tests := []struct {
		name string
		key  string
		role string
		want bool
	}{
		{"registrar manages brands", "/brands", model.RoleRegistrar, true},
		{"registrar edits brand by id", "/brands/6f1c9a30-1111-4222-8333-944455556666", model.RoleRegistrar, true},
		{"plain user cannot manage brands", "/brands", model.RoleUser, false},
		{"plain user reaches quotes", "/quotes", model.RoleUser, true},
		{"registrar cannot manage users", "/users", model.RoleRegistrar, false},
		{"registrar cannot manage direct sales", "/direct-sales", model.RoleRegistrar, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, r.Resolve(context.Background(), tt.key, tt.role))
		})
	}
}

func TestResolveOverridePrecedence(t *testing.T) {
	t.Parallel()

	r := newResolver(authz.Overrides{
		model.RoleRegistrar: {"Manage brands": false},
		model.RoleUser:      {"Manage brands": true},
	})

	// Override wins over the default table in both directions.
	assert.False(t, r.Resolve(context.Background(), "/brands", model.RoleRegistrar))
	assert.True(t, r.Resolve(context.Background(), "/brands", model.RoleUser))
}

func TestResolvePermissionsActionDefaultDeny(t *testing.T) {
	t.Parallel()

	denied := newResolver(nil)
	assert.False(t, denied.Resolve(context.Background(), authz.PathPermissions, model.RoleRegistrar))

	granted := newResolver(authz.Overrides{
		model.RoleRegistrar: {"Configure permissions": true},
	})
	assert.True(t, granted.Resolve(context.Background(), authz.PathPermissions, model.RoleRegistrar))

	// An explicit false stays denied; only true grants.
	revoked := newResolver(authz.Overrides{
		model.RoleRegistrar: {"Configure permissions": false},
	})
	assert.False(t, revoked.Resolve(context.Background(), authz.PathPermissions, model.RoleRegistrar))
}

func TestLoadOverridesFetchesOnce(t *testing.T) {
	t.Parallel()

	src := &fakeSource{overrides: authz.Overrides{}}
	r := authz.NewResolver(src)

	for i := 0; i < 5; i++ {
		r.Resolve(context.Background(), "/brands", model.RoleRegistrar)
	}
	require.Equal(t, 1, src.fetches)
}

func TestLoadOverridesFailureFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	src := &fakeSource{err: errors.New("store unavailable")}
	r := authz.NewResolver(src)

	// Defaults still apply and the failed fetch is not retried.
	assert.True(t, r.Resolve(context.Background(), "/brands", model.RoleRegistrar))
	assert.False(t, r.Resolve(context.Background(), "/brands", model.RoleUser))
	require.Equal(t, 1, src.fetches)
}

func TestInvalidateRefetches(t *testing.T) {
	t.Parallel()

	src := &fakeSource{overrides: authz.Overrides{}}
	r := authz.NewResolver(src)

	assert.True(t, r.Resolve(context.Background(), "/brands", model.RoleRegistrar))

	src.overrides = authz.Overrides{model.RoleRegistrar: {"Manage brands": false}}
	r.Invalidate()

	assert.False(t, r.Resolve(context.Background(), "/brands", model.RoleRegistrar))
	require.Equal(t, 2, src.fetches)
}

func TestListAccessibleActions(t *testing.T) {
	t.Parallel()

	r := newResolver(authz.Overrides{
		model.RoleUser: {"Manage brands": true},
	})

	admin := r.ListAccessibleActions(context.Background(), model.RoleAdministrator)
	require.Len(t, admin, len(authz.DefaultRoutes()))

	// Declaration order is preserved.
	for i, rule := range authz.DefaultRoutes() {
		assert.Equal(t, rule.Path, admin[i].Path)
	}

	user := r.ListAccessibleActions(context.Background(), model.RoleUser)
	paths := make([]string, 0, len(user))
	for _, a := range user {
		paths = append(paths, a.Path)
	}
	assert.Contains(t, paths, authz.PathHome)
	assert.Contains(t, paths, authz.PathConfigurator)
	assert.Contains(t, paths, "/quotes")
	assert.Contains(t, paths, "/brands") // granted by override
	assert.NotContains(t, paths, "/users")
	assert.NotContains(t, paths, authz.PathPermissions)
}
