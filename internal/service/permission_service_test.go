package service_test

import (
	"context"
	"testing"

	"autoquote/internal/authz"
	"autoquote/internal/model"
	"autoquote/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memOverrideRepo struct {
	rows []model.PermissionOverride
}

func (r *memOverrideRepo) FetchOverrides(ctx context.Context) (authz.Overrides, error) {
	out := make(authz.Overrides)
	for _, row := range r.rows {
		byRole, ok := out[row.RoleName]
		if !ok {
			byRole = make(map[string]bool)
			out[row.RoleName] = byRole
		}
		byRole[row.PermissionKey] = row.Allowed
	}
	return out, nil
}

func (r *memOverrideRepo) List(_ context.Context) ([]model.PermissionOverride, error) {
	return r.rows, nil
}

func (r *memOverrideRepo) ListByRole(_ context.Context, roleName string) ([]model.PermissionOverride, error) {
	var out []model.PermissionOverride
	for _, row := range r.rows {
		if row.RoleName == roleName {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memOverrideRepo) Upsert(_ context.Context, o *model.PermissionOverride) error {
	for i := range r.rows {
		if r.rows[i].RoleName == o.RoleName && r.rows[i].PermissionKey == o.PermissionKey {
			r.rows[i].Allowed = o.Allowed
			return nil
		}
	}
	r.rows = append(r.rows, *o)
	return nil
}

func (r *memOverrideRepo) Delete(_ context.Context, roleName, permissionKey string) error {
	for i := range r.rows {
		if r.rows[i].RoleName == roleName && r.rows[i].PermissionKey == permissionKey {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

func newPermissionFixture() (service.PermissionService, *authz.Resolver, *memOverrideRepo) {
	repo := &memOverrideRepo{}
	resolver := authz.NewResolver(repo)
	return service.NewPermissionService(repo, resolver, nil), resolver, repo
}

func TestPermissionServiceOverrideTakesEffectImmediately(t *testing.T) {
	t.Parallel()

	svc, resolver, _ := newPermissionFixture()
	ctx := context.Background()

	// Default table: regular users cannot manage brands.
	require.False(t, resolver.Resolve(ctx, "/brands", model.RoleUser))

	_, err := svc.SetOverride(ctx, service.OverrideRequest{
		RoleName:      model.RoleUser,
		PermissionKey: "Manage brands",
		Allowed:       boolPtr(true),
	}, "")
	require.NoError(t, err)

	// The write invalidates the cache, so the next decision sees the grant.
	assert.True(t, resolver.Resolve(ctx, "/brands", model.RoleUser))

	require.NoError(t, svc.RemoveOverride(ctx, model.RoleUser, "Manage brands", ""))
	assert.False(t, resolver.Resolve(ctx, "/brands", model.RoleUser))
}

func TestPermissionServiceRejectsUnknownRoleAndKey(t *testing.T) {
	t.Parallel()

	svc, _, _ := newPermissionFixture()
	ctx := context.Background()

	_, err := svc.SetOverride(ctx, service.OverrideRequest{
		RoleName:      "Ghost",
		PermissionKey: "Manage brands",
		Allowed:       boolPtr(true),
	}, "")
	assert.Error(t, err)

	_, err = svc.SetOverride(ctx, service.OverrideRequest{
		RoleName:      model.RoleUser,
		PermissionKey: "Launch rockets",
		Allowed:       boolPtr(true),
	}, "")
	assert.Error(t, err)
}

func TestPermissionServiceEffectiveMatrix(t *testing.T) {
	t.Parallel()

	svc, _, _ := newPermissionFixture()
	ctx := context.Background()

	matrix, err := svc.EffectiveMatrix(ctx)
	require.NoError(t, err)
	require.Len(t, matrix, len(authz.DefaultRoutes()))

	byPath := make(map[string]service.PermissionMatrixEntry, len(matrix))
	for _, entry := range matrix {
		byPath[entry.Path] = entry
	}

	// Administrators pass everything, including the permissions screen.
	perms := byPath["/settings/permissions"]
	assert.True(t, perms.Roles[model.RoleAdministrator])
	assert.False(t, perms.Roles[model.RoleRegistrar])
	assert.False(t, perms.Roles[model.RoleUser])

	// Everyone prices vehicles.
	cfg := byPath["/configurator"]
	for _, role := range []string{model.RoleAdministrator, model.RoleRegistrar, model.RoleUser} {
		assert.True(t, cfg.Roles[role], role)
	}
}

func TestPermissionServiceListOverridesByRole(t *testing.T) {
	t.Parallel()

	svc, _, _ := newPermissionFixture()
	ctx := context.Background()

	_, err := svc.SetOverride(ctx, service.OverrideRequest{
		RoleName: model.RoleUser, PermissionKey: "Manage brands", Allowed: boolPtr(true),
	}, "")
	require.NoError(t, err)
	_, err = svc.SetOverride(ctx, service.OverrideRequest{
		RoleName: model.RoleRegistrar, PermissionKey: "Manage users", Allowed: boolPtr(true),
	}, "")
	require.NoError(t, err)

	all, err := svc.ListOverrides(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	userOnly, err := svc.ListOverrides(ctx, model.RoleUser)
	require.NoError(t, err)
	require.Len(t, userOnly, 1)
	assert.Equal(t, "Manage brands", userOnly[0].PermissionKey)
}

func TestPermissionServiceAccessibleActions(t *testing.T) {
	t.Parallel()

	svc, _, _ := newPermissionFixture()
	ctx := context.Background()

	actions := svc.AccessibleActions(ctx, model.RoleUser)
	require.NotEmpty(t, actions)

	paths := make(map[string]bool, len(actions))
	for _, a := range actions {
		paths[a.Path] = true
	}
	assert.True(t, paths["/"])
	assert.True(t, paths["/configurator"])
	assert.True(t, paths["/quotes"])
	assert.False(t, paths["/users"])
	assert.False(t, paths["/settings/permissions"])
}
