package repository

import (
	"context"

	"autoquote/internal/authz"
	"autoquote/internal/model"

	"gorm.io/gorm"
)

// OverrideRepository persists per-role permission overrides and doubles as
// the resolver's authz.OverrideSource.
type OverrideRepository interface {
	authz.OverrideSource
	List(ctx context.Context) ([]model.PermissionOverride, error)
	ListByRole(ctx context.Context, roleName string) ([]model.PermissionOverride, error)
	Upsert(ctx context.Context, o *model.PermissionOverride) error
	Delete(ctx context.Context, roleName, permissionKey string) error
}

type overrideRepository struct {
	db *gorm.DB
}

func NewOverrideRepository(db *gorm.DB) OverrideRepository {
	return &overrideRepository{db: db}
}

func (r *overrideRepository) FetchOverrides(ctx context.Context) (authz.Overrides, error) {
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make(authz.Overrides)
	for _, row := range rows {
		byRole, ok := out[row.RoleName]
		if !ok {
			byRole = make(map[string]bool)
			out[row.RoleName] = byRole
		}
		byRole[row.PermissionKey] = row.Allowed
	}
	return out, nil
}

func (r *overrideRepository) List(ctx context.Context) ([]model.PermissionOverride, error) {
	var rows []model.PermissionOverride
	if err := GetDB(ctx, r.db).Order("role_name ASC, permission_key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *overrideRepository) ListByRole(ctx context.Context, roleName string) ([]model.PermissionOverride, error) {
	var rows []model.PermissionOverride
	if err := GetDB(ctx, r.db).
		Where("role_name = ?", roleName).
		Order("permission_key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *overrideRepository) Upsert(ctx context.Context, o *model.PermissionOverride) error {
	db := GetDB(ctx, r.db)
	var existing model.PermissionOverride
	err := db.First(&existing, "role_name = ? AND permission_key = ?", o.RoleName, o.PermissionKey).Error
	if err == nil {
		existing.Allowed = o.Allowed
		*o = existing
		return db.Save(&existing).Error
	}
	return db.Create(o).Error
}

func (r *overrideRepository) Delete(ctx context.Context, roleName, permissionKey string) error {
	return GetDB(ctx, r.db).
		Where("role_name = ? AND permission_key = ?", roleName, permissionKey).
		Delete(&model.PermissionOverride{}).Error
}
