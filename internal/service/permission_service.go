package service

import (
	"context"
	"fmt"

	"autoquote/internal/authz"
	"autoquote/internal/model"
	"autoquote/internal/repository"
)

// --- DTOs ---

type OverrideRequest struct {
	RoleName      string `json:"role_name" binding:"required"`
	PermissionKey string `json:"permission_key" binding:"required"`
	Allowed       *bool  `json:"allowed" binding:"required"`
}

type OverrideResponse struct {
	RoleName      string `json:"role_name"`
	PermissionKey string `json:"permission_key"`
	Allowed       bool   `json:"allowed"`
}

// PermissionMatrixEntry is one row of the effective permission matrix: the
// default rule plus the resolved verdict for each role.
type PermissionMatrixEntry struct {
	Path        string          `json:"path"`
	Description string          `json:"description"`
	Roles       map[string]bool `json:"roles"`
}

// --- Interface ---

type PermissionService interface {
	ListOverrides(ctx context.Context, roleName string) ([]OverrideResponse, error)
	SetOverride(ctx context.Context, req OverrideRequest, userID string) (*OverrideResponse, error)
	RemoveOverride(ctx context.Context, roleName, permissionKey, userID string) error
	EffectiveMatrix(ctx context.Context) ([]PermissionMatrixEntry, error)
	AccessibleActions(ctx context.Context, roleName string) []authz.ActionAccess
	CheckAccess(ctx context.Context, actionKey, roleName string) bool
}

type permissionService struct {
	repo      repository.OverrideRepository
	resolver  *authz.Resolver
	auditRepo repository.AuditRepository
}

func NewPermissionService(repo repository.OverrideRepository, resolver *authz.Resolver, auditRepo repository.AuditRepository) PermissionService {
	return &permissionService{repo: repo, resolver: resolver, auditRepo: auditRepo}
}

func (s *permissionService) ListOverrides(ctx context.Context, roleName string) ([]OverrideResponse, error) {
	var rows []model.PermissionOverride
	var err error
	if roleName != "" {
		rows, err = s.repo.ListByRole(ctx, roleName)
	} else {
		rows, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overrides: %w", err)
	}

	res := make([]OverrideResponse, 0, len(rows))
	for _, row := range rows {
		res = append(res, OverrideResponse{
			RoleName:      row.RoleName,
			PermissionKey: row.PermissionKey,
			Allowed:       row.Allowed,
		})
	}
	return res, nil
}

func (s *permissionService) SetOverride(ctx context.Context, req OverrideRequest, userID string) (*OverrideResponse, error) {
	if err := validateRole(req.RoleName); err != nil {
		return nil, err
	}
	if !knownPermissionKey(req.PermissionKey) {
		return nil, fmt.Errorf("unknown permission key %q", req.PermissionKey)
	}

	row := model.PermissionOverride{
		RoleName:      req.RoleName,
		PermissionKey: req.PermissionKey,
		Allowed:       *req.Allowed,
	}
	if err := s.repo.Upsert(ctx, &row); err != nil {
		return nil, fmt.Errorf("failed to save override: %w", err)
	}

	// Decisions must pick the new map up immediately.
	s.resolver.Invalidate()

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionUpdatePermissions,
		row.RoleName, row.PermissionKey, req)

	return &OverrideResponse{
		RoleName:      row.RoleName,
		PermissionKey: row.PermissionKey,
		Allowed:       row.Allowed,
	}, nil
}

func (s *permissionService) RemoveOverride(ctx context.Context, roleName, permissionKey, userID string) error {
	if err := s.repo.Delete(ctx, roleName, permissionKey); err != nil {
		return fmt.Errorf("failed to remove override: %w", err)
	}

	s.resolver.Invalidate()

	writeAuditEntry(ctx, s.auditRepo, userID, model.ActionUpdatePermissions,
		roleName, permissionKey, map[string]string{"removed": permissionKey})
	return nil
}

// EffectiveMatrix resolves every default rule for every known role, merging
// the static table with the stored overrides.
func (s *permissionService) EffectiveMatrix(ctx context.Context) ([]PermissionMatrixEntry, error) {
	roles := []string{model.RoleAdministrator, model.RoleRegistrar, model.RoleUser}

	rules := authz.DefaultRoutes()
	matrix := make([]PermissionMatrixEntry, 0, len(rules))
	for _, rule := range rules {
		entry := PermissionMatrixEntry{
			Path:        rule.Path,
			Description: rule.Description,
			Roles:       make(map[string]bool, len(roles)),
		}
		for _, role := range roles {
			entry.Roles[role] = s.resolver.Resolve(ctx, rule.Path, role)
		}
		matrix = append(matrix, entry)
	}
	return matrix, nil
}

func (s *permissionService) AccessibleActions(ctx context.Context, roleName string) []authz.ActionAccess {
	return s.resolver.ListAccessibleActions(ctx, roleName)
}

func (s *permissionService) CheckAccess(ctx context.Context, actionKey, roleName string) bool {
	return s.resolver.Resolve(ctx, actionKey, roleName)
}

func validateRole(roleName string) error {
	switch roleName {
	case model.RoleAdministrator, model.RoleRegistrar, model.RoleUser:
		return nil
	}
	return fmt.Errorf("unknown role %q", roleName)
}

func knownPermissionKey(key string) bool {
	for _, rule := range authz.DefaultRoutes() {
		if rule.Description == key {
			return true
		}
	}
	return false
}
