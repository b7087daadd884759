package authz

import (
	"context"
	"log"
	"sync"

	"autoquote/internal/model"
)

// Overrides maps role name -> permission key (rule description) -> allowed.
// A present entry wins over the default table in both directions.
type Overrides map[string]map[string]bool

// OverrideSource supplies the per-role permission overrides, typically backed
// by the permission_overrides table.
type OverrideSource interface {
	FetchOverrides(ctx context.Context) (Overrides, error)
}

// ActionAccess is one accessible entry of the default table.
type ActionAccess struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Resolver decides allow/deny for (action key, role) pairs by merging the
// static route table with cached overrides. Construct one per process and
// inject it; there is no package-level state.
type Resolver struct {
	rules  []RouteRule
	source OverrideSource

	mu        sync.RWMutex
	loaded    bool
	overrides Overrides
}

// NewResolver builds a resolver over the default route table.
func NewResolver(source OverrideSource) *Resolver {
	return NewResolverWithRules(defaultRoutes, source)
}

// NewResolverWithRules builds a resolver over a custom rule table.
func NewResolverWithRules(rules []RouteRule, source OverrideSource) *Resolver {
	return &Resolver{rules: rules, source: source}
}

// Resolve reports whether roleName may reach actionKey.
// Resolution never fails: unknown actions and unknown roles deny.
func (r *Resolver) Resolve(ctx context.Context, actionKey, roleName string) bool {
	// The landing redirect must never hard-fail, role or not.
	if actionKey == PathHome {
		return true
	}
	if roleName == "" {
		return false
	}
	if roleName == model.RoleAdministrator {
		return true
	}
	// Every authenticated role can price a vehicle.
	if actionKey == PathConfigurator {
		return true
	}

	rule, ok := MatchRule(r.rules, actionKey)
	if !ok {
		return false
	}

	// Changing permissions is default-deny: an explicit override is the only
	// grant for non-administrators.
	if rule.Path == PathPermissions {
		allowed, ok := r.override(ctx, roleName, rule.Description)
		return ok && allowed
	}

	if allowed, ok := r.override(ctx, roleName, rule.Description); ok {
		return allowed
	}

	for _, allowed := range rule.AllowedRoles {
		if allowed == roleName {
			return true
		}
	}
	return false
}

// ListAccessibleActions returns every default rule the role may access, in
// declaration order. Administrators get the full table.
func (r *Resolver) ListAccessibleActions(ctx context.Context, roleName string) []ActionAccess {
	out := make([]ActionAccess, 0, len(r.rules))
	for _, rule := range r.rules {
		if r.Resolve(ctx, rule.Path, roleName) {
			out = append(out, ActionAccess{Path: rule.Path, Description: rule.Description})
		}
	}
	return out
}

// LoadOverrides fetches the override map once and caches it. A fetch failure
// caches an empty map so the resolver falls back to the default table instead
// of retrying on every call.
func (r *Resolver) LoadOverrides(ctx context.Context) Overrides {
	r.mu.RLock()
	if r.loaded {
		o := r.overrides
		r.mu.RUnlock()
		return o
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return r.overrides
	}

	o, err := r.source.FetchOverrides(ctx)
	if err != nil {
		log.Printf("authz: override fetch failed, using defaults: %v", err)
		o = Overrides{}
	}
	if o == nil {
		o = Overrides{}
	}
	r.overrides = o
	r.loaded = true
	return o
}

// Invalidate drops the cached overrides; the next Resolve refetches. Called
// after permission writes so decisions pick up the new map.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.loaded = false
	r.overrides = nil
	r.mu.Unlock()
}

func (r *Resolver) override(ctx context.Context, roleName, key string) (bool, bool) {
	o := r.LoadOverrides(ctx)
	byRole, ok := o[roleName]
	if !ok {
		return false, false
	}
	allowed, ok := byRole[key]
	return allowed, ok
}
