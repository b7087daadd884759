package authz

import "autoquote/internal/model"

// Action keys with hardwired semantics in Resolve.
const (
	PathHome         = "/"
	PathConfigurator = "/configurator"
	PathPermissions  = "/settings/permissions"
)

// RouteRule is one entry of the static default permission table. Path may
// contain parameter segments (":id" style). Description doubles as the
// permission key used by overrides.
type RouteRule struct {
	Path         string
	AllowedRoles []string
	Description  string
}

var allRoles = []string{model.RoleAdministrator, model.RoleRegistrar, model.RoleUser}

var staffRoles = []string{model.RoleAdministrator, model.RoleRegistrar}

var adminOnly = []string{model.RoleAdministrator}

// defaultRoutes is the compiled-in permission table. Declaration order is the
// order ListAccessibleActions reports.
var defaultRoutes = []RouteRule{
	{Path: PathHome, AllowedRoles: allRoles, Description: "Home"},
	{Path: PathConfigurator, AllowedRoles: allRoles, Description: "Vehicle configurator"},
	{Path: "/brands", AllowedRoles: staffRoles, Description: "Manage brands"},
	{Path: "/brands/:id", AllowedRoles: staffRoles, Description: "Edit brand"},
	{Path: "/models", AllowedRoles: staffRoles, Description: "Manage models"},
	{Path: "/models/:id", AllowedRoles: staffRoles, Description: "Edit model"},
	{Path: "/versions", AllowedRoles: staffRoles, Description: "Manage versions"},
	{Path: "/versions/:id", AllowedRoles: staffRoles, Description: "Edit version"},
	{Path: "/colors", AllowedRoles: staffRoles, Description: "Manage colors"},
	{Path: "/colors/:id", AllowedRoles: staffRoles, Description: "Edit color"},
	{Path: "/optionals", AllowedRoles: staffRoles, Description: "Manage optionals"},
	{Path: "/optionals/:id", AllowedRoles: staffRoles, Description: "Edit optional"},
	{Path: "/vehicles", AllowedRoles: staffRoles, Description: "Manage vehicle prices"},
	{Path: "/vehicles/:id", AllowedRoles: staffRoles, Description: "Edit vehicle prices"},
	{Path: "/direct-sales", AllowedRoles: adminOnly, Description: "Manage direct sales"},
	{Path: "/direct-sales/:id", AllowedRoles: adminOnly, Description: "Edit direct sale"},
	{Path: "/quotes", AllowedRoles: allRoles, Description: "Quotes"},
	{Path: "/users", AllowedRoles: adminOnly, Description: "Manage users"},
	{Path: "/users/:id", AllowedRoles: adminOnly, Description: "Edit user"},
	{Path: "/audit", AllowedRoles: adminOnly, Description: "Audit log"},
	{Path: PathPermissions, AllowedRoles: adminOnly, Description: "Configure permissions"},
}

// DefaultRoutes returns a copy of the static permission table so callers
// cannot mutate the compiled-in rules.
func DefaultRoutes() []RouteRule {
	out := make([]RouteRule, len(defaultRoutes))
	copy(out, defaultRoutes)
	return out
}
