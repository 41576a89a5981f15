package router

import domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"

// View is the read-only session state the filter consults.
type View interface {
	IsAuthenticated() bool
	HasRole(role domainauth.Role) bool
}

// Decision is the filter outcome. Redirect is empty when the navigation is allowed.
type Decision struct {
	Redirect string
}

// Allowed reports whether navigation may proceed.
func (d Decision) Allowed() bool { return d.Redirect == "" }

// Decide applies the authorization rules, first match wins:
// unauthenticated access to a protected route goes to login with the target preserved,
// a missing role goes to the landing route, an authenticated visit to login goes to the landing route.
func Decide(route Route, fullPath string, v View) Decision {
	authenticated := v.IsAuthenticated()
	switch {
	case route.RequiresAuth && !authenticated:
		return Decision{Redirect: LoginRedirect(fullPath)}
	case route.RequiresRole != "" && !v.HasRole(route.RequiresRole):
		return Decision{Redirect: HomePath}
	case route.Name == NameLogin && authenticated:
		return Decision{Redirect: HomePath}
	default:
		return Decision{}
	}
}
