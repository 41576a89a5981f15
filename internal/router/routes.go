// Package router holds the dashboard route table and the authorization filter
// consulted before every navigation.
package router

import (
	"net/url"
	"strings"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
)

const (
	// HomePath is the default landing route.
	HomePath = "/"
	// LoginPath is the login entry point.
	LoginPath = "/login"
	// RedirectParam carries the preserved destination on the login route.
	RedirectParam = "redirect"
)

// Route names.
const (
	NameDashboard         = "Dashboard"
	NameLogin             = "Login"
	NameBooks             = "Books"
	NameBookDetail        = "BookDetail"
	NameSales             = "Sales"
	NameSaleDetail        = "SaleDetail"
	NameProcurement       = "Procurement"
	NameProcurementDetail = "ProcurementDetail"
	NameFinance           = "Finance"
	NameUsers             = "UserManagement"
	NameProfile           = "Profile"
	NameNotFound          = "NotFound"
)

// Route is one entry of the route table.
// RequiresRole is empty when any authenticated principal may enter.
type Route struct {
	Name         string
	Pattern      string
	RequiresAuth bool
	RequiresRole domainauth.Role
}

// Table is the dashboard route table in match order.
var Table = []Route{
	{Name: NameDashboard, Pattern: "/", RequiresAuth: true},
	{Name: NameLogin, Pattern: LoginPath},
	{Name: NameBooks, Pattern: "/books", RequiresAuth: true},
	{Name: NameBookDetail, Pattern: "/books/:id", RequiresAuth: true},
	{Name: NameSales, Pattern: "/sales", RequiresAuth: true},
	{Name: NameSaleDetail, Pattern: "/sales/:id", RequiresAuth: true},
	{Name: NameProcurement, Pattern: "/procurement", RequiresAuth: true, RequiresRole: domainauth.RoleAdmin},
	{Name: NameProcurementDetail, Pattern: "/procurement/:id", RequiresAuth: true, RequiresRole: domainauth.RoleAdmin},
	{Name: NameFinance, Pattern: "/finance", RequiresAuth: true, RequiresRole: domainauth.RoleAdmin},
	{Name: NameUsers, Pattern: "/users", RequiresAuth: true, RequiresRole: domainauth.RoleSuperAdmin},
	{Name: NameProfile, Pattern: "/profile", RequiresAuth: true},
}

// NotFound matches any path absent from Table.
var NotFound = Route{Name: NameNotFound, Pattern: "/*"}

// Match is a resolved navigation target.
type Match struct {
	Route    Route
	Path     string
	FullPath string
	Params   map[string]string
	Query    url.Values
}

// Resolve matches fullPath (path plus optional query) against Table.
func Resolve(fullPath string) Match {
	if fullPath == "" {
		fullPath = HomePath
	}
	u, err := url.Parse(fullPath)
	if err != nil {
		return Match{Route: NotFound, Path: fullPath, FullPath: fullPath}
	}
	p := cleanPath(u.Path)
	m := Match{Path: p, FullPath: fullPath, Query: u.Query()}
	for _, r := range Table {
		if params, ok := matchPattern(r.Pattern, p); ok {
			m.Route = r
			m.Params = params
			return m
		}
	}
	m.Route = NotFound
	return m
}

// LoginRedirect is the login route preserving target as the destination.
func LoginRedirect(target string) string {
	return LoginPath + "?" + url.Values{RedirectParam: {target}}.Encode()
}

// SafeRedirect returns target when it is a same-origin relative path, otherwise HomePath.
func SafeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return HomePath
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return HomePath
	}
	if Resolve(target).Route.Name == NameLogin {
		return HomePath
	}
	return target
}

func cleanPath(p string) string {
	if p == "" {
		return HomePath
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func matchPattern(pattern, p string) (map[string]string, bool) {
	if pattern == p {
		return nil, true
	}
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(p, "/"), "/")
	if len(ps) != len(xs) {
		return nil, false
	}
	var params map[string]string
	for i, seg := range ps {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if xs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[name] = xs[i]
			continue
		}
		if seg != xs[i] {
			return nil, false
		}
	}
	return params, true
}
