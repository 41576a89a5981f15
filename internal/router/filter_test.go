package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
)

type fakeView struct {
	authenticated bool
	role          domainauth.Role
}

func (v fakeView) IsAuthenticated() bool { return v.authenticated }

func (v fakeView) HasRole(role domainauth.Role) bool {
	return v.authenticated && v.role.Satisfies(role)
}

var (
	anonymous  = fakeView{}
	baseUser   = fakeView{authenticated: true, role: domainauth.RoleUser}
	admin      = fakeView{authenticated: true, role: domainauth.RoleAdmin}
	superAdmin = fakeView{authenticated: true, role: domainauth.RoleSuperAdmin}
)

func TestDecide_Matrix(t *testing.T) {
	type want map[string]string // view name -> redirect ("" means allow)
	views := map[string]fakeView{"anonymous": anonymous, "user": baseUser, "admin": admin, "super": superAdmin}

	tests := []struct {
		path string
		want want
	}{
		{"/", want{"anonymous": "/login?redirect=%2F", "user": "", "admin": "", "super": ""}},
		{"/login", want{"anonymous": "", "user": "/", "admin": "/", "super": "/"}},
		{"/books", want{"anonymous": "/login?redirect=%2Fbooks", "user": "", "admin": "", "super": ""}},
		{"/books/42", want{"anonymous": "/login?redirect=%2Fbooks%2F42", "user": "", "admin": "", "super": ""}},
		{"/sales", want{"anonymous": "/login?redirect=%2Fsales", "user": "", "admin": "", "super": ""}},
		{"/procurement", want{"anonymous": "/login?redirect=%2Fprocurement", "user": "/", "admin": "", "super": ""}},
		{"/procurement/7", want{"anonymous": "/login?redirect=%2Fprocurement%2F7", "user": "/", "admin": "", "super": ""}},
		{"/finance", want{"anonymous": "/login?redirect=%2Ffinance", "user": "/", "admin": "", "super": ""}},
		{"/users", want{"anonymous": "/login?redirect=%2Fusers", "user": "/", "admin": "/", "super": ""}},
		{"/profile", want{"anonymous": "/login?redirect=%2Fprofile", "user": "", "admin": "", "super": ""}},
		{"/nope", want{"anonymous": "", "user": "", "admin": "", "super": ""}},
	}

	for _, tt := range tests {
		for name, v := range views {
			t.Run(tt.path+"/"+name, func(t *testing.T) {
				m := Resolve(tt.path)
				d := Decide(m.Route, m.FullPath, v)
				assert.Equal(t, tt.want[name], d.Redirect)
				assert.Equal(t, tt.want[name] == "", d.Allowed())
			})
		}
	}
}

func TestDecide_AuthCheckedBeforeRole(t *testing.T) {
	// An unauthenticated principal that somehow claims a role still goes to login.
	v := fakeView{authenticated: false, role: domainauth.RoleSuperAdmin}
	d := Decide(Route{Name: NameUsers, RequiresAuth: true, RequiresRole: domainauth.RoleSuperAdmin}, "/users", v)
	assert.Equal(t, "/login?redirect=%2Fusers", d.Redirect)
}

func TestDecide_PreservesQueryInRedirect(t *testing.T) {
	m := Resolve("/books?search=dune&page=2")
	d := Decide(m.Route, m.FullPath, anonymous)
	assert.Equal(t, LoginRedirect("/books?search=dune&page=2"), d.Redirect)
}

func TestDecide_RoleWithoutAuthFlag(t *testing.T) {
	r := Route{Name: "Reports", RequiresRole: domainauth.RoleAdmin}
	assert.Equal(t, HomePath, Decide(r, "/reports", anonymous).Redirect)
	assert.True(t, Decide(r, "/reports", admin).Allowed())
}
