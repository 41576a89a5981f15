package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path   string
		name   string
		params map[string]string
	}{
		{"", NameDashboard, nil},
		{"/", NameDashboard, nil},
		{"/login?redirect=%2Fbooks", NameLogin, nil},
		{"/books", NameBooks, nil},
		{"/books/", NameBooks, nil},
		{"/books/9780261103573", NameBookDetail, map[string]string{"id": "9780261103573"}},
		{"/sales/3", NameSaleDetail, map[string]string{"id": "3"}},
		{"/procurement/12?tab=items", NameProcurementDetail, map[string]string{"id": "12"}},
		{"/finance", NameFinance, nil},
		{"/users", NameUsers, nil},
		{"/profile", NameProfile, nil},
		{"/books/1/edit", NameNotFound, nil},
		{"/unknown", NameNotFound, nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m := Resolve(tt.path)
			assert.Equal(t, tt.name, m.Route.Name)
			assert.Equal(t, tt.params, m.Params)
		})
	}
}

func TestResolve_KeepsQuery(t *testing.T) {
	m := Resolve("/login?redirect=%2Ffinance")
	assert.Equal(t, "/finance", m.Query.Get(RedirectParam))
	assert.Equal(t, "/login", m.Path)
}

func TestSafeRedirect(t *testing.T) {
	tests := map[string]string{
		"":                        "/",
		"/books?page=2":           "/books?page=2",
		"/finance":                "/finance",
		"//evil.example":          "/",
		"/\\evil.example":         "/",
		"https://evil.example/x":  "/",
		"books":                   "/",
		"/login?redirect=%2Fbook": "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeRedirect(in), in)
	}
}
