package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	apperrors "github.com/bookstore/bookstore-admin/internal/errors"
)

// staticCreds hands out a fixed token and records expirations.
type staticCreds struct {
	mu      sync.Mutex
	token   string
	expired []string
}

func (c *staticCreds) Token() (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		return nil, assert.AnError
	}
	return &oauth2.Token{AccessToken: c.token, TokenType: "Bearer"}, nil
}

func (c *staticCreds) Expire(_ context.Context, token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expired = append(c.expired, token)
	if token != c.token {
		return false
	}
	c.token = ""
	return true
}

func (c *staticCreds) Expired() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.expired...)
}

func newTestClient(t *testing.T, baseURL string, creds Credentials) *Client {
	t.Helper()
	c, err := New(Options{BaseURL: baseURL, Credentials: creds})
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("defaults base url", func(t *testing.T) {
		c, err := New(Options{})
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, c.BaseURL())
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		c, err := New(Options{BaseURL: "http://example.test/api/"})
		require.NoError(t, err)
		assert.Equal(t, "http://example.test/api", c.BaseURL())
	})

	t.Run("rejects relative url", func(t *testing.T) {
		_, err := New(Options{BaseURL: "/api"})
		require.Error(t, err)
	})
}

func TestClient_Headers(t *testing.T) {
	var got http.Header
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"name":"Go","is_active":true,"retail_price":"12.50"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/api", &staticCreds{token: "tok-1"})
	book, err := c.Books.Get(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, "/api/books/1", path)
	assert.Equal(t, "Bearer tok-1", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.NotEmpty(t, got.Get(RequestIDHeader))
	assert.Equal(t, defaultUserAgent, got.Get("User-Agent"))
	assert.Equal(t, model.MustMoney("12.50"), book.RetailPrice)
}

func TestClient_NoCredentialSendsNoHeader(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"missing authorization header"}`))
	}))
	defer srv.Close()

	creds := &staticCreds{}
	c := newTestClient(t, srv.URL, creds)
	_, err := c.Auth.CurrentUser(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Empty(t, auth)
	assert.Empty(t, creds.Expired(), "a 401 without a sent token must not expire anything")
}

func TestClient_UnauthorizedExpiresSentToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer srv.Close()

	creds := &staticCreds{token: "stale"}
	c := newTestClient(t, srv.URL, creds)

	_, err := c.Sales.Get(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "token expired", apperrors.Message(err))
	assert.Equal(t, []string{"stale"}, creds.Expired())
}

func TestClient_LoginIsAnonymous(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	creds := &staticCreds{token: "current"}
	c := newTestClient(t, srv.URL, creds)
	_, err := c.Auth.Login(context.Background(), loginCreds("admin", "wrong"))

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidCredentials(err))
	assert.False(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "invalid username or password", apperrors.Message(err))
	assert.Empty(t, auth)
	assert.Empty(t, creds.Expired())
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(error) bool
		message string
		field   string
	}{
		{
			name:    "forbidden default message",
			status:  http.StatusForbidden,
			body:    `{}`,
			check:   apperrors.IsForbidden,
			message: "insufficient permission",
		},
		{
			name:    "validation with field map",
			status:  http.StatusBadRequest,
			body:    `{"error":{"isbn":["isbn already exists"]}}`,
			check:   apperrors.IsValidation,
			message: "isbn: isbn already exists",
			field:   "isbn",
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `{"error":"book not found"}`,
			check:   apperrors.IsNotFound,
			message: "book not found",
		},
		{
			name:    "server error falls back",
			status:  http.StatusInternalServerError,
			body:    `<html>oops</html>`,
			check:   func(err error) bool { return apperrors.GetCode(err) == apperrors.ErrCodeServer },
			message: "failed to load book",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, &staticCreds{token: "t"})
			_, err := c.Books.Get(context.Background(), "42")
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected code %s", apperrors.GetCode(err))
			assert.Equal(t, tt.message, apperrors.Message(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, &staticCreds{token: "t"})
	_, err := c.Finance.Summary(context.Background(), model.DateRange{})
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
}

func TestClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestClient(t, srv.URL, &staticCreds{token: "t"})
	_, err := c.Books.List(ctx, model.BookQuery{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err))
}

func TestClient_LocalValidationSkipsNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hits++ }))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &staticCreds{token: "t"})
	_, err := c.Sales.List(context.Background(), model.SaleQuery{
		DateRange: model.DateRange{StartDate: "2024-02-01", EndDate: "2024-01-01"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = c.Books.Get(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, "id", apperrors.GetField(err))
	assert.Zero(t, hits)
}
