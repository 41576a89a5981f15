// Package fakeapi is an in-memory bookstore backend for tests.
//
// It mounts the same REST surface as the production server under /api and
// keeps every resource in memory. Tokens are issued by /auth/login and can be
// revoked to simulate expiry.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
)

// BasePath is where the API is mounted.
const BasePath = "/api"

type account struct {
	principal domainauth.Principal
	password  string
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	now      func() time.Time
	accounts map[int64]*account
	tokens   map[string]int64
	books    map[int64]*model.Book
	sales    map[int64]*model.Sale
	orders   map[int64]*model.PurchaseOrder
	ledger   []model.Transaction
	nextID   int64
	hits     map[string]int

	forceUnauthorized atomic.Bool
	failWith          atomic.Int32
}

// Options seeds the fake backend.
type Options struct {
	Now   func() time.Time
	Books []model.Book
}

// New starts a fake backend seeded with an admin ("admin"/"secret"), a super
// admin ("root"/"rootpw") and a base user ("clerk"/"clerkpw").
func New(opts Options) *Server {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Server{
		now:      now,
		accounts: map[int64]*account{},
		tokens:   map[string]int64{},
		books:    map[int64]*model.Book{},
		sales:    map[int64]*model.Sale{},
		orders:   map[int64]*model.PurchaseOrder{},
		hits:     map[string]int{},
	}
	s.AddUser("admin", "secret", domainauth.RoleAdmin)
	s.AddUser("root", "rootpw", domainauth.RoleSuperAdmin)
	s.AddUser("clerk", "clerkpw", domainauth.RoleUser)
	for i := range opts.Books {
		b := opts.Books[i]
		if b.ID == 0 {
			b.ID = s.id()
		} else if b.ID > s.nextID {
			s.nextID = b.ID
		}
		s.books[b.ID] = &b
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// URL of the API root, suitable for apiclient.Options.BaseURL.
func (s *Server) APIURL() string { return s.Server.URL + BasePath }

// AddUser registers an account and returns its principal.
func (s *Server) AddUser(username, password string, role domainauth.Role) domainauth.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	p := domainauth.Principal{
		ID:         id,
		Username:   username,
		FullName:   username,
		EmployeeID: fmt.Sprintf("E%04d", id),
		Role:       role,
		CreatedAt:  model.Timestamp{Time: s.now().UTC()},
	}
	s.accounts[id] = &account{principal: p, password: password}
	return p
}

// IssueToken mints a token for username without a login round trip.
func (s *Server) IssueToken(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.accounts {
		if a.principal.Username == username {
			tok := uuid.NewString()
			s.tokens[tok] = id
			return tok
		}
	}
	return ""
}

// Revoke invalidates token so every later call with it receives 401.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// ForceUnauthorized makes every authenticated endpoint answer 401.
func (s *Server) ForceUnauthorized(on bool) { s.forceUnauthorized.Store(on) }

// FailWith makes every endpoint answer status until reset with 0.
func (s *Server) FailWith(status int) { s.failWith.Store(int32(status)) }

// Hits returns how many requests matched "METHOD /route/pattern".
func (s *Server) Hits(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[key]
}

// TotalHits returns the number of requests served.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

// Book returns a copy of the stored book.
func (s *Server) Book(id int64) (model.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok {
		return model.Book{}, false
	}
	return *b, true
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.count)
	r.Use(s.injectFailure)

	r.Route(BasePath, func(r chi.Router) {
		r.Post("/auth/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/auth/me", s.me)

			r.Get("/books/", s.listBooks)
			r.Post("/books/", s.createBook)
			r.Get("/books/{ref}", s.getBook)
			r.Put("/books/{id}", s.updateBook)
			r.Delete("/books/{id}", s.deleteBook)

			r.Get("/sales", s.listSales)
			r.Post("/sales", s.createSale)
			r.Get("/sales/{id}", s.getSale)
			r.Post("/sales/{id}/refund", s.refundSale)

			r.Put("/users/me", s.updateProfile)

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(domainauth.RoleAdmin))
				r.Get("/procurement/orders", s.listOrders)
				r.Post("/procurement/orders", s.createOrder)
				r.Get("/procurement/orders/{id}", s.getOrder)
				r.Put("/procurement/orders/{id}", s.updateOrder)
				r.Post("/procurement/orders/{id}/{action}", s.transitionOrder)

				r.Get("/finance/transactions", s.listTransactions)
				r.Get("/finance/summary", s.summary)
				r.Get("/finance/reports/sales-statistics", s.salesStatistics)
				r.Get("/finance/reports/sales-trend", s.salesTrend)
				r.Get("/finance/reports/top-selling-books", s.topBooks)
				r.Get("/finance/reports/profit-analysis", s.profitAnalysis)
				r.Get("/finance/reports/revenue-by-category", s.revenueByCategory)
			})

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(domainauth.RoleSuperAdmin))
				r.Get("/users/", s.listUsers)
				r.Post("/users/", s.createUser)
				r.Get("/users/{id}", s.getUser)
				r.Put("/users/{id}", s.updateUser)
				r.Delete("/users/{id}", s.deleteUser)
			})
		})
	})
	return r
}

// Middleware

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		pattern := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			pattern = rc.RoutePattern()
		}
		s.mu.Lock()
		s.hits[r.Method+" "+strings.TrimPrefix(pattern, BasePath)]++
		s.mu.Unlock()
	})
}

func (s *Server) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code := int(s.failWith.Load()); code != 0 {
			writeError(w, code, http.StatusText(code))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type principalKey struct{}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.forceUnauthorized.Load() {
			writeError(w, http.StatusUnauthorized, "token expired")
			return
		}
		tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || tok == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		s.mu.Lock()
		id, found := s.tokens[tok]
		var p domainauth.Principal
		if a, exists := s.accounts[id]; found && exists {
			p = a.principal
		} else {
			found = false
		}
		s.mu.Unlock()
		if !found {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
	})
}

func (s *Server) requireRole(role domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !principalFrom(r.Context()).Role.Satisfies(role) {
				writeError(w, http.StatusForbidden, "insufficient permission")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Encoding helpers

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func writeFieldErrors(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": fields})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}

type pageWindow struct {
	page, perPage int
}

func parseWindow(r *http.Request) pageWindow {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	per, _ := strconv.Atoi(q.Get("per_page"))
	if page < 1 {
		page = 1
	}
	if per < 1 {
		per = model.DefaultPerPage
	}
	if per > model.MaxPerPage {
		per = model.MaxPerPage
	}
	return pageWindow{page: page, perPage: per}
}

// paginate slices items and returns the backend's {<key>, pagination} body.
func paginate[T any](key string, items []T, win pageWindow) map[string]any {
	p := model.Pagination{Page: win.page, PerPage: win.perPage, Total: len(items)}
	p.Recompute()
	start := (win.page - 1) * win.perPage
	if start > len(items) {
		start = len(items)
	}
	end := start + win.perPage
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return map[string]any{key: out, "pagination": p}
}

func inRange(ts model.Timestamp, r *http.Request) bool {
	day := ts.UTC().Format("2006-01-02")
	if start := r.URL.Query().Get("start_date"); start != "" && day < start {
		return false
	}
	if end := r.URL.Query().Get("end_date"); end != "" && day > end {
		return false
	}
	return true
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })
	return keys
}

func (s *Server) stamp() model.Timestamp {
	return model.Timestamp{Time: s.now().UTC()}
}
