package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstore/bookstore-admin/config"
	"github.com/bookstore/bookstore-admin/internal/bootstrap"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	mockauth "github.com/bookstore/bookstore-admin/internal/mocks/auth"
	"github.com/bookstore/bookstore-admin/internal/testutil"
	"github.com/bookstore/bookstore-admin/internal/testutil/fakeapi"
)

type harness struct {
	srv   *fakeapi.Server
	store *mockauth.MemorySlotStore
	out   *bytes.Buffer
	in    *strings.Reader
}

func newHarness(t *testing.T, books ...model.Book) *harness {
	t.Helper()
	srv := fakeapi.New(fakeapi.Options{Now: testutil.TestTime, Books: books})
	t.Cleanup(srv.Close)
	return &harness{srv: srv, store: mockauth.NewMemorySlotStore(), out: &bytes.Buffer{}, in: strings.NewReader("")}
}

func (h *harness) run(t *testing.T, name string, args ...string) error {
	t.Helper()
	cmd, ok := commands()[name]
	require.True(t, ok, "command %s is registered", name)

	cfg := config.AppConfig{API: config.APIConfig{BaseURL: h.srv.APIURL()}}
	cfg.Sanitize()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h.out.Reset()
	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
		Stdout: h.out,
		Stdin:  h.in,
		buildConsole: func(ctx context.Context) (*bootstrap.Console, error) {
			return bootstrap.NewConsole(ctx, bootstrap.ConsoleOptions{Config: cfg, Logger: logger, Store: h.store})
		},
	}
	return cmd.run(cmdCtx, args)
}

func (h *harness) login(t *testing.T, username, password string) {
	t.Helper()
	require.NoError(t, h.run(t, "login", "--username", username, "--password", password))
}

func TestPrintUsageListsEveryCommand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))
	for name := range commands() {
		assert.Contains(t, buf.String(), "  "+name+" ")
	}
}

func TestLogin_PersistsSessionForLaterCommands(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin", "secret")
	assert.Contains(t, h.out.String(), "Signed in as admin (NORMAL_ADMIN)")
	assert.Contains(t, h.out.String(), "Opened /\n")

	require.NoError(t, h.run(t, "whoami", "--query", "username"))
	assert.Equal(t, "\"admin\"\n", h.out.String())
}

func TestLogin_RedirectOpensPreservedDestination(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "login", "--username", "clerk", "--password", "clerkpw", "--redirect", "/sales"))
	assert.Contains(t, h.out.String(), "Opened /sales")
}

func TestLogin_OffsiteRedirectFallsBackToHome(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "login", "--username", "clerk", "--password", "clerkpw", "--redirect", "//evil.example"))
	assert.Contains(t, h.out.String(), "Opened /\n")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "login", "--username", "admin", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, 0, h.store.Len())
}

func TestLogin_PasswordFromStdin(t *testing.T) {
	h := newHarness(t)
	h.in = strings.NewReader("secret\n")
	t.Setenv(passwordEnv, "")
	require.NoError(t, h.run(t, "login", "--username", "admin"))
	assert.Contains(t, h.out.String(), "Signed in as admin")
}

func TestCommands_RequireSignIn(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "books")
	require.ErrorIs(t, err, errNotSignedIn)
	assert.Equal(t, 0, h.srv.Hits("GET /books/"))
}

func TestCommands_RoleGuard(t *testing.T) {
	h := newHarness(t)
	h.login(t, "clerk", "clerkpw")

	err := h.run(t, "finance-summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient permission")
	assert.Equal(t, 0, h.srv.Hits("GET /finance/summary"))

	err = h.run(t, "users")
	require.Error(t, err)
	assert.Equal(t, 0, h.srv.Hits("GET /users/"))
}

func TestOpen_ReportsFilterLanding(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "open", "/finance"))
	assert.Equal(t, "Login\t/login?redirect=%2Ffinance\n", h.out.String())

	h.login(t, "clerk", "clerkpw")
	require.NoError(t, h.run(t, "open", "/finance"))
	assert.Equal(t, "Dashboard\t/\n", h.out.String())
}

func TestLogout_ClearsStorage(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin", "secret")
	require.Positive(t, h.store.Len())

	require.NoError(t, h.run(t, "logout"))
	assert.Equal(t, 0, h.store.Len())
	require.ErrorIs(t, h.run(t, "whoami"), errNotSignedIn)
}

func TestBooks_CreateThenQuery(t *testing.T) {
	h := newHarness(t, testutil.NewBook(1).Build())
	h.login(t, "admin", "secret")

	require.NoError(t, h.run(t, "book-create",
		"--isbn", "978-1-11-111111-1", "--name", "Go in Practice", "--author", "Gopher", "--price", "25.00", "--quantity", "3",
		"--json"))
	assert.Contains(t, h.out.String(), `"name": "Go in Practice"`)

	require.NoError(t, h.run(t, "books", "--search", "practice", "--query", "items[].isbn"))
	assert.JSONEq(t, `["978-1-11-111111-1"]`, h.out.String())

	require.NoError(t, h.run(t, "book", "--ref", "978-1-11-111111-1"))
	assert.Contains(t, h.out.String(), "Gopher")
}

func TestBooks_InvalidQueryIsRejectedBeforeNetwork(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin", "secret")
	before := h.srv.TotalHits()

	err := h.run(t, "books", "--query", "items[")
	require.Error(t, err)
	assert.Equal(t, before, h.srv.TotalHits())
}

func TestBookDelete_AbortsWithoutConfirmation(t *testing.T) {
	h := newHarness(t, testutil.NewBook(1).Build())
	h.login(t, "admin", "secret")
	h.in = strings.NewReader("n\n")

	err := h.run(t, "book-delete", "--id", "1")
	require.EqualError(t, err, "aborted by user")
	b, ok := h.srv.Book(1)
	require.True(t, ok)
	assert.True(t, b.IsActive)

	require.NoError(t, h.run(t, "book-delete", "--id", "1", "--yes"))
	b, _ = h.srv.Book(1)
	assert.False(t, b.IsActive)
}

func TestSales_CreateAndRefund(t *testing.T) {
	h := newHarness(t, testutil.NewBook(1).Build())
	h.login(t, "clerk", "clerkpw")

	require.NoError(t, h.run(t, "sale-create", "--item", "1:2:39.90", "--query", "id"))
	id := strings.TrimSpace(h.out.String())
	require.NotEmpty(t, id)

	require.NoError(t, h.run(t, "sale-refund", "--id", id, "--yes"))
	require.NoError(t, h.run(t, "sale", "--id", id, "--query", "status"))
	assert.Equal(t, "\"REFUNDED\"\n", h.out.String())

	err := h.run(t, "sale-refund", "--id", id, "--yes")
	require.EqualError(t, err, "only completed sales can be refunded")
}

func TestOrders_Lifecycle(t *testing.T) {
	h := newHarness(t)
	h.login(t, "admin", "secret")

	require.NoError(t, h.run(t, "order-create", "--supplier", "Acme",
		"--new-item", "Concurrency in Go:Katherine:O'Reilly:4:20.00", "--query", "id"))
	id := strings.TrimSpace(h.out.String())

	err := h.run(t, "order-stock-in", "--id", id, "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is UNPAID")

	require.NoError(t, h.run(t, "order-pay", "--id", id, "--yes"))
	assert.Contains(t, h.out.String(), "is now PAID")

	require.NoError(t, h.run(t, "order-stock-in", "--id", id, "--yes"))
	assert.Contains(t, h.out.String(), "is now STOCKED")

	require.NoError(t, h.run(t, "books", "--search", "concurrency", "--query", "items[0].quantity"))
	assert.Equal(t, "4\n", h.out.String())

	require.NoError(t, h.run(t, "transactions", "--type", "expense", "--query", "items[0].amount"))
	assert.Equal(t, "80\n", h.out.String())
}

func TestFinanceExport_CSVToStdout(t *testing.T) {
	h := newHarness(t)
	h.srv.AddTransaction(model.TransactionIncome, model.MustMoney("12.5"), "Counter sale", testutil.TestTime())
	h.login(t, "admin", "secret")

	require.NoError(t, h.run(t, "finance-export", "--format", "csv", "--output", "-"))
	out := h.out.String()
	assert.True(t, strings.HasPrefix(out, "\ufeff\"Date\",\"Type\",\"Amount\",\"Description\",\"Reference\"\n"))
	assert.Contains(t, out, `"Income",12.50,"Counter sale",""`)
}

func TestFinanceExport_WritesFile(t *testing.T) {
	h := newHarness(t)
	h.srv.AddTransaction(model.TransactionExpense, model.MustMoney("3"), "Shelving", testutil.TestTime())
	h.login(t, "admin", "secret")
	dest := t.TempDir() + "/ledger.xls"

	require.NoError(t, h.run(t, "finance-export", "--format", "xls", "--output", dest))
	assert.Contains(t, h.out.String(), "Exported 1 rows to "+dest)
}

func TestProfileUpdate_RefreshesWhoami(t *testing.T) {
	h := newHarness(t)
	h.login(t, "clerk", "clerkpw")

	require.NoError(t, h.run(t, "profile-update", "--name", "Counter Clerk"))
	require.NoError(t, h.run(t, "whoami", "--query", "full_name"))
	assert.Equal(t, "\"Counter Clerk\"\n", h.out.String())
}

func TestDashboard_BaseUserSeesNoFinancePanels(t *testing.T) {
	h := newHarness(t, testutil.NewBook(1).Build())
	h.login(t, "clerk", "clerkpw")

	require.NoError(t, h.run(t, "dashboard", "--json"))
	assert.NotContains(t, h.out.String(), `"summary"`)
	assert.Equal(t, 0, h.srv.Hits("GET /finance/summary"))

	require.NoError(t, h.run(t, "logout"))
	h.login(t, "admin", "secret")
	require.NoError(t, h.run(t, "dashboard"))
	assert.Contains(t, h.out.String(), "Finance")
	assert.Contains(t, h.out.String(), "Unpaid purchase orders")
}

func TestParseSaleItems(t *testing.T) {
	items, err := parseSaleItems([]string{"3:2:10.5"})
	require.NoError(t, err)
	assert.Equal(t, []model.SaleItemInput{{BookID: 3, Quantity: 2, SalePrice: model.MustMoney("10.50")}}, items)

	_, err = parseSaleItems([]string{"3:2"})
	require.Error(t, err)
	_, err = parseSaleItems([]string{"x:2:1"})
	require.Error(t, err)
}

func TestParseOrderItems(t *testing.T) {
	items, err := parseOrderItems([]string{"7:1:2.00"}, []string{"Title:Author:Press:2:5"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].BookID)
	assert.Equal(t, int64(7), *items[0].BookID)
	assert.Nil(t, items[1].BookID)
	assert.Equal(t, "Press", items[1].Publisher)
	assert.Equal(t, model.MustMoney("5"), items[1].PurchasePrice)
}

func TestWithFieldDetails(t *testing.T) {
	base := assert.AnError
	assert.Equal(t, base, withFieldDetails(base, nil))
	err := withFieldDetails(base, map[string][]string{"isbn": {"taken"}, "age": {"too low", "required"}})
	require.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "(age: too low; required, isbn: taken)")
}
