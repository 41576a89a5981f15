package apiclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
	apperrors "github.com/bookstore/bookstore-admin/internal/errors"
	"github.com/bookstore/bookstore-admin/internal/testutil"
	"github.com/bookstore/bookstore-admin/internal/testutil/fakeapi"
)

func loginCreds(user, pass string) domainauth.Credentials {
	return domainauth.Credentials{Username: user, Password: pass}
}

// signIn logs in against srv and returns a client carrying the issued token.
func signIn(t *testing.T, srv *fakeapi.Server, user, pass string) *Client {
	t.Helper()
	creds := &staticCreds{}
	c := newTestClient(t, srv.APIURL(), creds)
	res, err := c.Auth.Login(context.Background(), loginCreds(user, pass))
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	creds.token = res.Token
	return c
}

func TestAuth_LoginAndCurrentUser(t *testing.T) {
	srv := fakeapi.New(fakeapi.Options{})
	defer srv.Close()

	c := newTestClient(t, srv.APIURL(), nil)
	_, err := c.Auth.Login(context.Background(), loginCreds("admin", "nope"))
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidCredentials(err))

	c = signIn(t, srv, "admin", "secret")
	me, err := c.Auth.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, domainauth.RoleAdmin, me.Role)
	assert.Equal(t, 1, srv.Hits("GET /auth/me"))
}

func TestBooks_Lifecycle(t *testing.T) {
	srv := fakeapi.New(fakeapi.Options{Books: []model.Book{testutil.NewBook(1).Build()}})
	defer srv.Close()
	c := signIn(t, srv, "admin", "secret")
	ctx := context.Background()

	author := "Alan Donovan"
	created, err := c.Books.Create(ctx, model.CreateBookRequest{
		ISBN:        "978-0134190440",
		Name:        "The Go Programming Language",
		Author:      &author,
		RetailPrice: model.MustMoney("45.00"),
		Quantity:    3,
	})
	require.NoError(t, err, "create must not send is_active")
	assert.True(t, created.IsActive)

	byISBN, err := c.Books.Get(ctx, "978-0134190440")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byISBN.ID)

	page, err := c.Books.List(ctx, model.BookQuery{Search: "go programming"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.Pages)

	qty := 7
	updated, err := c.Books.Update(ctx, created.ID, model.UpdateBookRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
	assert.True(t, updated.IsActive, "update without is_active keeps the flag")

	msg, err := c.Books.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, msg)

	active, err := c.Books.List(ctx, model.BookQuery{})
	require.NoError(t, err)
	assert.Len(t, active.Items, 1)

	all, err := c.Books.List(ctx, model.BookQuery{ActiveOnly: testutil.BoolPtr(false)})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	_, err = c.Books.Create(ctx, model.CreateBookRequest{
		ISBN: "978-0134190440", Name: "dup", RetailPrice: model.MustMoney("1.00"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestSales_CreateAndRefund(t *testing.T) {
	srv := fakeapi.New(fakeapi.Options{Books: []model.Book{testutil.NewBook(1).WithQuantity(5).Build()}})
	defer srv.Close()
	c := signIn(t, srv, "clerk", "clerkpw")
	ctx := context.Background()

	sale, err := c.Sales.Create(ctx, model.CreateSaleRequest{
		PaymentMethod: "cash",
		Items:         []model.SaleItemInput{{BookID: 1, Quantity: 2, SalePrice: model.MustMoney("30.00")}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.MustMoney("60.00"), sale.TotalAmount)
	assert.Equal(t, "CASH", sale.PaymentMethod)
	book, _ := srv.Book(1)
	assert.Equal(t, 3, book.Quantity)

	res, err := c.Sales.Refund(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SaleStatusRefunded, res.Item.Status)
	assert.NotEmpty(t, res.Message)

	_, err = c.Sales.Refund(ctx, sale.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	page, err := c.Sales.List(ctx, model.SaleQuery{Status: model.SaleStatusRefunded})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestProcurement_Transitions(t *testing.T) {
	srv := fakeapi.New(fakeapi.Options{Books: []model.Book{testutil.NewBook(1).WithQuantity(1).Build()}})
	defer srv.Close()
	c := signIn(t, srv, "admin", "secret")
	ctx := context.Background()

	order, err := c.Procurement.Create(ctx, model.CreateOrderRequest{
		Supplier: "Acme",
		Items: []model.OrderItem{
			{BookID: testutil.Int64Ptr(1), Quantity: 4, PurchasePrice: model.MustMoney("10.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusUnpaid, order.Status)

	_, err = c.Procurement.StockIn(ctx, order.ID)
	require.Error(t, err, "unpaid orders cannot be stocked in")

	paid, err := c.Procurement.Pay(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, paid.Item.Status)

	stocked, err := c.Procurement.StockIn(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusStocked, stocked.Item.Status)
	book, _ := srv.Book(1)
	assert.Equal(t, 5, book.Quantity)

	tx, err := c.Finance.Transactions(ctx, model.TransactionQuery{Type: model.TransactionExpense})
	require.NoError(t, err)
	require.Len(t, tx.Items, 1)
	assert.Equal(t, model.MustMoney("40.00"), tx.Items[0].Amount)
}

func TestProcurement_ForbiddenForBaseUser(t *testing.T) {
	srv := fakeapi.New(fakeapi.Options{})
	defer srv.Close()
	c := signIn(t, srv, "clerk", "clerkpw")

	_, err := c.Procurement.List(context.Background(), model.OrderQuery{})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, "insufficient permission", apperrors.Message(err))
}

func TestUsers_FlatListAndFieldErrors(t *testing.T) {
	srv := fakeapi.New(fakeapi.Options{})
	defer srv.Close()
	c := signIn(t, srv, "root", "rootpw")
	ctx := context.Background()

	users, err := c.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	age := 30
	_, err = c.Users.Create(ctx, model.CreateUserRequest{
		Username: "admin", Password: "secret1", EmployeeID: "E9", Age: &age,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "username", apperrors.GetField(err))
	assert.Equal(t, []string{"username already exists"}, apperrors.GetFields(err)["username"])

	name := "Root User"
	me, err := c.Users.UpdateProfile(ctx, model.UpdateProfileRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, me.FullName)
}

func TestFinance_Reports(t *testing.T) {
	srv := fakeapi.New(fakeapi.Options{Books: []model.Book{testutil.NewBook(1).Build()}})
	defer srv.Close()
	clerk := signIn(t, srv, "clerk", "clerkpw")
	ctx := context.Background()
	_, err := clerk.Sales.Create(ctx, model.CreateSaleRequest{
		Items: []model.SaleItemInput{{BookID: 1, Quantity: 1, SalePrice: model.MustMoney("20.00")}},
	})
	require.NoError(t, err)

	c := signIn(t, srv, "admin", "secret")
	sum, err := c.Finance.Summary(ctx, model.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, model.MustMoney("20.00"), sum.TotalIncome)
	assert.Equal(t, model.MustMoney("20.00"), sum.NetProfit)

	stats, err := c.Finance.SalesStatistics(ctx, model.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSales)

	trend, err := c.Finance.SalesTrend(ctx, model.TrendQuery{})
	require.NoError(t, err)
	require.Len(t, trend, 1)

	top, err := c.Finance.TopSellingBooks(ctx, model.TopBooksQuery{})
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(1), top[0].ID)

	_, err = c.Finance.SalesTrend(ctx, model.TrendQuery{Limit: 1000})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
