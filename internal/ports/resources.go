package ports

import (
	"context"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
)

// BookAPI manages inventory.
type BookAPI interface {
	List(ctx context.Context, q model.BookQuery) (model.Page[model.Book], error)
	// Get accepts a numeric id or an ISBN.
	Get(ctx context.Context, idOrISBN string) (model.Book, error)
	Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	Update(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error)
	// Delete deactivates the book and returns the server message.
	Delete(ctx context.Context, id int64) (string, error)
}

// SaleAPI manages point-of-sale transactions.
type SaleAPI interface {
	List(ctx context.Context, q model.SaleQuery) (model.Page[model.Sale], error)
	Get(ctx context.Context, id int64) (model.Sale, error)
	Create(ctx context.Context, req model.CreateSaleRequest) (model.Sale, error)
	Refund(ctx context.Context, id int64) (model.ActionResult[model.Sale], error)
}

// ProcurementAPI manages purchase orders.
type ProcurementAPI interface {
	List(ctx context.Context, q model.OrderQuery) (model.Page[model.PurchaseOrder], error)
	Get(ctx context.Context, id int64) (model.PurchaseOrder, error)
	Create(ctx context.Context, req model.CreateOrderRequest) (model.PurchaseOrder, error)
	Update(ctx context.Context, id int64, req model.UpdateOrderRequest) (model.PurchaseOrder, error)
	Pay(ctx context.Context, id int64) (model.ActionResult[model.PurchaseOrder], error)
	Return(ctx context.Context, id int64) (model.ActionResult[model.PurchaseOrder], error)
	StockIn(ctx context.Context, id int64) (model.ActionResult[model.PurchaseOrder], error)
}

// FinanceAPI reads the ledger and reports.
type FinanceAPI interface {
	Transactions(ctx context.Context, q model.TransactionQuery) (model.Page[model.Transaction], error)
	Summary(ctx context.Context, r model.DateRange) (model.Summary, error)
	SalesStatistics(ctx context.Context, r model.DateRange) (model.SalesStatistics, error)
	SalesTrend(ctx context.Context, q model.TrendQuery) ([]model.TrendPoint, error)
	TopSellingBooks(ctx context.Context, q model.TopBooksQuery) ([]model.TopBook, error)
	ProfitAnalysis(ctx context.Context, r model.DateRange) (model.ProfitAnalysis, error)
	RevenueByCategory(ctx context.Context, r model.DateRange) ([]model.CategoryRevenue, error)
}

// UserAPI manages admin accounts and the signed-in user's profile.
type UserAPI interface {
	List(ctx context.Context) ([]domainauth.Principal, error)
	Get(ctx context.Context, id int64) (domainauth.Principal, error)
	Create(ctx context.Context, req model.CreateUserRequest) (domainauth.Principal, error)
	Update(ctx context.Context, id int64, req model.UpdateUserRequest) (domainauth.Principal, error)
	Delete(ctx context.Context, id int64) (string, error)
	UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (domainauth.Principal, error)
}
