package apiclient

import (
	"context"
	"net/http"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

var _ ports.FinanceAPI = (*Finance)(nil)

// Finance wraps /finance.
type Finance struct{ c *Client }

// Transactions returns one page of ledger entries.
func (f *Finance) Transactions(ctx context.Context, q model.TransactionQuery) (model.Page[model.Transaction], error) {
	if err := q.DateRange.Validate(); err != nil {
		return model.Page[model.Transaction]{}, validation(err)
	}
	raw, err := f.c.do(ctx, call{method: http.MethodGet, path: "/finance/transactions", query: q.Values(), fallback: "failed to load transactions"})
	if err != nil {
		return model.Page[model.Transaction]{}, err
	}
	return decodePage[model.Transaction](raw, "transactions")
}

// Summary returns the finance overview for r.
func (f *Finance) Summary(ctx context.Context, r model.DateRange) (model.Summary, error) {
	var out model.Summary
	err := f.report(ctx, "/finance/summary", r, "failed to load finance summary", &out)
	return out, err
}

// SalesStatistics returns sale counts and revenue for r.
func (f *Finance) SalesStatistics(ctx context.Context, r model.DateRange) (model.SalesStatistics, error) {
	var out model.SalesStatistics
	err := f.report(ctx, "/finance/reports/sales-statistics", r, "failed to load sales statistics", &out)
	return out, err
}

// SalesTrend returns income and expense per period bucket.
func (f *Finance) SalesTrend(ctx context.Context, q model.TrendQuery) ([]model.TrendPoint, error) {
	if err := q.Validate(); err != nil {
		return nil, validation(err)
	}
	var out []model.TrendPoint
	err := f.c.doJSON(ctx, call{
		method:   http.MethodGet,
		path:     "/finance/reports/sales-trend",
		query:    q.Values(),
		fallback: "failed to load sales trend",
	}, &out)
	return out, err
}

// TopSellingBooks returns the best sellers by quantity.
func (f *Finance) TopSellingBooks(ctx context.Context, q model.TopBooksQuery) ([]model.TopBook, error) {
	if err := q.DateRange.Validate(); err != nil {
		return nil, validation(err)
	}
	var out []model.TopBook
	err := f.c.doJSON(ctx, call{
		method:   http.MethodGet,
		path:     "/finance/reports/top-selling-books",
		query:    q.Values(),
		fallback: "failed to load top selling books",
	}, &out)
	return out, err
}

// ProfitAnalysis returns revenue, cost and margins for r.
func (f *Finance) ProfitAnalysis(ctx context.Context, r model.DateRange) (model.ProfitAnalysis, error) {
	var out model.ProfitAnalysis
	err := f.report(ctx, "/finance/reports/profit-analysis", r, "failed to load profit analysis", &out)
	return out, err
}

// RevenueByCategory returns revenue grouped by category.
func (f *Finance) RevenueByCategory(ctx context.Context, r model.DateRange) ([]model.CategoryRevenue, error) {
	var out []model.CategoryRevenue
	err := f.report(ctx, "/finance/reports/revenue-by-category", r, "failed to load revenue by category", &out)
	return out, err
}

func (f *Finance) report(ctx context.Context, path string, r model.DateRange, fallback string, out any) error {
	if err := r.Validate(); err != nil {
		return validation(err)
	}
	return f.c.doJSON(ctx, call{method: http.MethodGet, path: path, query: r.Values(), fallback: fallback}, out)
}
