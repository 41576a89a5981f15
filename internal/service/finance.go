package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

const (
	// DefaultTransactionsPerPage is the ledger page size of the finance view.
	DefaultTransactionsPerPage = 10
	exportPageSize             = model.MaxPerPage
)

// TransactionFilters narrow the ledger.
type TransactionFilters struct {
	Type      model.TransactionType
	StartDate string
	EndDate   string
}

func (f TransactionFilters) query(page, perPage int) model.TransactionQuery {
	return model.TransactionQuery{
		PageParams: model.PageParams{Page: page, PerPage: perPage},
		DateRange:  model.DateRange{StartDate: f.StartDate, EndDate: f.EndDate},
		Type:       f.Type,
	}
}

// FinanceServiceOptions groups dependencies for FinanceService.
type FinanceServiceOptions struct {
	API    ports.FinanceAPI // Required
	Logger *slog.Logger     // Optional
}

// FinanceService holds the ledger page, its filters and the summary.
type FinanceService struct {
	tracker
	api          ports.FinanceAPI
	filters      TransactionFilters
	transactions []model.Transaction
	pagination   model.Pagination
	summary      model.Summary
}

// NewFinanceService constructs a new FinanceService.
func NewFinanceService(opts FinanceServiceOptions) *FinanceService {
	if opts.API == nil {
		panic("FinanceAPI is required")
	}
	s := &FinanceService{
		api:        opts.API,
		pagination: model.Pagination{Page: 1, PerPage: DefaultTransactionsPerPage},
	}
	s.useLogger(opts.Logger)
	return s
}

// Filters returns the active ledger filters.
func (s *FinanceService) Filters() TransactionFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetPage selects the ledger page fetched by the next LoadTransactions.
func (s *FinanceService) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.pagination.Page = page
	s.mu.Unlock()
}

// LoadTransactions fetches the current ledger page with the active filters.
func (s *FinanceService) LoadTransactions(ctx context.Context) (model.Page[model.Transaction], error) {
	s.mu.RLock()
	q := s.filters.query(s.pagination.Page, s.pagination.PerPage)
	s.mu.RUnlock()

	s.begin()
	page, err := s.api.Transactions(ctx, q)
	if err != nil {
		return model.Page[model.Transaction]{}, s.finish(ctx, "finance.transactions", fmt.Errorf("list transactions: %w", err))
	}
	s.mu.Lock()
	s.transactions = append([]model.Transaction(nil), page.Items...)
	s.pagination = page.Pagination
	s.mu.Unlock()
	return page, s.finish(ctx, "finance.transactions", nil)
}

// ApplyFilters replaces the ledger filters, returns to the first page and reloads.
func (s *FinanceService) ApplyFilters(ctx context.Context, f TransactionFilters) (model.Page[model.Transaction], error) {
	s.mu.Lock()
	s.filters = f
	s.pagination.Page = 1
	s.mu.Unlock()
	return s.LoadTransactions(ctx)
}

// AllTransactions pages through the whole ledger matching the active filters.
func (s *FinanceService) AllTransactions(ctx context.Context) ([]model.Transaction, error) {
	filters := s.Filters()
	s.begin()
	var out []model.Transaction
	for page := 1; ; page++ {
		res, err := s.api.Transactions(ctx, filters.query(page, exportPageSize))
		if err != nil {
			return nil, s.finish(ctx, "finance.transactions", fmt.Errorf("list transactions page %d: %w", page, err))
		}
		out = append(out, res.Items...)
		if !res.Pagination.HasNext() || len(res.Items) == 0 {
			break
		}
	}
	return out, s.finish(ctx, "finance.transactions", nil)
}

// LoadSummary fetches the overview for r.
func (s *FinanceService) LoadSummary(ctx context.Context, r model.DateRange) (model.Summary, error) {
	s.begin()
	sum, err := s.api.Summary(ctx, r)
	if err != nil {
		return model.Summary{}, s.finish(ctx, "finance.summary", fmt.Errorf("load summary: %w", err))
	}
	s.mu.Lock()
	s.summary = sum
	s.mu.Unlock()
	return sum, s.finish(ctx, "finance.summary", nil)
}

// SalesStatistics fetches the sales-statistics report.
func (s *FinanceService) SalesStatistics(ctx context.Context, r model.DateRange) (model.SalesStatistics, error) {
	s.begin()
	stats, err := s.api.SalesStatistics(ctx, r)
	if err != nil {
		err = fmt.Errorf("load sales statistics: %w", err)
	}
	return stats, s.finish(ctx, "finance.sales_statistics", err)
}

// SalesTrend fetches the sales trend report.
func (s *FinanceService) SalesTrend(ctx context.Context, q model.TrendQuery) ([]model.TrendPoint, error) {
	s.begin()
	points, err := s.api.SalesTrend(ctx, q)
	if err != nil {
		err = fmt.Errorf("load sales trend: %w", err)
	}
	return points, s.finish(ctx, "finance.sales_trend", err)
}

// TopSellingBooks fetches the best sellers report.
func (s *FinanceService) TopSellingBooks(ctx context.Context, q model.TopBooksQuery) ([]model.TopBook, error) {
	s.begin()
	top, err := s.api.TopSellingBooks(ctx, q)
	if err != nil {
		err = fmt.Errorf("load top selling books: %w", err)
	}
	return top, s.finish(ctx, "finance.top_books", err)
}

// ProfitAnalysis fetches the profit analysis report.
func (s *FinanceService) ProfitAnalysis(ctx context.Context, r model.DateRange) (model.ProfitAnalysis, error) {
	s.begin()
	pa, err := s.api.ProfitAnalysis(ctx, r)
	if err != nil {
		err = fmt.Errorf("load profit analysis: %w", err)
	}
	return pa, s.finish(ctx, "finance.profit_analysis", err)
}

// RevenueByCategory fetches the revenue breakdown report.
func (s *FinanceService) RevenueByCategory(ctx context.Context, r model.DateRange) ([]model.CategoryRevenue, error) {
	s.begin()
	rows, err := s.api.RevenueByCategory(ctx, r)
	if err != nil {
		err = fmt.Errorf("load revenue by category: %w", err)
	}
	return rows, s.finish(ctx, "finance.revenue_by_category", err)
}

// Transactions returns a copy of the loaded ledger page.
func (s *FinanceService) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Transaction(nil), s.transactions...)
}

// Pagination returns the cursor of the loaded ledger page.
func (s *FinanceService) Pagination() model.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

// Summary returns the last loaded overview.
func (s *FinanceService) Summary() model.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// FormattedIncome returns the summary income with two decimals.
func (s *FinanceService) FormattedIncome() string { return s.Summary().TotalIncome.String() }

// FormattedExpense returns the summary expense with two decimals.
func (s *FinanceService) FormattedExpense() string { return s.Summary().TotalExpense.String() }

// FormattedProfit returns the summary net profit with two decimals.
func (s *FinanceService) FormattedProfit() string { return s.Summary().NetProfit.String() }
