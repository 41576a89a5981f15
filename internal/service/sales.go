package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

// SalesServiceOptions groups dependencies for SalesService.
type SalesServiceOptions struct {
	API    ports.SaleAPI // Required
	Logger *slog.Logger  // Optional
}

// SalesService holds the sales list and the sale being viewed.
type SalesService struct {
	tracker
	api        ports.SaleAPI
	sales      []model.Sale
	pagination model.Pagination
	current    *model.Sale
}

// NewSalesService constructs a new SalesService.
func NewSalesService(opts SalesServiceOptions) *SalesService {
	if opts.API == nil {
		panic("SaleAPI is required")
	}
	s := &SalesService{
		api:        opts.API,
		pagination: model.Pagination{Page: 1, PerPage: model.DefaultPerPage},
	}
	s.useLogger(opts.Logger)
	return s
}

// Load fetches one page of sales.
func (s *SalesService) Load(ctx context.Context, q model.SaleQuery) (model.Page[model.Sale], error) {
	s.begin()
	page, err := s.api.List(ctx, q)
	if err != nil {
		return model.Page[model.Sale]{}, s.finish(ctx, "sales.list", fmt.Errorf("list sales: %w", err))
	}
	s.mu.Lock()
	s.sales = append([]model.Sale(nil), page.Items...)
	s.pagination = page.Pagination
	s.mu.Unlock()
	return page, s.finish(ctx, "sales.list", nil)
}

// Fetch loads one sale and makes it the current sale.
func (s *SalesService) Fetch(ctx context.Context, id int64) (model.Sale, error) {
	s.begin()
	sale, err := s.api.Get(ctx, id)
	if err != nil {
		return model.Sale{}, s.finish(ctx, "sales.get", fmt.Errorf("get sale: %w", err))
	}
	s.mu.Lock()
	s.current = &sale
	s.mu.Unlock()
	return sale, s.finish(ctx, "sales.get", nil)
}

// Create records a sale and inserts it at the head of the list.
func (s *SalesService) Create(ctx context.Context, req model.CreateSaleRequest) (model.Sale, error) {
	s.begin()
	sale, err := s.api.Create(ctx, req)
	if err != nil {
		return model.Sale{}, s.finish(ctx, "sales.create", fmt.Errorf("create sale: %w", err))
	}
	s.mu.Lock()
	s.sales = prepend(s.sales, sale, 0)
	s.current = &sale
	s.pagination.Total++
	s.pagination.Recompute()
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "sale recorded", "id", sale.ID, "number", sale.SaleNumber, "total", sale.TotalAmount.String())
	return sale, s.finish(ctx, "sales.create", nil)
}

// Refund refunds a sale and marks it refunded in the list.
func (s *SalesService) Refund(ctx context.Context, id int64) (string, error) {
	s.begin()
	res, err := s.api.Refund(ctx, id)
	if err != nil {
		return "", s.finish(ctx, "sales.refund", fmt.Errorf("refund sale: %w", err))
	}
	s.mu.Lock()
	for i := range s.sales {
		if s.sales[i].ID == id {
			s.sales[i].Status = model.SaleStatusRefunded
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current.Status = model.SaleStatusRefunded
	}
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "sale refunded", "id", id)
	return res.Message, s.finish(ctx, "sales.refund", nil)
}

// Sales returns a copy of the loaded list.
func (s *SalesService) Sales() []model.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Sale(nil), s.sales...)
}

// Pagination returns the cursor of the loaded list.
func (s *SalesService) Pagination() model.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

// Current returns the sale being viewed.
func (s *SalesService) Current() (model.Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.Sale{}, false
	}
	return *s.current, true
}

// CompletedCount counts completed sales in the loaded list.
func (s *SalesService) CompletedCount() int { return s.count(model.SaleStatusCompleted) }

// RefundedCount counts refunded sales in the loaded list.
func (s *SalesService) RefundedCount() int { return s.count(model.SaleStatusRefunded) }

func (s *SalesService) count(status model.SaleStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sale := range s.sales {
		if sale.Status == status {
			n++
		}
	}
	return n
}

// CompletedTotal sums the amounts of completed sales in the loaded list.
func (s *SalesService) CompletedTotal() model.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total model.Money
	for _, sale := range s.sales {
		if sale.Status == model.SaleStatusCompleted {
			total += sale.TotalAmount
		}
	}
	return total
}
