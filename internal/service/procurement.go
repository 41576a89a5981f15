package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

// OrderFilters narrow the purchase order list.
type OrderFilters struct {
	Status    model.OrderStatus
	StartDate string
	EndDate   string
}

// ProcurementServiceOptions groups dependencies for ProcurementService.
type ProcurementServiceOptions struct {
	API    ports.ProcurementAPI // Required
	Logger *slog.Logger         // Optional
}

// ProcurementService holds the purchase order list, its filters and the order being viewed.
type ProcurementService struct {
	tracker
	api        ports.ProcurementAPI
	filters    OrderFilters
	orders     []model.PurchaseOrder
	pagination model.Pagination
	current    *model.PurchaseOrder
}

// NewProcurementService constructs a new ProcurementService.
func NewProcurementService(opts ProcurementServiceOptions) *ProcurementService {
	if opts.API == nil {
		panic("ProcurementAPI is required")
	}
	s := &ProcurementService{
		api:        opts.API,
		pagination: model.Pagination{Page: 1, PerPage: model.DefaultPerPage},
	}
	s.useLogger(opts.Logger)
	return s
}

// Filters returns the active filters.
func (s *ProcurementService) Filters() OrderFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetPage selects the page fetched by the next Load.
func (s *ProcurementService) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.pagination.Page = page
	s.mu.Unlock()
}

// Load fetches the current page with the active filters.
func (s *ProcurementService) Load(ctx context.Context) (model.Page[model.PurchaseOrder], error) {
	s.mu.RLock()
	q := model.OrderQuery{
		PageParams: model.PageParams{Page: s.pagination.Page, PerPage: s.pagination.PerPage},
		DateRange:  model.DateRange{StartDate: s.filters.StartDate, EndDate: s.filters.EndDate},
		Status:     s.filters.Status,
	}
	s.mu.RUnlock()

	s.begin()
	page, err := s.api.List(ctx, q)
	if err != nil {
		return model.Page[model.PurchaseOrder]{}, s.finish(ctx, "orders.list", fmt.Errorf("list orders: %w", err))
	}
	s.mu.Lock()
	s.orders = append([]model.PurchaseOrder(nil), page.Items...)
	s.pagination = page.Pagination
	s.mu.Unlock()
	return page, s.finish(ctx, "orders.list", nil)
}

// ApplyFilters merges the non-empty values of f into the active filters,
// returns to the first page and reloads.
func (s *ProcurementService) ApplyFilters(ctx context.Context, f OrderFilters) (model.Page[model.PurchaseOrder], error) {
	s.mu.Lock()
	if v := strings.TrimSpace(string(f.Status)); v != "" {
		s.filters.Status = model.OrderStatus(v)
	}
	if v := strings.TrimSpace(f.StartDate); v != "" {
		s.filters.StartDate = v
	}
	if v := strings.TrimSpace(f.EndDate); v != "" {
		s.filters.EndDate = v
	}
	s.pagination.Page = 1
	s.mu.Unlock()
	return s.Load(ctx)
}

// ResetFilters clears every filter, returns to the first page and reloads.
func (s *ProcurementService) ResetFilters(ctx context.Context) (model.Page[model.PurchaseOrder], error) {
	s.mu.Lock()
	s.filters = OrderFilters{}
	s.pagination.Page = 1
	s.mu.Unlock()
	return s.Load(ctx)
}

// Fetch loads one order and makes it the current order.
func (s *ProcurementService) Fetch(ctx context.Context, id int64) (model.PurchaseOrder, error) {
	s.begin()
	order, err := s.api.Get(ctx, id)
	if err != nil {
		return model.PurchaseOrder{}, s.finish(ctx, "orders.get", fmt.Errorf("get order: %w", err))
	}
	s.mu.Lock()
	s.current = &order
	s.mu.Unlock()
	return order, s.finish(ctx, "orders.get", nil)
}

// Create places an order, inserts it at the head of the list and makes it current.
func (s *ProcurementService) Create(ctx context.Context, req model.CreateOrderRequest) (model.PurchaseOrder, error) {
	s.begin()
	order, err := s.api.Create(ctx, req)
	if err != nil {
		return model.PurchaseOrder{}, s.finish(ctx, "orders.create", fmt.Errorf("create order: %w", err))
	}
	s.mu.Lock()
	s.orders = prepend(s.orders, order, 0)
	s.current = &order
	s.pagination.Total++
	s.pagination.Recompute()
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "purchase order created", "id", order.ID, "number", order.OrderNumber)
	return order, s.finish(ctx, "orders.create", nil)
}

// Edit updates an unpaid order.
func (s *ProcurementService) Edit(ctx context.Context, id int64, req model.UpdateOrderRequest) (model.PurchaseOrder, error) {
	s.begin()
	order, err := s.api.Update(ctx, id, req)
	if err != nil {
		return model.PurchaseOrder{}, s.finish(ctx, "orders.update", fmt.Errorf("update order: %w", err))
	}
	s.store(order)
	return order, s.finish(ctx, "orders.update", nil)
}

// Pay marks an unpaid order paid.
func (s *ProcurementService) Pay(ctx context.Context, id int64) (model.ActionResult[model.PurchaseOrder], error) {
	return s.transition(ctx, model.OrderActionPay, id, s.api.Pay)
}

// Return cancels an unpaid order.
func (s *ProcurementService) Return(ctx context.Context, id int64) (model.ActionResult[model.PurchaseOrder], error) {
	return s.transition(ctx, model.OrderActionReturn, id, s.api.Return)
}

// StockIn receives a paid order into inventory.
func (s *ProcurementService) StockIn(ctx context.Context, id int64) (model.ActionResult[model.PurchaseOrder], error) {
	return s.transition(ctx, model.OrderActionStockIn, id, s.api.StockIn)
}

type orderAction func(context.Context, int64) (model.ActionResult[model.PurchaseOrder], error)

func (s *ProcurementService) transition(
	ctx context.Context,
	action model.OrderAction,
	id int64,
	call orderAction,
) (model.ActionResult[model.PurchaseOrder], error) {
	op := "orders." + string(action)
	s.begin()
	res, err := call(ctx, id)
	if err != nil {
		return model.ActionResult[model.PurchaseOrder]{}, s.finish(ctx, op, fmt.Errorf("%s order: %w", action, err))
	}
	if res.Item.ID != 0 {
		s.store(res.Item)
	}
	s.logger.InfoContext(ctx, "purchase order transitioned", "id", id, "action", string(action), "status", string(res.Item.Status))
	return res, s.finish(ctx, op, nil)
}

// store replaces order as the current order and in the list.
func (s *ProcurementService) store(order model.PurchaseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &order
	replaceByID(s.orders, order.ID, orderID, order)
}

// Orders returns a copy of the loaded list.
func (s *ProcurementService) Orders() []model.PurchaseOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.PurchaseOrder(nil), s.orders...)
}

// Pagination returns the cursor of the loaded list.
func (s *ProcurementService) Pagination() model.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

// Current returns the order being viewed.
func (s *ProcurementService) Current() (model.PurchaseOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.PurchaseOrder{}, false
	}
	return *s.current, true
}

// StatusCounts counts the loaded orders per status. Every status is present.
func (s *ProcurementService) StatusCounts() map[model.OrderStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[model.OrderStatus]int, len(model.OrderStatuses))
	for _, st := range model.OrderStatuses {
		counts[st] = 0
	}
	for _, o := range s.orders {
		counts[o.Status]++
	}
	return counts
}

// CurrentTotal formats the total of the current order, or "0.00" without one.
func (s *ProcurementService) CurrentTotal() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.Money(0).String()
	}
	return s.current.TotalAmount.String()
}

func orderID(o model.PurchaseOrder) int64 { return o.ID }
