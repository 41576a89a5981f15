package apiclient

import (
	"context"
	"net/http"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

var _ ports.ProcurementAPI = (*Procurement)(nil)

const ordersPath = "/procurement/orders"

// Procurement wraps /procurement/orders.
type Procurement struct{ c *Client }

// List returns one page of purchase orders.
func (p *Procurement) List(ctx context.Context, q model.OrderQuery) (model.Page[model.PurchaseOrder], error) {
	if err := q.DateRange.Validate(); err != nil {
		return model.Page[model.PurchaseOrder]{}, validation(err)
	}
	raw, err := p.c.do(ctx, call{method: http.MethodGet, path: ordersPath, query: q.Values(), fallback: "failed to load orders"})
	if err != nil {
		return model.Page[model.PurchaseOrder]{}, err
	}
	return decodePage[model.PurchaseOrder](raw, "orders")
}

// Get fetches one order with its lines.
func (p *Procurement) Get(ctx context.Context, id int64) (model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	err := p.c.doJSON(ctx, call{method: http.MethodGet, path: idPath(ordersPath, id), fallback: "failed to load order"}, &order)
	return order, err
}

// Create submits a new unpaid order.
func (p *Procurement) Create(ctx context.Context, req model.CreateOrderRequest) (model.PurchaseOrder, error) {
	if err := req.Validate(); err != nil {
		return model.PurchaseOrder{}, validation(err)
	}
	var order model.PurchaseOrder
	err := p.c.doJSON(ctx, call{method: http.MethodPost, path: ordersPath, body: req, fallback: "failed to create order"}, &order)
	return order, err
}

// Update edits the header of an unpaid order.
func (p *Procurement) Update(ctx context.Context, id int64, req model.UpdateOrderRequest) (model.PurchaseOrder, error) {
	if err := req.Validate(); err != nil {
		return model.PurchaseOrder{}, validation(err)
	}
	var order model.PurchaseOrder
	err := p.c.doJSON(ctx, call{method: http.MethodPut, path: idPath(ordersPath, id), body: req, fallback: "failed to update order"}, &order)
	return order, err
}

// Pay marks an unpaid order as paid.
func (p *Procurement) Pay(ctx context.Context, id int64) (model.ActionResult[model.PurchaseOrder], error) {
	return p.transition(ctx, id, model.OrderActionPay, "failed to pay order")
}

// Return cancels an unpaid order.
func (p *Procurement) Return(ctx context.Context, id int64) (model.ActionResult[model.PurchaseOrder], error) {
	return p.transition(ctx, id, model.OrderActionReturn, "failed to return order")
}

// StockIn receives a paid order into inventory.
func (p *Procurement) StockIn(ctx context.Context, id int64) (model.ActionResult[model.PurchaseOrder], error) {
	return p.transition(ctx, id, model.OrderActionStockIn, "failed to stock in order")
}

func (p *Procurement) transition(
	ctx context.Context,
	id int64,
	action model.OrderAction,
	fallback string,
) (model.ActionResult[model.PurchaseOrder], error) {
	raw, err := p.c.do(ctx, call{method: http.MethodPost, path: idPath(ordersPath, id) + "/" + string(action), fallback: fallback})
	if err != nil {
		return model.ActionResult[model.PurchaseOrder]{}, err
	}
	return decodeAction[model.PurchaseOrder](raw, "order")
}
