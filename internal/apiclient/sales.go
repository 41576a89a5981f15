package apiclient

import (
	"context"
	"net/http"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

var _ ports.SaleAPI = (*Sales)(nil)

// Sales wraps /sales.
type Sales struct{ c *Client }

// List returns one page of sales.
func (s *Sales) List(ctx context.Context, q model.SaleQuery) (model.Page[model.Sale], error) {
	if err := q.DateRange.Validate(); err != nil {
		return model.Page[model.Sale]{}, validation(err)
	}
	raw, err := s.c.do(ctx, call{method: http.MethodGet, path: "/sales", query: q.Values(), fallback: "failed to load sales"})
	if err != nil {
		return model.Page[model.Sale]{}, err
	}
	return decodePage[model.Sale](raw, "sales")
}

// Get fetches one sale with its items.
func (s *Sales) Get(ctx context.Context, id int64) (model.Sale, error) {
	var sale model.Sale
	err := s.c.doJSON(ctx, call{method: http.MethodGet, path: idPath("/sales", id), fallback: "failed to load sale"}, &sale)
	return sale, err
}

// Create records a sale; the server decrements stock.
func (s *Sales) Create(ctx context.Context, req model.CreateSaleRequest) (model.Sale, error) {
	if err := req.Validate(); err != nil {
		return model.Sale{}, validation(err)
	}
	var sale model.Sale
	err := s.c.doJSON(ctx, call{method: http.MethodPost, path: "/sales", body: req, fallback: "failed to create sale"}, &sale)
	return sale, err
}

// Refund reverses a completed sale.
func (s *Sales) Refund(ctx context.Context, id int64) (model.ActionResult[model.Sale], error) {
	raw, err := s.c.do(ctx, call{method: http.MethodPost, path: idPath("/sales", id) + "/refund", fallback: "failed to refund sale"})
	if err != nil {
		return model.ActionResult[model.Sale]{}, err
	}
	return decodeAction[model.Sale](raw, "sale")
}
