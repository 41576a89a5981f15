package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// OrderStatus is the lifecycle state of a purchase order.
type OrderStatus string

const (
	OrderStatusUnpaid   OrderStatus = "UNPAID"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusStocked  OrderStatus = "STOCKED"
	OrderStatusReturned OrderStatus = "RETURNED"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusUnpaid,
	OrderStatusPaid,
	OrderStatusStocked,
	OrderStatusReturned,
}

// ParseOrderStatus normalizes a status string and reports whether it is supported.
func ParseOrderStatus(value string) (OrderStatus, bool) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range OrderStatuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// OrderAction is a state transition on a purchase order.
type OrderAction string

const (
	OrderActionEdit    OrderAction = "edit"
	OrderActionPay     OrderAction = "pay"
	OrderActionReturn  OrderAction = "return"
	OrderActionStockIn OrderAction = "stock-in"
)

// Allows reports whether action is permitted from status s.
// Unpaid orders may be edited, paid or returned; paid orders may be stocked in.
func (s OrderStatus) Allows(action OrderAction) bool {
	switch action {
	case OrderActionEdit, OrderActionPay, OrderActionReturn:
		return s == OrderStatusUnpaid
	case OrderActionStockIn:
		return s == OrderStatusPaid
	default:
		return false
	}
}

// OrderItem is one line of a purchase order. Lines either reference an
// existing book or describe a new title to be created on stock-in.
type OrderItem struct {
	ID                   int64  `json:"id,omitempty"`
	PurchaseOrderID      int64  `json:"purchase_order_id,omitempty"`
	BookID               *int64 `json:"book_id,omitempty"`
	ISBN                 string `json:"isbn,omitempty"`
	Title                string `json:"title,omitempty"`
	Author               string `json:"author,omitempty"`
	Publisher            string `json:"publisher,omitempty"`
	Quantity             int    `json:"quantity"`
	PurchasePrice        Money  `json:"purchase_price"`
	SuggestedRetailPrice *Money `json:"suggested_retail_price,omitempty"`
	Subtotal             Money  `json:"subtotal,omitempty"`
	Book                 *Book  `json:"book,omitempty"`
}

// Label names the line by its book, falling back to the new-title fields.
func (i OrderItem) Label() string {
	if i.Book != nil && i.Book.Name != "" {
		return i.Book.Name
	}
	return i.Title
}

// Validate checks a line before submission.
func (i OrderItem) Validate() error {
	if i.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	if i.PurchasePrice < 0 {
		return errors.New("purchase_price cannot be negative")
	}
	if i.BookID != nil && *i.BookID > 0 {
		return nil
	}
	for field, v := range map[string]string{"title": i.Title, "author": i.Author, "publisher": i.Publisher} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required for a new book", field)
		}
	}
	return nil
}

// PurchaseOrder is a procurement order with its lines.
type PurchaseOrder struct {
	ID          int64       `json:"id"`
	OrderNumber string      `json:"order_number"`
	OrderDate   Timestamp   `json:"order_date"`
	Status      OrderStatus `json:"status"`
	TotalAmount Money       `json:"total_amount"`
	Supplier    string      `json:"supplier,omitempty"`
	Remarks     string      `json:"remarks,omitempty"`
	UserID      int64       `json:"user_id,omitempty"`
	User        *UserRef    `json:"user,omitempty"`
	Items       []OrderItem `json:"items"`
	CreatedAt   Timestamp   `json:"created_at"`
	UpdatedAt   Timestamp   `json:"updated_at"`
}

// OrderQuery controls listing purchase orders.
type OrderQuery struct {
	PageParams
	DateRange
	Status OrderStatus
}

// Values encodes the query for GET /procurement/orders, dropping empty filters.
func (q OrderQuery) Values() url.Values {
	v := url.Values{}
	setIfNotEmpty(v, "status", string(q.Status))
	q.DateRange.apply(v)
	q.PageParams.apply(v)
	return v
}

// CreateOrderRequest represents parameters to create a purchase order.
type CreateOrderRequest struct {
	Supplier string      `json:"supplier,omitempty"`
	Remarks  string      `json:"remarks,omitempty"`
	Items    []OrderItem `json:"items"`
}

// Validate validates CreateOrderRequest.
func (r *CreateOrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("an order must contain at least one item")
	}
	for i, item := range r.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	r.Supplier = strings.TrimSpace(r.Supplier)
	return nil
}

// UpdateOrderRequest edits the header of an unpaid order.
type UpdateOrderRequest struct {
	Supplier *string `json:"supplier,omitempty"`
	Remarks  *string `json:"remarks,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateOrderRequest.
func (r *UpdateOrderRequest) HasUpdates() bool {
	return r.Supplier != nil || r.Remarks != nil
}

// Validate validates UpdateOrderRequest.
func (r *UpdateOrderRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	return nil
}
