package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusRefunded  SaleStatus = "REFUNDED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// ParseSaleStatus normalizes a status string and reports whether it is supported.
func ParseSaleStatus(value string) (SaleStatus, bool) {
	s := SaleStatus(strings.ToUpper(strings.TrimSpace(value)))
	switch s {
	case SaleStatusCompleted, SaleStatusRefunded, SaleStatusCancelled:
		return s, true
	default:
		return "", false
	}
}

// Refundable reports whether a sale in this status may be refunded.
func (s SaleStatus) Refundable() bool { return s == SaleStatusCompleted }

// SaleItem is one line of a sale.
type SaleItem struct {
	ID        int64 `json:"id,omitempty"`
	SaleID    int64 `json:"sale_id,omitempty"`
	BookID    int64 `json:"book_id"`
	Quantity  int   `json:"quantity"`
	SalePrice Money `json:"sale_price"`
	Price     Money `json:"price,omitempty"`
	Subtotal  Money `json:"subtotal,omitempty"`
	Book      *Book `json:"book,omitempty"`
}

// UnitPrice returns the charged unit price, whichever field the server filled.
func (i SaleItem) UnitPrice() Money {
	if i.SalePrice != 0 {
		return i.SalePrice
	}
	return i.Price
}

// Sale is a point-of-sale transaction.
type Sale struct {
	ID            int64      `json:"id"`
	SaleNumber    string     `json:"sale_number"`
	SaleDate      Timestamp  `json:"sale_date"`
	Status        SaleStatus `json:"status"`
	TotalAmount   Money      `json:"total_amount"`
	CustomerName  string     `json:"customer_name,omitempty"`
	Contact       string     `json:"contact,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Remarks       string     `json:"remarks,omitempty"`
	UserID        int64      `json:"user_id,omitempty"`
	User          *UserRef   `json:"user,omitempty"`
	Items         []SaleItem `json:"items"`
	CreatedAt     Timestamp  `json:"created_at"`
	UpdatedAt     Timestamp  `json:"updated_at"`
}

// SaleQuery controls listing sales.
type SaleQuery struct {
	PageParams
	DateRange
	Status SaleStatus
}

// Values encodes the query for GET /sales.
func (q SaleQuery) Values() url.Values {
	v := url.Values{}
	setIfNotEmpty(v, "status", string(q.Status))
	q.DateRange.apply(v)
	q.PageParams.apply(v)
	return v
}

// SaleItemInput is one line of a new sale.
type SaleItemInput struct {
	BookID    int64 `json:"book_id"`
	Quantity  int   `json:"quantity"`
	SalePrice Money `json:"sale_price"`
}

// CreateSaleRequest represents parameters to record a sale.
type CreateSaleRequest struct {
	CustomerName  string          `json:"customer_name,omitempty"`
	Contact       string          `json:"contact,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Remarks       string          `json:"remarks,omitempty"`
	Items         []SaleItemInput `json:"items"`
}

// Validate validates CreateSaleRequest.
func (r *CreateSaleRequest) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("a sale must contain at least one item")
	}
	for i, item := range r.Items {
		if item.BookID <= 0 {
			return fmt.Errorf("items[%d]: book_id is required", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("items[%d]: quantity must be at least 1", i)
		}
		if item.SalePrice < 0 {
			return fmt.Errorf("items[%d]: sale_price cannot be negative", i)
		}
	}
	r.PaymentMethod = strings.ToUpper(strings.TrimSpace(r.PaymentMethod))
	return nil
}

// Total sums the line amounts of the request.
func (r *CreateSaleRequest) Total() Money {
	var total Money
	for _, item := range r.Items {
		total += item.SalePrice * Money(item.Quantity)
	}
	return total
}
