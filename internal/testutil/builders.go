package testutil

import (
	"fmt"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
)

// BookBuilder provides a fluent interface for building Book fixtures.
type BookBuilder struct {
	book model.Book
}

// NewBook creates a BookBuilder with sensible defaults.
func NewBook(id int64) *BookBuilder {
	ts := model.Timestamp{Time: TestTime()}
	return &BookBuilder{
		book: model.Book{
			ID:          id,
			ISBN:        "978-0-00-000000-0",
			Name:        "Test Book",
			Author:      "Test Author",
			Publisher:   "Test Press",
			RetailPrice: model.MustMoney("39.90"),
			Quantity:    10,
			IsActive:    true,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		},
	}
}

// WithISBN sets the ISBN.
func (b *BookBuilder) WithISBN(isbn string) *BookBuilder {
	b.book.ISBN = isbn
	return b
}

// WithName sets the title.
func (b *BookBuilder) WithName(name string) *BookBuilder {
	b.book.Name = name
	return b
}

// WithPrice sets the retail price from a decimal string.
func (b *BookBuilder) WithPrice(price string) *BookBuilder {
	b.book.RetailPrice = model.MustMoney(price)
	return b
}

// WithQuantity sets the stock quantity.
func (b *BookBuilder) WithQuantity(qty int) *BookBuilder {
	b.book.Quantity = qty
	return b
}

// Inactive marks the book as logically deleted.
func (b *BookBuilder) Inactive() *BookBuilder {
	b.book.IsActive = false
	return b
}

// Build returns the constructed Book.
func (b *BookBuilder) Build() model.Book {
	return b.book
}

// SaleBuilder provides a fluent interface for building Sale fixtures.
type SaleBuilder struct {
	sale model.Sale
}

// NewSale creates a completed SaleBuilder with the given total.
func NewSale(id int64, total string) *SaleBuilder {
	ts := model.Timestamp{Time: TestTime()}
	return &SaleBuilder{
		sale: model.Sale{
			ID:            id,
			SaleNumber:    "S" + TestTime().Format("20060102") + "0001",
			SaleDate:      ts,
			Status:        model.SaleStatusCompleted,
			TotalAmount:   model.MustMoney(total),
			PaymentMethod: "CASH",
			CreatedAt:     ts,
			UpdatedAt:     ts,
		},
	}
}

// WithStatus sets the sale status.
func (b *SaleBuilder) WithStatus(status model.SaleStatus) *SaleBuilder {
	b.sale.Status = status
	return b
}

// WithItem appends a line item.
func (b *SaleBuilder) WithItem(bookID int64, qty int, price string) *SaleBuilder {
	p := model.MustMoney(price)
	b.sale.Items = append(b.sale.Items, model.SaleItem{
		BookID:    bookID,
		Quantity:  qty,
		SalePrice: p,
		Subtotal:  p * model.Money(qty),
	})
	return b
}

// Build returns the constructed Sale.
func (b *SaleBuilder) Build() model.Sale {
	return b.sale
}

// OrderBuilder provides a fluent interface for building PurchaseOrder fixtures.
type OrderBuilder struct {
	order model.PurchaseOrder
}

// NewOrder creates an unpaid OrderBuilder.
func NewOrder(id int64) *OrderBuilder {
	ts := model.Timestamp{Time: TestTime()}
	return &OrderBuilder{
		order: model.PurchaseOrder{
			ID:          id,
			OrderNumber: "PO" + TestTime().Format("20060102") + "0001",
			OrderDate:   ts,
			Status:      model.OrderStatusUnpaid,
			Supplier:    "Test Supplier",
			CreatedAt:   ts,
			UpdatedAt:   ts,
		},
	}
}

// WithStatus sets the order status.
func (b *OrderBuilder) WithStatus(status model.OrderStatus) *OrderBuilder {
	b.order.Status = status
	return b
}

// WithSupplier sets the supplier.
func (b *OrderBuilder) WithSupplier(supplier string) *OrderBuilder {
	b.order.Supplier = supplier
	return b
}

// WithItem appends an item for an existing book and updates the total.
func (b *OrderBuilder) WithItem(bookID int64, qty int, price string) *OrderBuilder {
	p := model.MustMoney(price)
	sub := p * model.Money(qty)
	b.order.Items = append(b.order.Items, model.OrderItem{
		BookID:        Int64Ptr(bookID),
		Quantity:      qty,
		PurchasePrice: p,
		Subtotal:      sub,
	})
	b.order.TotalAmount += sub
	return b
}

// Build returns the constructed PurchaseOrder.
func (b *OrderBuilder) Build() model.PurchaseOrder {
	return b.order
}

// Principal presets

// AdminPrincipal returns a NORMAL_ADMIN principal.
func AdminPrincipal() domainauth.Principal {
	return NewPrincipal(1, "admin", domainauth.RoleAdmin)
}

// SuperAdminPrincipal returns a SUPER_ADMIN principal.
func SuperAdminPrincipal() domainauth.Principal {
	return NewPrincipal(2, "root", domainauth.RoleSuperAdmin)
}

// UserPrincipal returns a base USER principal.
func UserPrincipal() domainauth.Principal {
	return NewPrincipal(3, "clerk", domainauth.RoleUser)
}

// NewPrincipal builds a principal with the given identity.
func NewPrincipal(id int64, username string, role domainauth.Role) domainauth.Principal {
	return domainauth.Principal{
		ID:         id,
		Username:   username,
		FullName:   username + " test",
		EmployeeID: fmt.Sprintf("E%04d", id),
		Role:       role,
		CreatedAt:  model.Timestamp{Time: TestTime()},
	}
}
