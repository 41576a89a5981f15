package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Allows(t *testing.T) {
	tests := []struct {
		status OrderStatus
		action OrderAction
		want   bool
	}{
		{OrderStatusUnpaid, OrderActionPay, true},
		{OrderStatusUnpaid, OrderActionReturn, true},
		{OrderStatusUnpaid, OrderActionEdit, true},
		{OrderStatusUnpaid, OrderActionStockIn, false},
		{OrderStatusPaid, OrderActionStockIn, true},
		{OrderStatusPaid, OrderActionPay, false},
		{OrderStatusPaid, OrderActionReturn, false},
		{OrderStatusStocked, OrderActionStockIn, false},
		{OrderStatusReturned, OrderActionEdit, false},
		{OrderStatusUnpaid, OrderAction("ship"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Allows(tt.action), "%s/%s", tt.status, tt.action)
	}
}

func TestParseOrderStatus(t *testing.T) {
	s, ok := ParseOrderStatus("stocked")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusStocked, s)
	_, ok = ParseOrderStatus("")
	assert.False(t, ok)
}

func TestCreateOrderRequest_Validate(t *testing.T) {
	bookID := int64(3)
	r := CreateOrderRequest{Supplier: " Acme ", Items: []OrderItem{
		{BookID: &bookID, Quantity: 5, PurchasePrice: 800},
		{Title: "New", Author: "A", Publisher: "P", Quantity: 1, PurchasePrice: 100},
	}}
	require.NoError(t, r.Validate())
	assert.Equal(t, "Acme", r.Supplier)

	assert.Error(t, (&CreateOrderRequest{}).Validate())

	r = CreateOrderRequest{Items: []OrderItem{{Title: "New", Quantity: 1}}}
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0]")
}

func TestUpdateOrderRequest_Validate(t *testing.T) {
	assert.Error(t, (&UpdateOrderRequest{}).Validate())
	s := "Acme"
	assert.NoError(t, (&UpdateOrderRequest{Supplier: &s}).Validate())
}

func TestOrderItem_Label(t *testing.T) {
	assert.Equal(t, "Dune", OrderItem{Book: &Book{Name: "Dune"}, Title: "x"}.Label())
	assert.Equal(t, "x", OrderItem{Title: "x"}.Label())
}
