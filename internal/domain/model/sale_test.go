package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSaleStatus(t *testing.T) {
	s, ok := ParseSaleStatus(" completed ")
	assert.True(t, ok)
	assert.Equal(t, SaleStatusCompleted, s)
	assert.True(t, s.Refundable())
	assert.False(t, SaleStatusRefunded.Refundable())

	_, ok = ParseSaleStatus("pending")
	assert.False(t, ok)
}

func TestCreateSaleRequest_Validate(t *testing.T) {
	r := CreateSaleRequest{PaymentMethod: " cash ", Items: []SaleItemInput{{BookID: 1, Quantity: 2, SalePrice: 1000}}}
	require.NoError(t, r.Validate())
	assert.Equal(t, "CASH", r.PaymentMethod)
	assert.Equal(t, Money(2000), r.Total())

	assert.Error(t, (&CreateSaleRequest{}).Validate())
	assert.Error(t, (&CreateSaleRequest{Items: []SaleItemInput{{BookID: 0, Quantity: 1}}}).Validate())
	assert.Error(t, (&CreateSaleRequest{Items: []SaleItemInput{{BookID: 1, Quantity: 0}}}).Validate())
}

func TestSaleItem_UnitPrice(t *testing.T) {
	assert.Equal(t, Money(500), SaleItem{SalePrice: 500, Price: 400}.UnitPrice())
	assert.Equal(t, Money(400), SaleItem{Price: 400}.UnitPrice())
}
