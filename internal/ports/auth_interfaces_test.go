package ports_test

import (
	"testing"

	"github.com/bookstore/bookstore-admin/internal/mocks"
	mockauth "github.com/bookstore/bookstore-admin/internal/mocks/auth"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.AuthAPI = (*mockauth.StubAuthAPI)(nil)
	var _ ports.SlotStore = (*mockauth.MemorySlotStore)(nil)
	var _ ports.Navigator = (*mockauth.RecordingNavigator)(nil)

	var _ ports.AuthAPI = (*mocks.MockAuthAPI)(nil)
	var _ ports.BookAPI = (*mocks.MockBookAPI)(nil)
	var _ ports.SaleAPI = (*mocks.MockSaleAPI)(nil)
	var _ ports.ProcurementAPI = (*mocks.MockProcurementAPI)(nil)
	var _ ports.FinanceAPI = (*mocks.MockFinanceAPI)(nil)
	var _ ports.UserAPI = (*mocks.MockUserAPI)(nil)
}
