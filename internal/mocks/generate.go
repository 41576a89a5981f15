// Package mocks provides mock implementations for testing the bookstore admin console.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the resource API ports.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	books := mocks.NewMockBookAPI(ctrl)
//	books.EXPECT().List(gomock.Any(), gomock.Any()).Return(page, nil)
package mocks

// Generate mock for AuthAPI interface from internal/ports package.
// Methods: Login, CurrentUser
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_api_mock.go github.com/bookstore/bookstore-admin/internal/ports AuthAPI

// Generate mock for BookAPI interface from internal/ports package.
// Methods: List, Get, Create, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=book_api_mock.go github.com/bookstore/bookstore-admin/internal/ports BookAPI

// Generate mock for SaleAPI interface from internal/ports package.
// Methods: List, Get, Create, Refund
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=sale_api_mock.go github.com/bookstore/bookstore-admin/internal/ports SaleAPI

// Generate mock for ProcurementAPI interface from internal/ports package.
// Methods: List, Get, Create, Update, Pay, Return, StockIn
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=procurement_api_mock.go github.com/bookstore/bookstore-admin/internal/ports ProcurementAPI

// Generate mock for FinanceAPI interface from internal/ports package.
// Methods: Transactions, Summary, SalesStatistics, SalesTrend, TopSellingBooks, ProfitAnalysis, RevenueByCategory
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=finance_api_mock.go github.com/bookstore/bookstore-admin/internal/ports FinanceAPI

// Generate mock for UserAPI interface from internal/ports package.
// Methods: List, Get, Create, Update, Delete, UpdateProfile
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_api_mock.go github.com/bookstore/bookstore-admin/internal/ports UserAPI
