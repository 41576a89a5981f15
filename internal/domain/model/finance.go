package model

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
	TransactionRefund  TransactionType = "REFUND"
	TransactionOther   TransactionType = "OTHER"
)

// ParseTransactionType normalizes a type string and reports whether it is supported.
func ParseTransactionType(value string) (TransactionType, bool) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(value)))
	switch t {
	case TransactionIncome, TransactionExpense, TransactionRefund, TransactionOther:
		return t, true
	default:
		return "", false
	}
}

// Label is the display text used in exports.
func (t TransactionType) Label() string {
	switch t {
	case TransactionIncome:
		return "Income"
	case TransactionExpense:
		return "Expense"
	default:
		return string(t)
	}
}

// Transaction is a ledger entry created by sales, payments and refunds.
type Transaction struct {
	ID              int64           `json:"id"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          Money           `json:"amount"`
	Description     string          `json:"description,omitempty"`
	TransactionDate Timestamp       `json:"transaction_date"`
	UserID          int64           `json:"user_id,omitempty"`
	User            *UserRef        `json:"user,omitempty"`
	ReferenceID     *int64          `json:"reference_id,omitempty"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	CreatedAt       Timestamp       `json:"created_at"`
	UpdatedAt       Timestamp       `json:"updated_at"`
}

// TransactionQuery controls listing ledger entries.
type TransactionQuery struct {
	PageParams
	DateRange
	Type TransactionType
}

// Values encodes the query for GET /finance/transactions.
func (q TransactionQuery) Values() url.Values {
	v := url.Values{}
	setIfNotEmpty(v, "transaction_type", string(q.Type))
	q.DateRange.apply(v)
	q.PageParams.apply(v)
	return v
}

// Comparison holds period-over-period change rates in percent.
type Comparison struct {
	IncomeChangeRate  float64 `json:"income_change_rate"`
	ExpenseChangeRate float64 `json:"expense_change_rate"`
	ProfitChangeRate  float64 `json:"profit_change_rate"`
}

// Summary is the finance overview for a date range.
type Summary struct {
	TotalIncome  Money                     `json:"total_income"`
	TotalExpense Money                     `json:"total_expense"`
	NetProfit    Money                     `json:"net_profit"`
	TodayIncome  Money                     `json:"today_income"`
	MonthIncome  Money                     `json:"month_income"`
	ByType       map[TransactionType]Money `json:"by_type,omitempty"`
	Comparison   *Comparison               `json:"comparison,omitempty"`
}

// SalesStatistics is the sales-statistics report.
type SalesStatistics struct {
	TotalSales   int   `json:"total_sales"`
	TotalRevenue Money `json:"total_revenue"`
}

// TrendPeriod is the bucket size of the sales trend report.
type TrendPeriod string

const (
	TrendDaily   TrendPeriod = "daily"
	TrendWeekly  TrendPeriod = "weekly"
	TrendMonthly TrendPeriod = "monthly"
)

const (
	defaultTrendLimit = 30
	maxTrendLimit     = 365
	defaultTopLimit   = 10
)

// TrendQuery controls the sales trend report.
type TrendQuery struct {
	DateRange
	Period TrendPeriod
	Limit  int
}

// Validate validates TrendQuery, applying defaults for unset fields.
func (q *TrendQuery) Validate() error {
	if q.Period == "" {
		q.Period = TrendDaily
	}
	switch q.Period {
	case TrendDaily, TrendWeekly, TrendMonthly:
	default:
		return errors.New("period must be daily, weekly or monthly")
	}
	if q.Limit == 0 {
		q.Limit = defaultTrendLimit
	}
	if q.Limit < 1 || q.Limit > maxTrendLimit {
		return errors.New("limit must be between 1 and 365")
	}
	return q.DateRange.Validate()
}

// Values encodes the query for GET /finance/reports/sales-trend.
func (q TrendQuery) Values() url.Values {
	v := q.DateRange.Values()
	setIfNotEmpty(v, "period", string(q.Period))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// TrendPoint is one bucket of the sales trend report.
type TrendPoint struct {
	Period  string `json:"period"`
	Income  Money  `json:"income"`
	Expense Money  `json:"expense"`
}

// TopBooksQuery controls the top-selling-books report.
type TopBooksQuery struct {
	DateRange
	Limit int
}

// Values encodes the query for GET /finance/reports/top-selling-books.
func (q TopBooksQuery) Values() url.Values {
	v := q.DateRange.Values()
	limit := q.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}
	v.Set("limit", strconv.Itoa(limit))
	return v
}

// TopBook is one row of the top-selling-books report.
type TopBook struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Author        string `json:"author,omitempty"`
	ISBN          string `json:"isbn"`
	TotalQuantity int    `json:"total_quantity"`
	TotalRevenue  Money  `json:"total_revenue"`
}

// ProfitAnalysis is the profit-analysis report. Margins are percentages.
type ProfitAnalysis struct {
	TotalRevenue  Money   `json:"total_revenue"`
	TotalCost     Money   `json:"total_cost"`
	OtherExpenses Money   `json:"other_expenses"`
	GrossProfit   Money   `json:"gross_profit"`
	NetProfit     Money   `json:"net_profit"`
	GrossMargin   float64 `json:"gross_margin"`
	NetMargin     float64 `json:"net_margin"`
}

// CategoryRevenue is one row of the revenue-by-category report.
type CategoryRevenue struct {
	Category      string `json:"category"`
	TotalQuantity int    `json:"total_quantity"`
	TotalRevenue  Money  `json:"total_revenue"`
}
