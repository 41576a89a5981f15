package fakeapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
)

// record appends a ledger entry. Callers hold s.mu.
func (s *Server) record(
	kind model.TransactionType,
	amount model.Money,
	desc string,
	refID int64,
	refType, refNumber string,
	actor *model.UserRef,
) {
	ref := refID
	tx := model.Transaction{
		ID:              s.id(),
		TransactionType: kind,
		Amount:          amount,
		Description:     desc,
		TransactionDate: s.stamp(),
		ReferenceID:     &ref,
		ReferenceType:   refType,
		ReferenceNumber: refNumber,
		User:            actor,
		CreatedAt:       s.stamp(),
		UpdatedAt:       s.stamp(),
	}
	if actor != nil {
		tx.UserID = actor.ID
	}
	s.ledger = append(s.ledger, tx)
}

// AddTransaction seeds a ledger entry dated at.
func (s *Server) AddTransaction(kind model.TransactionType, amount model.Money, desc string, at time.Time) model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := model.Transaction{
		ID:              s.id(),
		TransactionType: kind,
		Amount:          amount,
		Description:     desc,
		TransactionDate: model.Timestamp{Time: at.UTC()},
		CreatedAt:       model.Timestamp{Time: at.UTC()},
		UpdatedAt:       model.Timestamp{Time: at.UTC()},
	}
	s.ledger = append(s.ledger, tx)
	return tx
}

func (s *Server) filteredLedger(r *http.Request) []model.Transaction {
	kind := r.URL.Query().Get("transaction_type")
	out := make([]model.Transaction, 0, len(s.ledger))
	for i := len(s.ledger) - 1; i >= 0; i-- {
		tx := s.ledger[i]
		if kind != "" && string(tx.TransactionType) != kind {
			continue
		}
		if !inRange(tx.TransactionDate, r) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, paginate("transactions", s.filteredLedger(r), parseWindow(r)))
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")
	out := model.Summary{ByType: map[model.TransactionType]model.Money{}}
	for _, tx := range s.filteredLedger(r) {
		out.ByType[tx.TransactionType] += tx.Amount
		switch tx.TransactionType {
		case model.TransactionIncome:
			out.TotalIncome += tx.Amount
			day := tx.TransactionDate.UTC().Format("2006-01-02")
			if day == today {
				out.TodayIncome += tx.Amount
			}
			if day[:7] == month {
				out.MonthIncome += tx.Amount
			}
		case model.TransactionExpense, model.TransactionRefund:
			out.TotalExpense += tx.Amount
		}
	}
	out.NetProfit = out.TotalIncome - out.TotalExpense
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) salesStatistics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out model.SalesStatistics
	for _, sale := range s.sales {
		if sale.Status != model.SaleStatusCompleted || !inRange(sale.SaleDate, r) {
			continue
		}
		out.TotalSales++
		out.TotalRevenue += sale.TotalAmount
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) salesTrend(w http.ResponseWriter, r *http.Request) {
	period := model.TrendPeriod(r.URL.Query().Get("period"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	s.mu.Lock()
	defer s.mu.Unlock()
	buckets := map[string]*model.TrendPoint{}
	for _, tx := range s.filteredLedger(r) {
		key := bucket(tx.TransactionDate.UTC(), period)
		p, ok := buckets[key]
		if !ok {
			p = &model.TrendPoint{Period: key}
			buckets[key] = p
		}
		switch tx.TransactionType {
		case model.TransactionIncome:
			p.Income += tx.Amount
		case model.TransactionExpense, model.TransactionRefund:
			p.Expense += tx.Amount
		}
	}
	out := make([]model.TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	writeJSON(w, http.StatusOK, out)
}

func bucket(t time.Time, period model.TrendPeriod) string {
	switch period {
	case model.TrendMonthly:
		return t.Format("2006-01")
	case model.TrendWeekly:
		y, wk := t.ISOWeek()
		return strconv.Itoa(y) + "-W" + pad2(wk)
	default:
		return t.Format("2006-01-02")
	}
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func (s *Server) topBooks(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := map[int64]*model.TopBook{}
	for _, sale := range s.sales {
		if sale.Status != model.SaleStatusCompleted || !inRange(sale.SaleDate, r) {
			continue
		}
		for _, it := range sale.Items {
			row, ok := rows[it.BookID]
			if !ok {
				row = &model.TopBook{ID: it.BookID}
				if b, found := s.books[it.BookID]; found {
					row.Name, row.Author, row.ISBN = b.Name, b.Author, b.ISBN
				}
				rows[it.BookID] = row
			}
			row.TotalQuantity += it.Quantity
			row.TotalRevenue += it.Subtotal
		}
	}
	out := make([]model.TopBook, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) profitAnalysis(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out model.ProfitAnalysis
	for _, tx := range s.filteredLedger(r) {
		switch tx.TransactionType {
		case model.TransactionIncome:
			out.TotalRevenue += tx.Amount
		case model.TransactionExpense:
			out.TotalCost += tx.Amount
		case model.TransactionRefund, model.TransactionOther:
			out.OtherExpenses += tx.Amount
		}
	}
	out.GrossProfit = out.TotalRevenue - out.TotalCost
	out.NetProfit = out.GrossProfit - out.OtherExpenses
	if out.TotalRevenue > 0 {
		out.GrossMargin = float64(out.GrossProfit) / float64(out.TotalRevenue) * 100
		out.NetMargin = float64(out.NetProfit) / float64(out.TotalRevenue) * 100
	}
	writeJSON(w, http.StatusOK, out)
}

// revenueByCategory groups completed sale lines by publisher.
func (s *Server) revenueByCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := map[string]*model.CategoryRevenue{}
	for _, sale := range s.sales {
		if sale.Status != model.SaleStatusCompleted || !inRange(sale.SaleDate, r) {
			continue
		}
		for _, it := range sale.Items {
			cat := "Uncategorized"
			if b, found := s.books[it.BookID]; found && b.Publisher != "" {
				cat = b.Publisher
			}
			row, ok := rows[cat]
			if !ok {
				row = &model.CategoryRevenue{Category: cat}
				rows[cat] = row
			}
			row.TotalQuantity += it.Quantity
			row.TotalRevenue += it.Subtotal
		}
	}
	out := make([]model.CategoryRevenue, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	writeJSON(w, http.StatusOK, out)
}
