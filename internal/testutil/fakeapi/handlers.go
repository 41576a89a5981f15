package fakeapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	domainauth "github.com/bookstore/bookstore-admin/internal/domain/auth"
	"github.com/bookstore/bookstore-admin/internal/domain/model"
)

func withPrincipal(ctx context.Context, p domainauth.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func principalFrom(ctx context.Context) domainauth.Principal {
	p, _ := ctx.Value(principalKey{}).(domainauth.Principal)
	return p
}

func userRef(p domainauth.Principal) *model.UserRef {
	return &model.UserRef{ID: p.ID, Username: p.Username, FullName: p.FullName}
}

// Auth

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds domainauth.Credentials
	if !decodeBody(w, r, &creds) {
		return
	}
	if creds.Username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.accounts {
		if a.principal.Username == creds.Username && a.password == creds.Password {
			tok := uuid.NewString()
			s.tokens[tok] = id
			writeJSON(w, http.StatusOK, domainauth.LoginResult{Token: tok, User: a.principal})
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "invalid username or password")
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, principalFrom(r.Context()))
}

// Books

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	activeOnly := q.Get("active_only") != "false"

	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.Book, 0, len(s.books))
	for _, id := range sortedKeys(s.books) {
		b := s.books[id]
		if activeOnly && !b.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(b.Name), search) &&
			!strings.Contains(strings.ToLower(b.Author), search) &&
			!strings.Contains(strings.ToLower(b.ISBN), search) {
			continue
		}
		items = append(items, *b)
	}
	writeJSON(w, http.StatusOK, paginate("books", items, parseWindow(r)))
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if b, ok := s.books[id]; ok {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}
	for _, b := range s.books {
		if b.ISBN == ref {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}
	writeError(w, http.StatusNotFound, "book not found")
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		model.CreateBookRequest
		IsActive *bool `json:"is_active"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.IsActive != nil {
		writeFieldErrors(w, map[string][]string{"is_active": {"unknown field"}})
		return
	}
	if err := req.CreateBookRequest.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ISBN == req.ISBN {
			writeError(w, http.StatusConflict, "isbn already exists")
			return
		}
	}
	b := &model.Book{
		ID:          s.id(),
		ISBN:        req.ISBN,
		Name:        req.Name,
		RetailPrice: req.RetailPrice,
		Quantity:    req.Quantity,
		IsActive:    true,
		CreatedAt:   s.stamp(),
		UpdatedAt:   s.stamp(),
	}
	if req.Publisher != nil {
		b.Publisher = *req.Publisher
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	s.books[b.ID] = b
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req model.UpdateBookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, found := s.books[id]
	if !found {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	req.Apply(b)
	b.UpdatedAt = s.stamp()
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, found := s.books[id]
	if !found {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	b.IsActive = false
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "book deactivated"})
}

// Sales

func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.Sale, 0, len(s.sales))
	for _, id := range sortedKeys(s.sales) {
		sale := s.sales[id]
		if status != "" && string(sale.Status) != status {
			continue
		}
		if !inRange(sale.SaleDate, r) {
			continue
		}
		items = append(items, *sale)
	}
	writeJSON(w, http.StatusOK, paginate("sales", items, parseWindow(r)))
}

func (s *Server) getSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, found := s.sales[id]
	if !found {
		writeError(w, http.StatusNotFound, "sale not found")
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSaleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range req.Items {
		b, found := s.books[it.BookID]
		if !found || !b.IsActive {
			writeFieldErrors(w, map[string][]string{fmt.Sprintf("items.%d.book_id", i): {"book not found"}})
			return
		}
		if b.Quantity < it.Quantity {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("insufficient stock for %s", b.Name))
			return
		}
	}
	sale := &model.Sale{
		ID:            s.id(),
		SaleDate:      s.stamp(),
		Status:        model.SaleStatusCompleted,
		TotalAmount:   req.Total(),
		CustomerName:  req.CustomerName,
		Contact:       req.Contact,
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
		User:          userRef(principalFrom(r.Context())),
		CreatedAt:     s.stamp(),
		UpdatedAt:     s.stamp(),
	}
	sale.SaleNumber = fmt.Sprintf("S%s%04d", s.now().UTC().Format("20060102"), sale.ID)
	sale.UserID = sale.User.ID
	for _, it := range req.Items {
		b := s.books[it.BookID]
		b.Quantity -= it.Quantity
		sale.Items = append(sale.Items, model.SaleItem{
			SaleID:    sale.ID,
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			SalePrice: it.SalePrice,
			Subtotal:  it.SalePrice * model.Money(it.Quantity),
			Book:      &model.Book{ID: b.ID, ISBN: b.ISBN, Name: b.Name},
		})
	}
	s.sales[sale.ID] = sale
	s.record(model.TransactionIncome, sale.TotalAmount, "sale "+sale.SaleNumber, sale.ID, "sale", sale.SaleNumber, sale.User)
	writeJSON(w, http.StatusCreated, sale)
}

func (s *Server) refundSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, found := s.sales[id]
	if !found {
		writeError(w, http.StatusNotFound, "sale not found")
		return
	}
	if !sale.Status.Refundable() {
		writeError(w, http.StatusBadRequest, "only completed sales can be refunded")
		return
	}
	sale.Status = model.SaleStatusRefunded
	sale.UpdatedAt = s.stamp()
	for _, it := range sale.Items {
		if b, exists := s.books[it.BookID]; exists {
			b.Quantity += it.Quantity
		}
	}
	s.record(model.TransactionRefund, sale.TotalAmount, "refund "+sale.SaleNumber, sale.ID, "sale", sale.SaleNumber,
		userRef(principalFrom(r.Context())))
	writeJSON(w, http.StatusOK, map[string]any{"message": "sale refunded", "sale": sale})
}

// Procurement

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.PurchaseOrder, 0, len(s.orders))
	for _, id := range sortedKeys(s.orders) {
		o := s.orders[id]
		if status != "" && string(o.Status) != status {
			continue
		}
		if !inRange(o.OrderDate, r) {
			continue
		}
		items = append(items, *o)
	}
	writeJSON(w, http.StatusOK, paginate("orders", items, parseWindow(r)))
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, found := s.orders[id]
	if !found {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o := &model.PurchaseOrder{
		ID:        s.id(),
		OrderDate: s.stamp(),
		Status:    model.OrderStatusUnpaid,
		Supplier:  req.Supplier,
		Remarks:   req.Remarks,
		User:      userRef(principalFrom(r.Context())),
		CreatedAt: s.stamp(),
		UpdatedAt: s.stamp(),
	}
	o.OrderNumber = fmt.Sprintf("PO%s%04d", s.now().UTC().Format("20060102"), o.ID)
	o.UserID = o.User.ID
	for _, it := range req.Items {
		if it.BookID != nil {
			if _, found := s.books[*it.BookID]; !found {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("book %d not found", *it.BookID))
				return
			}
		}
		it.PurchaseOrderID = o.ID
		it.Subtotal = it.PurchasePrice * model.Money(it.Quantity)
		o.TotalAmount += it.Subtotal
		o.Items = append(o.Items, it)
	}
	s.orders[o.ID] = o
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req model.UpdateOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, found := s.orders[id]
	if !found {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if !o.Status.Allows(model.OrderActionEdit) {
		writeError(w, http.StatusBadRequest, "only unpaid orders can be edited")
		return
	}
	if req.Supplier != nil {
		o.Supplier = *req.Supplier
	}
	if req.Remarks != nil {
		o.Remarks = *req.Remarks
	}
	o.UpdatedAt = s.stamp()
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) transitionOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	action := model.OrderAction(chi.URLParam(r, "action"))
	s.mu.Lock()
	defer s.mu.Unlock()
	o, found := s.orders[id]
	if !found {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if !o.Status.Allows(action) {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("cannot %s an order in status %s", action, o.Status))
		return
	}
	actor := userRef(principalFrom(r.Context()))
	var msg string
	switch action {
	case model.OrderActionPay:
		o.Status = model.OrderStatusPaid
		s.record(model.TransactionExpense, o.TotalAmount, "purchase "+o.OrderNumber, o.ID, "purchase_order", o.OrderNumber, actor)
		msg = "order paid"
	case model.OrderActionReturn:
		o.Status = model.OrderStatusReturned
		msg = "order returned"
	case model.OrderActionStockIn:
		s.stockIn(o)
		o.Status = model.OrderStatusStocked
		msg = "order stocked in"
	default:
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}
	o.UpdatedAt = s.stamp()
	writeJSON(w, http.StatusOK, map[string]any{"message": msg, "order": o})
}

func (s *Server) stockIn(o *model.PurchaseOrder) {
	for i := range o.Items {
		it := &o.Items[i]
		if it.BookID != nil {
			if b, found := s.books[*it.BookID]; found {
				b.Quantity += it.Quantity
				b.IsActive = true
			}
			continue
		}
		price := it.PurchasePrice
		if it.SuggestedRetailPrice != nil {
			price = *it.SuggestedRetailPrice
		}
		b := &model.Book{
			ID:          s.id(),
			ISBN:        it.ISBN,
			Name:        it.Title,
			Author:      it.Author,
			Publisher:   it.Publisher,
			RetailPrice: price,
			Quantity:    it.Quantity,
			IsActive:    true,
			CreatedAt:   s.stamp(),
			UpdatedAt:   s.stamp(),
		}
		s.books[b.ID] = b
		bookID := b.ID
		it.BookID = &bookID
	}
}

// Users

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domainauth.Principal, 0, len(s.accounts))
	for _, id := range sortedKeys(s.accounts) {
		out = append(out, s.accounts[id].principal)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, found := s.accounts[id]
	if !found {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, a.principal)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	for _, a := range s.accounts {
		if a.principal.Username == req.Username {
			s.mu.Unlock()
			writeFieldErrors(w, map[string][]string{"username": {"username already exists"}})
			return
		}
	}
	s.mu.Unlock()

	role, _ := domainauth.ParseRole(req.Role)
	p := s.AddUser(req.Username, req.Password, role)
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accounts[p.ID]
	a.principal.FullName = req.FullName
	a.principal.EmployeeID = req.EmployeeID
	a.principal.Gender = req.Gender
	a.principal.Age = req.Age
	writeJSON(w, http.StatusCreated, a.principal)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req model.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, found := s.accounts[id]
	if !found {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	applyProfile(&a.principal, req.FullName, req.Gender, req.Age)
	if req.EmployeeID != nil {
		a.principal.EmployeeID = *req.EmployeeID
	}
	if req.Role != nil {
		if role, valid := domainauth.ParseRole(*req.Role); valid {
			a.principal.Role = role
		}
	}
	if req.Password != nil {
		a.password = *req.Password
	}
	writeJSON(w, http.StatusOK, a.principal)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if id == principalFrom(r.Context()).ID {
		writeError(w, http.StatusBadRequest, "cannot delete yourself")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.accounts[id]; !found {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	delete(s.accounts, id)
	for tok, owner := range s.tokens {
		if owner == id {
			delete(s.tokens, tok)
		}
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "user deleted"})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	me := principalFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	a, found := s.accounts[me.ID]
	if !found {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	applyProfile(&a.principal, req.FullName, req.Gender, req.Age)
	writeJSON(w, http.StatusOK, a.principal)
}

func applyProfile(p *domainauth.Principal, fullName, gender *string, age *int) {
	if fullName != nil {
		p.FullName = *fullName
	}
	if gender != nil {
		p.Gender = *gender
	}
	if age != nil {
		v := *age
		p.Age = &v
	}
}
