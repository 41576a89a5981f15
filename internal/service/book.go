package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

// BookServiceOptions groups dependencies for BookService.
type BookServiceOptions struct {
	API    ports.BookAPI // Required
	Logger *slog.Logger  // Optional
}

// BookService holds the inventory list, its search parameters and the book being viewed.
type BookService struct {
	tracker
	api        ports.BookAPI
	query      model.BookQuery
	books      []model.Book
	pagination model.Pagination
	current    *model.Book
}

// NewBookService constructs a new BookService.
func NewBookService(opts BookServiceOptions) *BookService {
	if opts.API == nil {
		panic("BookAPI is required")
	}
	active := true
	s := &BookService{
		api: opts.API,
		query: model.BookQuery{
			PageParams: model.PageParams{Page: 1, PerPage: model.DefaultPerPage},
			ActiveOnly: &active,
		},
		pagination: model.Pagination{Page: 1, PerPage: model.DefaultPerPage},
	}
	s.useLogger(opts.Logger)
	return s
}

// Query returns the current search parameters.
func (s *BookService) Query() model.BookQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetQuery merges q into the search parameters. Zero fields keep their current value.
func (s *BookService) SetQuery(q model.BookQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = mergeBookQuery(s.query, q)
}

func mergeBookQuery(base, q model.BookQuery) model.BookQuery {
	if q.Page > 0 {
		base.Page = q.Page
	}
	if q.PerPage > 0 {
		base.PerPage = q.PerPage
	}
	if q.Search != "" {
		base.Search = q.Search
	}
	if q.ActiveOnly != nil {
		v := *q.ActiveOnly
		base.ActiveOnly = &v
	}
	return base
}

// ClearSearch drops the search term and returns to the first page.
func (s *BookService) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Search = ""
	s.query.Page = 1
}

// Load fetches the page described by the stored parameters merged with q.
func (s *BookService) Load(ctx context.Context, q model.BookQuery) (model.Page[model.Book], error) {
	s.mu.Lock()
	s.query = mergeBookQuery(s.query, q)
	query := s.query
	s.mu.Unlock()

	s.begin()
	page, err := s.api.List(ctx, query)
	if err != nil {
		return model.Page[model.Book]{}, s.finish(ctx, "books.list", fmt.Errorf("list books: %w", err))
	}
	s.mu.Lock()
	s.books = append([]model.Book(nil), page.Items...)
	s.pagination = page.Pagination
	s.mu.Unlock()
	return page, s.finish(ctx, "books.list", nil)
}

// Fetch loads one book by id or ISBN and makes it the current book.
func (s *BookService) Fetch(ctx context.Context, idOrISBN string) (model.Book, error) {
	s.begin()
	book, err := s.api.Get(ctx, idOrISBN)
	if err != nil {
		return model.Book{}, s.finish(ctx, "books.get", fmt.Errorf("get book: %w", err))
	}
	s.mu.Lock()
	s.current = &book
	s.mu.Unlock()
	return book, s.finish(ctx, "books.get", nil)
}

// Add creates a book. On the first page it is inserted at the head of the list.
func (s *BookService) Add(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	s.begin()
	book, err := s.api.Create(ctx, req)
	if err != nil {
		return model.Book{}, s.finish(ctx, "books.create", fmt.Errorf("create book: %w", err))
	}
	s.mu.Lock()
	if s.pagination.Page <= 1 {
		s.books = prepend(s.books, book, s.pagination.PerPage)
		s.pagination.Total++
		s.pagination.Recompute()
	}
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "book created", "id", book.ID, "isbn", book.ISBN)
	return book, s.finish(ctx, "books.create", nil)
}

// Edit updates a book and replaces it in the list and as the current book.
func (s *BookService) Edit(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error) {
	s.begin()
	book, err := s.api.Update(ctx, id, req)
	if err != nil {
		return model.Book{}, s.finish(ctx, "books.update", fmt.Errorf("update book: %w", err))
	}
	s.mu.Lock()
	replaceByID(s.books, id, bookID, book)
	if s.current != nil && s.current.ID == id {
		s.current = &book
	}
	s.mu.Unlock()
	return book, s.finish(ctx, "books.update", nil)
}

// Remove deactivates a book. Lists limited to active books drop it;
// lists including inactive books keep it flagged inactive.
func (s *BookService) Remove(ctx context.Context, id int64) (string, error) {
	s.begin()
	msg, err := s.api.Delete(ctx, id)
	if err != nil {
		return "", s.finish(ctx, "books.delete", fmt.Errorf("delete book: %w", err))
	}
	s.mu.Lock()
	if s.query.IncludesInactive() {
		for i := range s.books {
			if s.books[i].ID == id {
				s.books[i].IsActive = false
			}
		}
	} else {
		kept := s.books[:0]
		for _, b := range s.books {
			if b.ID != id {
				kept = append(kept, b)
			}
		}
		s.books = kept
		s.pagination.Total--
		s.pagination.Recompute()
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "book deactivated", "id", id)
	return msg, s.finish(ctx, "books.delete", nil)
}

// Books returns a copy of the loaded list.
func (s *BookService) Books() []model.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Book(nil), s.books...)
}

// Pagination returns the cursor of the loaded list.
func (s *BookService) Pagination() model.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

// Current returns the book being viewed.
func (s *BookService) Current() (model.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.Book{}, false
	}
	return *s.current, true
}

// ResetCurrent forgets the book being viewed.
func (s *BookService) ResetCurrent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func bookID(b model.Book) int64 { return b.ID }
