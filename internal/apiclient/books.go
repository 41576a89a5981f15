package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/bookstore/bookstore-admin/internal/domain/model"
	apperrors "github.com/bookstore/bookstore-admin/internal/errors"
	"github.com/bookstore/bookstore-admin/internal/ports"
)

var _ ports.BookAPI = (*Books)(nil)

// Books wraps /books. The collection path keeps its trailing slash.
type Books struct{ c *Client }

// List returns one page of books.
func (b *Books) List(ctx context.Context, q model.BookQuery) (model.Page[model.Book], error) {
	raw, err := b.c.do(ctx, call{method: http.MethodGet, path: "/books/", query: q.Values(), fallback: "failed to load books"})
	if err != nil {
		return model.Page[model.Book]{}, err
	}
	return decodePage[model.Book](raw, "books")
}

// Get fetches a book by numeric id or ISBN.
func (b *Books) Get(ctx context.Context, idOrISBN string) (model.Book, error) {
	idOrISBN = strings.TrimSpace(idOrISBN)
	if idOrISBN == "" {
		return model.Book{}, apperrors.ValidationField("id", "book id or isbn is required")
	}
	var book model.Book
	err := b.c.doJSON(ctx, call{
		method:   http.MethodGet,
		path:     "/books/" + url.PathEscape(idOrISBN),
		fallback: "failed to load book",
	}, &book)
	return book, err
}

// Create adds a book. New books are active.
func (b *Books) Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	if err := req.Validate(); err != nil {
		return model.Book{}, validation(err)
	}
	var book model.Book
	err := b.c.doJSON(ctx, call{method: http.MethodPost, path: "/books/", body: req, fallback: "failed to create book"}, &book)
	return book, err
}

// Update edits a book. is_active is sent only when set on req.
func (b *Books) Update(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error) {
	if err := req.Validate(); err != nil {
		return model.Book{}, validation(err)
	}
	var book model.Book
	err := b.c.doJSON(ctx, call{method: http.MethodPut, path: idPath("/books", id), body: req, fallback: "failed to update book"}, &book)
	return book, err
}

// Delete deactivates a book and returns the server message.
func (b *Books) Delete(ctx context.Context, id int64) (string, error) {
	var res model.MessageResponse
	err := b.c.doJSON(ctx, call{method: http.MethodDelete, path: idPath("/books", id), fallback: "failed to delete book"}, &res)
	return res.Message, err
}
