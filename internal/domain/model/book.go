package model

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxISBNLen      = 20
	maxBookNameLen  = 200
	maxPublisherLen = 100
	maxAuthorLen    = 100
)

// Book is an inventory item.
type Book struct {
	ID          int64     `json:"id"`
	ISBN        string    `json:"isbn"`
	Name        string    `json:"name"`
	Publisher   string    `json:"publisher,omitempty"`
	Author      string    `json:"author,omitempty"`
	RetailPrice Money     `json:"retail_price"`
	Quantity    int       `json:"quantity"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// BookQuery controls listing books.
// Search matches name, author and ISBN on the server.
// ActiveOnly defaults to true on the server when nil.
type BookQuery struct {
	PageParams
	Search     string
	ActiveOnly *bool
}

// Values encodes the query for GET /books/.
func (q BookQuery) Values() url.Values {
	v := url.Values{}
	setIfNotEmpty(v, "search", q.Search)
	q.apply(v)
	if q.ActiveOnly != nil {
		v.Set("active_only", strconv.FormatBool(*q.ActiveOnly))
	}
	return v
}

// IncludesInactive reports whether logically deleted books are part of the result.
func (q BookQuery) IncludesInactive() bool {
	return q.ActiveOnly != nil && !*q.ActiveOnly
}

// CreateBookRequest represents parameters to create a Book.
// New books are always active; is_active is never sent on create.
type CreateBookRequest struct {
	ISBN        string  `json:"isbn"`
	Name        string  `json:"name"`
	Publisher   *string `json:"publisher,omitempty"`
	Author      *string `json:"author,omitempty"`
	RetailPrice Money   `json:"retail_price"`
	Quantity    int     `json:"quantity"`
}

// Validate validates CreateBookRequest.
func (r *CreateBookRequest) Validate() error {
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.Name = strings.TrimSpace(r.Name)
	if r.ISBN == "" {
		return errors.New("isbn is required")
	}
	if utf8.RuneCountInString(r.ISBN) > maxISBNLen {
		return errors.New("isbn cannot exceed 20 characters")
	}
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxBookNameLen {
		return errors.New("name cannot exceed 200 characters")
	}
	if err := validateOptionalLen("publisher", r.Publisher, maxPublisherLen); err != nil {
		return err
	}
	if err := validateOptionalLen("author", r.Author, maxAuthorLen); err != nil {
		return err
	}
	if r.RetailPrice <= 0 {
		return errors.New("retail_price must be positive")
	}
	if r.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

// UpdateBookRequest represents parameters to update a Book.
// IsActive is only sent when the caller sets it explicitly.
type UpdateBookRequest struct {
	Name        *string `json:"name,omitempty"`
	Publisher   *string `json:"publisher,omitempty"`
	Author      *string `json:"author,omitempty"`
	RetailPrice *Money  `json:"retail_price,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateBookRequest.
func (r *UpdateBookRequest) HasUpdates() bool {
	return r.Name != nil || r.Publisher != nil || r.Author != nil || r.RetailPrice != nil ||
		r.Quantity != nil || r.IsActive != nil
}

// Validate validates UpdateBookRequest, ensuring at least one field is set and values are sane.
func (r *UpdateBookRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxBookNameLen {
			return errors.New("name cannot exceed 200 characters")
		}
		*r.Name = n
	}
	if err := validateOptionalLen("publisher", r.Publisher, maxPublisherLen); err != nil {
		return err
	}
	if err := validateOptionalLen("author", r.Author, maxAuthorLen); err != nil {
		return err
	}
	if r.RetailPrice != nil && *r.RetailPrice <= 0 {
		return errors.New("retail_price must be positive")
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

// Apply copies the set fields onto b, used to keep cached lists in sync.
func (r *UpdateBookRequest) Apply(b *Book) {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Publisher != nil {
		b.Publisher = *r.Publisher
	}
	if r.Author != nil {
		b.Author = *r.Author
	}
	if r.RetailPrice != nil {
		b.RetailPrice = *r.RetailPrice
	}
	if r.Quantity != nil {
		b.Quantity = *r.Quantity
	}
	if r.IsActive != nil {
		b.IsActive = *r.IsActive
	}
}

func validateOptionalLen(field string, v *string, maxLen int) error {
	if v == nil {
		return nil
	}
	*v = strings.TrimSpace(*v)
	if utf8.RuneCountInString(*v) > maxLen {
		return errors.New(field + " cannot exceed " + strconv.Itoa(maxLen) + " characters")
	}
	return nil
}
