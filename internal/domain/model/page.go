package model

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPerPage matches the backend's list default.
	DefaultPerPage = 20
	// MaxPerPage is the largest page size the backend accepts.
	MaxPerPage = 100
	dateLayout = "2006-01-02"
)

// Pagination is the cursor returned alongside list results.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// Recompute derives Pages from Total and PerPage.
func (p *Pagination) Recompute() {
	if p.PerPage <= 0 {
		p.Pages = 0
		return
	}
	if p.Total < 0 {
		p.Total = 0
	}
	p.Pages = (p.Total + p.PerPage - 1) / p.PerPage
}

// HasNext reports whether a page after the current one exists.
func (p Pagination) HasNext() bool { return p.Page < p.Pages }

// Page is one page of a list endpoint.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// PageParams are the shared pagination query parameters.
type PageParams struct {
	Page    int
	PerPage int
}

// apply writes page/per_page when set, clamping per_page to MaxPerPage.
func (p PageParams) apply(v url.Values) {
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		per := p.PerPage
		if per > MaxPerPage {
			per = MaxPerPage
		}
		v.Set("per_page", strconv.Itoa(per))
	}
}

// DateRange filters by inclusive calendar dates (YYYY-MM-DD).
type DateRange struct {
	StartDate string
	EndDate   string
}

// Validate checks date formats and ordering.
func (r DateRange) Validate() error {
	var start, end time.Time
	var err error
	if s := strings.TrimSpace(r.StartDate); s != "" {
		if start, err = time.Parse(dateLayout, s); err != nil {
			return errors.New("start_date must be formatted as YYYY-MM-DD")
		}
	}
	if e := strings.TrimSpace(r.EndDate); e != "" {
		if end, err = time.Parse(dateLayout, e); err != nil {
			return errors.New("end_date must be formatted as YYYY-MM-DD")
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return errors.New("end_date must not be before start_date")
	}
	return nil
}

// Values encodes the range as query parameters, omitting empty bounds.
func (r DateRange) Values() url.Values {
	v := url.Values{}
	r.apply(v)
	return v
}

func (r DateRange) apply(v url.Values) {
	setIfNotEmpty(v, "start_date", r.StartDate)
	setIfNotEmpty(v, "end_date", r.EndDate)
}

func setIfNotEmpty(v url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v.Set(key, value)
	}
}

// UserRef is the abbreviated user embedded in orders, sales and transactions.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

// ActionResult is the `{message, <entity>}` envelope returned by state transitions.
type ActionResult[T any] struct {
	Message string
	Item    T
}

// MessageResponse is the `{message}` body returned by deletes.
type MessageResponse struct {
	Message string `json:"message"`
}
