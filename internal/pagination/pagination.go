// Package pagination computes page windows and metadata for list
// endpoints.
package pagination

import (
	"github.com/okarpova/staffhub/internal/apperr"
)

// DefaultLimit is the page size used when a request does not specify
// one.
const DefaultLimit = 10

// Page describes one window over a result set.
type Page struct {
	// Number is the 1-based page number.
	Number int
	// Limit is the page size.
	Limit int
}

// Meta is the pagination block returned alongside list results.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	PagesCount int  `json:"pages_count"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// NewPage validates the requested window. Page numbers start at one; a
// zero limit falls back to the default.
func NewPage(number, limit int) (Page, error) {
	if number < 1 {
		return Page{}, apperr.New(apperr.KindUnprocessable, "Page number must be greater than zero")
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return Page{Number: number, Limit: limit}, nil
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Describe builds the metadata for a page over total matching rows. An
// empty result set still has one (empty) page.
func (p Page) Describe(total int) Meta {
	pages := (total + p.Limit - 1) / p.Limit
	if pages < 1 {
		pages = 1
	}
	return Meta{
		Page:       p.Number,
		Limit:      p.Limit,
		Total:      total,
		PagesCount: pages,
		HasPrev:    p.Number > 1,
		HasNext:    p.Number < pages,
	}
}
