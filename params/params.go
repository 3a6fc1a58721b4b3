package params

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/go-querystring/query"
)

// Default values applied when a query parameter is absent or malformed.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Order is a sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Valid reports whether o is one of the two accepted directions.
func (o Order) Valid() bool {
	return o == Asc || o == Desc
}

// Reverse returns the opposite direction.
func (o Order) Reverse() Order {
	if o == Desc {
		return Asc
	}
	return Desc
}

// Query parameter names.
const (
	KeyPage      = "page"
	KeyPageSize  = "pageSize"
	KeySortBy    = "sortBy"
	KeySortOrder = "sortOrder"
	KeySearch    = "search"
	KeyCursors   = "cursors"
)

// TableState is the validated view state of a table, reconstructed from the
// query string on every request. Page and PageSize are always >= 1.
type TableState struct {
	Page      int    `json:"page" url:"page"`
	PageSize  int    `json:"pageSize" url:"pageSize"`
	SortBy    string `json:"sortBy,omitempty" url:"sortBy,omitempty"`
	SortOrder Order  `json:"sortOrder" url:"sortOrder"`
	Search    string `json:"search,omitempty" url:"search,omitempty"`
	Cursors   string `json:"cursors,omitempty" url:"cursors,omitempty"`
}

// Default returns the state of a table nobody has interacted with yet.
func Default() TableState {
	return TableState{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		SortOrder: Asc,
	}
}

// Parse builds a TableState from raw query values. Malformed values fall
// back to defaults; Parse never fails.
func Parse(values url.Values) TableState {
	s := Default()
	s.Page = parsePositiveInt(values.Get(KeyPage), DefaultPage)
	s.PageSize = parsePositiveInt(values.Get(KeyPageSize), DefaultPageSize)
	if o := Order(values.Get(KeySortOrder)); o.Valid() {
		s.SortOrder = o
	}
	s.SortBy = values.Get(KeySortBy)
	s.Search = values.Get(KeySearch)
	s.Cursors = values.Get(KeyCursors)
	return s
}

// FromRequest parses the table state out of an HTTP request.
func FromRequest(r *http.Request) TableState {
	return Parse(r.URL.Query())
}

// FromGin parses the table state out of a gin request context.
func FromGin(c *gin.Context) TableState {
	return Parse(c.Request.URL.Query())
}

// Values serializes the state back to query values for the next URL.
func (s TableState) Values() url.Values {
	v, err := query.Values(s)
	if err != nil {
		// TableState contains only plain fields; query.Values cannot fail
		// on it, but keep the permissive contract anyway.
		return url.Values{}
	}
	return v
}

// Encode returns the state as an encoded query string.
func (s TableState) Encode() string {
	return s.Values().Encode()
}

// WithPage returns a copy of s positioned at page. Values below 1 snap to 1.
func (s TableState) WithPage(page int) TableState {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

// WithPageSize returns a copy of s with the given page size. The page
// resets to 1 since the old position is meaningless under a new size.
func (s TableState) WithPageSize(size int) TableState {
	if size < 1 {
		size = DefaultPageSize
	}
	s.PageSize = size
	s.Page = 1
	s.Cursors = ""
	return s
}

// WithSearch returns a copy of s with the given search text. The page
// resets to 1: a new result set invalidates the previous position.
func (s TableState) WithSearch(text string) TableState {
	s.Search = text
	s.Page = 1
	s.Cursors = ""
	return s
}

// WithSort returns a copy of s sorted by column in the given order.
// Recorded cursors belong to the old row order and are discarded; the page
// number itself is kept.
func (s TableState) WithSort(column string, order Order) TableState {
	if !order.Valid() {
		order = Asc
	}
	s.SortBy = column
	s.SortOrder = order
	s.Cursors = ""
	return s
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
