package paging

import (
	"fmt"

	"github.com/tablekit/tablekit/params"
)

// View holds the navigation affordances for the current position. It is
// derived, never stored.
type View struct {
	CurrentPage    int    `json:"currentPage"`
	MaxPageReached int    `json:"maxPageReached"`
	HasMore        bool   `json:"hasMore"`
	CanGoNext      bool   `json:"canGoNext"`
	CanGoPrevious  bool   `json:"canGoPrevious"`
	CanGoFirst     bool   `json:"canGoFirst"`
}

// Label is the display text for the position indicator. An unknown total
// beyond the frontier is signaled with a "+" suffix.
func (v View) Label() string {
	if v.HasMore {
		return fmt.Sprintf("Page %d of %d+", v.CurrentPage, v.MaxPageReached)
	}
	return fmt.Sprintf("Page %d of %d", v.CurrentPage, v.MaxPageReached)
}

// CursorView derives the view for cursor-based pagination. Pages already
// inside the history stay reachable even when the backend reports no new
// data beyond the frontier.
func CursorView(currentPage, maxPageReached int, hasMore bool) View {
	return View{
		CurrentPage:    currentPage,
		MaxPageReached: maxPageReached,
		HasMore:        hasMore,
		CanGoNext:      hasMore || currentPage < maxPageReached,
		CanGoPrevious:  currentPage > 1,
		CanGoFirst:     currentPage > 1,
	}
}

// TotalPages is the page count for a known total row count, never less
// than one: an empty result set still renders as a single page.
func TotalPages(totalCount, pageSize int) int {
	if pageSize < 1 {
		pageSize = params.DefaultPageSize
	}
	pages := (totalCount + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// OffsetView derives the view for offset-based pagination from a known
// total row count.
func OffsetView(page, pageSize, totalCount int) View {
	total := TotalPages(totalCount, pageSize)
	if page < 1 {
		page = 1
	}
	return View{
		CurrentPage:    page,
		MaxPageReached: total,
		HasMore:        false,
		CanGoNext:      page < total,
		CanGoPrevious:  page > 1,
		CanGoFirst:     page > 1,
	}
}

// Offset is the number of rows to skip to reach the given page.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
