package paging

import "github.com/tablekit/tablekit/cursors"

// Kind discriminates the pagination mode sum type.
type Kind int

const (
	// KindPage is offset pagination over a known total row count.
	KindPage Kind = iota
	// KindCursor is opaque-cursor pagination with a history ledger.
	KindCursor
)

// Mode is the tagged union of the two pagination variants. Exactly the
// fields of the active kind are meaningful; dispatch on Kind explicitly.
type Mode struct {
	Kind Kind

	// PageMode
	TotalCount int

	// CursorMode
	History cursors.History
	HasMore bool
}

// PageMode builds the offset variant for a known total.
func PageMode(totalCount int) Mode {
	return Mode{Kind: KindPage, TotalCount: totalCount}
}

// CursorMode builds the cursor variant from a history ledger and the
// backend's has-more flag.
func CursorMode(h cursors.History, hasMore bool) Mode {
	return Mode{Kind: KindCursor, History: h, HasMore: hasMore}
}

// Resolve reduces the mode to a View for the given position. In cursor
// mode the page is clamped to the history before the view is derived, so
// the result always satisfies 1 <= CurrentPage <= MaxPageReached.
func (m Mode) Resolve(page, pageSize int) View {
	switch m.Kind {
	case KindCursor:
		h := m.History
		if len(h) == 0 {
			h = cursors.New()
		}
		current := h.Clamp(page)
		return CursorView(current, h.MaxPageReached(), m.HasMore)
	default:
		return OffsetView(page, pageSize, m.TotalCount)
	}
}
