// Package query defines the backend pagination call contract consumed by
// the table handler: ask for n items at an opaque cursor, get back the
// items, a continue cursor, and whether the data is exhausted.
//
// Backends are supplied by the caller. The mongodb subpackage implements
// the contract for MongoDB collections; anything else just needs to
// satisfy Func or OffsetFunc.
package query

import "context"

// Request asks a backend for a batch of items starting at Cursor. An
// empty Cursor means the start of the ordered result set.
type Request struct {
	ItemsRequested int    `json:"itemsRequested"`
	Cursor         string `json:"cursor,omitempty"`
}

// Response is one fetched batch. ContinueCursor positions the next batch;
// IsDone reports that no data exists past this batch, and takes priority
// over any derived display flag when deciding whether history may grow.
type Response[T any] struct {
	Items          []T    `json:"items"`
	IsDone         bool   `json:"isDone"`
	ContinueCursor string `json:"continueCursor,omitempty"`
}

// CursorProvider is implemented by item types that can name their own
// position in the result set, letting backends keyset-paginate instead of
// counting rows.
type CursorProvider interface {
	GetCursorValue() string
}

// Func fetches one batch in cursor mode.
type Func[T any] func(ctx context.Context, req Request) (Response[T], error)

// OffsetFunc fetches one page in offset mode along with the total row
// count of the filtered result set.
type OffsetFunc[T any] func(ctx context.Context, offset, limit int) (items []T, total int, err error)
