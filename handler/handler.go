// Package handler wires the table kit into gin: it parses the query
// string into table state, drives the backend fetch for the requested
// page, updates the cursor history, and writes the response envelope with
// ready-made navigation query strings.
//
// One handler serves one table:
//
//	def, _ := table.NewDefinition("users", columns)
//	src := mongodb.NewSource[User](coll, def)
//	r.GET("/users", handler.New(handler.Options[User]{
//	    Definition: def,
//	    Cursor:     src.CursorFunc,
//	}))
//
// Malformed query input never fails a request; it is corrected to
// defaults before the fetch. Backend errors are the only failure path.
package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tablekit/tablekit/cache"
	"github.com/tablekit/tablekit/cursors"
	"github.com/tablekit/tablekit/logger"
	"github.com/tablekit/tablekit/paging"
	"github.com/tablekit/tablekit/params"
	"github.com/tablekit/tablekit/query"
	"github.com/tablekit/tablekit/resp"
	"github.com/tablekit/tablekit/table"
)

// Options configures a table handler. Exactly one of Cursor or Offset
// must be set; it decides the pagination mode.
type Options[T any] struct {
	// Definition describes the table being served.
	Definition *table.Definition

	// Cursor builds the cursor-mode fetch function for a request state.
	Cursor func(state params.TableState) query.Func[T]

	// Offset builds the page-mode fetch function for a request state.
	Offset func(state params.TableState) query.OffsetFunc[T]

	// MaxPageSize caps the pageSize query parameter. Zero means no cap.
	MaxPageSize int

	// Cache, when non-nil, caches whole page payloads keyed on the
	// canonical state.
	Cache *cache.Cache[Payload[T]]
}

// Links are the prebuilt query strings for the navigation controls.
// Affordances that are disabled are empty.
type Links struct {
	First    string `json:"first,omitempty"`
	Previous string `json:"previous,omitempty"`
	Next     string `json:"next,omitempty"`
}

// Payload is the response body for one table page.
type Payload[T any] struct {
	Items   []T               `json:"items"`
	Columns []table.Column    `json:"columns"`
	State   params.TableState `json:"state"`
	View    paging.View       `json:"view"`
	Label   string            `json:"label"`
	Links   Links             `json:"links"`
}

// New builds the gin handler for one table. The definition is validated
// once here, so definitions constructed literally rather than through
// table.NewDefinition still get checked before they serve traffic.
func New[T any](opts Options[T]) gin.HandlerFunc {
	defErr := validateDefinition(opts.Definition)
	return func(c *gin.Context) {
		if defErr != nil {
			e := resp.InternalServer(defErr.Error())
			var derr *table.DefinitionError
			if errors.As(defErr, &derr) {
				e.Errors = derr.Fields
			}
			resp.Fail(c.Writer, e)
			return
		}

		state := normalize(params.FromGin(c), opts.Definition, opts.MaxPageSize)
		ctx := logger.WithFields(c.Request.Context(), map[string]any{
			"table": opts.Definition.Name,
			"page":  state.Page,
		})

		key := cache.PageKey(opts.Definition.Name, state)
		if cached, err := opts.Cache.Get(ctx, key); err == nil {
			resp.Success(c.Writer, &resp.Exception{Data: cached})
			return
		} else if !errors.Is(err, cache.ErrMiss) {
			logger.FromContext(ctx).WithError(err).Warn("page cache read failed")
		}

		var (
			payload *Payload[T]
			err     error
		)
		switch {
		case opts.Cursor != nil:
			payload, err = fetchCursor(ctx, opts, state)
		case opts.Offset != nil:
			payload, err = fetchOffset(ctx, opts, state)
		default:
			resp.Fail(c.Writer, resp.InternalServer("table has no backend configured"))
			return
		}
		if err != nil {
			logger.FromContext(ctx).WithError(err).Error("table fetch failed")
			resp.Fail(c.Writer, resp.DBQuery("failed to fetch table data"))
			return
		}

		if err := opts.Cache.Set(ctx, key, payload); err != nil {
			logger.FromContext(ctx).WithError(err).Warn("page cache write failed")
		}
		resp.Success(c.Writer, &resp.Exception{Data: payload})
	}
}

func validateDefinition(def *table.Definition) error {
	if def == nil {
		return errors.New("table has no definition")
	}
	return def.Validate()
}

// normalize corrects state values the parser cannot check on its own:
// the page size cap and sortBy keys that do not name a sortable column.
// Neutralizing sortBy here keeps the cache key canonical too.
func normalize(state params.TableState, def *table.Definition, maxPageSize int) params.TableState {
	if maxPageSize > 0 && state.PageSize > maxPageSize {
		state.PageSize = maxPageSize
	}
	if state.SortBy != "" && !def.CanSortBy(state.SortBy) {
		state.SortBy = ""
	}
	return state
}

func fetchCursor[T any](ctx context.Context, opts Options[T], state params.TableState) (*Payload[T], error) {
	history := cursors.Decode(state.Cursors)
	page := history.Clamp(state.Page)

	res, err := opts.Cursor(state)(ctx, query.Request{
		ItemsRequested: state.PageSize,
		Cursor:         history.CursorFor(page),
	})
	if err != nil {
		return nil, err
	}

	history = history.Extend(page, res.ContinueCursor, res.IsDone)
	view := paging.CursorView(page, history.MaxPageReached(), !res.IsDone)

	state.Page = page
	state.Cursors = history.Encode()

	return build(opts, state, view, res.Items), nil
}

func fetchOffset[T any](ctx context.Context, opts Options[T], state params.TableState) (*Payload[T], error) {
	state.Cursors = ""

	items, total, err := opts.Offset(state)(ctx, paging.Offset(state.Page, state.PageSize), state.PageSize)
	if err != nil {
		return nil, err
	}

	// A page beyond the end of the result set snaps to the last page and
	// is refetched from there.
	if last := paging.TotalPages(total, state.PageSize); state.Page > last {
		state.Page = last
		items, total, err = opts.Offset(state)(ctx, paging.Offset(state.Page, state.PageSize), state.PageSize)
		if err != nil {
			return nil, err
		}
	}

	view := paging.OffsetView(state.Page, state.PageSize, total)
	return build(opts, state, view, items), nil
}

func build[T any](opts Options[T], state params.TableState, view paging.View, items []T) *Payload[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return &Payload[T]{
		Items:   items,
		Columns: opts.Definition.Columns,
		State:   state,
		View:    view,
		Label:   view.Label(),
		Links:   links(state, view),
	}
}

// links precomputes the query strings the navigation controls point at,
// carrying the full state (including cursor history) forward.
func links(state params.TableState, view paging.View) Links {
	var l Links
	if view.CanGoFirst {
		l.First = state.WithPage(1).Encode()
	}
	if view.CanGoPrevious {
		l.Previous = state.WithPage(state.Page - 1).Encode()
	}
	if view.CanGoNext {
		l.Next = state.WithPage(state.Page + 1).Encode()
	}
	return l
}
