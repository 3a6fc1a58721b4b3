package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tablekit/tablekit/ecode"
	"github.com/tablekit/tablekit/params"
	"github.com/tablekit/tablekit/query"
	"github.com/tablekit/tablekit/resp"
	"github.com/tablekit/tablekit/table"
)

type user struct {
	Name string `json:"name"`
}

func testDefinition(t *testing.T) *table.Definition {
	t.Helper()
	def, err := table.NewDefinition("users", []table.Column{
		{Key: "name", Label: "Name", Sortable: true, Searchable: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	return def
}

// fakeBackend pages through a fixed data set with cursors "c1", "c2", ...
// and records every request it sees.
type fakeBackend struct {
	pages    [][]user
	requests []query.Request
}

func (f *fakeBackend) cursorFunc(state params.TableState) query.Func[user] {
	return func(ctx context.Context, req query.Request) (query.Response[user], error) {
		f.requests = append(f.requests, req)

		idx := 0
		for i := range f.pages {
			if req.Cursor == cursorName(i) {
				idx = i
				break
			}
		}
		res := query.Response[user]{Items: f.pages[idx]}
		if idx+1 < len(f.pages) {
			res.ContinueCursor = cursorName(idx + 1)
		} else {
			res.IsDone = true
		}
		return res, nil
	}
}

func cursorName(i int) string {
	if i == 0 {
		return ""
	}
	return "c" + string(rune('0'+i))
}

func serve(t *testing.T, opts Options[user], rawQuery string) (*httptest.ResponseRecorder, *Payload[user]) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/users", New(opts))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users?"+rawQuery, nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return w, nil
	}
	var payload Payload[user]
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v\n%s", err, w.Body.String())
	}
	return w, &payload
}

func TestCursorModeFirstPage(t *testing.T) {
	backend := &fakeBackend{pages: [][]user{
		{{Name: "ada"}, {Name: "bob"}},
		{{Name: "cyd"}},
	}}
	opts := Options[user]{Definition: testDefinition(t), Cursor: backend.cursorFunc}

	_, payload := serve(t, opts, "")
	if len(payload.Items) != 2 {
		t.Fatalf("items = %v", payload.Items)
	}
	if payload.State.Cursors != "null,c1" {
		t.Errorf("Cursors = %q, want history grown to %q", payload.State.Cursors, "null,c1")
	}
	if !payload.View.CanGoNext {
		t.Error("CanGoNext = false with more data available")
	}
	if payload.View.CanGoPrevious {
		t.Error("CanGoPrevious = true on page 1")
	}
	if payload.Label != "Page 1 of 2+" {
		t.Errorf("Label = %q", payload.Label)
	}
	if payload.Links.Next == "" || payload.Links.Previous != "" {
		t.Errorf("Links = %+v", payload.Links)
	}
}

func TestCursorModeSecondPage(t *testing.T) {
	backend := &fakeBackend{pages: [][]user{
		{{Name: "ada"}, {Name: "bob"}},
		{{Name: "cyd"}},
	}}
	opts := Options[user]{Definition: testDefinition(t), Cursor: backend.cursorFunc}

	_, payload := serve(t, opts, "page=2&cursors=null%2Cc1")
	if len(payload.Items) != 1 || payload.Items[0].Name != "cyd" {
		t.Fatalf("items = %v", payload.Items)
	}
	if payload.View.CanGoNext {
		t.Error("CanGoNext = true at end of data")
	}
	if payload.State.Cursors != "null,c1" {
		t.Errorf("history grew past the end: %q", payload.State.Cursors)
	}
	if payload.Label != "Page 2 of 2" {
		t.Errorf("Label = %q", payload.Label)
	}

	if backend.requests[0].Cursor != "c1" {
		t.Errorf("fetched with cursor %q, want %q", backend.requests[0].Cursor, "c1")
	}
}

// Direct URL manipulation to a page far beyond history clamps to the
// frontier instead of failing.
func TestCursorModeClampsWildPage(t *testing.T) {
	backend := &fakeBackend{pages: [][]user{
		{{Name: "ada"}},
		{{Name: "bob"}},
	}}
	opts := Options[user]{Definition: testDefinition(t), Cursor: backend.cursorFunc}

	_, payload := serve(t, opts, "page=999&cursors=null%2Cc1")
	if payload.State.Page != 2 {
		t.Errorf("Page = %d, want clamped 2", payload.State.Page)
	}
}

// Serving the same navigation twice yields the same state: no
// double-advance of history.
func TestCursorModeIdempotent(t *testing.T) {
	backend := &fakeBackend{pages: [][]user{
		{{Name: "ada"}},
		{{Name: "bob"}},
		{{Name: "cyd"}},
	}}
	opts := Options[user]{Definition: testDefinition(t), Cursor: backend.cursorFunc}

	_, first := serve(t, opts, "page=2&cursors=null%2Cc1")
	_, second := serve(t, opts, "page=2&cursors="+url.QueryEscape(first.State.Cursors))

	if second.State.Cursors != first.State.Cursors {
		t.Errorf("history drifted: %q then %q", first.State.Cursors, second.State.Cursors)
	}
	if second.State.Page != first.State.Page {
		t.Errorf("page drifted: %d then %d", first.State.Page, second.State.Page)
	}
}

func TestCursorModeUnsortableColumnIgnored(t *testing.T) {
	backend := &fakeBackend{pages: [][]user{{{Name: "ada"}}}}
	opts := Options[user]{Definition: testDefinition(t), Cursor: backend.cursorFunc}

	_, payload := serve(t, opts, "sortBy=secret&sortOrder=desc")
	if payload.State.SortBy != "" {
		t.Errorf("SortBy = %q, want neutralized", payload.State.SortBy)
	}
}

func TestOffsetMode(t *testing.T) {
	data := make([]user, 25)
	offset := func(state params.TableState) query.OffsetFunc[user] {
		return func(ctx context.Context, off, limit int) ([]user, int, error) {
			end := off + limit
			if end > len(data) {
				end = len(data)
			}
			if off > len(data) {
				off = len(data)
			}
			return data[off:end], len(data), nil
		}
	}
	opts := Options[user]{Definition: testDefinition(t), Offset: offset}

	_, payload := serve(t, opts, "page=3")
	if payload.View.MaxPageReached != 3 {
		t.Errorf("MaxPageReached = %d, want 3", payload.View.MaxPageReached)
	}
	if payload.View.CanGoNext {
		t.Error("CanGoNext = true on last page")
	}
	if !payload.View.CanGoPrevious {
		t.Error("CanGoPrevious = false on page 3")
	}
	if len(payload.Items) != 5 {
		t.Errorf("len(items) = %d, want 5", len(payload.Items))
	}

	// Beyond the end snaps to the last page.
	_, payload = serve(t, opts, "page=40")
	if payload.State.Page != 3 {
		t.Errorf("Page = %d, want snapped 3", payload.State.Page)
	}
}

func TestMaxPageSizeCap(t *testing.T) {
	backend := &fakeBackend{pages: [][]user{{{Name: "ada"}}}}
	opts := Options[user]{Definition: testDefinition(t), Cursor: backend.cursorFunc, MaxPageSize: 50}

	_, payload := serve(t, opts, "pageSize=9999")
	if payload.State.PageSize != 50 {
		t.Errorf("PageSize = %d, want capped 50", payload.State.PageSize)
	}
	if backend.requests[0].ItemsRequested != 50 {
		t.Errorf("ItemsRequested = %d, want 50", backend.requests[0].ItemsRequested)
	}
}

func TestBackendErrorIsServerError(t *testing.T) {
	opts := Options[user]{
		Definition: testDefinition(t),
		Cursor: func(state params.TableState) query.Func[user] {
			return func(ctx context.Context, req query.Request) (query.Response[user], error) {
				return query.Response[user]{}, errors.New("boom")
			}
		},
	}

	w, _ := serve(t, opts, "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestNoBackendConfigured(t *testing.T) {
	opts := Options[user]{Definition: testDefinition(t)}
	w, _ := serve(t, opts, "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

// A definition constructed literally, bypassing table.NewDefinition,
// fails the request with the per-field messages in the envelope.
func TestInvalidDefinition(t *testing.T) {
	backend := &fakeBackend{pages: [][]user{{{Name: "ada"}}}}
	opts := Options[user]{
		Definition: &table.Definition{Name: "users"},
		Cursor:     backend.cursorFunc,
	}

	w, _ := serve(t, opts, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var out resp.Exception
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	fields, ok := out.Errors.(map[string]any)
	if !ok {
		t.Fatalf("Errors = %#v, want field map", out.Errors)
	}
	if fields["columns"] != ecode.FieldIsRequired("columns") {
		t.Errorf(`errors["columns"] = %v`, fields["columns"])
	}
	if len(backend.requests) != 0 {
		t.Errorf("backend was called %d times for a misconfigured table", len(backend.requests))
	}
}

func TestNilDefinition(t *testing.T) {
	backend := &fakeBackend{pages: [][]user{{{Name: "ada"}}}}
	opts := Options[user]{Cursor: backend.cursorFunc}

	w, _ := serve(t, opts, "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
