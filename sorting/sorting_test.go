package sorting

import (
	"testing"

	"github.com/tablekit/tablekit/params"
)

// Three clicks on the same column cycle back to unsorted, visiting
// ascending then descending on the way.
func TestToggleCycle(t *testing.T) {
	s := Unsorted()

	s = s.Toggle("name")
	if s.Column != "name" || s.Order != params.Asc {
		t.Fatalf("after first click: %+v", s)
	}

	s = s.Toggle("name")
	if s.Column != "name" || s.Order != params.Desc {
		t.Fatalf("after second click: %+v", s)
	}

	s = s.Toggle("name")
	if s.Active() {
		t.Fatalf("after third click, still sorted: %+v", s)
	}
	if s.Order != params.Asc {
		t.Errorf("unsorted state order = %q, want inert %q", s.Order, params.Asc)
	}
}

func TestToggleSwitchesColumn(t *testing.T) {
	tests := []struct {
		name  string
		start State
	}{
		{"from unsorted", Unsorted()},
		{"from ascending", State{Column: "name", Order: params.Asc}},
		{"from descending", State{Column: "name", Order: params.Desc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Toggle("email")
			if got.Column != "email" || got.Order != params.Asc {
				t.Errorf("Toggle(%q) = %+v, want (email, asc)", "email", got)
			}
		})
	}
}

func TestFromTableState(t *testing.T) {
	ts := params.TableState{SortBy: "age", SortOrder: params.Desc}
	s := FromTableState(ts)
	if s.Column != "age" || s.Order != params.Desc {
		t.Errorf("FromTableState = %+v", s)
	}

	// Invalid orders are corrected, never surfaced.
	s = FromTableState(params.TableState{SortBy: "age", SortOrder: "sideways"})
	if s.Order != params.Asc {
		t.Errorf("invalid order mapped to %q, want asc", s.Order)
	}
}
