// Package sorting implements the per-column sort toggle cycle:
// unsorted, ascending, descending, unsorted again. At most one column is
// sorted at a time.
package sorting

import "github.com/tablekit/tablekit/params"

// State is the current sort selection. An empty Column means unsorted;
// Order is then inert but kept at the "asc" default.
type State struct {
	Column string       `json:"column,omitempty"`
	Order  params.Order `json:"order"`
}

// Unsorted is the initial state.
func Unsorted() State {
	return State{Order: params.Asc}
}

// FromTableState lifts the sort fields out of a parsed table state.
func FromTableState(s params.TableState) State {
	order := s.SortOrder
	if !order.Valid() {
		order = params.Asc
	}
	return State{Column: s.SortBy, Order: order}
}

// Active reports whether a column is currently sorted.
func (s State) Active() bool {
	return s.Column != ""
}

// Toggle advances the state for a click on the given column:
//
//	other column        -> (column, asc)
//	same column, asc    -> (column, desc)
//	same column, desc   -> unsorted
func (s State) Toggle(column string) State {
	if column != s.Column {
		return State{Column: column, Order: params.Asc}
	}
	if s.Order == params.Asc {
		return State{Column: column, Order: params.Desc}
	}
	return Unsorted()
}

// Apply writes the sort selection back onto a table state.
func (s State) Apply(ts params.TableState) params.TableState {
	return ts.WithSort(s.Column, s.Order)
}
