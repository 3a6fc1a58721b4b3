// Package params converts raw query-string values into a validated table
// state and serializes that state back to a query string.
//
// Parsing is deliberately permissive: a navigation request is never
// rejected. Malformed values fall back to their defaults instead of
// producing an error.
//
// # Basic Usage
//
// Parse the current request into a state:
//
//	state := params.FromRequest(r)
//
// Derive the next navigation and turn it back into a query string:
//
//	next := state.WithSearch("alice")
//	location := "/users?" + next.Values().Encode()
//
// Helpers that change the result set (WithSearch, WithPageSize) reset the
// page to 1; moving between pages does not.
package params
