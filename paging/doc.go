// Package paging derives navigation affordances from a pagination
// position.
//
// Two modes exist, modeled as an explicit sum type rather than an
// interface hierarchy:
//
//   - PageMode: the total row count is known and offsets are plain
//     arithmetic (totalPages = ceil(total / pageSize)).
//   - CursorMode: the backend paginates by opaque cursor and only the
//     pages already visited (the cursor history) plus a "has more" flag
//     are known.
//
// Both reduce to a View: can-go-previous/next/first plus display text.
// Everything here is a pure function of its inputs; no I/O, no state.
package paging
