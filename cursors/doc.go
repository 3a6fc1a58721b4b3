// Package cursors lets a page-number-oriented UI drive a cursor-only
// backend pagination API.
//
// A History is an ordered list of opaque backend cursors, one per page the
// user has reached: entry 0 is the cursor for page 1 (always the empty
// "start of data" cursor), entry i the cursor needed to fetch page i+1.
// The list lives in the URL as a comma-joined string and is rebuilt from it
// on every request, so there is no server-side state to keep consistent.
//
// The history only ever grows, and only at its frontier: refetching a page
// already in the list never rewrites its cursor, which keeps backward and
// forward navigation stable.
//
//	h := cursors.Decode(c.Query("cursors"))
//	page := h.Clamp(requestedPage)
//	res, err := fetch(ctx, query.Request{Cursor: h.CursorFor(page), ...})
//	h = h.Extend(page, res.ContinueCursor, res.IsDone)
//	next := h.Encode() // round-trips through the URL
package cursors
