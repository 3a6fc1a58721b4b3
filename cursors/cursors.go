package cursors

import "strings"

// nullToken marks an absent cursor in the encoded form. Page 1 always has
// an absent cursor, meaning "start of data".
const nullToken = "null"

// History maps page numbers to the opaque backend cursors required to
// fetch them: entry i holds the cursor for page i+1. The empty string is
// the absent cursor. A History is always at least one entry long.
type History []string

// New returns the minimal history: page 1, no cursor.
func New() History {
	return History{""}
}

// Decode parses the comma-joined URL form of a history. The literal token
// "null" (and the empty token) decodes to the absent cursor. Anything
// unparseable, including the empty string, decodes to the minimal history;
// decoding never fails.
func Decode(raw string) History {
	if raw == "" {
		return New()
	}
	parts := strings.Split(raw, ",")
	h := make(History, len(parts))
	for i, p := range parts {
		if p == nullToken {
			p = ""
		}
		h[i] = p
	}
	// Entry 0 is page 1 and must be the absent cursor.
	h[0] = ""
	return h
}

// Encode serializes the history back to its comma-joined URL form.
func (h History) Encode() string {
	if len(h) == 0 {
		return nullToken
	}
	parts := make([]string, len(h))
	for i, c := range h {
		if c == "" {
			c = nullToken
		}
		parts[i] = c
	}
	return strings.Join(parts, ",")
}

// MaxPageReached is the highest page number a cursor has been recorded
// for, i.e. the frontier of fetched data.
func (h History) MaxPageReached() int {
	if len(h) == 0 {
		return 1
	}
	return len(h)
}

// Clamp bounds a requested page number to the pages the history can
// actually reach: 1 <= result <= MaxPageReached. Direct URL manipulation
// to an arbitrary page lands on the frontier instead of failing.
func (h History) Clamp(requested int) int {
	if requested < 1 {
		return 1
	}
	if max := h.MaxPageReached(); requested > max {
		return max
	}
	return requested
}

// CursorFor returns the cursor required to fetch the given page, or the
// absent cursor when the page is out of range.
func (h History) CursorFor(page int) string {
	if page < 1 || page > len(h) {
		return ""
	}
	return h[page-1]
}

// Extend records the continue-cursor returned by fetching effectivePage.
// The history grows only when all three hold:
//
//   - effectivePage is the frontier (revisiting a past page never mutates
//     recorded cursors),
//   - nextCursor is present, and
//   - isDone is false (the end of data stops growth; isDone is
//     authoritative over any display-level "has more" flag).
//
// The receiver is returned unchanged otherwise.
func (h History) Extend(effectivePage int, nextCursor string, isDone bool) History {
	if isDone || nextCursor == "" || effectivePage != len(h) {
		return h
	}
	out := make(History, len(h), len(h)+1)
	copy(out, h)
	return append(out, nextCursor)
}
