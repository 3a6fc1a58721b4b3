// Package mongodb implements the query contract on top of a MongoDB
// collection, for document databases consumed as a hosted service.
//
// A Source translates table state into Find queries: free-text search
// becomes a case-insensitive $or of regexes over the searchable columns,
// the sort selection becomes the sort document, and batches are fetched
// with one extra row to decide whether more data exists.
//
// Cursors are opaque to callers. When the table is unsorted the source
// keyset-paginates on _id; under an explicit column sort it falls back to
// an encoded position, since resuming a keyset requires the sort value of
// the boundary document.
package mongodb

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tablekit/tablekit/params"
	"github.com/tablekit/tablekit/query"
	"github.com/tablekit/tablekit/sorting"
	"github.com/tablekit/tablekit/table"
)

const (
	idField      = "_id"
	keysetPrefix = "id:"
	offsetPrefix = "pos:"
)

// Source adapts one collection to the query contract for one table
// definition.
type Source[T any] struct {
	coll *mongo.Collection
	def  *table.Definition
}

// NewSource binds a collection to a table definition.
func NewSource[T any](coll *mongo.Collection, def *table.Definition) *Source[T] {
	return &Source[T]{coll: coll, def: def}
}

// CursorFunc builds the cursor-mode fetch function for the given state.
func (s *Source[T]) CursorFunc(state params.TableState) query.Func[T] {
	sort := sorting.FromTableState(state)
	return func(ctx context.Context, req query.Request) (query.Response[T], error) {
		return s.fetch(ctx, state.Search, sort, req)
	}
}

// OffsetFunc builds the offset-mode fetch function for the given state.
func (s *Source[T]) OffsetFunc(state params.TableState) query.OffsetFunc[T] {
	sort := sorting.FromTableState(state)
	return func(ctx context.Context, offset, limit int) ([]T, int, error) {
		filter := s.filter(state.Search)

		total, err := s.coll.CountDocuments(ctx, filter)
		if err != nil {
			return nil, 0, fmt.Errorf("count %s: %w", s.def.Name, err)
		}

		opts := options.Find().
			SetSort(s.sortDoc(sort)).
			SetSkip(int64(offset)).
			SetLimit(int64(limit))
		items, err := s.find(ctx, filter, opts)
		if err != nil {
			return nil, 0, err
		}
		return items, int(total), nil
	}
}

func (s *Source[T]) fetch(ctx context.Context, search string, sort sorting.State, req query.Request) (query.Response[T], error) {
	limit := req.ItemsRequested
	if limit < 1 {
		limit = params.DefaultPageSize
	}

	filter := s.filter(search)
	pos := decodeCursor(req.Cursor)

	opts := options.Find().
		SetSort(s.sortDoc(sort)).
		SetLimit(int64(limit) + 1)

	switch {
	case pos.id != primitive.NilObjectID:
		// Keyset resume: everything past the boundary document. Only valid
		// for the _id order, which is what encoded it.
		filter = bson.M{"$and": bson.A{filter, bson.M{idField: bson.M{"$gt": pos.id}}}}
	case pos.offset > 0:
		opts.SetSkip(int64(pos.offset))
	}

	items, err := s.find(ctx, filter, opts)
	if err != nil {
		return query.Response[T]{}, err
	}

	isDone := len(items) <= limit
	if !isDone {
		items = items[:limit]
	}

	res := query.Response[T]{Items: items, IsDone: isDone}
	if !isDone {
		res.ContinueCursor = s.continueCursor(sort, items, pos.offset, limit)
	}
	return res, nil
}

// continueCursor positions the next batch. Keyset on _id applies only
// when the table is unsorted (the _id order is the fetch order) and the
// item type can report its own id; otherwise the cursor is a row offset.
func (s *Source[T]) continueCursor(sort sorting.State, items []T, offset, limit int) string {
	if !sort.Active() && len(items) > 0 {
		if p, ok := any(items[len(items)-1]).(query.CursorProvider); ok {
			if id, err := primitive.ObjectIDFromHex(p.GetCursorValue()); err == nil {
				return encodeID(id)
			}
		}
	}
	return encodeOffset(offset + limit)
}

func (s *Source[T]) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.def.Name, err)
	}
	defer cur.Close(ctx)

	items := make([]T, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.def.Name, err)
	}
	return items, nil
}

// filter builds the free-text search filter: a case-insensitive substring
// match across every searchable column, or an empty filter without search.
func (s *Source[T]) filter(search string) bson.M {
	search = strings.TrimSpace(search)
	keys := s.def.SearchableKeys()
	if search == "" || len(keys) == 0 {
		return bson.M{}
	}

	pattern := primitive.Regex{Pattern: regexQuote(search), Options: "i"}
	or := make(bson.A, 0, len(keys))
	for _, key := range keys {
		or = append(or, bson.M{key: pattern})
	}
	return bson.M{"$or": or}
}

// sortDoc maps the sort selection to a Mongo sort document. Unknown or
// unsortable columns are ignored, falling back to the stable _id order.
// _id is always the final tiebreak so pagination order is total.
func (s *Source[T]) sortDoc(sort sorting.State) bson.D {
	if sort.Active() && s.def.CanSortBy(sort.Column) {
		dir := 1
		if sort.Order == params.Desc {
			dir = -1
		}
		return bson.D{{Key: sort.Column, Value: dir}, {Key: idField, Value: 1}}
	}
	return bson.D{{Key: idField, Value: 1}}
}

// cursorPos is a decoded cursor: either a boundary _id or a row offset.
type cursorPos struct {
	id     primitive.ObjectID
	offset int
}

func encodeID(id primitive.ObjectID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(keysetPrefix + id.Hex()))
}

func encodeOffset(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(offsetPrefix + strconv.Itoa(offset)))
}

// decodeCursor parses a cursor previously produced by this package. An
// empty or foreign token decodes to the start of data; a cursor never
// makes a fetch fail.
func decodeCursor(cursor string) cursorPos {
	if cursor == "" {
		return cursorPos{}
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return cursorPos{}
	}
	tok := string(raw)
	switch {
	case strings.HasPrefix(tok, keysetPrefix):
		id, err := primitive.ObjectIDFromHex(strings.TrimPrefix(tok, keysetPrefix))
		if err != nil {
			return cursorPos{}
		}
		return cursorPos{id: id}
	case strings.HasPrefix(tok, offsetPrefix):
		n, err := strconv.Atoi(strings.TrimPrefix(tok, offsetPrefix))
		if err != nil || n < 0 {
			return cursorPos{}
		}
		return cursorPos{offset: n}
	}
	return cursorPos{}
}

// regexQuote escapes regex metacharacters so search text matches
// literally.
func regexQuote(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
