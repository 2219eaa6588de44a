package hybrid

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"

	"currypoint/internal/domain/entity"
	"currypoint/internal/domain/repository"

	"github.com/pkg/errors"
)

// errRemoteEmpty marks a remote that has never been written: it holds no settings.
var errRemoteEmpty = errors.New("remote settings collection is empty")

// Repository maps one ledger collection onto a document store collection.
// V is the collection's Go value: a slice of entities, or Settings.
type Repository[V any] struct {
	collection repository.Collection
	get        func(*entity.Ledger) V
	set        func(*entity.Ledger, V)
	size       func(V) int
	encode     func(V) ([]json.RawMessage, error)
	decode     func([]json.RawMessage) (V, error)
	// ids lists the document ids of V in order. Nil for single-document collections.
	ids func(V) []int
}

// collectionOps is the type-erased view used for whole-ledger operations.
type collectionOps interface {
	Collection() repository.Collection
	encodeFrom(ledger *entity.Ledger) ([]json.RawMessage, error)
	fetchInto(ctx context.Context, store repository.DocumentStore, ledger *entity.Ledger) error
	count(ledger *entity.Ledger) int
	diff(prev, next *entity.Ledger) (delta, bool, error)
}

// delta is the per-document change between two versions of a collection.
type delta struct {
	upserts []keyedDoc
	deletes []int
}

type keyedDoc struct {
	id  int
	doc json.RawMessage
}

func (d delta) empty() bool {
	return len(d.upserts) == 0 && len(d.deletes) == 0
}

func newListRepository[T entity.Identified](
	collection repository.Collection,
	get func(*entity.Ledger) []T,
	set func(*entity.Ledger, []T),
) *Repository[[]T] {
	return &Repository[[]T]{
		collection: collection,
		get:        func(l *entity.Ledger) []T { return slices.Clone(get(l)) },
		set:        func(l *entity.Ledger, v []T) { set(l, slices.Clone(v)) },
		size:       func(v []T) int { return len(v) },
		encode:     encodeList[T],
		decode:     decodeList[T],
		ids:        idsOf[T],
	}
}

func idsOf[T entity.Identified](items []T) []int {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.Identity()
	}

	return ids
}

func newSettingsRepository() *Repository[entity.Settings] {
	return &Repository[entity.Settings]{
		collection: repository.CollectionSettings,
		get:        func(l *entity.Ledger) entity.Settings { return l.Settings },
		set:        func(l *entity.Ledger, v entity.Settings) { l.Settings = v },
		size:       func(entity.Settings) int { return 1 },
		encode: func(v entity.Settings) ([]json.RawMessage, error) {
			doc, err := json.Marshal(v)
			if err != nil {
				return nil, errors.Wrap(err, "encode settings")
			}

			return []json.RawMessage{doc}, nil
		},
		decode: func(docs []json.RawMessage) (entity.Settings, error) {
			var settings entity.Settings
			if len(docs) == 0 {
				return settings, errRemoteEmpty
			}
			if err := json.Unmarshal(docs[0], &settings); err != nil {
				return settings, errors.Wrap(err, "decode settings")
			}

			return settings, nil
		},
	}
}

func encodeList[T any](items []T) ([]json.RawMessage, error) {
	docs := make([]json.RawMessage, 0, len(items))
	for i := range items {
		doc, err := json.Marshal(items[i])
		if err != nil {
			return nil, errors.Wrapf(err, "encode element %d", i)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func decodeList[T any](docs []json.RawMessage) ([]T, error) {
	items := make([]T, 0, len(docs))
	for i, doc := range docs {
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, errors.Wrapf(err, "decode element %d", i)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *Repository[V]) Collection() repository.Collection {
	return r.collection
}

// Fetch reads the collection from store.
func (r *Repository[V]) Fetch(ctx context.Context, store repository.DocumentStore) (V, error) {
	docs, err := store.List(ctx, r.collection)
	if err != nil {
		var zero V

		return zero, errors.Wrapf(err, "list %s", r.collection)
	}

	value, err := r.decode(docs)
	if err != nil {
		return value, errors.Wrapf(err, "decode %s", r.collection)
	}

	return value, nil
}

// Read serves the collection according to the gateway's read policy. It
// never fails: remote errors are reported and the cached value is returned.
func (r *Repository[V]) Read(ctx context.Context, g *Gateway) V {
	if g.remoteReadable(r.collection) {
		fetchCtx, cancel := context.WithTimeout(ctx, g.requestTimeout)
		value, err := r.Fetch(fetchCtx, g.remote)
		cancel()
		if err == nil {
			return value
		}
		g.report("read", r.collection, err)
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	return r.get(g.ledger)
}

func (r *Repository[V]) encodeFrom(ledger *entity.Ledger) ([]json.RawMessage, error) {
	return r.encode(r.get(ledger))
}

func (r *Repository[V]) fetchInto(ctx context.Context, store repository.DocumentStore, ledger *entity.Ledger) error {
	value, err := r.Fetch(ctx, store)
	if err != nil {
		return err
	}
	r.set(ledger, value)

	return nil
}

func (r *Repository[V]) count(ledger *entity.Ledger) int {
	return r.size(r.get(ledger))
}

// diff reports the delta that turns prev into next. ok is false when the
// change cannot be expressed per document: the collection has no ids, or
// surviving documents moved, or a new document was not appended after every
// existing one.
func (r *Repository[V]) diff(prev, next *entity.Ledger) (delta, bool, error) {
	if r.ids == nil {
		return delta{}, false, nil
	}

	before, after := r.get(prev), r.get(next)
	beforeDocs, err := r.encode(before)
	if err != nil {
		return delta{}, false, err
	}
	afterDocs, err := r.encode(after)
	if err != nil {
		return delta{}, false, err
	}
	beforeIDs, afterIDs := r.ids(before), r.ids(after)

	previous := make(map[int]json.RawMessage, len(beforeIDs))
	maxID := 0
	for i, id := range beforeIDs {
		previous[id] = beforeDocs[i]
		maxID = max(maxID, id)
	}

	var (
		d        delta
		kept     []int
		appended bool
	)
	for i, id := range afterIDs {
		doc, existed := previous[id]
		switch {
		case existed && appended:
			return delta{}, false, nil
		case existed:
			kept = append(kept, id)
		case id <= maxID:
			return delta{}, false, nil
		default:
			appended = true
			maxID = id
		}
		if !existed || !bytes.Equal(doc, afterDocs[i]) {
			d.upserts = append(d.upserts, keyedDoc{id: id, doc: afterDocs[i]})
		}
	}

	survivors := slices.DeleteFunc(slices.Clone(beforeIDs), func(id int) bool {
		if slices.Contains(afterIDs, id) {
			return false
		}
		d.deletes = append(d.deletes, id)

		return true
	})
	if !slices.Equal(survivors, kept) {
		return delta{}, false, nil
	}

	return d, true, nil
}
