// Package memory is an in-process DocumentStore, used by the docstore server
// in development and as a test double for the remote tier.
package memory

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"currypoint/internal/domain/repository"

	"github.com/pkg/errors"
)

// DocumentStore keeps every collection as an ordered list of raw documents.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[repository.Collection][]json.RawMessage
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[repository.Collection][]json.RawMessage),
	}
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return errors.WithStack(ctx.Err())
}

func (s *DocumentStore) List(ctx context.Context, collection repository.Collection) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]json.RawMessage, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		docs = append(docs, slices.Clone(doc))
	}

	return docs, nil
}

func (s *DocumentStore) ReplaceAll(ctx context.Context, collection repository.Collection, docs []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	stored := make([]json.RawMessage, 0, len(docs))
	for _, doc := range docs {
		if !json.Valid(doc) {
			return errors.Errorf("invalid document in %s", collection)
		}
		stored = append(stored, slices.Clone(doc))
	}

	s.mu.Lock()
	s.collections[collection] = stored
	s.mu.Unlock()

	return nil
}

func (s *DocumentStore) Upsert(ctx context.Context, collection repository.Collection, id int, doc json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	doc, err := repository.WithDocumentID(doc, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	if i := s.indexOf(docs, id); i >= 0 {
		docs[i] = doc

		return nil
	}
	s.collections[collection] = append(docs, doc)

	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection repository.Collection, id int) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	i := s.indexOf(docs, id)
	if i < 0 {
		return errors.Wrapf(repository.ErrDocumentNotFound, "%s/%d", collection, id)
	}
	s.collections[collection] = slices.Delete(docs, i, i+1)

	return nil
}

func (s *DocumentStore) indexOf(docs []json.RawMessage, id int) int {
	return slices.IndexFunc(docs, func(doc json.RawMessage) bool {
		docID, err := repository.DocumentID(doc)

		return err == nil && docID == id
	})
}
