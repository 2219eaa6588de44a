package repository

import (
	"context"
	"encoding/json"

	"currypoint/internal/errors"
)

// ErrDocumentNotFound is returned when no document carries the requested id.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore is a collection-addressed JSON document store. Documents are
// identified by their numeric "id" field. The remote tier client and the
// document store server backends all implement it.
type DocumentStore interface {
	// Ping is a lightweight liveness probe.
	Ping(ctx context.Context) error

	// List returns every document of the collection in stored order.
	List(ctx context.Context, collection Collection) ([]json.RawMessage, error)

	// ReplaceAll drops the collection and stores docs in its place.
	ReplaceAll(ctx context.Context, collection Collection, docs []json.RawMessage) error

	// Upsert replaces the document with the given id, inserting it when absent.
	Upsert(ctx context.Context, collection Collection, id int, doc json.RawMessage) error

	// Delete removes the document with the given id.
	Delete(ctx context.Context, collection Collection, id int) error
}

// DocumentID extracts the numeric "id" field of a document.
func DocumentID(doc json.RawMessage) (int, error) {
	var probe struct {
		ID *float64 `json:"id"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return 0, errors.Wrap(err, "decode document id")
	}
	if probe.ID == nil {
		return 0, errors.New("document has no id")
	}

	return int(*probe.ID), nil
}

// WithDocumentID returns doc with its "id" field forced to id.
func WithDocumentID(doc json.RawMessage, id int) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, errors.Wrap(err, "decode document")
	}
	if fields == nil {
		return nil, errors.New("document must be a JSON object")
	}

	idRaw, err := json.Marshal(id)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	fields["id"] = idRaw

	out, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return out, nil
}
