package mongo

import (
	"context"
	"encoding/json"

	"currypoint/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	mongoDriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// documentStore implements repository.DocumentStore on a Mongo database.
// Insertion order is kept by sorting on the generated _id, which is never
// returned to clients.
type documentStore struct {
	db *mongoDriver.Database
}

// NewDocumentStore is the constructor for the mongo document store.
func NewDocumentStore(db *mongoDriver.Database) repository.DocumentStore {
	return &documentStore{db: db}
}

func ping(ctx context.Context, client *mongoDriver.Client) error {
	return errors.Wrap(client.Ping(ctx, readpref.Primary()), "failed to ping MongoDB")
}

func (s *documentStore) Ping(ctx context.Context) error {
	return ping(ctx, s.db.Client())
}

func (s *documentStore) List(ctx context.Context, collection repository.Collection) ([]json.RawMessage, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.db.Collection(collection.String()).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "find %s", collection)
	}

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return nil, errors.Wrapf(err, "decode %s", collection)
	}

	return fromBSON(results)
}

// ReplaceAll deletes then inserts; the two steps are not atomic.
func (s *documentStore) ReplaceAll(ctx context.Context, collection repository.Collection, docs []json.RawMessage) error {
	values, err := toBSON(docs)
	if err != nil {
		return errors.Wrapf(err, "convert %s", collection)
	}

	coll := s.db.Collection(collection.String())
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return errors.Wrapf(err, "clear %s", collection)
	}
	if len(values) == 0 {
		return nil
	}

	if _, err := coll.InsertMany(ctx, values); err != nil {
		return errors.Wrapf(err, "insert %s", collection)
	}

	return nil
}

func (s *documentStore) Upsert(ctx context.Context, collection repository.Collection, id int, doc json.RawMessage) error {
	doc, err := repository.WithDocumentID(doc, id)
	if err != nil {
		return err
	}

	values, err := toBSON([]json.RawMessage{doc})
	if err != nil {
		return errors.Wrapf(err, "convert %s/%d", collection, id)
	}

	_, err = s.db.Collection(collection.String()).ReplaceOne(ctx,
		bson.M{"id": id},
		values[0],
		options.Replace().SetUpsert(true),
	)

	return errors.Wrapf(err, "upsert %s/%d", collection, id)
}

func (s *documentStore) Delete(ctx context.Context, collection repository.Collection, id int) error {
	result, err := s.db.Collection(collection.String()).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return errors.Wrapf(err, "delete %s/%d", collection, id)
	}
	if result.DeletedCount == 0 {
		return errors.Wrapf(repository.ErrDocumentNotFound, "%s/%d", collection, id)
	}

	return nil
}

// toBSON decodes JSON documents into maps the driver can marshal. Any "_id"
// sent by a client is dropped.
func toBSON(docs []json.RawMessage) ([]any, error) {
	values := make([]any, 0, len(docs))
	for i, doc := range docs {
		var fields map[string]any
		if err := json.Unmarshal(doc, &fields); err != nil {
			return nil, errors.Wrapf(err, "document %d", i)
		}
		if fields == nil {
			return nil, errors.Errorf("document %d is not an object", i)
		}
		delete(fields, "_id")
		values = append(values, fields)
	}

	return values, nil
}

func fromBSON(results []bson.M) ([]json.RawMessage, error) {
	docs := make([]json.RawMessage, 0, len(results))
	for _, result := range results {
		delete(result, "_id")

		doc, err := json.Marshal(result)
		if err != nil {
			return nil, errors.Wrap(err, "encode document")
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
