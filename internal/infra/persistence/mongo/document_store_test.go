package mongo

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"currypoint/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	mongoDriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestToBSON(t *testing.T) {
	values, err := toBSON([]json.RawMessage{
		json.RawMessage(`{"_id":"x","id":1,"name":"John","isVip":false,"maxDiscount":100}`),
	})
	require.NoError(t, err)
	require.Len(t, values, 1)

	fields := values[0].(map[string]any)
	assert.NotContains(t, fields, "_id")
	assert.InDelta(t, 1.0, fields["id"], 0)
	assert.Equal(t, "John", fields["name"])
	assert.Equal(t, false, fields["isVip"])
}

func TestToBSON_RejectsNonObjects(t *testing.T) {
	tests := []string{`[1,2]`, `null`, `{`}

	for _, doc := range tests {
		t.Run(doc, func(t *testing.T) {
			_, err := toBSON([]json.RawMessage{json.RawMessage(doc)})
			assert.Error(t, err)
		})
	}
}

func TestFromBSON(t *testing.T) {
	docs, err := fromBSON([]bson.M{
		{"_id": "abc", "id": float64(3), "code": "FLAT50", "discountValue": float64(50)},
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"id":3,"code":"FLAT50","discountValue":50}`, string(docs[0]))
}

// TestDocumentStore_Integration runs against MONGO_TEST_URI when it is set.
func TestDocumentStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongoDriver.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("currypoint_test_" + time.Now().Format("20060102150405"))
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	store := NewDocumentStore(db)
	require.NoError(t, store.Ping(ctx))

	docs := []json.RawMessage{
		json.RawMessage(`{"id":1,"name":"John Doe","points":125,"totalSpent":2850.5,"isActive":true,"createdAt":"2025-01-15"}`),
		json.RawMessage(`{"id":2,"name":"Admin User","points":0,"totalSpent":0,"isActive":true,"createdAt":"2025-01-01"}`),
	}
	require.NoError(t, store.ReplaceAll(ctx, repository.CollectionCustomers, docs))

	listed, err := store.List(ctx, repository.CollectionCustomers)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for i := range docs {
		assert.JSONEq(t, string(docs[i]), string(listed[i]))
	}

	require.NoError(t, store.Upsert(ctx, repository.CollectionCustomers, 3, json.RawMessage(`{"name":"New"}`)))
	require.NoError(t, store.Delete(ctx, repository.CollectionCustomers, 1))
	assert.ErrorIs(t, store.Delete(ctx, repository.CollectionCustomers, 1), repository.ErrDocumentNotFound)

	listed, err = store.List(ctx, repository.CollectionCustomers)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.JSONEq(t, `{"id":3,"name":"New"}`, string(listed[1]))
}
