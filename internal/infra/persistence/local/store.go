// Package local keeps the whole ledger as one JSON snapshot in a blob bucket.
package local

import (
	"context"
	"encoding/json"
	"log/slog"

	"currypoint/config"
	"currypoint/internal/domain/entity"
	domainerrors "currypoint/internal/domain/errors"
	"currypoint/internal/domain/repository"
	"currypoint/internal/domain/service"
	"currypoint/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

const snapshotContentType = "application/json"

// Store is the blob-backed LocalStore.
type Store struct {
	bucket *blob.Bucket
	key    string
	hasher service.PasswordHasher
	logger *slog.Logger
}

// StoreParams holds dependencies for the local store, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Hasher service.PasswordHasher
	Logger *slog.Logger
}

// NewStore opens the configured bucket and closes it on shutdown.
func NewStore(params StoreParams) (repository.LocalStore, error) {
	cfg := params.Config.Storage.Local

	store, err := Open(context.Background(), cfg.BucketURL, cfg.Key, params.Hasher, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing local snapshot bucket")

			return store.Close()
		},
	})

	return store, nil
}

// Open opens bucketURL and stores the snapshot under key.
func Open(ctx context.Context, bucketURL, key string, hasher service.PasswordHasher, logger *slog.Logger) (*Store, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}

	return &Store{
		bucket: bucket,
		key:    key,
		hasher: hasher,
		logger: logger,
	}, nil
}

// Close releases the bucket.
func (s *Store) Close() error {
	return errors.Wrap(s.bucket.Close(), "close bucket")
}

// Load returns the stored ledger, seeding it when the key does not exist yet.
func (s *Store) Load(ctx context.Context) (*entity.Ledger, error) {
	data, err := s.bucket.ReadAll(ctx, s.key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		s.logger.Info("No local snapshot found, seeding defaults", slog.String("key", s.key))

		return s.Reset(ctx)
	}
	if err != nil {
		return nil, domainerrors.NewStorageError(errors.Wrap(err, "read snapshot"), s.key)
	}

	var ledger entity.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, domainerrors.NewStorageError(errors.Wrap(err, "decode snapshot"), s.key)
	}
	ledger.Normalize()

	return &ledger, nil
}

// Save overwrites the snapshot with ledger.
func (s *Store) Save(ctx context.Context, ledger *entity.Ledger) error {
	snapshot := ledger.Clone()
	snapshot.Normalize()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "encode snapshot")
	}

	return s.write(ctx, data)
}

// Export returns the snapshot bytes as stored, seeding first if necessary.
func (s *Store) Export(ctx context.Context) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, s.key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		if _, err := s.Reset(ctx); err != nil {
			return nil, err
		}
		data, err = s.bucket.ReadAll(ctx, s.key)
	}
	if err != nil {
		return nil, domainerrors.NewStorageError(errors.Wrap(err, "read snapshot"), s.key)
	}

	return data, nil
}

// Import checks that data carries all five collections and stores it unchanged.
func (s *Store) Import(ctx context.Context, data []byte) (*entity.Ledger, error) {
	ledger, err := DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}

	if err := s.write(ctx, data); err != nil {
		return nil, err
	}
	s.logger.Info("Snapshot imported",
		slog.String("key", s.key),
		slog.String("size", util.FormatBytes(int64(len(data)))),
	)

	return ledger, nil
}

// Reset stores a freshly hashed seed.
func (s *Store) Reset(ctx context.Context) (*entity.Ledger, error) {
	ledger, err := SeedLedger(s.hasher)
	if err != nil {
		return nil, domainerrors.NewStorageError(err, "seed")
	}

	if err := s.Save(ctx, ledger); err != nil {
		return nil, err
	}

	return ledger, nil
}

func (s *Store) write(ctx context.Context, data []byte) error {
	err := s.bucket.WriteAll(ctx, s.key, data, &blob.WriterOptions{ContentType: snapshotContentType})
	if err != nil {
		return domainerrors.NewStorageError(errors.Wrap(err, "write snapshot"), s.key)
	}

	return nil
}

// DecodeSnapshot parses an exported snapshot. Every collection key must be
// present and non-null.
func DecodeSnapshot(data []byte) (*entity.Ledger, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, domainerrors.ErrInvalidSnapshot.WithDetails(err.Error())
	}

	for _, collection := range repository.Collections() {
		raw, ok := keys[collection.String()]
		if !ok || string(raw) == "null" {
			return nil, domainerrors.ErrInvalidSnapshot.WithDetailsf("missing %s", collection)
		}
	}

	var ledger entity.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, domainerrors.ErrInvalidSnapshot.WithDetails(err.Error())
	}
	ledger.Normalize()

	return &ledger, nil
}
