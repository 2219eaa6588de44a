package postgres

import (
	"context"
	"encoding/json"

	"currypoint/internal/domain/repository"
	"currypoint/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// documentStore implements repository.DocumentStore on a single jsonb table.
type documentStore struct {
	db *gorm.DB
}

// NewDocumentStore is the constructor for the postgres document store.
func NewDocumentStore(db *gorm.DB) repository.DocumentStore {
	return &documentStore{db: db}
}

func (s *documentStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return errors.Wrap(sqlDB.PingContext(ctx), "failed to ping PostgreSQL")
}

func (s *documentStore) List(ctx context.Context, collection repository.Collection) ([]json.RawMessage, error) {
	var rows []model.DocumentModel
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection.String()).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", collection)
	}

	docs := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, json.RawMessage(row.Body))
	}

	return docs, nil
}

func (s *documentStore) ReplaceAll(ctx context.Context, collection repository.Collection, docs []json.RawMessage) error {
	rows, err := toDocumentModels(collection, docs)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection = ?", collection.String()).Delete(&model.DocumentModel{}).Error; err != nil {
			return errors.Wrap(err, "delete documents")
		}
		if len(rows) == 0 {
			return nil
		}

		return errors.Wrap(tx.Create(&rows).Error, "insert documents")
	})

	return errors.Wrapf(err, "replace %s", collection)
}

// upsertAttempts bounds retries when a concurrent insert took the next position.
const upsertAttempts = 2

func (s *documentStore) Upsert(ctx context.Context, collection repository.Collection, id int, doc json.RawMessage) error {
	doc, err := repository.WithDocumentID(doc, id)
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		err = s.upsertOnce(ctx, collection, int64(id), doc)
		if err == nil || !isUniqueConstraintViolation(err) || attempt == upsertAttempts {
			return errors.Wrapf(err, "upsert %s/%d", collection, id)
		}
	}
}

func (s *documentStore) upsertOnce(ctx context.Context, collection repository.Collection, docID int64, doc json.RawMessage) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.DocumentModel
		err := tx.Where("collection = ? AND doc_id = ?", collection.String(), docID).First(&existing).Error
		if err == nil {
			return errors.Wrap(tx.Model(&existing).Update("body", string(doc)).Error, "update document")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "find document")
		}

		var next int
		err = tx.Model(&model.DocumentModel{}).
			Where("collection = ?", collection.String()).
			Select("COALESCE(MAX(position) + 1, 0)").
			Scan(&next).Error
		if err != nil {
			return errors.Wrap(err, "next position")
		}

		row := model.DocumentModel{
			ID:         uuid.New(),
			Collection: collection.String(),
			Position:   next,
			DocID:      &docID,
			Body:       string(doc),
		}

		return errors.Wrap(tx.Create(&row).Error, "insert document")
	})
}

func (s *documentStore) Delete(ctx context.Context, collection repository.Collection, id int) error {
	result := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection.String(), int64(id)).
		Delete(&model.DocumentModel{})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "delete %s/%d", collection, id)
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(repository.ErrDocumentNotFound, "%s/%d", collection, id)
	}

	return nil
}

// toDocumentModels assigns positions in slice order.
func toDocumentModels(collection repository.Collection, docs []json.RawMessage) ([]model.DocumentModel, error) {
	rows := make([]model.DocumentModel, 0, len(docs))
	for i, doc := range docs {
		if !json.Valid(doc) {
			return nil, errors.Errorf("invalid document %d in %s", i, collection)
		}

		row := model.DocumentModel{
			ID:         uuid.New(),
			Collection: collection.String(),
			Position:   i,
			Body:       string(doc),
		}
		if id, err := repository.DocumentID(doc); err == nil {
			docID := int64(id)
			row.DocID = &docID
		}
		rows = append(rows, row)
	}

	return rows, nil
}
