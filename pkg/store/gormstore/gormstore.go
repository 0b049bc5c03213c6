package gormstore

import (
	"context"
	"fmt"

	"github.com/agriquote/agriquote-backend/pkg/db/models"
	"github.com/agriquote/agriquote-backend/pkg/store"
	"gorm.io/gorm"
)

const insertBatchSize = 200

type txRunner interface {
	DB() *gorm.DB
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Backend stores every collection in the records table.
type Backend struct {
	db txRunner
}

func New(db txRunner) (*Backend, error) {
	if db == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &Backend{db: db}, nil
}

// AutoMigrate creates the records table; Postgres deployments use the goose migrations instead.
func (b *Backend) AutoMigrate(ctx context.Context) error {
	return b.db.DB().WithContext(ctx).AutoMigrate(&models.Record{})
}

func (b *Backend) Load(ctx context.Context, collection string) ([]store.Document, error) {
	var rows []models.Record
	err := b.db.DB().WithContext(ctx).
		Where("collection = ?", collection).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}
	docs := make([]store.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, store.Document{ID: row.ID, Position: row.Position, Payload: []byte(row.Payload)})
	}
	return docs, nil
}

func (b *Backend) Replace(ctx context.Context, collection string, docs []store.Document) error {
	rows := make([]models.Record, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, models.Record{
			Collection: collection,
			ID:         d.ID,
			Position:   d.Position,
			Payload:    string(d.Payload),
		})
	}
	return b.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("collection = ?", collection).Delete(&models.Record{}).Error; err != nil {
			return fmt.Errorf("clear %s: %w", collection, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert %s: %w", collection, err)
		}
		return nil
	})
}
