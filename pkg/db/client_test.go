package db

import (
	"context"
	"errors"
	"testing"

	"github.com/agriquote/agriquote-backend/pkg/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&testModel{}))
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	client := Wrap(db, config.DBDriverSQLite)

	ctx := context.Background()
	require.NoError(t, client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}))

	var count int64
	require.NoError(t, db.Model(&testModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	require.NoError(t, db.Model(&testModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count, "rollback should leave the first row only")
}

func TestNewSQLiteFile(t *testing.T) {
	path := t.TempDir() + "/agriquote.db"
	client, err := New(context.Background(), config.DBConfig{Driver: "sqlite", SQLitePath: path}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.Equal(t, config.DBDriverSQLite, client.Driver())
	require.NoError(t, client.Ping(context.Background()))
}

func TestNewPostgresRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{Driver: "postgres"}, nil)
	require.Error(t, err)
}
