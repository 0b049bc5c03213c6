package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/store"
	"github.com/agriquote/agriquote-backend/pkg/store/memory"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func (i item) Key() string { return i.ID }

func newItems(t *testing.T) *store.Collection[item] {
	t.Helper()
	c, err := store.NewCollection[item](memory.New(), nil, "items")
	require.NoError(t, err)
	return c
}

func TestReadAllEmpty(t *testing.T) {
	c := newItems(t)
	items, err := c.ReadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestWriteAllPreservesOrder(t *testing.T) {
	c := newItems(t)
	ctx := context.Background()
	require.NoError(t, c.WriteAll(ctx, []item{{ID: "b"}, {ID: "a"}, {ID: "c"}}))

	items, err := c.ReadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a", "c"}, keys(items))
}

func TestWriteAllRejectsDuplicatesAndBlankIDs(t *testing.T) {
	c := newItems(t)
	ctx := context.Background()

	err := c.WriteAll(ctx, []item{{ID: "a"}, {ID: "a"}})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))

	err = c.WriteAll(ctx, []item{{ID: ""}})
	require.Error(t, err)

	items, err := c.ReadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, items, "failed writes must leave the collection untouched")
}

func TestUpdateSkipsWriteOnNoChange(t *testing.T) {
	backend := &countingBackend{Backend: memory.New()}
	c, err := store.NewCollection[item](backend, nil, "items")
	require.NoError(t, err)

	err = c.Update(context.Background(), func(items []item) ([]item, error) {
		return nil, store.ErrNoChange
	})
	require.NoError(t, err)
	require.Zero(t, backend.replaces)
}

func TestUpdateNoLostWritesUnderConcurrency(t *testing.T) {
	c := newItems(t)
	ctx := context.Background()
	require.NoError(t, c.WriteAll(ctx, []item{{ID: "counter"}}))

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.Update(ctx, func(items []item) ([]item, error) {
				items[0].Count++
				return items, nil
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	items, err := c.ReadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 25, items[0].Count)
}

func TestBackendFailuresBecomeDependencyErrors(t *testing.T) {
	c, err := store.NewCollection[item](failingBackend{}, nil, "items")
	require.NoError(t, err)

	_, err = c.ReadAll(context.Background())
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))

	err = c.WriteAll(context.Background(), []item{{ID: "a"}})
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeDependency))
}

func TestCorruptPayloadIsInternal(t *testing.T) {
	backend := memory.New()
	require.NoError(t, backend.Replace(context.Background(), "items", []store.Document{{ID: "x", Payload: []byte("{")}}))
	c, err := store.NewCollection[item](backend, nil, "items")
	require.NoError(t, err)

	_, err = c.ReadAll(context.Background())
	require.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInternal))
}

func TestMemoryBackendCopiesPayloads(t *testing.T) {
	backend := memory.New()
	payload := []byte(`{"id":"a"}`)
	require.NoError(t, backend.Replace(context.Background(), "items", []store.Document{{ID: "a", Payload: payload}}))
	payload[2] = 'X'

	docs, err := backend.Load(context.Background(), "items")
	require.NoError(t, err)
	require.Equal(t, `{"id":"a"}`, string(docs[0].Payload))
}

func keys(items []item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.ID)
	}
	return out
}

type countingBackend struct {
	store.Backend
	replaces int
}

func (c *countingBackend) Replace(ctx context.Context, collection string, docs []store.Document) error {
	c.replaces++
	return c.Backend.Replace(ctx, collection, docs)
}

type failingBackend struct{}

func (failingBackend) Load(context.Context, string) ([]store.Document, error) {
	return nil, errors.New("disk unavailable")
}

func (failingBackend) Replace(context.Context, string, []store.Document) error {
	return errors.New("disk unavailable")
}
