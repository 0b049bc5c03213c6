package memory

import (
	"context"
	"sync"

	"github.com/agriquote/agriquote-backend/pkg/store"
)

// Backend keeps collections in process memory.
type Backend struct {
	mu          sync.RWMutex
	collections map[string][]store.Document
}

func New() *Backend {
	return &Backend{collections: map[string][]store.Document{}}
}

func (b *Backend) Load(ctx context.Context, collection string) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyDocs(b.collections[collection]), nil
}

func (b *Backend) Replace(ctx context.Context, collection string, docs []store.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.collections[collection] = copyDocs(docs)
	return nil
}

func copyDocs(docs []store.Document) []store.Document {
	out := make([]store.Document, len(docs))
	for i, d := range docs {
		out[i] = store.Document{
			ID:       d.ID,
			Position: d.Position,
			Payload:  append([]byte(nil), d.Payload...),
		}
	}
	return out
}
