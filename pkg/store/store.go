package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
	"github.com/agriquote/agriquote-backend/pkg/locks"
)

const (
	CollectionUsers    = "users"
	CollectionTractors = "tractors"
	CollectionRequests = "requests"
)

// ErrNoChange lets an Update callback skip the write.
var ErrNoChange = errors.New("store: no change")

// Document is one serialized entry of a collection.
type Document struct {
	ID       string
	Position int
	Payload  []byte
}

// Backend persists whole collections. Replace must be atomic: readers see either the old or the new set.
type Backend interface {
	Load(ctx context.Context, collection string) ([]Document, error)
	Replace(ctx context.Context, collection string, docs []Document) error
}

// Keyed is implemented by every stored entity.
type Keyed interface {
	Key() string
}

// Collection is a typed view over one backend collection.
type Collection[T Keyed] struct {
	name    string
	backend Backend
	locker  locks.Locker
}

// NewCollection binds a typed collection. A nil locker falls back to an in-process lock.
func NewCollection[T Keyed](backend Backend, locker locks.Locker, name string) (*Collection[T], error) {
	if backend == nil {
		return nil, fmt.Errorf("store backend required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("collection name required")
	}
	if locker == nil {
		locker = locks.NewLocal()
	}
	return &Collection[T]{name: name, backend: backend, locker: locker}, nil
}

func (c *Collection[T]) Name() string { return c.name }

// LockKey is the name under which writers of this collection serialize.
func (c *Collection[T]) LockKey() string { return "collection:" + c.name }

// ReadAll returns every item in stored order.
func (c *Collection[T]) ReadAll(ctx context.Context) ([]T, error) {
	docs, err := c.backend.Load(ctx, c.name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+c.name)
	}
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Position < docs[j].Position })

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc.Payload, &item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("decode %s/%s", c.name, doc.ID))
		}
		items = append(items, item)
	}
	return items, nil
}

// WriteAll replaces the whole collection with items, in order.
func (c *Collection[T]) WriteAll(ctx context.Context, items []T) error {
	docs := make([]Document, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		key := item.Key()
		if key == "" {
			return pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("%s item at %d has no id", c.name, i))
		}
		if _, dup := seen[key]; dup {
			return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("duplicate %s id %q", c.name, key))
		}
		seen[key] = struct{}{}

		payload, err := json.Marshal(item)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("encode %s/%s", c.name, key))
		}
		docs = append(docs, Document{ID: key, Position: i, Payload: payload})
	}
	if err := c.backend.Replace(ctx, c.name, docs); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace "+c.name)
	}
	return nil
}

// Update runs a locked read-modify-write. fn may return ErrNoChange to skip persisting.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	unlock, err := c.locker.Lock(ctx, c.LockKey())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock "+c.name)
	}
	defer unlock()

	items, err := c.ReadAll(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.WriteAll(ctx, next)
}
