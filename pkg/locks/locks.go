package locks

import (
	"context"
	"sync"
)

// Unlock releases a held lock. It is safe to call once.
type Unlock func()

// Locker serializes writers by key.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// Local is an in-process Locker; waiting honours ctx cancellation.
type Local struct {
	mu   sync.Mutex
	keys map[string]chan struct{}
}

func NewLocal() *Local {
	return &Local{keys: map[string]chan struct{}{}}
}

func (l *Local) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.keys[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.keys[key] = ch
	}
	return ch
}

func (l *Local) Lock(ctx context.Context, key string) (Unlock, error) {
	ch := l.slot(key)
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
