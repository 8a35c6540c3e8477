package inflight

import (
	"errors"
	"sync"
)

var ErrBusy = errors.New("request already in flight")

// Gate serializes calls per key: while a call for a key is running, any
// other call for the same key is rejected with ErrBusy instead of being
// queued. Calls for distinct keys do not block each other.
type Gate interface {
	Call(key string, fn func() error) error
	Busy(key string) bool
}

type gate struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func New() Gate {
	return &gate{
		pending: make(map[string]struct{}),
	}
}

func (g *gate) Call(key string, fn func() error) error {
	g.mu.Lock()
	if _, ok := g.pending[key]; ok {
		g.mu.Unlock()
		return ErrBusy
	}
	g.pending[key] = struct{}{}
	g.mu.Unlock()

	err := fn()

	g.mu.Lock()
	delete(g.pending, key)
	g.mu.Unlock()

	return err
}

func (g *gate) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.pending[key]
	return ok
}
