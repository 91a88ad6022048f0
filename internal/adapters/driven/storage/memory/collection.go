package memory

import (
	"reflect"
	"sync"

	"github.com/custodia-labs/portal-search/internal/core/domain"
	"github.com/custodia-labs/portal-search/internal/core/ports/driven"
)

// Ensure Collection implements the interface.
var _ driven.NewsSource = (*Collection[domain.News])(nil)

// Collection is an in-memory content source. Every mutation replaces the
// snapshot and notifies the registered listeners.
type Collection[T any] struct {
	mu        sync.RWMutex
	key       func(T) string
	items     []T
	listeners map[int]func()
	nextID    int
}

// NewCollection creates a collection keyed by key and seeded with items.
// A nil key function makes Upsert append and Remove a no-op.
func NewCollection[T any](key func(T) string, items ...T) *Collection[T] {
	return &Collection[T]{
		key:       key,
		items:     append([]T(nil), items...),
		listeners: make(map[int]func()),
	}
}

// Snapshot returns a copy of the current items.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// OnChange registers fn to run after every mutation.
func (c *Collection[T]) OnChange(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Replace swaps the whole snapshot.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.mu.Unlock()
	c.notify()
}

// ReplaceIfChanged swaps the snapshot only when items differ from it and
// reports whether it did. Listeners are not notified for identical data.
func (c *Collection[T]) ReplaceIfChanged(items []T) bool {
	c.mu.Lock()
	if len(items) == len(c.items) && (len(items) == 0 || reflect.DeepEqual(items, c.items)) {
		c.mu.Unlock()
		return false
	}
	c.items = append([]T(nil), items...)
	c.mu.Unlock()
	c.notify()
	return true
}

// Upsert inserts item or replaces the item with the same key.
func (c *Collection[T]) Upsert(item T) {
	c.mu.Lock()
	replaced := false
	if c.key != nil {
		k := c.key(item)
		for i := range c.items {
			if c.key(c.items[i]) == k {
				c.items[i] = item
				replaced = true
				break
			}
		}
	}
	if !replaced {
		c.items = append(c.items, item)
	}
	c.mu.Unlock()
	c.notify()
}

// Remove deletes the item with the given key.
// Returns domain.ErrNotFound if no item matches.
func (c *Collection[T]) Remove(id string) error {
	c.mu.Lock()
	idx := -1
	if c.key != nil {
		for i := range c.items {
			if c.key(c.items[i]) == id {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return domain.ErrNotFound
	}
	c.items = append(c.items[:idx:idx], c.items[idx+1:]...)
	c.mu.Unlock()
	c.notify()
	return nil
}

// notify runs the listeners outside the lock so they may read the
// collection again.
func (c *Collection[T]) notify() {
	c.mu.RLock()
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
