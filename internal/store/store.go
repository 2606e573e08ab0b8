// Package store implements the in-memory entity stores. Each store is the
// sole owner of one collection; every mutation is atomic from the caller's
// perspective and observable by subscribers immediately after it applies.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Op describes a mutation applied to a collection.
type Op string

const (
	OpAdd     Op = "add"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpReplace Op = "replace"
)

// Collection is a mutex-guarded in-memory collection of entities, ordered
// most-recent-first. The id and stamp callbacks adapt it to a concrete
// entity type; stamp may be nil for entities without a modification
// timestamp.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T

	id    func(T) string
	setID func(*T, string)
	stamp func(*T, time.Time)

	subMu sync.Mutex
	subs  []func(Op)
}

// NewCollection constructs an empty collection for one entity type.
func NewCollection[T any](id func(T) string, setID func(*T, string), stamp func(*T, time.Time)) *Collection[T] {
	return &Collection[T]{id: id, setID: setID, stamp: stamp}
}

// Subscribe registers fn to be called synchronously after every mutation.
func (c *Collection[T]) Subscribe(fn func(Op)) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.subs = append(c.subs, fn)
}

// notify runs outside the data lock so subscribers may read the store.
func (c *Collection[T]) notify(op Op) {
	c.subMu.Lock()
	subs := make([]func(Op), len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()
	for _, fn := range subs {
		fn(op)
	}
}

// Add assigns a unique id, stamps the modification time, inserts the entity
// at the head of the collection, and returns it as stored.
func (c *Collection[T]) Add(item T) T {
	c.mu.Lock()
	c.setID(&item, uuid.NewString())
	if c.stamp != nil {
		c.stamp(&item, time.Now())
	}
	c.items = append([]T{item}, c.items...)
	c.mu.Unlock()

	c.notify(OpAdd)
	return item
}

// Update replaces the fields of the entity with the given id, preserving the
// id and re-stamping the modification time. It is a no-op when the id is not
// present and reports whether an entity was updated.
func (c *Collection[T]) Update(id string, item T) bool {
	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.id(c.items[i]) != id {
			continue
		}
		c.setID(&item, id)
		if c.stamp != nil {
			c.stamp(&item, time.Now())
		}
		c.items[i] = item
		found = true
		break
	}
	c.mu.Unlock()

	if found {
		c.notify(OpUpdate)
	}
	return found
}

// Mutate applies fn to the entity with the given id under the lock and
// re-stamps it. Used for partial updates such as toggling a flag.
func (c *Collection[T]) Mutate(id string, fn func(*T)) bool {
	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.id(c.items[i]) != id {
			continue
		}
		fn(&c.items[i])
		if c.stamp != nil {
			c.stamp(&c.items[i], time.Now())
		}
		found = true
		break
	}
	c.mu.Unlock()

	if found {
		c.notify(OpUpdate)
	}
	return found
}

// Delete removes the entity with the given id. Deleting an absent id is not
// an error; the return value reports whether anything was removed.
func (c *Collection[T]) Delete(id string) bool {
	return c.deleteWhere(func(item T) bool { return c.id(item) == id })
}

// DeleteMany removes every entity whose id appears in ids. Absent ids are
// skipped silently.
func (c *Collection[T]) DeleteMany(ids []string) {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	c.deleteWhere(func(item T) bool { return set[c.id(item)] })
}

// DeleteWhere removes every entity matching pred and reports whether any
// were removed.
func (c *Collection[T]) DeleteWhere(pred func(T) bool) bool {
	return c.deleteWhere(pred)
}

func (c *Collection[T]) deleteWhere(pred func(T) bool) bool {
	c.mu.Lock()
	kept := c.items[:0]
	removed := false
	for _, item := range c.items {
		if pred(item) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	c.mu.Unlock()

	if removed {
		c.notify(OpDelete)
	}
	return removed
}

// Find returns the entity with the given id. The boolean reports presence;
// a miss is not an error.
func (c *Collection[T]) Find(id string) (T, bool) {
	return c.FindBy(func(item T) bool { return c.id(item) == id })
}

// FindBy returns the first entity matching pred.
func (c *Collection[T]) FindBy(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// All returns a copy of the collection in order, most recent first.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// ReplaceAll swaps the whole collection. Callers validate the replacement
// before handing it over; the store itself applies it wholesale.
func (c *Collection[T]) ReplaceAll(items []T) {
	c.mu.Lock()
	c.items = make([]T, len(items))
	copy(c.items, items)
	c.mu.Unlock()

	c.notify(OpReplace)
}

// Len returns the number of stored entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
