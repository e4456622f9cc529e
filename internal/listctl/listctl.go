// Package listctl implements the shared list state machine for candidates
// and vacancies: load a collection, filter it with a combined text and
// status-tab predicate, and reconcile state after writes.
package listctl

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store is the backend slice a controller drives. ID identifies an entity
// for update and delete.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) error
	Update(ctx context.Context, id int64, item T) error
	Delete(ctx context.Context, id int64) error
}

// StatusStore is implemented by stores whose entities support a dedicated
// status-assignment operation.
type StatusStore interface {
	SetStatus(ctx context.Context, id int64, status string) error
}

// Hooks carries the per-entity policies the generic controller cannot know.
type Hooks[T any] struct {
	// TextMatch reports whether the item matches a case-insensitive query.
	// An empty query always passes.
	TextMatch func(item T, query string) bool
	// TabMatch reports whether the item belongs to a status tab. Tab 0
	// always means "all" and is handled by the controller.
	TabMatch func(item T, tab int) bool
	// Copy builds a creation payload for duplicating an item, with identity
	// and creation timestamp stripped and a copy marker on the title.
	Copy func(item T) T
}

type Controller[T any] struct {
	store  Store[T]
	hooks  Hooks[T]
	logger *zap.Logger

	mu    sync.Mutex
	items []T
}

func New[T any](store Store[T], hooks Hooks[T], logger *zap.Logger) *Controller[T] {
	return &Controller[T]{store: store, hooks: hooks, logger: logger}
}

// Load fetches the full collection. On failure the previously cached items
// are left untouched.
func (c *Controller[T]) Load(ctx context.Context) ([]T, error) {
	items, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading collection: %w", err)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	c.logger.Debug("collection loaded", zap.Int("count", len(items)))

	return items, nil
}

// Items returns the cached collection.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.items))
	copy(out, c.items)

	return out
}

// Filter applies the status-tab predicate AND the text predicate over the
// cached collection. Both predicates default to pass when their criterion
// is absent: tab 0 means all, an empty query matches everything.
func (c *Controller[T]) Filter(query string, tab int) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if tab != 0 && c.hooks.TabMatch != nil && !c.hooks.TabMatch(item, tab) {
			continue
		}
		if query != "" && c.hooks.TextMatch != nil && !c.hooks.TextMatch(item, query) {
			continue
		}
		result = append(result, item)
	}

	return result
}

// Create posts the item and re-loads the full collection on success. The
// unconditional refresh trades latency for consistency with the backend;
// optimistic local patching is deliberately not attempted.
func (c *Controller[T]) Create(ctx context.Context, item T) error {
	if err := c.store.Create(ctx, item); err != nil {
		return fmt.Errorf("creating entity: %w", err)
	}

	_, err := c.Load(ctx)
	return err
}

func (c *Controller[T]) Update(ctx context.Context, id int64, item T) error {
	if err := c.store.Update(ctx, id, item); err != nil {
		return fmt.Errorf("updating entity %d: %w", id, err)
	}

	_, err := c.Load(ctx)
	return err
}

func (c *Controller[T]) Delete(ctx context.Context, id int64) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting entity %d: %w", id, err)
	}

	_, err := c.Load(ctx)
	return err
}

// Duplicate creates a copy of the item via the entity's copy policy.
func (c *Controller[T]) Duplicate(ctx context.Context, item T) error {
	if c.hooks.Copy == nil {
		return fmt.Errorf("duplication is not supported for this entity")
	}

	return c.Create(ctx, c.hooks.Copy(item))
}

// SetStatus assigns a status when the store supports it.
func (c *Controller[T]) SetStatus(ctx context.Context, id int64, status string) error {
	statuses, ok := c.store.(StatusStore)
	if !ok {
		return fmt.Errorf("status assignment is not supported for this entity")
	}

	if err := statuses.SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("setting status of entity %d: %w", id, err)
	}

	_, err := c.Load(ctx)
	return err
}
