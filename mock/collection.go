package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"nightshift/model"
	"nightshift/store"
)

// Collection はメモリ上の1エンティティ種別分のリモート実装です。
// Payloads are applied as JSON onto the record, so a partial input only
// overwrites the fields it carries.
type Collection[T any] struct {
	mu     sync.RWMutex
	rows   []T
	prefix string
	id     func(*T) *model.ID
	code   func(*T) *string

	// onCreate runs under the write lock after the payload is applied.
	onCreate func(rec *T, payload any)
}

func newCollection[T any](prefix string, id func(*T) *model.ID, code func(*T) *string) *Collection[T] {
	return &Collection[T]{prefix: prefix, id: id, code: code, rows: []T{}}
}

func (c *Collection[T]) seed(rows []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range rows {
		if *c.id(&rows[i]) == "" {
			*c.id(&rows[i]) = model.ID(uuid.NewString())
		}
	}
	c.rows = rows
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.rows))
	for _, r := range c.rows {
		out = append(out, clone(r))
	}
	return out, nil
}

func (c *Collection[T]) indexOf(id string) int {
	for i := range c.rows {
		if string(*c.id(&c.rows[i])) == id || *c.code(&c.rows[i]) == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%s: %w", id, store.ErrNotFound)
	}
	return clone(c.rows[i]), nil
}

func (c *Collection[T]) Create(ctx context.Context, payload any) (T, error) {
	var rec T
	if err := ctx.Err(); err != nil {
		return rec, err
	}
	if err := apply(&rec, payload); err != nil {
		return rec, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	codes := make([]string, 0, len(c.rows))
	for i := range c.rows {
		codes = append(codes, *c.code(&c.rows[i]))
	}
	*c.id(&rec) = model.ID(uuid.NewString())
	*c.code(&rec) = NextCode(c.prefix, codes)
	if c.onCreate != nil {
		c.onCreate(&rec, payload)
	}
	c.rows = append(c.rows, rec)
	return clone(rec), nil
}

func (c *Collection[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return zero, fmt.Errorf("%s: %w", id, store.ErrNotFound)
	}
	rec := clone(c.rows[i])
	keepID, keepCode := *c.id(&rec), *c.code(&rec)
	if err := apply(&rec, payload); err != nil {
		return zero, err
	}
	*c.id(&rec), *c.code(&rec) = keepID, keepCode
	c.rows[i] = rec
	return clone(rec), nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, store.ErrNotFound)
	}
	c.rows = append(c.rows[:i:i], c.rows[i+1:]...)
	return nil
}

// modify runs fn on the stored record under the write lock.
func (c *Collection[T]) modify(id string, fn func(*T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%s: %w", id, store.ErrNotFound)
	}
	return fn(&c.rows[i])
}

func apply(dst any, payload any) error {
	if payload == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to apply payload: %w", err)
	}
	return nil
}

// clone は入れ子スライスを共有しない複製を返します。
func clone[T any](v T) T {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
