package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// Persister stores one entity collection under a fixed kind.
type Persister[T any] struct {
	db   *DB
	kind string
}

func NewPersister[T any](db *DB, kind string) *Persister[T] {
	return &Persister[T]{db: db, kind: kind}
}

func (p *Persister[T]) Save(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", p.kind, err)
	}
	return p.db.Save(ctx, p.kind, data)
}

func (p *Persister[T]) Load(ctx context.Context) ([]T, bool, error) {
	snap, ok, err := p.db.Load(ctx, p.kind)
	if err != nil || !ok {
		return nil, false, err
	}
	var items []T
	if err := json.Unmarshal([]byte(snap.Payload), &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", p.kind, err)
	}
	return items, true, nil
}

func (p *Persister[T]) Clear(ctx context.Context) error {
	return p.db.Clear(ctx, p.kind)
}
