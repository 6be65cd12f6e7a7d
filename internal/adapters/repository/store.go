// Package repository provides the keyed in-memory tables the pipeline joins on.
package repository

import (
	"fmt"
	"sort"

	"github.com/okian/marchprep/internal/domain/model"
)

// Table maps (season, team) keys to values. A key may be inserted once;
// a second Insert of the same key is an invariant violation.
type Table[V any] struct {
	name string
	rows map[model.TeamKey]V
}

// NewTable creates an empty table.
func NewTable[V any](opts ...Option) *Table[V] {
	cfg := options{name: "table"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Table[V]{
		name: cfg.name,
		rows: make(map[model.TeamKey]V, cfg.capacity),
	}
}

// Name returns the table name used in error messages.
func (t *Table[V]) Name() string { return t.name }

// Insert adds v under k. Returns ErrDuplicateKey if k is already present.
func (t *Table[V]) Insert(k model.TeamKey, v V) error {
	if _, ok := t.rows[k]; ok {
		return fmt.Errorf("%s: season %d team %d: %w", t.name, k.Season, k.TeamID, ErrDuplicateKey)
	}
	t.rows[k] = v
	return nil
}

// Upsert sets v under k, replacing any existing value.
func (t *Table[V]) Upsert(k model.TeamKey, v V) {
	t.rows[k] = v
}

// Get returns the value under k or ErrNotFound.
func (t *Table[V]) Get(k model.TeamKey) (V, error) {
	v, ok := t.rows[k]
	if !ok {
		return v, fmt.Errorf("%s: season %d team %d: %w", t.name, k.Season, k.TeamID, ErrNotFound)
	}
	return v, nil
}

// Lookup returns the value under k and whether it was present.
func (t *Table[V]) Lookup(k model.TeamKey) (V, bool) {
	v, ok := t.rows[k]
	return v, ok
}

// Len returns the number of keys.
func (t *Table[V]) Len() int { return len(t.rows) }

// Keys returns every key in (season, team) order.
func (t *Table[V]) Keys() []model.TeamKey {
	keys := make([]model.TeamKey, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Each calls fn for every row in key order, stopping at the first error.
func (t *Table[V]) Each(fn func(model.TeamKey, V) error) error {
	for _, k := range t.Keys() {
		if err := fn(k, t.rows[k]); err != nil {
			return err
		}
	}
	return nil
}
