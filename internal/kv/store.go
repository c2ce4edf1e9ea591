// Package kv provides the key-value persistence port used by the tracker and
// its backends. Keys are plain strings; values are JSON documents.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNotFound is returned by Store.Get when a key has never been set.
var ErrNotFound = errors.New("key not found")

// Store is a string-keyed store of JSON values.
type Store interface {
	// Get returns the raw JSON stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases any resources held by the store.
	Close() error
}

// Value is a typed view of a single key. Absent keys and values that fail to
// decode both resolve to the default; only backend failures are returned.
type Value[T any] struct {
	store  Store
	key    string
	def    func() T
	logger *zap.Logger
}

// NewValue binds key in store to type T. def is called for a fresh default
// each time one is needed so callers never share mutable defaults.
func NewValue[T any](store Store, key string, def func() T, logger *zap.Logger) *Value[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Value[T]{store: store, key: key, def: def, logger: logger}
}

// Key returns the store key this value is bound to.
func (v *Value[T]) Key() string {
	return v.key
}

// State describes where a value returned by Value.Get came from.
type State int

const (
	// Absent means the key was never set; the default was returned.
	Absent State = iota
	// Decoded means the stored value was decoded successfully.
	Decoded
	// Corrupt means a stored value failed to decode; the default was returned.
	Corrupt
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Decoded:
		return "decoded"
	case Corrupt:
		return "corrupt"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Get loads and decodes the value.
func (v *Value[T]) Get(ctx context.Context) (T, State, error) {
	raw, err := v.store.Get(ctx, v.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return v.def(), Absent, nil
		}
		var zero T
		return zero, Absent, fmt.Errorf("failed to read %s: %w", v.key, err)
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		v.logger.Warn("Discarding undecodable stored value",
			zap.String("key", v.key),
			zap.Error(err),
		)
		return v.def(), Corrupt, nil
	}
	return out, Decoded, nil
}

// Set encodes and stores the value.
func (v *Value[T]) Set(ctx context.Context, val T) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", v.key, err)
	}
	if err := v.store.Set(ctx, v.key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", v.key, err)
	}
	return nil
}
