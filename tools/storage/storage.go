// Package storage loads the raw documents a planning run reads: the recipe catalog,
// the user profile, an optional nutrient table and the price list.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by in-memory state built without data.
var ErrNotFound = errors.New("not found")

type CatalogState interface {
	Load(ctx context.Context) ([]byte, error)
}

type ProfileState interface {
	Load(ctx context.Context) ([]byte, error)
}

type NutrientState interface {
	Load(ctx context.Context) ([]byte, error)
}

type PriceState interface {
	Load(ctx context.Context) ([]byte, error)
}

// TestState is a simple in-memory implementation of every state interface for testing
type TestState struct {
	data []byte
	err  error
}

func NewTestState(data []byte) *TestState {
	return &TestState{data: data}
}

func NewTestStateWithError() *TestState {
	return &TestState{err: ErrNotFound}
}

func (t *TestState) Load(ctx context.Context) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}
