package blobstore

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Mirror replicates every write to several stores and reads from the
// first store that has the blob. Typical setup: local disk first for
// fast restarts, object storage second for durability.
type Mirror struct {
	stores []Store
}

// NewMirror creates a Mirror over the given stores, in read priority
// order. At least one store is required.
func NewMirror(stores ...Store) (*Mirror, error) {
	if len(stores) == 0 {
		return nil, fmt.Errorf("mirror requires at least one store")
	}
	return &Mirror{stores: stores}, nil
}

// Put writes the blob to every store concurrently.
// It fails if any store fails; the remaining stores may still hold the
// new content.
func (m *Mirror) Put(ctx context.Context, name string, data []byte) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range m.stores {
		g.Go(func() error {
			return s.Put(ctx, name, data)
		})
	}
	return g.Wait()
}

// Get returns the blob from the first store that has it.
func (m *Mirror) Get(ctx context.Context, name string) ([]byte, error) {
	for _, s := range m.stores {
		data, err := s.Get(ctx, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Delete removes the blob from every store concurrently.
func (m *Mirror) Delete(ctx context.Context, name string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range m.stores {
		g.Go(func() error {
			return s.Delete(ctx, name)
		})
	}
	return g.Wait()
}
