package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristrettostore "github.com/eko/gocache/store/ristretto/v4"
)

// MemoryStore is an in-process store backed by ristretto through gocache.
type MemoryStore struct {
	client  *ristretto.Cache
	manager *gocache.Cache[[]byte]
}

// NewMemoryStore allocates a ristretto cache bounded to maxBytes of stored values.
func NewMemoryStore(maxBytes int64) (*MemoryStore, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}
	return &MemoryStore{
		client:  client,
		manager: gocache.New[[]byte](ristrettostore.NewRistretto(client)),
	}, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.manager.Get(ctx, key)
	if err != nil || b == nil {
		return nil, ErrMiss
	}
	return b, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.manager.Set(ctx, key, value,
		store.WithExpiration(ttl),
		store.WithCost(int64(len(value))),
	)
	if err != nil {
		return err
	}
	// ristretto applies writes asynchronously; make them visible to the next Get
	s.client.Wait()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	return s.manager.Clear(ctx)
}

// Close releases the ristretto goroutines.
func (s *MemoryStore) Close() {
	s.client.Close()
}
