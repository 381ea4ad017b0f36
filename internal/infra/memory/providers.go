package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/provider"
)

// ProviderStore is a read-mostly provider roster
type ProviderStore struct {
	mu        sync.RWMutex
	providers map[string]domain.Provider
}

func NewProviderStore(providers ...domain.Provider) *ProviderStore {
	s := &ProviderStore{providers: make(map[string]domain.Provider, len(providers))}
	for _, p := range providers {
		s.providers[p.ID] = p
	}
	return s
}

// Put adds or replaces a provider
func (s *ProviderStore) Put(p domain.Provider) {
	s.mu.Lock()
	s.providers[p.ID] = p
	s.mu.Unlock()
}

// Save adds or replaces a provider
func (s *ProviderStore) Save(ctx context.Context, p *domain.Provider) error {
	s.Put(*p)
	return nil
}

func (s *ProviderStore) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.providers[id]
	if !ok {
		return nil, provider.ErrProviderNotFound
	}
	return &p, nil
}

// List returns providers ordered by name
func (s *ProviderStore) List(ctx context.Context) ([]*domain.Provider, error) {
	s.mu.RLock()
	result := make([]*domain.Provider, 0, len(s.providers))
	for _, p := range s.providers {
		cp := p
		result = append(result, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, k int) bool {
		if result[i].Name == result[k].Name {
			return result[i].ID < result[k].ID
		}
		return result[i].Name < result[k].Name
	})
	return result, nil
}
