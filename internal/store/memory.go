package store

import (
	"errors"
	"fmt"

	"product-catalog-manager/internal/domain"
)

// Predefined errors for store operations
var (
	ErrProductNotFound  = errors.New("store: product not found")
	ErrProductIDExists  = errors.New("store: product ID already exists")
	ErrProductIDMissing = errors.New("store: product ID is empty")
)

// MemoryStore implements ProductStorer with an ordered slice and an id index.
// It is owned by a single catalog controller and is not safe for concurrent use.
type MemoryStore struct {
	products []domain.Product
	index    map[string]struct{}
}

// NewMemoryStore creates a MemoryStore holding a copy of seed, in order.
func NewMemoryStore(seed []domain.Product) (*MemoryStore, error) {
	s := &MemoryStore{
		products: make([]domain.Product, 0, len(seed)),
		index:    make(map[string]struct{}, len(seed)),
	}
	for _, p := range seed {
		if err := s.add(p); err != nil {
			return nil, fmt.Errorf("store: seeding product %q: %w", p.ID, err)
		}
		s.products = append(s.products, p)
	}
	return s, nil
}

func (s *MemoryStore) add(p domain.Product) error {
	if p.ID == "" {
		return ErrProductIDMissing
	}
	if _, exists := s.index[p.ID]; exists {
		return ErrProductIDExists
	}
	s.index[p.ID] = struct{}{}
	return nil
}

// List returns a copy of the collection in catalog order.
func (s *MemoryStore) List() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *MemoryStore) GetProductByID(id string) (domain.Product, error) {
	if i := s.position(id); i >= 0 {
		return s.products[i], nil
	}
	return domain.Product{}, ErrProductNotFound
}

func (s *MemoryStore) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Prepend inserts product at the head of the collection.
func (s *MemoryStore) Prepend(product domain.Product) error {
	if err := s.add(product); err != nil {
		return err
	}
	s.products = append([]domain.Product{product}, s.products...)
	return nil
}

// ReplaceProduct swaps the element with the same id in place.
func (s *MemoryStore) ReplaceProduct(product domain.Product) error {
	i := s.position(product.ID)
	if i < 0 {
		return ErrProductNotFound
	}
	s.products[i] = product
	return nil
}

func (s *MemoryStore) DeleteProduct(id string) error {
	i := s.position(id)
	if i < 0 {
		return ErrProductNotFound
	}
	s.products = append(s.products[:i:i], s.products[i+1:]...)
	delete(s.index, id)
	return nil
}

func (s *MemoryStore) Len() int {
	return len(s.products)
}

func (s *MemoryStore) position(id string) int {
	if _, ok := s.index[id]; !ok {
		return -1
	}
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}
