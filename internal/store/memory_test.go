package store

import (
	"errors"
	"testing"

	"product-catalog-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a seeded MemoryStore for testing
func newSeededStore(t *testing.T) *MemoryStore {
	s, err := NewMemoryStore([]domain.Product{
		{ID: "a", Name: "Alpha", Price: 1, Stock: 1},
		{ID: "b", Name: "Beta", Price: 2, Stock: 2},
		{ID: "c", Name: "Gamma", Price: 3, Stock: 3},
	})
	require.NoError(t, err, "Failed to create store")
	return s
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestMemoryStore_NewMemoryStore_DuplicateSeed(t *testing.T) {
	_, err := NewMemoryStore([]domain.Product{{ID: "a"}, {ID: "a"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProductIDExists), "Error should be ErrProductIDExists")
}

func TestMemoryStore_NewMemoryStore_EmptyID(t *testing.T) {
	_, err := NewMemoryStore([]domain.Product{{Name: "nameless"}})
	assert.ErrorIs(t, err, ErrProductIDMissing)
}

func TestMemoryStore_Prepend(t *testing.T) {
	s := newSeededStore(t)

	require.NoError(t, s.Prepend(domain.Product{ID: "z", Name: "Zeta"}))
	assert.Equal(t, []string{"z", "a", "b", "c"}, ids(s.List()))
	assert.True(t, s.Contains("z"))
	assert.Equal(t, 4, s.Len())
}

func TestMemoryStore_Prepend_DuplicateID(t *testing.T) {
	s := newSeededStore(t)

	err := s.Prepend(domain.Product{ID: "b"})
	assert.ErrorIs(t, err, ErrProductIDExists)
	assert.Equal(t, []string{"a", "b", "c"}, ids(s.List()))
}

func TestMemoryStore_ReplaceProduct(t *testing.T) {
	s := newSeededStore(t)

	updated := domain.Product{ID: "b", Name: "Beta 2", Description: "new", Price: 20, Stock: 7}
	require.NoError(t, s.ReplaceProduct(updated))

	list := s.List()
	assert.Equal(t, []string{"a", "b", "c"}, ids(list))
	assert.Equal(t, updated, list[1])
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Gamma", list[2].Name)
}

func TestMemoryStore_ReplaceProduct_NotFound(t *testing.T) {
	s := newSeededStore(t)
	assert.ErrorIs(t, s.ReplaceProduct(domain.Product{ID: "nope"}), ErrProductNotFound)
}

func TestMemoryStore_DeleteProduct(t *testing.T) {
	s := newSeededStore(t)

	require.NoError(t, s.DeleteProduct("b"))
	assert.Equal(t, []string{"a", "c"}, ids(s.List()))
	assert.False(t, s.Contains("b"))

	_, err := s.GetProductByID("b")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteProduct("b"), ErrProductNotFound)
}

func TestMemoryStore_List_ReturnsCopy(t *testing.T) {
	s := newSeededStore(t)

	list := s.List()
	list[0].Name = "mutated"

	p, err := s.GetProductByID("a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", p.Name)
}
