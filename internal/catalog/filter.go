package catalog

import (
	"strings"

	"product-catalog-manager/internal/domain"
)

// Filter returns the products whose name or description contains query,
// compared case-insensitively, in their original order. An empty query
// returns the whole collection. The input slice is never modified.
func Filter(products []domain.Product, query string) []domain.Product {
	if query == "" {
		out := make([]domain.Product, len(products))
		copy(out, products)
		return out
	}

	needle := strings.ToLower(query)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}
