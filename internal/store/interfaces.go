package store

import (
	"product-catalog-manager/internal/domain"
)

// ProductStorer defines the operations on an ordered product collection.
// Order is significant: List returns products in the order the catalog shows them.
type ProductStorer interface {
	List() []domain.Product
	GetProductByID(id string) (domain.Product, error)
	Contains(id string) bool
	Prepend(product domain.Product) error
	ReplaceProduct(product domain.Product) error
	DeleteProduct(id string) error
	Len() int
}
