package view

import (
	"fmt"

	"product-catalog-manager/internal/domain"
)

// Details is the read-only panel of the details dialog.
type Details struct {
	Open        bool
	ID          string
	Name        string
	Description string
	Price       string
	Stock       string
}

// NewDetails returns the panel for product, or false when there is nothing
// to show.
func NewDetails(open bool, product *domain.Product) (Details, bool) {
	if product == nil {
		return Details{}, false
	}
	return Details{
		Open:        open,
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       FormatPrice(product.Price),
		Stock:       fmt.Sprintf("%d units", product.Stock),
	}, true
}
