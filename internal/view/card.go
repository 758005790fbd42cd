// Package view builds the presentation models the catalog page renders.
// Views are derived from controller state and report user intents back
// through callbacks; none of them mutate the catalog.
package view

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"product-catalog-manager/internal/domain"
)

// DefaultPreviewLength is how many runes of a description a card shows.
const DefaultPreviewLength = 120

// CardActions are the intents a card can emit.
type CardActions struct {
	OnView   func(domain.Product)
	OnEdit   func(domain.Product)
	OnDelete func(id string)
}

// Card summarizes one product in the catalog grid.
type Card struct {
	product    domain.Product
	actions    CardActions
	previewLen int
}

// NewCard builds a card for product. A non-positive previewLen selects
// DefaultPreviewLength.
func NewCard(product domain.Product, actions CardActions, previewLen int) Card {
	if previewLen <= 0 {
		previewLen = DefaultPreviewLength
	}
	return Card{product: product, actions: actions, previewLen: previewLen}
}

func (c Card) ID() string   { return c.product.ID }
func (c Card) Name() string { return c.product.Name }

// Summary is the description cut to the preview length on a rune boundary.
func (c Card) Summary() string {
	return Truncate(c.product.Description, c.previewLen)
}

func (c Card) Price() string { return FormatPrice(c.product.Price) }

func (c Card) Stock() string { return fmt.Sprintf("Stock: %d", c.product.Stock) }

// View emits the view intent with the full product.
func (c Card) View() {
	if c.actions.OnView != nil {
		c.actions.OnView(c.product)
	}
}

// Edit emits the edit intent with the full product.
func (c Card) Edit() {
	if c.actions.OnEdit != nil {
		c.actions.OnEdit(c.product)
	}
}

// Delete emits the delete intent with the product id only.
func (c Card) Delete() {
	if c.actions.OnDelete != nil {
		c.actions.OnDelete(c.product.ID)
	}
}

// FormatPrice renders a price in currency units with two decimals.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// Truncate shortens s to at most max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:max]), " ") + "…"
}
