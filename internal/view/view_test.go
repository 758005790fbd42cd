package view

import (
	"bytes"
	"strings"
	"testing"

	"product-catalog-manager/internal/catalog"
	"product-catalog-manager/internal/domain"
	"product-catalog-manager/internal/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lamp = domain.Product{ID: "7", Name: "Lamp", Description: "A bright desk lamp", Price: 19.5, Stock: 4}

func TestCard_Summary(t *testing.T) {
	c := NewCard(lamp, CardActions{}, 0)

	assert.Equal(t, "7", c.ID())
	assert.Equal(t, "Lamp", c.Name())
	assert.Equal(t, "A bright desk lamp", c.Summary())
	assert.Equal(t, "$19.50", c.Price())
	assert.Equal(t, "Stock: 4", c.Stock())
}

func TestCard_SummaryTruncates(t *testing.T) {
	c := NewCard(lamp, CardActions{}, 8)
	assert.Equal(t, "A bright…", c.Summary())

	long := NewCard(domain.Product{Description: strings.Repeat("é", 200)}, CardActions{}, 0)
	assert.Equal(t, strings.Repeat("é", DefaultPreviewLength)+"…", long.Summary())
}

func TestCard_Intents(t *testing.T) {
	var viewed, edited domain.Product
	var deleted string
	c := NewCard(lamp, CardActions{
		OnView:   func(p domain.Product) { viewed = p },
		OnEdit:   func(p domain.Product) { edited = p },
		OnDelete: func(id string) { deleted = id },
	}, 0)

	c.View()
	c.Edit()
	c.Delete()

	assert.Equal(t, lamp, viewed)
	assert.Equal(t, lamp, edited)
	assert.Equal(t, "7", deleted)
}

func TestCard_IntentsWithoutCallbacks(t *testing.T) {
	c := NewCard(lamp, CardActions{}, 0)
	assert.NotPanics(t, func() {
		c.View()
		c.Edit()
		c.Delete()
	})
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$0.00", FormatPrice(0))
	assert.Equal(t, "$10.00", FormatPrice(10))
	assert.Equal(t, "$199.99", FormatPrice(199.99))
}

func TestNewDetails(t *testing.T) {
	_, ok := NewDetails(true, nil)
	assert.False(t, ok, "no product renders nothing")

	d, ok := NewDetails(true, &lamp)
	require.True(t, ok)
	assert.Equal(t, Details{
		Open:        true,
		ID:          "7",
		Name:        "Lamp",
		Description: "A bright desk lamp",
		Price:       "$19.50",
		Stock:       "4 units",
	}, d)
}

func TestDeleteConfirmation_ConfirmOnce(t *testing.T) {
	var confirmed, cancelled int
	d := NewDeleteConfirmation(true, "Lamp", func() { confirmed++ }, func() { cancelled++ })
	assert.Zero(t, confirmed+cancelled, "opening never answers")
	assert.Contains(t, d.Prompt(), `"Lamp"`)

	assert.True(t, d.Confirm())
	assert.False(t, d.Cancel())
	assert.False(t, d.Confirm())

	assert.Equal(t, 1, confirmed)
	assert.Zero(t, cancelled)
}

func TestDeleteConfirmation_CancelOnce(t *testing.T) {
	var confirmed, cancelled int
	d := NewDeleteConfirmation(true, "Lamp", func() { confirmed++ }, func() { cancelled++ })

	assert.True(t, d.Cancel())
	assert.False(t, d.Confirm())

	assert.Zero(t, confirmed)
	assert.Equal(t, 1, cancelled)
}

func TestDeleteConfirmation_ClosedIgnoresAnswers(t *testing.T) {
	called := false
	d := NewDeleteConfirmation(false, "", func() { called = true }, func() { called = true })

	assert.False(t, d.Confirm())
	assert.False(t, d.Cancel())
	assert.False(t, called)
}

func TestNewPage_EmptyMessages(t *testing.T) {
	p := NewPage(catalog.State{}, CardActions{}, nil, 0)
	assert.Equal(t, emptyCatalogMessage, p.EmptyMessage)

	p = NewPage(catalog.State{SearchQuery: "zzz", Products: []domain.Product{lamp}}, CardActions{}, nil, 0)
	assert.Equal(t, noMatchesMessage, p.EmptyMessage)

	p = NewPage(catalog.State{Products: []domain.Product{lamp}, FilteredProducts: []domain.Product{lamp}}, CardActions{}, nil, 0)
	assert.Empty(t, p.EmptyMessage)
	card, ok := p.Card("7")
	require.True(t, ok)
	assert.Equal(t, "Lamp", card.Name())
	_, ok = p.Card("8")
	assert.False(t, ok)
}

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	st := catalog.State{
		Products:          []domain.Product{lamp},
		FilteredProducts:  []domain.Product{lamp},
		Dialogs:           catalog.Dialogs{Edit: true, Details: true, Delete: true},
		DetailsTarget:     &lamp,
		EditForm:          catalog.FormState{Fields: form.Fields{Name: "Lamp <b>", Price: "19.5", Stock: "4"}, Error: "description is required"},
		PendingDeleteID:   "7",
		PendingDeleteName: "Lamp",
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, NewPage(st, CardActions{}, nil, 0)))
	html := buf.String()

	assert.Contains(t, html, `id="product-7"`)
	assert.Contains(t, html, "$19.50")
	assert.Contains(t, html, "Edit Product")
	assert.Contains(t, html, "Update Product")
	assert.NotContains(t, html, "Add New Product", "closed add dialog is not rendered")
	assert.Contains(t, html, "Lamp &lt;b&gt;", "field values are escaped")
	assert.Contains(t, html, "description is required")
	assert.Contains(t, html, "Product Details")
	assert.Contains(t, html, "4 units")
	assert.Contains(t, html, "/api/v1/catalog/delete/confirm")
}
