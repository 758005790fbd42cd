package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"product-catalog-manager/internal/catalog"
	"product-catalog-manager/internal/form"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	emptyCatalogMessage = "No products available."
	noMatchesMessage    = "No products found matching your search criteria."
)

// FormView is one of the add/edit dialogs as the page shows it.
type FormView struct {
	Open        bool
	Title       string
	SubmitLabel string
	Action      string
	Cancel      string
	Fields      form.Fields
	Error       string
}

// Page is the whole catalog screen.
type Page struct {
	SearchQuery  string
	Cards        []Card
	EmptyMessage string
	AddForm      FormView
	EditForm     FormView
	Details      Details
	HasDetails   bool
	Delete       *DeleteConfirmation
}

// NewPage lays out st. Cards of the filtered list emit through actions and
// the delete prompt answers through del.
func NewPage(st catalog.State, actions CardActions, del *DeleteConfirmation, previewLen int) Page {
	p := Page{
		SearchQuery: st.SearchQuery,
		Cards:       make([]Card, 0, len(st.FilteredProducts)),
		AddForm: FormView{
			Open:        st.Dialogs.Add,
			Title:       "Add New Product",
			SubmitLabel: "Add Product",
			Action:      "/api/v1/catalog/add/submit",
			Cancel:      "/api/v1/catalog/add/cancel",
			Fields:      st.AddForm.Fields,
			Error:       st.AddForm.Error,
		},
		EditForm: FormView{
			Open:        st.Dialogs.Edit,
			Title:       "Edit Product",
			SubmitLabel: "Update Product",
			Action:      "/api/v1/catalog/edit/submit",
			Cancel:      "/api/v1/catalog/edit/cancel",
			Fields:      st.EditForm.Fields,
			Error:       st.EditForm.Error,
		},
		Delete: del,
	}
	for _, product := range st.FilteredProducts {
		p.Cards = append(p.Cards, NewCard(product, actions, previewLen))
	}
	if len(p.Cards) == 0 {
		p.EmptyMessage = emptyCatalogMessage
		if st.SearchQuery != "" {
			p.EmptyMessage = noMatchesMessage
		}
	}
	p.Details, p.HasDetails = NewDetails(st.Dialogs.Details, st.DetailsTarget)
	if p.Delete == nil {
		p.Delete = NewDeleteConfirmation(st.Dialogs.Delete, st.PendingDeleteName, nil, nil)
	}
	return p
}

// Card finds the card of a listed product.
func (p Page) Card(id string) (Card, bool) {
	for _, c := range p.Cards {
		if c.ID() == id {
			return c, true
		}
	}
	return Card{}, false
}

// Renderer writes pages as HTML.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, p Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "catalog.html", p); err != nil {
		return fmt.Errorf("view: render catalog page: %w", err)
	}
	return nil
}
