package catalog

import (
	"product-catalog-manager/internal/domain"
	"product-catalog-manager/internal/form"
)

// Dialogs holds the four dialog visibility flags.
type Dialogs struct {
	Add     bool `json:"add"`
	Edit    bool `json:"edit"`
	Details bool `json:"details"`
	Delete  bool `json:"delete"`
}

// FormState is what a dialog form currently shows.
type FormState struct {
	Fields form.Fields `json:"fields"`
	Error  string      `json:"error,omitempty"`
}

// State is a read-only snapshot of a Controller, used for rendering.
type State struct {
	Products          []domain.Product `json:"products"`
	FilteredProducts  []domain.Product `json:"filtered_products"`
	SearchQuery       string           `json:"search_query"`
	Dialogs           Dialogs          `json:"dialogs"`
	EditTarget        *domain.Product  `json:"edit_target,omitempty"`
	DetailsTarget     *domain.Product  `json:"details_target,omitempty"`
	PendingDeleteID   string           `json:"pending_delete_id,omitempty"`
	PendingDeleteName string           `json:"pending_delete_name,omitempty"`
	AddForm           FormState        `json:"add_form"`
	EditForm          FormState        `json:"edit_form"`
}

// State copies the controller's current state.
func (c *Controller) State() State {
	return State{
		Products:         c.Products(),
		FilteredProducts: c.Filtered(),
		SearchQuery:      c.query,
		Dialogs: Dialogs{
			Add:     c.addOpen,
			Edit:    c.editOpen,
			Details: c.detailsOpen,
			Delete:  c.deleteOpen,
		},
		EditTarget:        copyProduct(c.editTarget),
		DetailsTarget:     copyProduct(c.detailsTarget),
		PendingDeleteID:   c.pendingDelete,
		PendingDeleteName: c.pendingDeleteName(),
		AddForm:           FormState{Fields: c.addForm.Fields(), Error: c.addForm.Err()},
		EditForm:          FormState{Fields: c.editForm.Fields(), Error: c.editForm.Err()},
	}
}

func copyProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
