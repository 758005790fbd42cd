// Package catalog implements the product list state machine: the product
// collection, search, and the add/edit/details/delete dialogs.
package catalog

import (
	"errors"
	"fmt"

	"product-catalog-manager/internal/domain"
	"product-catalog-manager/internal/form"
	"product-catalog-manager/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxIDAttempts bounds regeneration when a fresh id collides with a live one.
const maxIDAttempts = 8

var (
	ErrDialogClosed = errors.New("catalog: dialog is not open")
	ErrIDExhausted  = errors.New("catalog: could not generate a unique product id")
)

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	NewID    func() string // defaults to uuid.NewString
	Logger   *zap.Logger
	Validate *validator.Validate
}

// Controller owns the product collection and every piece of dialog and
// selection state. All mutations go through its methods. A Controller is not
// safe for concurrent use; callers serialize access (see package session).
type Controller struct {
	products store.ProductStorer
	newID    func() string
	log      *zap.Logger

	query    string
	filtered []domain.Product

	addOpen     bool
	editOpen    bool
	detailsOpen bool
	deleteOpen  bool

	// The edit and details dialogs keep their own targets so closing one
	// never drops the product the other is showing.
	editTarget    *domain.Product
	detailsTarget *domain.Product
	pendingDelete string

	addForm  *form.Form
	editForm *form.Form
}

// NewController creates a Controller over products, which it takes
// exclusive ownership of.
func NewController(products store.ProductStorer, opts Options) *Controller {
	c := &Controller{
		products: products,
		newID:    opts.NewID,
		log:      opts.Logger,
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}

	c.addForm = form.New(opts.Validate, form.Handlers{
		OnSubmit: func(in domain.ProductInput) {
			if _, err := c.Create(in); err != nil {
				c.log.Error("create from add form failed", zap.Error(err))
			}
		},
		OnClose: c.CancelAdd,
	})
	c.editForm = form.New(opts.Validate, form.Handlers{
		OnSubmit: c.SubmitEdit,
		OnClose:  c.CancelEdit,
	})

	c.refresh()
	return c
}

// refresh re-derives the filtered view. Every mutation of the collection or
// the query ends with it.
func (c *Controller) refresh() {
	c.filtered = Filter(c.products.List(), c.query)
}

// --- Search ---

func (c *Controller) SetSearchQuery(query string) {
	c.query = query
	c.refresh()
}

func (c *Controller) SearchQuery() string {
	return c.query
}

// Products returns the full collection in catalog order.
func (c *Controller) Products() []domain.Product {
	return c.products.List()
}

// Filtered returns the products matching the current query.
func (c *Controller) Filtered() []domain.Product {
	out := make([]domain.Product, len(c.filtered))
	copy(out, c.filtered)
	return out
}

// --- Add ---

// OpenAdd opens the add dialog with an empty form.
func (c *Controller) OpenAdd() {
	c.addOpen = true
	c.addForm.Open(nil)
}

func (c *Controller) CancelAdd() {
	c.addOpen = false
}

// SubmitAdd feeds fields into the add form and submits it. A rejected
// submit leaves the dialog open and returns a *form.ValidationError.
func (c *Controller) SubmitAdd(fields form.Fields) error {
	if !c.addOpen {
		return fmt.Errorf("add: %w", ErrDialogClosed)
	}
	c.addForm.Set(fields)
	_, err := c.addForm.Submit()
	return err
}

// Create prepends a new product built from in under a freshly generated id
// and closes the add dialog.
func (c *Controller) Create(in domain.ProductInput) (domain.Product, error) {
	id, err := c.freshID()
	if err != nil {
		return domain.Product{}, err
	}
	product := in.WithID(id)
	if err := c.products.Prepend(product); err != nil {
		return domain.Product{}, fmt.Errorf("catalog: create product: %w", err)
	}
	c.addOpen = false
	c.refresh()
	c.log.Debug("product created", zap.String("id", id), zap.String("name", product.Name))
	return product, nil
}

func (c *Controller) freshID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := c.newID()
		if id != "" && !c.products.Contains(id) {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// --- Edit ---

// OpenEdit targets product for editing and pre-fills the edit form from it.
func (c *Controller) OpenEdit(product domain.Product) {
	target := product
	c.editTarget = &target
	c.editOpen = true
	c.editForm.Open(&target)
}

func (c *Controller) CancelEdit() {
	c.editTarget = nil
	c.editOpen = false
}

// SubmitEditForm feeds fields into the edit form and submits it.
func (c *Controller) SubmitEditForm(fields form.Fields) error {
	if !c.editOpen {
		return fmt.Errorf("edit: %w", ErrDialogClosed)
	}
	c.editForm.Set(fields)
	_, err := c.editForm.Submit()
	return err
}

// SubmitEdit replaces the edit target with in, keeping its id and position.
// Without a target it does nothing. A target deleted meanwhile leaves the
// collection untouched.
func (c *Controller) SubmitEdit(in domain.ProductInput) {
	if c.editTarget == nil {
		c.log.Debug("edit submitted without a selected product")
		return
	}
	updated := in.WithID(c.editTarget.ID)
	switch err := c.products.ReplaceProduct(updated); {
	case err == nil:
		c.log.Debug("product updated", zap.String("id", updated.ID))
	case errors.Is(err, store.ErrProductNotFound):
		c.log.Debug("edited product no longer exists", zap.String("id", updated.ID))
	default:
		c.log.Error("update product failed", zap.String("id", updated.ID), zap.Error(err))
	}
	c.editTarget = nil
	c.editOpen = false
	c.refresh()
}

// --- Details ---

func (c *Controller) OpenDetails(product domain.Product) {
	target := product
	c.detailsTarget = &target
	c.detailsOpen = true
}

func (c *Controller) CloseDetails() {
	c.detailsTarget = nil
	c.detailsOpen = false
}

// --- Delete ---

func (c *Controller) OpenDelete(id string) {
	c.pendingDelete = id
	c.deleteOpen = true
}

// ConfirmDelete removes the pending product, if it still exists, and closes
// the dialog.
func (c *Controller) ConfirmDelete() {
	id := c.pendingDelete
	switch err := c.products.DeleteProduct(id); {
	case err == nil:
		c.log.Debug("product deleted", zap.String("id", id))
	case errors.Is(err, store.ErrProductNotFound):
		c.log.Debug("delete of absent product ignored", zap.String("id", id))
	default:
		c.log.Error("delete product failed", zap.String("id", id), zap.Error(err))
	}
	c.pendingDelete = ""
	c.deleteOpen = false
	c.refresh()
}

func (c *Controller) CancelDelete() {
	c.pendingDelete = ""
	c.deleteOpen = false
}

// pendingDeleteName is the display name of the product awaiting deletion.
func (c *Controller) pendingDeleteName() string {
	if c.pendingDelete == "" {
		return ""
	}
	p, err := c.products.GetProductByID(c.pendingDelete)
	if err != nil {
		return ""
	}
	return p.Name
}
