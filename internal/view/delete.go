package view

import "fmt"

// DeleteConfirmation is the yes/no prompt shown before a product is removed.
// Each value answers at most once: the first Confirm or Cancel wins and later
// calls do nothing. Constructing it never invokes a callback.
type DeleteConfirmation struct {
	open        bool
	productName string
	onConfirm   func()
	onCancel    func()
	answered    bool
}

// NewDeleteConfirmation builds the prompt for the named product.
func NewDeleteConfirmation(open bool, productName string, onConfirm, onCancel func()) *DeleteConfirmation {
	return &DeleteConfirmation{
		open:        open,
		productName: productName,
		onConfirm:   onConfirm,
		onCancel:    onCancel,
	}
}

func (d *DeleteConfirmation) Open() bool { return d.open }

func (d *DeleteConfirmation) ProductName() string { return d.productName }

// Prompt is the question the dialog asks.
func (d *DeleteConfirmation) Prompt() string {
	if d.productName == "" {
		return "Are you sure you want to delete this product? This action cannot be undone."
	}
	return fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", d.productName)
}

// Confirm answers yes. It reports whether the confirm callback ran.
func (d *DeleteConfirmation) Confirm() bool {
	return d.answer(d.onConfirm)
}

// Cancel answers no. It reports whether the cancel callback ran.
func (d *DeleteConfirmation) Cancel() bool {
	return d.answer(d.onCancel)
}

func (d *DeleteConfirmation) answer(fn func()) bool {
	if !d.open || d.answered {
		return false
	}
	d.answered = true
	if fn != nil {
		fn()
	}
	return true
}
