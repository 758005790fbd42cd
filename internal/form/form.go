// Package form holds the transient field state of the add and edit dialogs.
package form

import (
	"errors"
	"fmt"
	"strconv"

	"product-catalog-manager/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Fields is the raw text the user typed into the dialog.
// Price and stock stay text until submit, like the inputs they mirror.
type Fields struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       string `json:"price" validate:"required,numeric"`
	Stock       string `json:"stock" validate:"required,number"`
}

// ValidationError reports the first field that blocked a submit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Handlers are invoked by Submit, OnSubmit first and then OnClose.
type Handlers struct {
	OnSubmit func(domain.ProductInput)
	OnClose  func()
}

// Form is the dialog-scoped state of an Edit/Create form.
type Form struct {
	fields   Fields
	lastErr  string
	handlers Handlers
	validate *validator.Validate
}

// New creates a Form with empty fields.
func New(v *validator.Validate, h Handlers) *Form {
	if v == nil {
		v = validator.New()
	}
	return &Form{validate: v, handlers: h}
}

// Open initializes the fields for a new dialog session. A non-nil product
// pre-fills every field; nil resets them to empty. Anything typed during a
// previous session is discarded.
func (f *Form) Open(product *domain.Product) {
	f.lastErr = ""
	if product == nil {
		f.fields = Fields{}
		return
	}
	f.fields = Fields{
		Name:        product.Name,
		Description: product.Description,
		Price:       strconv.FormatFloat(product.Price, 'f', -1, 64),
		Stock:       strconv.Itoa(product.Stock),
	}
}

// Fields returns the current field values.
func (f *Form) Fields() Fields {
	return f.fields
}

// Err returns the message of the last rejected submit, or "".
func (f *Form) Err() string {
	return f.lastErr
}

// Set replaces the field values with user input.
func (f *Form) Set(fields Fields) {
	f.fields = fields
}

// Submit validates and parses the fields. On success the payload goes to
// OnSubmit and the dialog is closed through OnClose. On failure nothing is
// emitted and the returned error is a *ValidationError.
func (f *Form) Submit() (domain.ProductInput, error) {
	input, err := f.parse()
	if err != nil {
		f.lastErr = err.Error()
		return domain.ProductInput{}, err
	}
	f.lastErr = ""
	if f.handlers.OnSubmit != nil {
		f.handlers.OnSubmit(input)
	}
	if f.handlers.OnClose != nil {
		f.handlers.OnClose()
	}
	return input, nil
}

func (f *Form) parse() (domain.ProductInput, error) {
	if err := f.validate.Struct(f.fields); err != nil {
		return domain.ProductInput{}, describe(err)
	}

	price, err := strconv.ParseFloat(f.fields.Price, 64)
	if err != nil {
		return domain.ProductInput{}, &ValidationError{Field: "price", Reason: "must be a number"}
	}
	if price < 0 {
		return domain.ProductInput{}, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	stock, err := strconv.Atoi(f.fields.Stock)
	if err != nil {
		return domain.ProductInput{}, &ValidationError{Field: "stock", Reason: "must be a whole number"}
	}

	return domain.ProductInput{
		Name:        f.fields.Name,
		Description: f.fields.Description,
		Price:       price,
		Stock:       stock,
	}, nil
}

// describe turns the first validator failure into a ValidationError.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("form: validation failed: %w", err)
	}
	fe := verrs[0]
	field := fieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Reason: "is required"}
	case "numeric":
		return &ValidationError{Field: field, Reason: "must be a number"}
	case "number":
		return &ValidationError{Field: field, Reason: "must be a whole number"}
	default:
		return &ValidationError{Field: field, Reason: "is invalid"}
	}
}

func fieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Description":
		return "description"
	case "Price":
		return "price"
	case "Stock":
		return "stock"
	}
	return structField
}
