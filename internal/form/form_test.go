package form

import (
	"testing"

	"product-catalog-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	submitted []domain.ProductInput
	closed    int
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		OnSubmit: func(in domain.ProductInput) { r.submitted = append(r.submitted, in) },
		OnClose:  func() { r.closed++ },
	}
}

func TestForm_Open_PrefillsFromProduct(t *testing.T) {
	f := New(nil, Handlers{})
	f.Open(&domain.Product{ID: "1", Name: "Lamp", Description: "Desk lamp", Price: 19.5, Stock: 4})

	assert.Equal(t, Fields{Name: "Lamp", Description: "Desk lamp", Price: "19.5", Stock: "4"}, f.Fields())
}

func TestForm_Open_WholePriceHasNoDecimals(t *testing.T) {
	f := New(nil, Handlers{})
	f.Open(&domain.Product{Name: "A", Price: 10, Stock: 5})
	assert.Equal(t, "10", f.Fields().Price)
}

func TestForm_Open_NilResets(t *testing.T) {
	f := New(nil, Handlers{})
	f.Set(Fields{Name: "stale", Description: "stale", Price: "1", Stock: "1"})

	f.Open(nil)
	assert.Equal(t, Fields{}, f.Fields())
}

func TestForm_Open_DiscardsPreviousSession(t *testing.T) {
	f := New(nil, Handlers{})
	f.Open(&domain.Product{Name: "First", Description: "one", Price: 1, Stock: 1})
	f.Set(Fields{Name: "typed but abandoned", Description: "x", Price: "abc", Stock: ""})
	_, err := f.Submit()
	require.Error(t, err)
	require.NotEmpty(t, f.Err())

	f.Open(&domain.Product{Name: "Second", Description: "two", Price: 2, Stock: 2})
	assert.Equal(t, "Second", f.Fields().Name)
	assert.Empty(t, f.Err(), "error from the previous session should be cleared")
}

func TestForm_Submit_Success(t *testing.T) {
	rec := &recorder{}
	f := New(nil, rec.handlers())
	f.Open(nil)
	f.Set(Fields{Name: "Mug", Description: "Ceramic", Price: "12.75", Stock: "30"})

	input, err := f.Submit()
	require.NoError(t, err)

	want := domain.ProductInput{Name: "Mug", Description: "Ceramic", Price: 12.75, Stock: 30}
	assert.Equal(t, want, input)
	require.Len(t, rec.submitted, 1)
	assert.Equal(t, want, rec.submitted[0])
	assert.Equal(t, 1, rec.closed)
}

func TestForm_Submit_Rejections(t *testing.T) {
	valid := Fields{Name: "Mug", Description: "Ceramic", Price: "1.00", Stock: "3"}

	tests := []struct {
		name   string
		mutate func(*Fields)
		field  string
	}{
		{"missing name", func(f *Fields) { f.Name = "" }, "name"},
		{"missing description", func(f *Fields) { f.Description = "" }, "description"},
		{"missing price", func(f *Fields) { f.Price = "" }, "price"},
		{"missing stock", func(f *Fields) { f.Stock = "" }, "stock"},
		{"non-numeric price", func(f *Fields) { f.Price = "cheap" }, "price"},
		{"negative price", func(f *Fields) { f.Price = "-1" }, "price"},
		{"fractional stock", func(f *Fields) { f.Stock = "2.5" }, "stock"},
		{"negative stock", func(f *Fields) { f.Stock = "-2" }, "stock"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			f := New(nil, rec.handlers())
			fields := valid
			tc.mutate(&fields)
			f.Set(fields)

			_, err := f.Submit()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, err.Error(), f.Err())
			assert.Empty(t, rec.submitted, "nothing should reach the controller")
			assert.Zero(t, rec.closed, "dialog should stay open")
		})
	}
}
