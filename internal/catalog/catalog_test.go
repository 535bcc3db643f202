package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasheela-alla/cartIt/internal/domain"
)

func TestNew_PreservesOrder(t *testing.T) {
	c := New([]domain.Product{
		{ID: "b", Name: "Second"},
		{ID: "a", Name: "First"},
	})

	products := c.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "b", products[0].ID)
	assert.Equal(t, "a", products[1].ID)
}

func TestNew_FirstDuplicateWins(t *testing.T) {
	c := New([]domain.Product{
		{ID: "a", Name: "Original"},
		{ID: "a", Name: "Duplicate"},
	})

	assert.Equal(t, 1, c.Len())
	p, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Original", p.Name)
}

func TestGet_Unknown(t *testing.T) {
	c := New(nil)

	_, ok := c.Get("ghost")
	assert.False(t, ok)
}

func TestProducts_ReturnsCopy(t *testing.T) {
	c := New([]domain.Product{{ID: "a", Name: "Original"}})

	products := c.Products()
	products[0].Name = "Mutated"

	again := c.Products()
	assert.Equal(t, "Original", again[0].Name)
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, 6, c.Len())

	p, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Nike Air Jordan 1", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("189.99")))

	// Every entry has the fields the storefront renders.
	for _, p := range c.Products() {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Category)
		assert.NotEmpty(t, p.Image)
		assert.NotEmpty(t, p.Color)
		assert.True(t, p.Price.IsPositive())
	}
}

// ---------------------------------------------------------------------------
// LoadHTTP
// ---------------------------------------------------------------------------

type stdDoer struct{}

func (stdDoer) Do(_ context.Context, req *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(req)
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"p1","name":"Wool Jacket","price":"100.00","category":"outerwear","image":"jacket.jpg","color":"Black"},
			{"id":"p2","name":"Linen Shirt","price":"45.50","category":"shirts","image":"shirt.jpg","color":"White"}
		]`))
	}))
	defer srv.Close()

	c, err := LoadHTTP(context.Background(), stdDoer{}, srv.URL)

	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	p, ok := c.Get("p1")
	require.True(t, ok)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("100.00")))
}

func TestLoadHTTP_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := LoadHTTP(context.Background(), stdDoer{}, srv.URL)

	assert.ErrorContains(t, err, "status 500")
}

func TestLoadHTTP_EmptyCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := LoadHTTP(context.Background(), stdDoer{}, srv.URL)

	assert.ErrorContains(t, err, "no products")
}

func TestLoadHTTP_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := LoadHTTP(context.Background(), stdDoer{}, srv.URL)

	assert.ErrorContains(t, err, "decode catalog response")
}
