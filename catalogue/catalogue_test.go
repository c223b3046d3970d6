package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabuzi/cottontaildb/value"
)

func newTestCatalogue(t *testing.T) *Catalogue {
	c := New()
	c.CreateSchema("shop")
	err := c.CreateEntity("shop", "products", []ColumnDef{
		{Name: "id", Kind: value.Long},
		{Name: "embedding", Kind: value.Float, Vector: true, LogicalSize: 128},
	})
	assert.NoError(t, err)
	return c
}

func TestColumnLookup(t *testing.T) {
	c := newTestCatalogue(t)

	col, err := c.Column("shop", "products", "embedding")
	assert.NoError(t, err)
	assert.Equal(t, 128, col.LogicalSize)
	assert.Equal(t, "shop.products.embedding", col.QualifiedName())
}

func TestUnknownEntityErrors(t *testing.T) {
	c := newTestCatalogue(t)
	_, err := c.Entity("shop", "orders")
	assert.Error(t, err)
}

func TestDuplicateEntityErrors(t *testing.T) {
	c := newTestCatalogue(t)
	err := c.CreateEntity("shop", "products", nil)
	assert.Error(t, err)
}

func TestAddColumnAfterCreation(t *testing.T) {
	c := newTestCatalogue(t)
	err := c.AddColumn("shop", "products", ColumnDef{Name: "price", Kind: value.Double})
	assert.NoError(t, err)

	col, err := c.Column("shop", "products", "price")
	assert.NoError(t, err)
	assert.Equal(t, value.Double, col.Kind)
}
