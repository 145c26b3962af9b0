package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolverCachePutGet(t *testing.T) {
	c := NewResolverCache()

	c.put(kindPlan, "Magnolia", 1)
	c.put(kindVendor, "Magnolia", 2)

	id, ok := c.get(kindPlan, "Magnolia")
	assert.True(t, ok)
	assert.EqualValues(t, 1, id)

	// Same key under a different kind is a different entry
	id, ok = c.get(kindVendor, "Magnolia")
	assert.True(t, ok)
	assert.EqualValues(t, 2, id)

	_, ok = c.get(kindItem, "Magnolia")
	assert.False(t, ok)
}

func TestResolverCacheRollbackEvictsPendingOnly(t *testing.T) {
	c := NewResolverCache()

	c.beginRow()
	c.put(kindPlan, "Magnolia", 1)
	c.commitRow()

	c.beginRow()
	c.put(kindVendor, "ABC Supply", 2)
	c.put(kindItem, "Drywall 1/2in", 3)
	c.rollbackRow()

	_, ok := c.get(kindVendor, "ABC Supply")
	assert.False(t, ok)
	_, ok = c.get(kindItem, "Drywall 1/2in")
	assert.False(t, ok)

	// Entries committed by earlier rows survive
	id, ok := c.get(kindPlan, "Magnolia")
	assert.True(t, ok)
	assert.EqualValues(t, 1, id)
}

func TestResolverCacheRollbackKeepsPreexistingEntry(t *testing.T) {
	c := NewResolverCache()

	c.beginRow()
	c.put(kindPlan, "Magnolia", 1)
	c.commitRow()

	// Re-putting an existing key during a row must not mark it pending
	c.beginRow()
	c.put(kindPlan, "Magnolia", 1)
	c.rollbackRow()

	_, ok := c.get(kindPlan, "Magnolia")
	assert.True(t, ok)
}

func TestResolverCacheItemFormulaLifecycle(t *testing.T) {
	c := NewResolverCache()
	f := "heated_sf_inside_studs / 32"

	c.beginRow()
	c.put(kindItem, "Carpet Standard", 1)
	c.putItemFormula("Carpet Standard", &f)
	c.commitRow()

	// Committed formulas survive past the row, like the item id itself
	got := c.itemFormula("Carpet Standard")
	if assert.NotNil(t, got) {
		assert.Equal(t, f, *got)
	}

	c.beginRow()
	c.put(kindItem, "Drywall 1/2in", 2)
	c.putItemFormula("Drywall 1/2in", &f)
	c.rollbackRow()

	// A rolled-back item takes its formula with it
	_, ok := c.get(kindItem, "Drywall 1/2in")
	assert.False(t, ok)
	assert.Nil(t, c.itemFormula("Drywall 1/2in"))

	c.clear()
	assert.Nil(t, c.itemFormula("Carpet Standard"))
}

func TestResolverCacheClear(t *testing.T) {
	c := NewResolverCache()
	c.put(kindPlan, "Magnolia", 1)
	assert.Equal(t, 1, c.Len())

	c.clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.get(kindPlan, "Magnolia")
	assert.False(t, ok)
}
