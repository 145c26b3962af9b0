package importer

import "fmt"

// entityKind partitions the resolver cache by entity type so identical
// natural-key strings cannot collide across tables
type entityKind string

const (
	kindDivision  entityKind = "division"
	kindCommunity entityKind = "community"
	kindPlan      entityKind = "plan"
	kindElevation entityKind = "elevation"
	kindOption    entityKind = "option"
	kindJob       entityKind = "job"
	kindCostGroup entityKind = "cost_group"
	kindCostCode  entityKind = "cost_code"
	kindVendor    entityKind = "vendor"
	kindItem      entityKind = "item"
	kindProduct   entityKind = "product"
)

type cacheKey struct {
	kind entityKind
	key  string
}

// ResolverCache memoizes natural key to surrogate id lookups for one import
// run. It is a performance optimization only: the storage-level unique
// constraints remain the authority on entity existence, and the cache is
// never shared across concurrent runs.
//
// Entries added during a row are tracked as pending until the row's savepoint
// commits; rolling the row back evicts them so ids from undone inserts cannot
// leak into later rows.
//
// Item entries carry their quantity formula text alongside the id. The memo
// has to live here rather than on the resolver: the resolver is rebuilt for
// every file transaction, and a cached item hit in a later file still needs
// to know its formula.
type ResolverCache struct {
	entries  map[cacheKey]int64
	formulas map[string]*string
	pending  []cacheKey
}

func NewResolverCache() *ResolverCache {
	return &ResolverCache{
		entries:  make(map[cacheKey]int64),
		formulas: make(map[string]*string),
	}
}

func (c *ResolverCache) get(kind entityKind, key string) (int64, bool) {
	id, ok := c.entries[cacheKey{kind, key}]
	return id, ok
}

func (c *ResolverCache) put(kind entityKind, key string, id int64) {
	k := cacheKey{kind, key}
	if _, exists := c.entries[k]; !exists {
		c.pending = append(c.pending, k)
	}
	c.entries[k] = id
}

func (c *ResolverCache) itemFormula(name string) *string {
	return c.formulas[name]
}

func (c *ResolverCache) putItemFormula(name string, formula *string) {
	c.formulas[name] = formula
}

// beginRow starts tracking entries added by the current row
func (c *ResolverCache) beginRow() {
	c.pending = c.pending[:0]
}

// commitRow keeps the current row's entries
func (c *ResolverCache) commitRow() {
	c.pending = c.pending[:0]
}

// rollbackRow evicts entries added since beginRow
func (c *ResolverCache) rollbackRow() {
	for _, k := range c.pending {
		delete(c.entries, k)
		if k.kind == kindItem {
			delete(c.formulas, k.key)
		}
	}
	c.pending = c.pending[:0]
}

// clear drops everything; used when a whole file transaction rolls back
func (c *ResolverCache) clear() {
	c.entries = make(map[cacheKey]int64)
	c.formulas = make(map[string]*string)
	c.pending = c.pending[:0]
}

// Len reports the number of cached resolutions
func (c *ResolverCache) Len() int {
	return len(c.entries)
}

func scopedKey(parentID int64, name string) string {
	return fmt.Sprintf("%d\x1f%s", parentID, name)
}
