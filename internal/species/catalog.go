package species

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Rand is the randomness PickVenue draws from. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Catalog is the immutable set of species, keyed by Species.Key.
type Catalog struct {
	list  []*Species
	byKey map[string]*Species
}

// NewCatalog indexes list. Later entries with a duplicate key are ignored.
func NewCatalog(list []*Species) *Catalog {
	c := &Catalog{byKey: make(map[string]*Species, len(list))}
	for _, s := range list {
		if _, dup := c.byKey[s.Key()]; dup {
			continue
		}
		c.list = append(c.list, s)
		c.byKey[s.Key()] = s
	}
	return c
}

// Lookup finds a species by exact composite key. A miss means there is no
// preference information for the key.
func (c *Catalog) Lookup(key string) (*Species, bool) {
	s, ok := c.byKey[key]
	return s, ok
}

// All returns the species in table order.
func (c *Catalog) All() []*Species {
	out := make([]*Species, len(c.list))
	copy(out, c.list)
	return out
}

// Keys returns every composite key in table order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.list))
	for i, s := range c.list {
		keys[i] = s.Key()
	}
	return keys
}

// Len reports the number of species.
func (c *Catalog) Len() int { return len(c.list) }

// PickVenue draws a dominant and a distinct secondary species. It returns
// nils when the catalog has fewer than two species.
func (c *Catalog) PickVenue(rng Rand) (dominant, secondary *Species) {
	if len(c.list) < 2 {
		return nil, nil
	}
	i := rng.IntN(len(c.list))
	j := rng.IntN(len(c.list) - 1)
	if j >= i {
		j++
	}
	return c.list[i], c.list[j]
}

// Search ranks species whose key fuzzily matches query, best first.
// An empty query returns every species.
func (c *Catalog) Search(query string) []*Species {
	if query == "" {
		return c.All()
	}
	ranks := fuzzy.RankFindFold(query, c.Keys())
	sort.Stable(ranks)
	out := make([]*Species, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, c.list[r.OriginalIndex])
	}
	return out
}
