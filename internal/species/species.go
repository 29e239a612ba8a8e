// Package species holds the fish reference data: weight ranges and the
// tackle each species prefers.
package species

import (
	"slices"

	"fishing-clash/internal/tackle"
)

// Prefs holds, per tackle dimension, the set of values a species responds to.
// Order within a set carries no meaning.
type Prefs map[tackle.Dimension][]string

// Allows reports whether value is preferred for d.
func (p Prefs) Allows(d tackle.Dimension, value string) bool {
	return slices.Contains(p[d], value)
}

// Values returns the preferred set for d.
func (p Prefs) Values(d tackle.Dimension) []string {
	return slices.Clone(p[d])
}

// Species is one fish a venue can hold.
type Species struct {
	Name      string  `json:"name"`
	Variant   string  `json:"variant"`
	MinWeight float64 `json:"minWeight"`
	MaxWeight float64 `json:"maxWeight"`
	Prefs     Prefs   `json:"-"`
}

// Key is the composite lookup identity, e.g. "Big Bream".
func (s *Species) Key() string {
	if s.Variant == "" {
		return s.Name
	}
	return s.Variant + " " + s.Name
}
