package tackle

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

var ErrUnknownValue = errors.New("unknown tackle value")

// ValueError describes a loadout value the catalog does not stock.
type ValueError struct {
	Dimension  Dimension
	Value      string
	Suggestion string
}

func (e *ValueError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: no value chosen", e.Dimension)
	}
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: unknown value %q (did you mean %q?)", e.Dimension, e.Value, e.Suggestion)
	}
	return fmt.Sprintf("%s: unknown value %q", e.Dimension, e.Value)
}

func (e *ValueError) Unwrap() error { return ErrUnknownValue }

// Catalog holds the legal values for every dimension.
type Catalog struct {
	values [dimensionCount][]string
}

// NewCatalog builds a catalog from per-dimension value lists. Missing
// dimensions are left empty.
func NewCatalog(values map[Dimension][]string) Catalog {
	var c Catalog
	for d, vs := range values {
		if d < 0 || int(d) >= dimensionCount {
			continue
		}
		c.values[d] = slices.Clone(vs)
	}
	return c
}

// Values returns the legal values for d in catalog order.
func (c Catalog) Values(d Dimension) []string {
	if d < 0 || int(d) >= dimensionCount {
		return nil
	}
	return slices.Clone(c.values[d])
}

// Contains reports whether value is stocked for d.
func (c Catalog) Contains(d Dimension, value string) bool {
	if d < 0 || int(d) >= dimensionCount {
		return false
	}
	return slices.Contains(c.values[d], value)
}

// Validate checks every dimension of l against the catalog and returns the
// first offending value as a *ValueError.
func (c Catalog) Validate(l Loadout) error {
	for _, d := range Dimensions {
		v := l.Get(d)
		if v == "" {
			return &ValueError{Dimension: d}
		}
		if !c.Contains(d, v) {
			return &ValueError{Dimension: d, Value: v, Suggestion: c.suggest(d, v)}
		}
	}
	return nil
}

func (c Catalog) suggest(d Dimension, value string) string {
	needle := strings.ToLower(value)
	best, bestDist := "", -1
	for _, candidate := range c.values[d] {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
		if dist > suggestionLimit(len(candidate)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Standard returns the tackle shop's full range.
func Standard() Catalog {
	return NewCatalog(map[Dimension][]string{
		Rod:             {"Picker 2.7m", "Feeder 3.3m", "Feeder 3.6m", "Feeder 3.9m", "Method 3.0m", "Heavy Feeder 4.2m"},
		Reel:            {"2500 Front Drag", "3000 Front Drag", "4000 Front Drag", "4000 Baitrunner", "5000 Big Pit"},
		Line:            {"Mono 0.16", "Mono 0.18", "Mono 0.22", "Braid 0.10", "Fluorocarbon 0.20"},
		Hook:            {"Size 18", "Size 16", "Size 14", "Size 12", "Size 10", "Size 8"},
		Feeder:          {"Open End 20g", "Cage 30g", "Cage 40g", "Method 30g", "Pellet 25g", "Window 60g"},
		Bait:            {"Maggot", "Caster", "Worm", "Corn", "Pellet", "Boilie", "Bread"},
		Groundbait:      {"Roach Mix", "Brown Crumb", "Bream Mix", "Sweet Fishmeal", "Carp Method Mix", "River Mix"},
		Additive:        {"None", "Molasses", "Hemp Oil", "Vanilla", "Krill", "Garlic"},
		FeederTip:       {"0.5oz", "1oz", "2oz", "3oz", "4oz"},
		CastingDistance: {"20m", "30m", "40m", "50m", "60m"},
		CastingInterval: {"2min", "3min", "5min", "8min", "10min"},
	})
}

// Starter is the kit every new angler owns. It is a subset of Standard.
func Starter() Catalog {
	return NewCatalog(map[Dimension][]string{
		Rod:             {"Feeder 3.3m"},
		Reel:            {"3000 Front Drag"},
		Line:            {"Mono 0.18"},
		Hook:            {"Size 16", "Size 14"},
		Feeder:          {"Cage 30g"},
		Bait:            {"Maggot", "Worm"},
		Groundbait:      {"Brown Crumb"},
		Additive:        {"None"},
		FeederTip:       {"1oz", "2oz"},
		CastingDistance: {"20m", "30m", "40m", "50m", "60m"},
		CastingInterval: {"2min", "3min", "5min", "8min", "10min"},
	})
}

// Empty reports whether the catalog stocks nothing at all.
func (c Catalog) Empty() bool {
	for _, vs := range c.values {
		if len(vs) > 0 {
			return false
		}
	}
	return true
}
