// Package scoring rates a loadout against a venue's dominant species.
package scoring

import (
	"fishing-clash/internal/species"
	"fishing-clash/internal/tackle"
)

// Neutral is the efficiency used when the species has no preference data.
const Neutral = 0.5

// TotalWeight is the sum of Weight over every dimension.
var TotalWeight = totalWeight()

func totalWeight() int {
	sum := 0
	for _, d := range tackle.Dimensions {
		sum += Weight(d)
	}
	return sum
}

// Weight returns how much a matching choice in d is worth. Bait, groundbait
// and hook decide most bites; the rest are secondary tactics.
func Weight(d tackle.Dimension) int {
	switch d {
	case tackle.Bait, tackle.Groundbait:
		return 4
	case tackle.Hook:
		return 3
	case tackle.CastingDistance:
		return 2
	default:
		return 1
	}
}

// DimensionScore is the outcome for one dimension.
type DimensionScore struct {
	Dimension tackle.Dimension `json:"dimension"`
	Value     string           `json:"value"`
	Matched   bool             `json:"matched"`
	Awarded   int              `json:"awarded"`
	Weight    int              `json:"weight"`
}

// Breakdown scores every dimension of l against s. A dimension earns its
// full weight when the chosen value is preferred and nothing otherwise.
// It returns nil when s is nil.
func Breakdown(l tackle.Loadout, s *species.Species) []DimensionScore {
	if s == nil {
		return nil
	}
	out := make([]DimensionScore, 0, len(tackle.Dimensions))
	for _, d := range tackle.Dimensions {
		ds := DimensionScore{Dimension: d, Value: l.Get(d), Weight: Weight(d)}
		if s.Prefs.Allows(d, ds.Value) {
			ds.Matched = true
			ds.Awarded = ds.Weight
		}
		out = append(out, ds)
	}
	return out
}

// Efficiency returns how well l suits s, in [0, 1]. A nil species scores
// Neutral.
func Efficiency(l tackle.Loadout, s *species.Species) float64 {
	if s == nil {
		return Neutral
	}
	awarded := 0
	for _, ds := range Breakdown(l, s) {
		awarded += ds.Awarded
	}
	return float64(awarded) / float64(TotalWeight)
}

// Resolver finds species by composite key.
type Resolver interface {
	Lookup(key string) (*species.Species, bool)
}

// EfficiencyFor resolves key through r and scores l against it. A miss
// scores Neutral.
func EfficiencyFor(l tackle.Loadout, r Resolver, key string) float64 {
	s, ok := r.Lookup(key)
	if !ok {
		return Neutral
	}
	return Efficiency(l, s)
}
