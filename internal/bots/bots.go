// Package bots builds the computer-controlled anglers used to fill practice
// matches.
package bots

import (
	"fishing-clash/internal/species"
	"fishing-clash/internal/tackle"
)

// PreferredChance is how often a bot reaches for the species' preferred
// tackle in a dimension instead of anything in the shop.
const PreferredChance = 0.7

// Rand is the randomness a bot draws from. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Names is the fixed pool practice opponents are named from.
var Names = []string{
	"Reel Rita", "Big Barry", "Silent Sam", "Maggot Mike", "Swim Feeder Sue",
	"Captain Carp", "Tench Tom", "Bream Queen", "Method Matt", "Pellet Pete",
	"Groundbait Gary", "Hooked Holly", "Casting Cass", "Nettle Ned",
}

// Roster returns the first n names from the pool, capped at its size.
func Roster(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(Names) {
		n = len(Names)
	}
	out := make([]string, n)
	copy(out, Names[:n])
	return out
}

// GenerateLoadout picks a loadout for a bot fishing for dominant. Each
// dimension is chosen independently: usually from the species' preferred set,
// otherwise from the whole catalog. Without a species every dimension comes
// from the catalog.
func GenerateLoadout(rng Rand, dominant *species.Species, catalog tackle.Catalog) tackle.Loadout {
	var l tackle.Loadout
	for _, d := range tackle.Dimensions {
		l = l.With(d, pick(rng, dominant, catalog, d))
	}
	return l
}

func pick(rng Rand, dominant *species.Species, catalog tackle.Catalog, d tackle.Dimension) string {
	if dominant != nil {
		preferred := dominant.Prefs.Values(d)
		if rng.Float64() < PreferredChance && len(preferred) > 0 {
			return preferred[rng.IntN(len(preferred))]
		}
	}
	all := catalog.Values(d)
	if len(all) == 0 {
		return ""
	}
	return all[rng.IntN(len(all))]
}
