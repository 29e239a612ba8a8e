package tackle

import "fmt"

// Dimension is one of the eleven tackle choices an angler makes before a match.
type Dimension int

const (
	Rod Dimension = iota
	Reel
	Line
	Hook
	Feeder
	Bait
	Groundbait
	Additive
	FeederTip
	CastingDistance
	CastingInterval

	dimensionCount = iota
)

// Dimensions lists every dimension in display order.
var Dimensions = [dimensionCount]Dimension{
	Rod, Reel, Line, Hook, Feeder, Bait, Groundbait, Additive, FeederTip, CastingDistance, CastingInterval,
}

var dimensionNames = [dimensionCount]string{
	"rod", "reel", "line", "hook", "feeder", "bait", "groundbait", "additive", "feederTip", "castingDistance", "castingInterval",
}

func (d Dimension) String() string {
	if d < 0 || int(d) >= dimensionCount {
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
	return dimensionNames[d]
}

// ParseDimension resolves a dimension from its String form.
func ParseDimension(s string) (Dimension, bool) {
	for i, name := range dimensionNames {
		if name == s {
			return Dimension(i), true
		}
	}
	return 0, false
}

func (d Dimension) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= dimensionCount {
		return nil, fmt.Errorf("unknown tackle dimension %d", int(d))
	}
	return []byte(dimensionNames[d]), nil
}

func (d *Dimension) UnmarshalText(text []byte) error {
	parsed, ok := ParseDimension(string(text))
	if !ok {
		return fmt.Errorf("unknown tackle dimension %q", text)
	}
	*d = parsed
	return nil
}

// Loadout is the full set of tackle an angler fishes with.
// DominantFish and SecondaryFish carry the venue's species keys for display.
type Loadout struct {
	Rod             string `json:"rod"`
	Reel            string `json:"reel"`
	Line            string `json:"line"`
	Hook            string `json:"hook"`
	Feeder          string `json:"feeder"`
	Bait            string `json:"bait"`
	Groundbait      string `json:"groundbait"`
	Additive        string `json:"additive"`
	FeederTip       string `json:"feederTip"`
	CastingDistance string `json:"castingDistance"`
	CastingInterval string `json:"castingInterval"`

	DominantFish  string `json:"dominantFish,omitempty"`
	SecondaryFish string `json:"secondaryFish,omitempty"`
}

// accessors maps every dimension to its field, in Dimensions order.
var accessors = [dimensionCount]func(*Loadout) *string{
	Rod:             func(l *Loadout) *string { return &l.Rod },
	Reel:            func(l *Loadout) *string { return &l.Reel },
	Line:            func(l *Loadout) *string { return &l.Line },
	Hook:            func(l *Loadout) *string { return &l.Hook },
	Feeder:          func(l *Loadout) *string { return &l.Feeder },
	Bait:            func(l *Loadout) *string { return &l.Bait },
	Groundbait:      func(l *Loadout) *string { return &l.Groundbait },
	Additive:        func(l *Loadout) *string { return &l.Additive },
	FeederTip:       func(l *Loadout) *string { return &l.FeederTip },
	CastingDistance: func(l *Loadout) *string { return &l.CastingDistance },
	CastingInterval: func(l *Loadout) *string { return &l.CastingInterval },
}

// Get returns the value chosen for d, or "" for an unknown dimension.
func (l Loadout) Get(d Dimension) string {
	if d < 0 || int(d) >= dimensionCount {
		return ""
	}
	return *accessors[d](&l)
}

// With returns a copy of l with d set to value.
func (l Loadout) With(d Dimension, value string) Loadout {
	if d < 0 || int(d) >= dimensionCount {
		return l
	}
	*accessors[d](&l) = value
	return l
}

// Complete reports whether every dimension has a value.
func (l Loadout) Complete() bool {
	for _, d := range Dimensions {
		if l.Get(d) == "" {
			return false
		}
	}
	return true
}
