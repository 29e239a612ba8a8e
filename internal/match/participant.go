package match

import (
	"sort"
	"time"

	"fishing-clash/internal/tackle"
)

// Participant is one angler in a match.
type Participant struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	IsBot       bool           `json:"isBot"`
	Country     string         `json:"country,omitempty"`
	Avatar      string         `json:"avatar,omitempty"`
	Loadout     tackle.Loadout `json:"loadout"`
	TotalWeight float64        `json:"totalWeight"`
	Catches     int            `json:"catches"`
	Streak      int            `json:"streak"`
	LastCatchAt *time.Time     `json:"lastCatchAt,omitempty"`

	// Order is the roster position, used to break weight ties.
	Order int `json:"-"`
}

// Player is the local human a session is run for.
type Player struct {
	ID      string
	Name    string
	Country string
	Avatar  string
	Loadout tackle.Loadout
}

// Entrant is another human in a live match. A nil Loadout is generated the
// same way a bot's is.
type Entrant struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Country string          `json:"country,omitempty"`
	Avatar  string          `json:"avatar,omitempty"`
	Loadout *tackle.Loadout `json:"loadout,omitempty"`
}

// Venue pairs the species a match is scored against with a second species
// that only shows on the venue card.
type Venue struct {
	Dominant  string `json:"dominant"`
	Secondary string `json:"secondary"`
}

// rank returns a copy of ps ordered by weight, heaviest first, keeping roster
// order between equal weights.
func rank(ps []*Participant) []Participant {
	out := make([]Participant, len(ps))
	for i, p := range ps {
		out[i] = *p
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalWeight > out[j].TotalWeight
	})
	return out
}
