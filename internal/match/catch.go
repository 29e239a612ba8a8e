package match

import (
	"math"
	"time"

	"fishing-clash/internal/scoring"
)

const (
	MinCatchWeight = 0.1
	MaxCatchWeight = 2.6

	// CatchFlash is how long a participant shows as "catching" after a bite.
	CatchFlash = 400 * time.Millisecond

	LiveTick     = 1200 * time.Millisecond
	PracticeTick = 2500 * time.Millisecond
)

// Rates are the catch-probability constants for one kind of angler.
type Rates struct {
	Base  float64
	Bonus float64
}

var (
	BotRates   = Rates{Base: 0.04, Bonus: 0.14}
	HumanRates = Rates{Base: 0.06, Bonus: 0.18}
)

// CatchProbability is the chance of a bite on one tick. Efficiency is raised
// to 1.5 so a well matched loadout earns disproportionately more bites.
func CatchProbability(efficiency float64, isBot bool) float64 {
	r := HumanRates
	if isBot {
		r = BotRates
	}
	return r.Base + math.Pow(efficiency, 1.5)*r.Bonus
}

// CatchWeight draws a fish weight in [0.1, 2.6), rounded to 2 decimals.
func CatchWeight(rng Rand) float64 {
	return round2(MinCatchWeight + rng.Float64()*(MaxCatchWeight-MinCatchWeight))
}

// CatchEvent reports one landed fish.
type CatchEvent struct {
	MatchID       string    `json:"matchId"`
	ParticipantID string    `json:"participantId"`
	Name          string    `json:"name"`
	Species       string    `json:"species"`
	Weight        float64   `json:"weight"`
	TotalWeight   float64   `json:"totalWeight"`
	At            time.Time `json:"at"`
}

// tickLocked runs one catch pass over every participant. Efficiency is
// recomputed for each participant on every pass so tackle changes apply on
// the next tick.
func (s *Session) tickLocked() []CatchEvent {
	now := s.nowLocked()
	var events []CatchEvent
	for _, p := range s.participants {
		efficiency := scoring.EfficiencyFor(p.Loadout, s.species, s.venue.Dominant)
		if s.rng.Float64() >= CatchProbability(efficiency, p.IsBot) {
			p.Streak = 0
			continue
		}
		weight := CatchWeight(s.rng)
		p.TotalWeight = round2(p.TotalWeight + weight)
		p.Catches++
		p.Streak++
		at := now
		p.LastCatchAt = &at
		events = append(events, CatchEvent{
			MatchID:       s.id,
			ParticipantID: p.ID,
			Name:          p.Name,
			Species:       s.venue.Dominant,
			Weight:        weight,
			TotalWeight:   p.TotalWeight,
			At:            now,
		})
	}
	s.ticks++
	return events
}
