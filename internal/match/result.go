package match

import "time"

// Result is the final, immutable outcome of a match for its player.
type Result struct {
	MatchID           string        `json:"matchId"`
	PlayerID          string        `json:"playerId"`
	PlayerWeight      float64       `json:"playerWeight"`
	TopOpponentWeight float64       `json:"topOpponentWeight"`
	Rank              int           `json:"rank"`
	Reward            int           `json:"reward"`
	Standings         []Participant `json:"standings"`
	Live              bool          `json:"live"`
	Venue             Venue         `json:"venue"`
	Aborted           bool          `json:"aborted,omitempty"`
	StartedAt         time.Time     `json:"startedAt"`
	EndedAt           time.Time     `json:"endedAt"`
}

// Winner returns the top of the standings.
func (r Result) Winner() (Participant, bool) {
	if len(r.Standings) == 0 {
		return Participant{}, false
	}
	return r.Standings[0], true
}

// Standing is one row of a live leaderboard.
type Standing struct {
	Rank int `json:"rank"`
	Participant
	Catching bool `json:"catching"`
}

// Snapshot is a point-in-time view of a running match.
type Snapshot struct {
	MatchID   string     `json:"matchId"`
	Mode      Mode       `json:"mode"`
	State     State      `json:"state"`
	Remaining int        `json:"remaining"`
	Venue     Venue      `json:"venue"`
	Standings []Standing `json:"standings"`
}

// Snapshot returns the current standings. A participant is flagged Catching
// for CatchFlash after each fish.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowLocked()
	ranked := rank(s.participants)
	standings := make([]Standing, len(ranked))
	for i, p := range ranked {
		standings[i] = Standing{
			Rank:        i + 1,
			Participant: p,
			Catching:    p.LastCatchAt != nil && now.Sub(*p.LastCatchAt) < CatchFlash,
		}
	}
	return Snapshot{
		MatchID:   s.id,
		Mode:      s.mode,
		State:     s.state,
		Remaining: s.remaining,
		Venue:     s.venue,
		Standings: standings,
	}
}
