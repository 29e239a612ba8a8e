// Package match runs a timed fishing match: it builds the roster and venue,
// rolls catches on a fixed tick, counts the clock down and settles standings
// and rewards when time runs out.
package match

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"fishing-clash/internal/bots"
	"fishing-clash/internal/species"
	"fishing-clash/internal/tackle"
)

const (
	// MaxRoster caps the number of anglers in one match, the player included.
	MaxRoster = 15

	// MinRoster is the fewest anglers a match will start with.
	MinRoster = 2

	DefaultDuration = 3 * time.Minute
)

var (
	ErrRosterTooSmall     = errors.New("match needs at least two anglers")
	ErrMissingPlayer      = errors.New("match needs a player id")
	ErrInvalidVenue       = errors.New("venue needs two different species")
	ErrAlreadyStarted     = errors.New("match already started")
	ErrMatchEnded         = errors.New("match has ended")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrNotHuman           = errors.New("bot tackle cannot be changed")
)

// Mode selects practice (bots) or live (other humans) play.
type Mode int

const (
	Practice Mode = iota
	Live
)

func (m Mode) String() string {
	if m == Live {
		return "live"
	}
	return "practice"
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "practice":
		*m = Practice
	case "live":
		*m = Live
	default:
		return fmt.Errorf("unknown mode %q", text)
	}
	return nil
}

// State is the match lifecycle: Setup, Running, Ended.
type State int

const (
	StateSetup State = iota
	StateRunning
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{StateSetup, StateRunning, StateEnded} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

// Options configures a new session.
type Options struct {
	MatchID string
	Mode    Mode
	Player  Player

	// Entrants are the other humans in a live match.
	Entrants []Entrant

	// BotCount is how many bots join a practice match; zero or less fills the
	// roster from the whole name pool.
	BotCount int

	// Venue overrides the random venue pick. Keys that do not resolve score
	// every loadout as neutral.
	Venue *Venue

	Duration     time.Duration
	TickInterval time.Duration

	Species *species.Catalog
	Tackle  tackle.Catalog
	Rand    Rand
	Clock   clockwork.Clock
	Logger  *slog.Logger

	// OnEnd receives the result exactly once.
	OnEnd func(Result)
	// OnCatch receives every landed fish.
	OnCatch func(CatchEvent)
}

// Session is one match. All methods are safe for concurrent use; every
// state change happens under one lock so a catch pass always completes
// before the next one, or a loadout change, begins.
type Session struct {
	mu sync.Mutex

	id       string
	mode     Mode
	state    State
	playerID string

	participants []*Participant
	venue        Venue
	species      *species.Catalog

	duration  time.Duration
	tickEvery time.Duration
	remaining int
	ticks     int

	// accumulators for Advance
	sinceTick      time.Duration
	sinceCountdown time.Duration

	// elapsed is session time since Start. Advance moves it directly; when
	// the session is driven by its clock it follows the clock.
	elapsed time.Duration

	rng    Rand
	clock  clockwork.Clock
	logger *slog.Logger

	onEnd   func(Result)
	onCatch func(CatchEvent)

	startedAt time.Time
	result    *Result
	done      chan struct{}
}

// NewSession builds the roster and venue and leaves the session in Setup.
func NewSession(opts Options) (*Session, error) {
	if opts.Player.ID == "" {
		return nil, ErrMissingPlayer
	}
	s := &Session{
		id:        opts.MatchID,
		mode:      opts.Mode,
		state:     StateSetup,
		playerID:  opts.Player.ID,
		species:   opts.Species,
		duration:  opts.Duration,
		tickEvery: opts.TickInterval,
		rng:       opts.Rand,
		clock:     opts.Clock,
		logger:    opts.Logger,
		onEnd:     opts.OnEnd,
		onCatch:   opts.OnCatch,
		done:      make(chan struct{}),
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.species == nil {
		s.species = species.Default()
	}
	catalog := opts.Tackle
	if catalog.Empty() {
		catalog = tackle.Standard()
	}
	if s.duration <= 0 {
		s.duration = DefaultDuration
	}
	if s.tickEvery <= 0 {
		s.tickEvery = PracticeTick
		if s.mode == Live {
			s.tickEvery = LiveTick
		}
	}
	if s.rng == nil {
		s.rng = NewRand(time.Now().UnixNano())
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.remaining = int((s.duration + time.Second - 1) / time.Second)

	venue, err := s.pickVenue(opts.Venue)
	if err != nil {
		return nil, err
	}
	s.venue = venue
	dominant, _ := s.species.Lookup(venue.Dominant)

	s.addParticipant(&Participant{
		ID:      opts.Player.ID,
		Name:    opts.Player.Name,
		Country: opts.Player.Country,
		Avatar:  opts.Player.Avatar,
		Loadout: opts.Player.Loadout,
	})
	switch s.mode {
	case Live:
		for _, e := range opts.Entrants {
			var l tackle.Loadout
			if e.Loadout != nil {
				l = *e.Loadout
			} else {
				l = bots.GenerateLoadout(s.rng, dominant, catalog)
			}
			s.addParticipant(&Participant{ID: e.ID, Name: e.Name, Country: e.Country, Avatar: e.Avatar, Loadout: l})
		}
	default:
		n := opts.BotCount
		if n <= 0 {
			n = len(bots.Names)
		}
		for i, name := range bots.Roster(n) {
			s.addParticipant(&Participant{
				ID:      fmt.Sprintf("bot-%d", i+1),
				Name:    name,
				IsBot:   true,
				Loadout: bots.GenerateLoadout(s.rng, dominant, catalog),
			})
		}
	}
	if len(s.participants) < MinRoster {
		return nil, fmt.Errorf("%s match with %d angler(s): %w", s.mode, len(s.participants), ErrRosterTooSmall)
	}
	return s, nil
}

func (s *Session) pickVenue(override *Venue) (Venue, error) {
	if override != nil {
		if override.Dominant == "" || override.Dominant == override.Secondary {
			return Venue{}, fmt.Errorf("%q/%q: %w", override.Dominant, override.Secondary, ErrInvalidVenue)
		}
		return *override, nil
	}
	dominant, secondary := s.species.PickVenue(s.rng)
	if dominant == nil {
		return Venue{}, fmt.Errorf("catalog has %d species: %w", s.species.Len(), ErrInvalidVenue)
	}
	return Venue{Dominant: dominant.Key(), Secondary: secondary.Key()}, nil
}

// addParticipant appends p unless the roster is full or the id is taken.
func (s *Session) addParticipant(p *Participant) {
	if len(s.participants) >= MaxRoster {
		return
	}
	for _, existing := range s.participants {
		if existing.ID == p.ID {
			return
		}
	}
	p.Order = len(s.participants)
	p.Loadout.DominantFish = s.venue.Dominant
	p.Loadout.SecondaryFish = s.venue.Secondary
	s.participants = append(s.participants, p)
}

func (s *Session) ID() string { return s.id }

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) PlayerID() string { return s.playerID }

func (s *Session) Venue() Venue { return s.venue }

func (s *Session) TickInterval() time.Duration { return s.tickEvery }

func (s *Session) Clock() clockwork.Clock { return s.clock }

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} { return s.done }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the final result once the session has ended.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Start moves the session from Setup to Running.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSetup {
		return ErrAlreadyStarted
	}
	s.state = StateRunning
	s.startedAt = s.clock.Now()
	s.logger.Info("Match started",
		"match", s.id,
		"mode", s.mode.String(),
		"anglers", len(s.participants),
		"dominant", s.venue.Dominant,
		"secondary", s.venue.Secondary,
		"duration", s.duration,
	)
	return nil
}

// nowLocked returns the session clock: the start time plus whichever is
// further along, the time Advance has simulated or the time the clock has
// measured.
func (s *Session) nowLocked() time.Time {
	if s.startedAt.IsZero() {
		return s.clock.Now()
	}
	if measured := s.clock.Since(s.startedAt); measured > s.elapsed {
		s.elapsed = measured
	}
	return s.startedAt.Add(s.elapsed)
}

// Elapsed returns session time since Start.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startedAt.IsZero() {
		return 0
	}
	s.nowLocked()
	return s.elapsed
}

// Tick runs one catch pass. It does nothing unless the session is running.
func (s *Session) Tick() []CatchEvent {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return nil
	}
	events := s.tickLocked()
	s.mu.Unlock()

	s.emit(events, nil)
	return events
}

// Countdown takes one second off the clock and reports whether the session
// has ended.
func (s *Session) Countdown() bool {
	s.mu.Lock()
	if s.state != StateRunning {
		ended := s.state == StateEnded
		s.mu.Unlock()
		return ended
	}
	result := s.countdownLocked()
	s.mu.Unlock()

	s.emit(nil, result)
	return result != nil
}

func (s *Session) countdownLocked() *Result {
	s.remaining--
	if s.remaining > 0 {
		return nil
	}
	s.remaining = 0
	return s.finishLocked(false)
}

// Advance moves the session forward by dt, firing the countdown every second
// and a catch pass every tick interval. The two are paced independently and
// applied in time order; a catch pass due at the same instant as a countdown
// step runs first.
func (s *Session) Advance(dt time.Duration) {
	s.mu.Lock()
	var (
		events []CatchEvent
		result *Result
	)
	for s.state == StateRunning && dt > 0 {
		step := min(s.tickEvery-s.sinceTick, time.Second-s.sinceCountdown, dt)
		s.sinceTick += step
		s.sinceCountdown += step
		s.elapsed += step
		dt -= step

		if s.sinceTick >= s.tickEvery {
			s.sinceTick = 0
			events = append(events, s.tickLocked()...)
		}
		if s.sinceCountdown >= time.Second {
			s.sinceCountdown = 0
			result = s.countdownLocked()
		}
	}
	s.mu.Unlock()

	s.emit(events, result)
}

// SetLoadout replaces a human participant's whole loadout. The change is read
// on the next catch pass.
func (s *Session) SetLoadout(id string, l tackle.Loadout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEnded {
		return ErrMatchEnded
	}
	p := s.find(id)
	if p == nil {
		return fmt.Errorf("%s: %w", id, ErrUnknownParticipant)
	}
	if p.IsBot {
		return fmt.Errorf("%s: %w", id, ErrNotHuman)
	}
	l.DominantFish = s.venue.Dominant
	l.SecondaryFish = s.venue.Secondary
	p.Loadout = l
	return nil
}

// Loadout returns a participant's current loadout.
func (s *Session) Loadout(id string) (tackle.Loadout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.find(id)
	if p == nil {
		return tackle.Loadout{}, false
	}
	return p.Loadout, true
}

func (s *Session) find(id string) *Participant {
	for _, p := range s.participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Abort ends the session now with the standings as they are. It reports
// false if the session had already ended.
func (s *Session) Abort() bool {
	s.mu.Lock()
	if s.state == StateEnded {
		s.mu.Unlock()
		return false
	}
	result := s.finishLocked(true)
	s.mu.Unlock()

	s.emit(nil, result)
	return true
}

// finishLocked freezes the standings and builds the result. Callers hold the
// lock and must only call it before the session has ended.
func (s *Session) finishLocked(aborted bool) *Result {
	s.state = StateEnded
	standings := rank(s.participants)

	r := Result{
		MatchID:   s.id,
		PlayerID:  s.playerID,
		Live:      s.mode == Live,
		Venue:     s.venue,
		Standings: standings,
		Aborted:   aborted,
		StartedAt: s.startedAt,
		EndedAt:   s.nowLocked(),
	}
	for i, p := range standings {
		if p.ID == s.playerID {
			r.Rank = i + 1
			r.PlayerWeight = p.TotalWeight
			continue
		}
		if p.TotalWeight > r.TopOpponentWeight {
			r.TopOpponentWeight = p.TotalWeight
		}
	}
	r.Reward = Payout(r.Rank, r.Live)
	s.result = &r
	close(s.done)

	s.logger.Info("Match ended",
		"match", s.id,
		"rank", r.Rank,
		"weight", r.PlayerWeight,
		"reward", r.Reward,
		"aborted", aborted,
		"ticks", s.ticks,
	)
	return &r
}

// emit delivers callbacks outside the lock.
func (s *Session) emit(events []CatchEvent, result *Result) {
	if s.onCatch != nil {
		for _, e := range events {
			s.onCatch(e)
		}
	}
	if result != nil && s.onEnd != nil {
		s.onEnd(*result)
	}
}
