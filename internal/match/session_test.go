package match

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"fishing-clash/internal/species"
	"fishing-clash/internal/tackle"
)

// scriptedRand replays fixed draws. Once the script runs out Float64 returns
// 0.999, which never lands a fish.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.999
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func bigBream(t *testing.T) *species.Species {
	t.Helper()
	s, ok := species.Default().Lookup("Big Bream")
	if !ok {
		t.Fatalf("Big Bream missing")
	}
	return s
}

func perfectFor(s *species.Species) tackle.Loadout {
	var l tackle.Loadout
	for _, d := range tackle.Dimensions {
		l = l.With(d, s.Prefs.Values(d)[0])
	}
	return l
}

func avoiding(s *species.Species) tackle.Loadout {
	shop := tackle.Standard()
	var l tackle.Loadout
	for _, d := range tackle.Dimensions {
		for _, v := range shop.Values(d) {
			if !s.Prefs.Allows(d, v) {
				l = l.With(d, v)
				break
			}
		}
	}
	return l
}

func practiceOptions(t *testing.T, bots int) Options {
	return Options{
		Mode:     Practice,
		Player:   Player{ID: "p1", Name: "Angler", Country: "GB", Loadout: perfectFor(bigBream(t))},
		BotCount: bots,
		Venue:    &Venue{Dominant: "Big Bream", Secondary: "Silver Roach"},
		Duration: 10 * time.Second,
		Rand:     NewRand(1),
		Logger:   quietLogger,
	}
}

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestPracticeRosterPutsPlayerFirst(t *testing.T) {
	s := newSession(t, practiceOptions(t, 4))
	if got := len(s.participants); got != 5 {
		t.Fatalf("expected 5 anglers, got %d", got)
	}
	if p := s.participants[0]; p.ID != "p1" || p.IsBot {
		t.Fatalf("expected player first, got %+v", p)
	}
	for i, p := range s.participants[1:] {
		if !p.IsBot || p.Order != i+1 {
			t.Fatalf("expected bot at roster position %d, got %+v", i+1, p)
		}
		if !p.Loadout.Complete() {
			t.Fatalf("bot %s has an incomplete loadout", p.Name)
		}
	}
	for _, p := range s.participants {
		if p.Loadout.DominantFish != "Big Bream" || p.Loadout.SecondaryFish != "Silver Roach" {
			t.Fatalf("expected venue stamped on %s's loadout, got %+v", p.ID, p.Loadout)
		}
		if p.TotalWeight != 0 {
			t.Fatalf("expected %s to start at 0", p.ID)
		}
	}
	if s.State() != StateSetup {
		t.Fatalf("expected Setup, got %s", s.State())
	}
	if s.TickInterval() != PracticeTick {
		t.Fatalf("expected practice tick, got %v", s.TickInterval())
	}
}

func TestPracticeDefaultsToWholeBotPool(t *testing.T) {
	s := newSession(t, practiceOptions(t, 0))
	if got := len(s.participants); got != MaxRoster {
		t.Fatalf("expected a full roster of %d, got %d", MaxRoster, got)
	}
}

func TestLiveRosterIsCappedAndDeduplicated(t *testing.T) {
	opts := practiceOptions(t, 0)
	opts.Mode = Live
	opts.Entrants = []Entrant{{ID: "p1", Name: "me again"}}
	for i := 0; i < 20; i++ {
		opts.Entrants = append(opts.Entrants, Entrant{ID: string(rune('a' + i)), Name: "Rival"})
	}
	s := newSession(t, opts)
	if got := len(s.participants); got != MaxRoster {
		t.Fatalf("expected roster capped at %d, got %d", MaxRoster, got)
	}
	if s.participants[0].Name != "Angler" || s.participants[1].ID != "a" {
		t.Fatalf("expected duplicate player entrant dropped, got %s then %s", s.participants[0].Name, s.participants[1].ID)
	}
	for _, p := range s.participants {
		if p.IsBot {
			t.Fatalf("live match should not contain bots")
		}
	}
	if s.TickInterval() != LiveTick {
		t.Fatalf("expected live tick, got %v", s.TickInterval())
	}
}

func TestLiveEntrantKeepsSuppliedLoadout(t *testing.T) {
	opts := practiceOptions(t, 0)
	opts.Mode = Live
	supplied := avoiding(bigBream(t))
	opts.Entrants = []Entrant{{ID: "rival", Name: "Rival", Loadout: &supplied}}
	s := newSession(t, opts)
	got, ok := s.Loadout("rival")
	if !ok || got.Bait != supplied.Bait || got.Hook != supplied.Hook {
		t.Fatalf("expected supplied loadout, got %+v", got)
	}
}

func TestSetupRejectsBadRosters(t *testing.T) {
	opts := practiceOptions(t, 0)
	opts.Mode = Live
	if _, err := NewSession(opts); !errors.Is(err, ErrRosterTooSmall) {
		t.Fatalf("expected ErrRosterTooSmall for a solo live match, got %v", err)
	}

	opts = practiceOptions(t, 2)
	opts.Player.ID = ""
	if _, err := NewSession(opts); !errors.Is(err, ErrMissingPlayer) {
		t.Fatalf("expected ErrMissingPlayer, got %v", err)
	}

	opts = practiceOptions(t, 2)
	opts.Venue = &Venue{Dominant: "Big Bream", Secondary: "Big Bream"}
	if _, err := NewSession(opts); !errors.Is(err, ErrInvalidVenue) {
		t.Fatalf("expected ErrInvalidVenue, got %v", err)
	}
}

func TestRandomVenueIsTwoDistinctSpecies(t *testing.T) {
	catalog := species.Default()
	for seed := int64(0); seed < 50; seed++ {
		opts := practiceOptions(t, 2)
		opts.Venue = nil
		opts.Rand = NewRand(seed)
		s := newSession(t, opts)
		v := s.Venue()
		if v.Dominant == v.Secondary {
			t.Fatalf("seed %d: venue repeats %s", seed, v.Dominant)
		}
		if _, ok := catalog.Lookup(v.Dominant); !ok {
			t.Fatalf("seed %d: dominant %q not in catalog", seed, v.Dominant)
		}
	}
}

func TestTickLandsScriptedCatch(t *testing.T) {
	var seen []CatchEvent
	opts := practiceOptions(t, 1)
	opts.OnCatch = func(e CatchEvent) { seen = append(seen, e) }
	s := newSession(t, opts)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	// player rolls 0.1 (< 0.24) then weighs 0.1+0.5*2.5; the bot rolls 0.5.
	s.rng = &scriptedRand{floats: []float64{0.1, 0.5, 0.5}}

	events := s.Tick()
	if len(events) != 1 || len(seen) != 1 {
		t.Fatalf("expected one catch, got %d (observed %d)", len(events), len(seen))
	}
	player, bot := s.participants[0], s.participants[1]
	if player.TotalWeight != 1.35 || player.Catches != 1 || player.Streak != 1 {
		t.Fatalf("unexpected player after catch: %+v", player)
	}
	if player.LastCatchAt == nil || events[0].Weight != 1.35 || events[0].Species != "Big Bream" {
		t.Fatalf("unexpected catch event %+v", events[0])
	}
	if bot.TotalWeight != 0 || bot.Streak != 0 {
		t.Fatalf("expected bot to miss, got %+v", bot)
	}

	s.rng = &scriptedRand{floats: []float64{0.9, 0.9}}
	s.Tick()
	if player.Streak != 0 || player.TotalWeight != 1.35 {
		t.Fatalf("expected a miss to reset the streak only, got %+v", player)
	}
}

func TestLoadoutChangeAppliesOnNextTick(t *testing.T) {
	opts := practiceOptions(t, 1)
	opts.Player.Loadout = avoiding(bigBream(t))
	s := newSession(t, opts)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// efficiency 0: p = 0.06, so 0.1 misses.
	s.rng = &scriptedRand{floats: []float64{0.1, 0.999}}
	if events := s.Tick(); len(events) != 0 {
		t.Fatalf("expected a miss with mismatched tackle")
	}

	if err := s.SetLoadout("p1", perfectFor(bigBream(t))); err != nil {
		t.Fatalf("SetLoadout: %v", err)
	}
	// efficiency 1: p = 0.24, so the same 0.1 lands a fish.
	s.rng = &scriptedRand{floats: []float64{0.1, 0.2, 0.999}}
	if events := s.Tick(); len(events) != 1 || events[0].ParticipantID != "p1" {
		t.Fatalf("expected the new loadout to land a fish, got %+v", events)
	}
}

func TestUnresolvedVenueFishesAtNeutralEfficiency(t *testing.T) {
	opts := practiceOptions(t, 1)
	opts.Venue = &Venue{Dominant: "Giant Bream", Secondary: "Big Bream"}
	s := newSession(t, opts)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	p := CatchProbability(0.5, false)
	if math.Abs(p-(0.06+math.Pow(0.5, 1.5)*0.18)) > 1e-12 {
		t.Fatalf("unexpected neutral probability %v", p)
	}

	s.rng = &scriptedRand{floats: []float64{p - 0.001, 0.0}}
	if events := s.Tick(); len(events) != 1 {
		t.Fatalf("expected a roll just under %v to land", p)
	}
	s.rng = &scriptedRand{floats: []float64{p + 0.001}}
	if events := s.Tick(); len(events) != 0 {
		t.Fatalf("expected a roll just over %v to miss", p)
	}
}

func TestCatchRateConverges(t *testing.T) {
	opts := practiceOptions(t, 1)
	opts.Rand = NewRand(2024)
	s := newSession(t, opts)
	s.participants[1].Loadout = avoiding(bigBream(t))
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	const n = 20000
	for i := 0; i < n; i++ {
		s.Tick()
	}
	check := func(name string, got int, p float64) {
		want := n * p
		tolerance := 4 * math.Sqrt(n*p*(1-p))
		if math.Abs(float64(got)-want) > tolerance {
			t.Fatalf("%s: %d catches over %d ticks, expected %.0f ± %.0f", name, got, n, want, tolerance)
		}
	}
	check("player", s.participants[0].Catches, CatchProbability(1, false))
	check("bot", s.participants[1].Catches, CatchProbability(0, true))
}

func TestWeightsNeverDecrease(t *testing.T) {
	opts := practiceOptions(t, 6)
	opts.Rand = NewRand(9)
	s := newSession(t, opts)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	last := make([]float64, len(s.participants))
	for i := 0; i < 500; i++ {
		s.Tick()
		for j, p := range s.participants {
			if p.TotalWeight < last[j] {
				t.Fatalf("%s weight fell from %v to %v", p.ID, last[j], p.TotalWeight)
			}
			last[j] = p.TotalWeight
		}
	}
}

func TestScenarioPlayerWinsPractice(t *testing.T) {
	for _, mode := range []Mode{Practice, Live} {
		var results []Result
		opts := practiceOptions(t, 2)
		opts.Mode = mode
		opts.Duration = 3 * time.Second
		opts.OnEnd = func(r Result) { results = append(results, r) }
		if mode == Live {
			opts.Entrants = []Entrant{{ID: "bot-1", Name: "Rival One"}, {ID: "bot-2", Name: "Rival Two"}}
		}
		s := newSession(t, opts)
		if err := s.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}
		s.participants[0].TotalWeight = 3.2
		s.participants[1].TotalWeight = 1.5
		s.participants[2].TotalWeight = 0

		for i := 0; i < 3; i++ {
			s.Countdown()
		}
		if len(results) != 1 {
			t.Fatalf("%s: expected one result, got %d", mode, len(results))
		}
		r := results[0]
		ids := []string{r.Standings[0].ID, r.Standings[1].ID, r.Standings[2].ID}
		if ids[0] != "p1" || ids[1] != "bot-1" || ids[2] != "bot-2" {
			t.Fatalf("%s: unexpected standings %v", mode, ids)
		}
		want := PracticePrize
		if mode == Live {
			want = LivePrize
		}
		if r.Rank != 1 || r.Reward != want || r.Live != (mode == Live) {
			t.Fatalf("%s: unexpected result %+v", mode, r)
		}
		if r.PlayerWeight != 3.2 || r.TopOpponentWeight != 1.5 {
			t.Fatalf("%s: expected weights 3.2/1.5, got %v/%v", mode, r.PlayerWeight, r.TopOpponentWeight)
		}
	}
}

func TestStandingsKeepRosterOrderOnTies(t *testing.T) {
	s := newSession(t, practiceOptions(t, 4))
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	weights := []float64{1.0, 2.0, 1.0, 2.0, 1.0}
	for i, w := range weights {
		s.participants[i].TotalWeight = w
	}
	s.Abort()
	r, ok := s.Result()
	if !ok {
		t.Fatalf("expected a result after abort")
	}
	var got []string
	for _, p := range r.Standings {
		got = append(got, p.ID)
	}
	want := []string{"bot-1", "bot-3", "p1", "bot-2", "bot-4"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if r.Rank != 3 || r.Reward != Payout(3, false) {
		t.Fatalf("expected rank 3, got %d (reward %d)", r.Rank, r.Reward)
	}
}

func TestExactlyOneResultRegardlessOfStepping(t *testing.T) {
	steps := [][]time.Duration{
		{time.Hour},
		{100 * time.Millisecond},
		{time.Second},
		{1200 * time.Millisecond, 300 * time.Millisecond, 2500 * time.Millisecond},
	}
	for _, pattern := range steps {
		ends := 0
		opts := practiceOptions(t, 3)
		opts.Duration = 7 * time.Second
		opts.OnEnd = func(Result) { ends++ }
		s := newSession(t, opts)
		if err := s.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}
		for i := 0; i < 1000 && s.State() == StateRunning; i++ {
			s.Advance(pattern[i%len(pattern)])
		}
		if s.State() != StateEnded {
			t.Fatalf("pattern %v: session never ended", pattern)
		}
		before, _ := s.Result()

		// Late timer fires and aborts after the end change nothing.
		s.Advance(time.Minute)
		if !s.Countdown() {
			t.Fatalf("expected Countdown to report ended")
		}
		if events := s.Tick(); events != nil {
			t.Fatalf("expected no catches after the end")
		}
		if s.Abort() {
			t.Fatalf("expected Abort after end to be a no-op")
		}
		if ends != 1 {
			t.Fatalf("pattern %v: expected exactly one result, got %d", pattern, ends)
		}
		after, _ := s.Result()
		if after.PlayerWeight != before.PlayerWeight || len(after.Standings) != len(before.Standings) {
			t.Fatalf("result changed after the end")
		}
	}
}

func TestAdvancePacesTimersIndependently(t *testing.T) {
	cases := []struct {
		tick      time.Duration
		wantTicks int
	}{
		{PracticeTick, 2}, // 2.5s and 5.0s; the 5.0s pass runs before the final second
		{LiveTick, 4},     // 1.2, 2.4, 3.6, 4.8
		{700 * time.Millisecond, 7},
	}
	for _, tc := range cases {
		opts := practiceOptions(t, 1)
		opts.Duration = 5 * time.Second
		opts.TickInterval = tc.tick
		s := newSession(t, opts)
		if err := s.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}
		s.Advance(4 * time.Second)
		if s.State() != StateRunning || s.Snapshot().Remaining != 1 {
			t.Fatalf("tick %v: expected 1s left after 4s, got %+v", tc.tick, s.Snapshot().Remaining)
		}
		s.Advance(10 * time.Second)
		if s.ticks != tc.wantTicks {
			t.Fatalf("tick %v: expected %d catch passes, got %d", tc.tick, tc.wantTicks, s.ticks)
		}
	}
}

func TestAdvanceBeforeStartDoesNothing(t *testing.T) {
	s := newSession(t, practiceOptions(t, 1))
	s.Advance(time.Hour)
	s.Tick()
	if s.State() != StateSetup || s.ticks != 0 {
		t.Fatalf("expected an unstarted session to ignore time")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestAbortEndsWithCurrentStandings(t *testing.T) {
	var results []Result
	opts := practiceOptions(t, 2)
	opts.OnEnd = func(r Result) { results = append(results, r) }
	s := newSession(t, opts)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.participants[2].TotalWeight = 0.8
	if !s.Abort() {
		t.Fatalf("expected first Abort to end the match")
	}
	if s.Abort() {
		t.Fatalf("expected second Abort to be a no-op")
	}
	if len(results) != 1 || !results[0].Aborted || results[0].Rank != 2 {
		t.Fatalf("unexpected results %+v", results)
	}
	select {
	case <-s.Done():
	default:
		t.Fatalf("expected Done to be closed")
	}
}

func TestSetLoadoutRules(t *testing.T) {
	s := newSession(t, practiceOptions(t, 1))
	l := avoiding(bigBream(t))
	if err := s.SetLoadout("bot-1", l); !errors.Is(err, ErrNotHuman) {
		t.Fatalf("expected ErrNotHuman, got %v", err)
	}
	if err := s.SetLoadout("ghost", l); !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}
	l.DominantFish = "Wrong"
	if err := s.SetLoadout("p1", l); err != nil {
		t.Fatalf("SetLoadout: %v", err)
	}
	got, _ := s.Loadout("p1")
	if got.Bait != l.Bait || got.DominantFish != "Big Bream" {
		t.Fatalf("expected whole loadout replaced with venue keys, got %+v", got)
	}
	s.Abort()
	if err := s.SetLoadout("p1", l); !errors.Is(err, ErrMatchEnded) {
		t.Fatalf("expected ErrMatchEnded, got %v", err)
	}
}

func TestSnapshotFlashesCatching(t *testing.T) {
	clock := clockwork.NewFakeClock()
	opts := practiceOptions(t, 1)
	opts.Clock = clock
	s := newSession(t, opts)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.rng = &scriptedRand{floats: []float64{0.0, 0.0}}
	s.Tick()

	snap := s.Snapshot()
	if snap.Standings[0].ID != "p1" || !snap.Standings[0].Catching {
		t.Fatalf("expected player flagged catching, got %+v", snap.Standings[0])
	}
	if snap.Standings[1].Catching {
		t.Fatalf("expected bot not flagged")
	}
	clock.Advance(CatchFlash)
	if s.Snapshot().Standings[0].Catching {
		t.Fatalf("expected catching flag to clear after %v", CatchFlash)
	}
}

func TestAdvanceMovesSessionClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var seen []CatchEvent
	opts := practiceOptions(t, 1)
	opts.Clock = clock
	opts.OnCatch = func(e CatchEvent) { seen = append(seen, e) }
	s := newSession(t, opts)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	start := clock.Now()
	// the first pass lands the player a fish; every later roll misses.
	s.rng = &scriptedRand{floats: []float64{0.0, 0.0}}

	s.Advance(PracticeTick)
	if len(seen) != 1 || !seen[0].At.Equal(start.Add(PracticeTick)) {
		t.Fatalf("expected one catch stamped at %v, got %+v", PracticeTick, seen)
	}
	if got := s.Elapsed(); got != PracticeTick {
		t.Fatalf("expected %v elapsed, got %v", PracticeTick, got)
	}
	if !s.Snapshot().Standings[0].Catching {
		t.Fatalf("expected player flagged catching right after the bite")
	}

	s.Advance(CatchFlash)
	if s.Snapshot().Standings[0].Catching {
		t.Fatalf("expected catching flag to clear %v after the bite", CatchFlash)
	}

	s.Advance(time.Minute)
	r, ok := s.Result()
	if !ok {
		t.Fatalf("expected match to end")
	}
	if got := r.EndedAt.Sub(r.StartedAt); got != opts.Duration {
		t.Fatalf("expected the match to last %v, got %v", opts.Duration, got)
	}
	if last := r.Standings[0].LastCatchAt; last == nil || !last.Equal(start.Add(PracticeTick)) {
		t.Fatalf("unexpected last catch time %v", last)
	}
}

func TestLastCatchOmittedUntilFirstFish(t *testing.T) {
	raw, err := json.Marshal(Participant{ID: "p1", Name: "Angler"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "lastCatchAt") {
		t.Fatalf("expected no lastCatchAt before a catch, got %s", raw)
	}
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	raw, err = json.Marshal(Participant{ID: "p1", LastCatchAt: &at})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"lastCatchAt":"2024-05-01T09:00:00Z"`) {
		t.Fatalf("expected lastCatchAt after a catch, got %s", raw)
	}
}

func TestCatchProbabilityCurve(t *testing.T) {
	cases := []struct {
		eff   float64
		isBot bool
		want  float64
	}{
		{0, true, 0.04},
		{1, true, 0.18},
		{0, false, 0.06},
		{1, false, 0.24},
		{0.25, false, 0.06 + 0.125*0.18},
	}
	for _, tc := range cases {
		if got := CatchProbability(tc.eff, tc.isBot); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("CatchProbability(%v, %v) = %v, want %v", tc.eff, tc.isBot, got, tc.want)
		}
	}
}

func TestCatchWeightRange(t *testing.T) {
	if got := CatchWeight(&scriptedRand{floats: []float64{0}}); got != 0.1 {
		t.Fatalf("expected 0.1 at the bottom of the range, got %v", got)
	}
	rng := NewRand(5)
	for i := 0; i < 5000; i++ {
		w := CatchWeight(rng)
		if w < MinCatchWeight || w > MaxCatchWeight {
			t.Fatalf("weight %v out of range", w)
		}
		if math.Abs(w*100-math.Round(w*100)) > 1e-9 {
			t.Fatalf("weight %v not rounded to 2 decimals", w)
		}
	}
}
