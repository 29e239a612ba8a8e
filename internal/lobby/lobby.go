// Package lobby gathers humans for live matches and launches one match per
// cron slot.
package lobby

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	"fishing-clash/internal/match"
)

var ErrFull = errors.New("lobby slot is full")

// LaunchFunc starts a live match for the entrants drawn in one slot.
type LaunchFunc func(slot time.Time, entrants []match.Entrant)

type Lobby struct {
	spec     string
	schedule cron.Schedule
	clock    clockwork.Clock
	launch   LaunchFunc
	logger   *slog.Logger

	s gocron.Scheduler

	waiting []match.Entrant
	mu      sync.Mutex
}

// New parses spec as a standard five-field cron expression.
func New(spec string, clock clockwork.Clock, launch LaunchFunc, logger *slog.Logger) (*Lobby, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lobby slot %q: %w", spec, err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Lobby{
		spec:     spec,
		schedule: schedule,
		clock:    clock,
		launch:   launch,
		logger:   logger,
	}, nil
}

func (l *Lobby) Start() error {
	s, err := gocron.NewScheduler(
		gocron.WithClock(l.clock),
	)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.CronJob(l.spec, false),
		gocron.NewTask(l.Fire),
	)
	if err != nil {
		return fmt.Errorf("failed to create lobby slot job: %w", err)
	}

	l.s = s
	l.s.Start()
	l.logger.Info("Lobby open", "slot", l.spec, "next", l.NextSlot())
	return nil
}

func (l *Lobby) Stop() error {
	if l.s == nil {
		return nil
	}
	return l.s.Shutdown()
}

// NextSlot is the next time the lobby fires.
func (l *Lobby) NextSlot() time.Time {
	return l.schedule.Next(l.clock.Now())
}

// Join queues e for the next slot. Joining twice replaces the earlier entry
// so a changed loadout is picked up.
func (l *Lobby) Join(e match.Entrant) (time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, w := range l.waiting {
		if w.ID == e.ID {
			l.waiting[i] = e
			return l.NextSlot(), nil
		}
	}
	if len(l.waiting) >= match.MaxRoster {
		return time.Time{}, ErrFull
	}
	l.waiting = append(l.waiting, e)
	return l.NextSlot(), nil
}

// Leave drops id from the queue and reports whether it was waiting.
func (l *Lobby) Leave(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, w := range l.waiting {
		if w.ID == id {
			l.waiting = append(l.waiting[:i], l.waiting[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Lobby) Waiting() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.waiting)
}

// Fire closes the current slot. With fewer than two entrants nobody is
// launched and the queue carries over to the next slot.
func (l *Lobby) Fire() {
	slot := l.clock.Now()

	l.mu.Lock()
	if len(l.waiting) < match.MinRoster {
		n := len(l.waiting)
		l.mu.Unlock()
		l.logger.Info("Lobby slot carried over", "waiting", n, "next", l.NextSlot())
		return
	}
	entrants := l.waiting
	l.waiting = nil
	l.mu.Unlock()

	l.logger.Info("Lobby slot launched", "entrants", len(entrants))
	if l.launch != nil {
		l.launch(slot, entrants)
	}
}
