package match

import (
	"context"
	"errors"
	"time"
)

// Runner drives a session in real time: a one-second countdown ticker and a
// catch ticker at the session's tick interval. Each ticker's handler runs to
// completion before its next fire; the two interleave freely.
type Runner struct {
	session *Session
}

// NewRunner returns a runner for s using the session's clock.
func NewRunner(s *Session) *Runner {
	return &Runner{session: s}
}

// Run starts the session if needed and blocks until it ends. Cancelling ctx
// aborts the match with the standings at that moment and returns ctx.Err()
// alongside the result.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	s := r.session
	if err := s.Start(); err != nil && !errors.Is(err, ErrAlreadyStarted) {
		return Result{}, err
	}

	clock := s.Clock()
	countdown := clock.NewTicker(time.Second)
	defer countdown.Stop()
	catch := clock.NewTicker(s.TickInterval())
	defer catch.Stop()

	for {
		select {
		case <-s.Done():
			res, _ := s.Result()
			return res, nil
		case <-ctx.Done():
			s.Abort()
			res, _ := s.Result()
			return res, ctx.Err()
		case <-catch.Chan():
			s.Tick()
		case <-countdown.Chan():
			s.Countdown()
		}
	}
}
