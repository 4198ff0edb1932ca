package solver

import (
	"sync/atomic"

	"github.com/sokolabs/sokosolve/internal/puzzle"
)

// Session drives a cancellable solve for an interactive host (spec.md
// §4.H), the same atomic.Bool stop-flag idiom internal/uci.UCI uses for
// its "stop" command, adapted here to a single-shot solve instead of a
// long-running engine loop.
type Session struct {
	stopRequested atomic.Bool
}

// NewSession returns a fresh, unstarted cooperative solve session.
func NewSession() *Session {
	return &Session{}
}

// Stop requests that a running Solve return at the next polling point.
// Safe to call from any goroutine, at any time, any number of times.
func (s *Session) Stop() {
	s.stopRequested.Store(true)
}

func (s *Session) shouldStop() bool {
	return s.stopRequested.Load()
}

// Solve runs the push-level search, checking for cancellation roughly
// every 1000 node expansions (spec.md §4.H). A session stopped mid-search
// reports HitLimit=true, identically to exhausting maxNodes: a caller
// cannot distinguish "ran out of budget" from "the host asked us to
// stop" from the Result alone, which is intentional — both are
// inconclusive, not proof of unsolvability.
func (s *Session) Solve(l *puzzle.Level, maxNodes int) Result {
	r, _ := solve(l, maxNodes, s)
	return r
}
