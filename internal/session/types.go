// internal/session/types.go
//
// Core type definitions for the round controller.
// Defines:
//   - State: where a session is in the scoring/feedback cycle.
//   - Round: one applied piece of feedback.
//   - Session: an immutable snapshot of a solving session.

package session

import (
	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// State represents the controller state of a session.
// Possible values:
//   - "scoring":           ranking the current candidates.
//   - "awaiting_feedback": ranked list ready, waiting for a guess and its pattern.
//   - "solved":            exactly one candidate remains.
//   - "exhausted":         no candidate is consistent with the feedback.
type State string

const (
	StateScoring   State = "scoring"
	StateAwaiting  State = "awaiting_feedback"
	StateSolved    State = "solved"
	StateExhausted State = "exhausted"
)

// Round records one applied guess and pattern.
type Round struct {
	Guess   string       // lowercased guess
	Pattern pattern.Code // feedback reported for Guess
	Before  int          // candidates before filtering
	After   int          // candidates after filtering
}

// Session is a snapshot of one solving session. Every transition returns a
// new Session; a snapshot is never modified once handed out.
type Session struct {
	ID         string             // random hex id for log correlation
	Length     int                // word length for the whole session
	Candidates *solver.Candidates // words still possible
	Ranked     []solver.Entry     // Candidates scored best-first (nil when exhausted)
	History    []Round            // feedback applied so far, oldest first
	State      State
}

// Finished reports whether the session reached a terminal state.
func (s *Session) Finished() bool {
	return s.State == StateSolved || s.State == StateExhausted
}

// Answer returns the remaining word once the session is solved.
func (s *Session) Answer() (string, bool) {
	if s.State != StateSolved || s.Candidates.Len() != 1 {
		return "", false
	}
	return s.Candidates.Words()[0], true
}

// Top returns at most n of the best-ranked entries.
func (s *Session) Top(n int) []solver.Entry {
	if n < 0 || n > len(s.Ranked) {
		n = len(s.Ranked)
	}
	return s.Ranked[:n:n]
}

// Round returns the 1-based number of the round awaiting feedback.
func (s *Session) Round() int { return len(s.History) + 1 }
