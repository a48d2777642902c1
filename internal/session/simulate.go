package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Simulate plays s to the end against a known answer, taking feedback from
// pattern.Encode instead of a player. The first guess is opener when set,
// then always the top-ranked candidate. It returns the final snapshot and
// every guess made, the last one being the answer on success.
//
// If the answer is not in the vocabulary the session runs out of candidates
// and the error wraps solver.ErrEmptyResult.
func (c *Controller) Simulate(ctx context.Context, s *Session, answer, opener string) (*Session, []string, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	opener = strings.ToLower(strings.TrimSpace(opener))
	if len(answer) != s.Length {
		return s, nil, fmt.Errorf("%w: answer %q has %d letters, want %d", solver.ErrInvalidGuess, answer, len(answer), s.Length)
	}
	if opener != "" && len(opener) != s.Length {
		return s, nil, fmt.Errorf("%w: opener %q has %d letters, want %d", solver.ErrInvalidGuess, opener, len(opener), s.Length)
	}

	var guesses []string
	for {
		if err := ctx.Err(); err != nil {
			return s, guesses, err
		}
		if s.State == StateExhausted {
			return s, guesses, fmt.Errorf("%w: %q is not in the vocabulary", solver.ErrEmptyResult, answer)
		}

		guess := s.Ranked[0].Word
		if len(guesses) == 0 && opener != "" {
			guess = opener
		}
		guesses = append(guesses, guess)
		if guess == answer {
			return s, guesses, nil
		}
		if s.State == StateSolved {
			// The last candidate is not the answer.
			return s, guesses, fmt.Errorf("%w: %q is not in the vocabulary", solver.ErrEmptyResult, answer)
		}

		next, err := c.Feedback(ctx, s, guess, pattern.Encode(guess, answer))
		if err != nil && !errors.Is(err, solver.ErrEmptyResult) {
			return s, guesses, err
		}
		s = next
	}
}
