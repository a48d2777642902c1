package solver

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
)

// Filter keeps the candidates that, had they been the answer, would have
// produced exactly code for guess. Matching goes through pattern.Encode so
// the filter and the scorer always agree on what a pattern means.
//
// When nothing survives, Filter returns the empty snapshot together with
// ErrEmptyResult. c itself is never modified.
func Filter(c *Candidates, guess string, code pattern.Code) (*Candidates, error) {
	if len(guess) != c.length {
		return nil, fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidGuess, guess, len(guess), c.length)
	}
	if !pattern.Valid(code, c.length) {
		return nil, fmt.Errorf("%w: code %d out of range for length %d", pattern.ErrInvalidPattern, code, c.length)
	}

	alive := bitset.New(uint(len(c.root.words)))
	for i, ok := c.alive.NextSet(0); ok; i, ok = c.alive.NextSet(i + 1) {
		if pattern.Encode(guess, c.root.words[i]) == code {
			alive.Set(i)
		}
	}
	next := c.restrict(alive)
	if next.Len() == 0 {
		return next, ErrEmptyResult
	}
	return next, nil
}

// FilterMarks is Filter with the pattern given as per-position marks.
func FilterMarks(c *Candidates, guess string, marks []pattern.Mark) (*Candidates, error) {
	if len(marks) != c.length {
		return nil, fmt.Errorf("%w: want %d marks, got %d", pattern.ErrInvalidPattern, c.length, len(marks))
	}
	code, err := pattern.FromMarks(marks)
	if err != nil {
		return nil, err
	}
	return Filter(c, guess, code)
}
