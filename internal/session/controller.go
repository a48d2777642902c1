// internal/session/controller.go
//
// Round controller for a solving session.
// Responsibilities:
//   - Start sessions from a vocabulary for one word length.
//   - Score candidates (cache first, scorer on a miss) and rank them.
//   - Apply feedback through the constraint filter and re-score.
//   - Track state transitions: scoring → awaiting_feedback → solved/exhausted.
//
// Notes:
//   - Sessions are snapshots; Start and Feedback always return a new one.
//   - Invalid input leaves the caller's snapshot as the current one.
//   - The cache only ever saves work. A cached list that does not cover the
//     candidates exactly is ignored and the set is rescored.

package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/cache"
	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrFinished is returned when feedback is applied to a finished session.
var ErrFinished = errors.New("session finished")

// defaultCacheMin is the smallest candidate set worth caching.
const defaultCacheMin = 200

// Controller drives sessions. It holds no per-session state and may be
// shared by concurrent sessions.
type Controller struct {
	scorer   *solver.Scorer
	cache    cache.Store
	cacheMin int
}

// Option configures a Controller.
type Option func(*Controller)

// WithCache reuses ranked lists from st for candidate sets of at least
// minWords words. minWords <= 0 selects the default threshold.
func WithCache(st cache.Store, minWords int) Option {
	return func(c *Controller) {
		c.cache = st
		if minWords > 0 {
			c.cacheMin = minWords
		}
	}
}

// NewController constructs a Controller. A nil scorer selects solver defaults.
func NewController(scorer *solver.Scorer, opts ...Option) *Controller {
	if scorer == nil {
		scorer = solver.NewScorer()
	}
	c := &Controller{scorer: scorer, cacheMin: defaultCacheMin}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Start creates a session over the words of vocab with the given length and
// scores it. Words of other lengths are ignored.
func (c *Controller) Start(ctx context.Context, length int, vocab []string) (*Session, error) {
	var list []string
	for _, w := range vocab {
		if len(w) == length {
			list = append(list, strings.ToLower(w))
		}
	}
	cands, err := solver.NewCandidates(length, list)
	if err != nil {
		return nil, err
	}
	if cands.Len() == 0 {
		return nil, fmt.Errorf("%w: no words of length %d", solver.ErrDegenerateInput, length)
	}
	s := &Session{
		ID:         randomID(),
		Length:     length,
		Candidates: cands,
		State:      StateScoring,
	}
	log.Info().Str("session", s.ID).Int("length", length).Int("candidates", cands.Len()).Msg("session started")
	if err := c.score(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Feedback applies guess and its pattern to s and returns the next snapshot.
//
// Errors:
//   - ErrFinished if s is solved or exhausted (s is returned).
//   - solver.ErrInvalidGuess / pattern.ErrInvalidPattern for malformed input (s is returned).
//   - solver.ErrEmptyResult when nothing survives; the returned snapshot is exhausted.
func (c *Controller) Feedback(ctx context.Context, s *Session, guess string, code pattern.Code) (*Session, error) {
	if s.Finished() {
		return s, ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	next, err := solver.Filter(s.Candidates, guess, code)
	if errors.Is(err, solver.ErrEmptyResult) {
		ns := s.advance(guess, code, next)
		ns.State = StateExhausted
		log.Info().Str("session", s.ID).Str("guess", guess).Str("pattern", pattern.Format(code, s.Length)).
			Msg("no candidates left")
		return ns, err
	}
	if err != nil {
		return s, err
	}

	ns := s.advance(guess, code, next)
	log.Debug().Str("session", s.ID).Str("guess", guess).Str("pattern", pattern.Format(code, s.Length)).
		Int("before", s.Candidates.Len()).Int("after", next.Len()).Msg("feedback applied")
	if err := c.score(ctx, ns); err != nil {
		return s, err
	}
	return ns, nil
}

// FeedbackString parses a typed pattern ("2 1 0 0 2") and applies it.
func (c *Controller) FeedbackString(ctx context.Context, s *Session, guess, typed string) (*Session, error) {
	if s.Finished() {
		return s, ErrFinished
	}
	code, err := pattern.Parse(typed, s.Length)
	if err != nil {
		return s, err
	}
	return c.Feedback(ctx, s, guess, code)
}

// advance builds the next snapshot in the scoring state.
func (s *Session) advance(guess string, code pattern.Code, next *solver.Candidates) *Session {
	history := append(slices.Clone(s.History), Round{
		Guess:   guess,
		Pattern: code,
		Before:  s.Candidates.Len(),
		After:   next.Len(),
	})
	return &Session{
		ID:         s.ID,
		Length:     s.Length,
		Candidates: next,
		History:    history,
		State:      StateScoring,
	}
}

// score ranks s.Candidates and moves s out of the scoring state. s must not
// have been handed out yet.
func (c *Controller) score(ctx context.Context, s *Session) error {
	start := time.Now()
	key, useCache := c.cacheKey(s.Candidates)

	ranked, hit := c.lookup(ctx, key, useCache, s.Candidates)
	if !hit {
		var err error
		ranked, err = c.scorer.Score(s.Candidates)
		if err != nil {
			return err
		}
		if useCache {
			if err := c.cache.Put(ctx, key, ranked); err != nil {
				log.Warn().Err(err).Str("session", s.ID).Msg("cache put")
			}
		}
	}

	s.Ranked = ranked
	if s.Candidates.Len() == 1 {
		s.State = StateSolved
	} else {
		s.State = StateAwaiting
	}
	log.Debug().Str("session", s.ID).Int("candidates", s.Candidates.Len()).Bool("cached", hit).
		Dur("elapsed", time.Since(start)).Msg("candidates scored")
	return nil
}

func (c *Controller) cacheKey(cands *solver.Candidates) (cache.Key, bool) {
	if c.cache == nil || cands.Len() < c.cacheMin {
		return cache.Key{}, false
	}
	return cache.KeyFor(cands), true
}

// lookup returns a cached ranked list if it covers cands exactly.
func (c *Controller) lookup(ctx context.Context, key cache.Key, useCache bool, cands *solver.Candidates) ([]solver.Entry, bool) {
	if !useCache {
		return nil, false
	}
	ranked, err := c.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Msg("cache get")
		return nil, false
	}
	if !covers(ranked, cands) {
		log.Warn().Int("length", key.Length).Str("fingerprint", key.Fingerprint).Msg("cached scores do not match candidates; rescoring")
		return nil, false
	}
	return ranked, true
}

// covers reports whether ranked holds exactly one entry per candidate.
func covers(ranked []solver.Entry, cands *solver.Candidates) bool {
	if len(ranked) != cands.Len() {
		return false
	}
	seen := make(map[string]struct{}, len(ranked))
	for _, e := range ranked {
		if !cands.Contains(e.Word) {
			return false
		}
		seen[e.Word] = struct{}{}
	}
	return len(seen) == len(ranked)
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
