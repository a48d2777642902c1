// internal/solver/scorer.go
//
// Entropy scoring of candidate guesses.
// Responsibilities:
//   - For every candidate, bucket the outcome codes it produces against the
//     whole candidate set (itself included).
//   - Turn each bucket distribution into Shannon entropy in bits.
//   - Rank the results best-first with a lexical tie-break.
//
// Notes:
//   - The outer loop runs on a fixed worker pool. Each chunk writes to its own
//     range of the result slice, so nothing is shared while scoring.
//   - Cost is O(N²·L) per pass.

package solver

import (
	"context"
	"math"
	"runtime"
	"slices"
	"sort"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
)

// denseLimit is the largest code space histogrammed with a flat slice (3^10).
const denseLimit = 59049

// chunksPerWorker controls how finely a pass is split across the pool.
const chunksPerWorker = 4

// Entry is the score of one candidate guess.
type Entry struct {
	Word    string  `json:"word"`
	Entropy float64 `json:"entropy"` // expected information in bits
}

// Scorer computes ranked entropy scores for candidate sets.
// A Scorer holds no mutable state and may be shared by concurrent sessions.
type Scorer struct {
	workers  int
	progress func(done int)
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWorkers sets the number of goroutines used per pass.
func WithWorkers(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithProgress registers fn to be called with the number of candidates
// finished each time a chunk completes. fn may be called concurrently.
func WithProgress(fn func(done int)) Option {
	return func(s *Scorer) { s.progress = fn }
}

// NewScorer returns a Scorer using one worker per CPU unless configured otherwise.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{workers: runtime.NumCPU()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Score returns one Entry per candidate, ranked by Rank.
func (s *Scorer) Score(c *Candidates) ([]Entry, error) {
	n := c.Len()
	if n == 0 {
		return nil, ErrDegenerateInput
	}
	words := c.words
	out := make([]Entry, n)

	scoreRange := func(lo, hi int) {
		h := newHistogram(c.length)
		for i := lo; i < hi; i++ {
			out[i] = Entry{Word: words[i], Entropy: h.score(words[i], words)}
		}
		if s.progress != nil {
			s.progress(hi - lo)
		}
	}

	workers := min(s.workers, n)
	if workers <= 1 {
		scoreRange(0, n)
		Rank(out)
		return out, nil
	}

	chunk := (n + workers*chunksPerWorker - 1) / (workers * chunksPerWorker)
	pool := NewWorkerPool(workers, (n+chunk-1)/chunk)
	pool.Start(context.Background())
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		if err := pool.Submit(func(context.Context) error {
			scoreRange(lo, hi)
			return nil
		}); err != nil {
			pool.Close()
			return nil, err
		}
	}
	pool.Close()

	Rank(out)
	return out, nil
}

// Score ranks c with a default Scorer.
func Score(c *Candidates) ([]Entry, error) {
	return NewScorer().Score(c)
}

// Rank sorts entries by entropy, highest first, breaking ties by word.
func Rank(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Entropy != entries[j].Entropy {
			return entries[i].Entropy > entries[j].Entropy
		}
		return entries[i].Word < entries[j].Word
	})
}

// histogram counts outcome codes for one guess at a time. It is owned by a
// single goroutine and reset between guesses.
type histogram struct {
	dense  []int
	sparse map[pattern.Code]int
	total  int
	counts []int // scratch for the non-zero buckets
}

func newHistogram(length int) *histogram {
	if pattern.Space(length) <= denseLimit {
		return &histogram{dense: make([]int, pattern.Space(length))}
	}
	return &histogram{sparse: make(map[pattern.Code]int)}
}

func (h *histogram) reset() {
	if h.dense != nil {
		clear(h.dense)
	} else {
		clear(h.sparse)
	}
	h.total = 0
}

func (h *histogram) add(c pattern.Code) {
	if h.dense != nil {
		h.dense[c]++
	} else {
		h.sparse[c]++
	}
	h.total++
}

// fill buckets the codes guess produces against every answer.
func (h *histogram) fill(guess string, answers []string) {
	h.reset()
	for _, a := range answers {
		h.add(pattern.Encode(guess, a))
	}
}

// nonZero returns the non-empty bucket counts in ascending order.
func (h *histogram) nonZero() []int {
	h.counts = h.counts[:0]
	if h.dense != nil {
		for _, c := range h.dense {
			if c > 0 {
				h.counts = append(h.counts, c)
			}
		}
	} else {
		for _, c := range h.sparse {
			h.counts = append(h.counts, c)
		}
	}
	slices.Sort(h.counts)
	return h.counts
}

// entropy is H = log2 N − (1/N)·Σ c·log2 c over the non-empty buckets, the
// same quantity as −Σ p·log2 p without forming tiny probabilities. Summing
// the counts in sorted order makes equal distributions score bit-identically.
func (h *histogram) entropy() float64 {
	if h.total == 0 {
		return 0
	}
	n := float64(h.total)
	var sum float64
	for _, c := range h.nonZero() {
		if c > 1 {
			fc := float64(c)
			sum += fc * math.Log2(fc)
		}
	}
	e := math.Log2(n) - sum/n
	if e < 0 {
		return 0
	}
	return e
}

func (h *histogram) score(guess string, answers []string) float64 {
	h.fill(guess, answers)
	return h.entropy()
}
