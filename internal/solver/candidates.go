// internal/solver/candidates.go
//
// Candidate set snapshots.
// Responsibilities:
//   - Hold the words still consistent with every piece of feedback so far.
//   - Stay immutable: filtering produces a new snapshot with a bumped version.
//   - Track survivors as a bitset over the session's root vocabulary so subset
//     checks between snapshots of one session are cheap.
//   - Fingerprint the word content for the score cache key.

package solver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
)

var (
	// ErrDegenerateInput is returned when scoring an empty candidate set.
	ErrDegenerateInput = errors.New("no candidates to score")
	// ErrEmptyResult is returned when no candidate matches the feedback.
	ErrEmptyResult = errors.New("no word matches the accumulated feedback")
	// ErrInvalidGuess is returned when a guess does not have the session's word length.
	ErrInvalidGuess = errors.New("invalid guess")
	// ErrWordLength is returned for words that do not match the candidate set length.
	ErrWordLength = errors.New("word length mismatch")
)

// vocabulary is the sorted word list every snapshot of one session indexes into.
type vocabulary struct {
	words []string
}

// Candidates is a read-only snapshot of the possible answers.
type Candidates struct {
	root    *vocabulary
	alive   *bitset.BitSet // indices into root.words
	words   []string       // root.words restricted to alive, sorted
	length  int
	version int
}

// NewCandidates builds the initial snapshot from words of the given length.
// Duplicates are dropped and the words are sorted. An empty list is allowed;
// scoring it reports ErrDegenerateInput.
func NewCandidates(length int, words []string) (*Candidates, error) {
	if length < 1 || length > pattern.MaxLength {
		return nil, fmt.Errorf("%w: length %d outside 1..%d", ErrWordLength, length, pattern.MaxLength)
	}
	for _, w := range words {
		if len(w) != length {
			return nil, fmt.Errorf("%w: %q has %d letters, want %d", ErrWordLength, w, len(w), length)
		}
	}
	sorted := slices.Clone(words)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	alive := bitset.New(uint(len(sorted)))
	for i := range sorted {
		alive.Set(uint(i))
	}
	return &Candidates{
		root:   &vocabulary{words: sorted},
		alive:  alive,
		words:  sorted,
		length: length,
	}, nil
}

// restrict returns the snapshot that keeps only the indices in alive.
func (c *Candidates) restrict(alive *bitset.BitSet) *Candidates {
	words := make([]string, 0, alive.Count())
	for i, ok := alive.NextSet(0); ok; i, ok = alive.NextSet(i + 1) {
		words = append(words, c.root.words[i])
	}
	return &Candidates{
		root:    c.root,
		alive:   alive,
		words:   words,
		length:  c.length,
		version: c.version + 1,
	}
}

// Len is the number of candidates.
func (c *Candidates) Len() int { return len(c.words) }

// Length is the word length shared by all candidates.
func (c *Candidates) Length() int { return c.length }

// Version counts the filtering rounds that produced this snapshot.
func (c *Candidates) Version() int { return c.version }

// Words returns a copy of the candidates in lexical order.
func (c *Candidates) Words() []string { return slices.Clone(c.words) }

// Contains reports whether w is still a candidate.
func (c *Candidates) Contains(w string) bool {
	_, ok := slices.BinarySearch(c.words, w)
	return ok
}

// SubsetOf reports whether every candidate in c is also in other.
func (c *Candidates) SubsetOf(other *Candidates) bool {
	if c.root == other.root {
		return other.alive.IsSuperSet(c.alive)
	}
	for _, w := range c.words {
		if !other.Contains(w) {
			return false
		}
	}
	return true
}

// Fingerprint is a BLAKE2b-256 digest of the word length and the sorted
// candidates. Equal fingerprints mean equal candidate sets.
func (c *Candidates) Fingerprint() string {
	h, _ := blake2b.New256(nil) // only fails for oversized keys
	h.Write([]byte(strconv.Itoa(c.length)))
	for _, w := range c.words {
		h.Write([]byte{'\n'})
		h.Write([]byte(w))
	}
	return hex.EncodeToString(h.Sum(nil))
}
