// internal/words/words.go
//
// Vocabulary source for the solver.
//
// Responsibilities:
//   - Load a word list from a file, or fall back to the embedded default list.
//   - Normalize and validate it: trimmed, lowercase, ASCII a–z only, no duplicates.
//   - Restrict it to one word length for a session.
//   - Report which word lengths the list offers.
//
// File format:
//   - One word per line; blank lines and lines starting with '#' are skipped.
//   - Lines with anything other than letters (after trimming) are dropped.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// ErrNoWords is returned when a list has no word of the requested length.
var ErrNoWords = errors.New("words: no words of requested length")

// LoadAll returns every valid word from path, or from the embedded list when
// path is empty. The result is sorted and deduplicated.
func LoadAll(path string) ([]string, error) {
	var raw []string
	var err error
	if path == "" {
		raw, err = assets.WordList()
	} else {
		raw, err = readWordFile(path)
	}
	if err != nil {
		return nil, err
	}
	return normalize(raw), nil
}

// Load returns the words of exactly length letters from path (or the
// embedded list). It fails with ErrNoWords if none qualify.
func Load(path string, length int) ([]string, error) {
	all, err := LoadAll(path)
	if err != nil {
		return nil, err
	}
	out := OfLength(all, length)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoWords, length)
	}
	return out, nil
}

// OfLength keeps the words with exactly length letters.
func OfLength(list []string, length int) []string {
	var out []string
	for _, w := range list {
		if len(w) == length {
			out = append(out, w)
		}
	}
	return out
}

// Lengths counts words by length.
func Lengths(list []string) map[int]int {
	m := make(map[int]int)
	for _, w := range list {
		m[len(w)]++
	}
	return m
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// normalize lowercases, drops non-alphabetic entries, sorts and dedupes.
func normalize(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && isAlpha(w) {
			out = append(out, w)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
