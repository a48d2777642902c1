// render.go
//
// Console output for the solver CLI.
// Responsibilities:
//   - Print the candidate count and the top-ranked guesses.
//   - Render a guess and its feedback as colored tiles.
//   - Drive a progress bar on stderr while large sets are scored.

package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/TwiN/go-color"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
)

const separator = "----------------"

// printRanking writes the candidate count and up to top ranked entries.
func printRanking(w io.Writer, s *session.Session, top int) {
	fmt.Fprintf(w, "vocab: %d\n", s.Candidates.Len())
	fmt.Fprintln(w, separator)
	for _, e := range s.Top(top) {
		fmt.Fprintf(w, "%.4f: %s\n", e.Entropy, e.Word)
	}
	fmt.Fprintln(w, separator)
}

// printList writes every remaining candidate, several per line.
func printList(w io.Writer, s *session.Session) {
	const perLine = 10
	list := s.Candidates.Words()
	for i := 0; i < len(list); i += perLine {
		fmt.Fprintln(w, strings.Join(list[i:min(i+perLine, len(list))], " "))
	}
}

var markColor = map[pattern.Mark]string{
	pattern.Exact:   color.Green,
	pattern.Present: color.Yellow,
	pattern.Absent:  color.Gray,
}

// tiles renders guess with one colored cell per letter. With colors
// toggled off it appends the digit form instead.
func tiles(guess string, code pattern.Code, n int) string {
	marks := pattern.Decode(code, n)
	var b strings.Builder
	for i, m := range marks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(color.Ize(markColor[m], strings.ToUpper(guess[i:i+1])))
	}
	if !colorsOn {
		b.WriteString("  (")
		b.WriteString(pattern.Format(code, n))
		b.WriteByte(')')
	}
	return b.String()
}

// colorsOn mirrors the last color.Toggle call.
var colorsOn = true

func setColors(on bool) {
	colorsOn = on
	color.Toggle(on)
}

// progressMin is the smallest candidate set that gets a progress bar.
const progressMin = 1000

// scoreProgress adapts scorer progress callbacks to a progress bar.
// A nil *scoreProgress is a no-op.
type scoreProgress struct {
	mu  sync.Mutex
	out io.Writer
	bar *progressbar.ProgressBar
}

func newScoreProgress(out io.Writer) *scoreProgress {
	return &scoreProgress{out: out}
}

// expect opens a bar for the next scoring pass when n is large enough.
func (p *scoreProgress) expect(n int) {
	if p == nil || n < progressMin {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar = progressbar.NewOptions(n,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription("scoring"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// add is the scorer callback; it may be called concurrently.
func (p *scoreProgress) add(done int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Add(done)
	}
}

// finish closes the current bar, if any.
func (p *scoreProgress) finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
