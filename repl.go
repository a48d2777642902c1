// repl.go
//
// Interactive round loop.
// Each round prints the ranked candidates, then asks for the word that was
// played and the pattern the game reported for it ("2 1 0 0 2", 2 = right
// spot, 1 = elsewhere, 0 = absent).
//
// Commands accepted at the word prompt:
//   :new [length]  restart from the vocabulary
//   :list          print every remaining candidate
//   :quit          exit

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

type repl struct {
	ctl      *session.Controller
	vocab    []string
	top      int
	progress *scoreProgress

	in  *bufio.Scanner
	out io.Writer
	s   *session.Session
}

func newREPL(ctl *session.Controller, vocab []string, top int, progress *scoreProgress, in io.Reader, out io.Writer) *repl {
	return &repl{
		ctl:      ctl,
		vocab:    vocab,
		top:      top,
		progress: progress,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// run plays sessions until :quit or end of input.
func (r *repl) run(ctx context.Context, length int) error {
	if err := r.start(ctx, length); err != nil {
		return err
	}
	for {
		if r.s.State == session.StateAwaiting {
			printRanking(r.out, r.s, r.top)
		}

		word, ok := r.prompt("Input word: ")
		if !ok {
			return nil
		}
		if strings.HasPrefix(word, ":") {
			quit, err := r.command(ctx, word)
			if err != nil || quit {
				return err
			}
			continue
		}
		if r.s.Finished() {
			fmt.Fprintln(r.out, "Session finished; type :new to start over or :quit to exit")
			continue
		}

		typed, ok := r.prompt("Input pattern: ")
		if !ok {
			return nil
		}
		if err := r.feedback(ctx, word, typed); err != nil {
			return err
		}
	}
}

// feedback applies one guess. Only context errors are returned; bad input
// is reported and the round is replayed.
func (r *repl) feedback(ctx context.Context, word, typed string) error {
	r.progress.expect(r.s.Candidates.Len())
	next, err := r.ctl.FeedbackString(ctx, r.s, word, typed)
	r.progress.finish()

	switch {
	case errors.Is(err, pattern.ErrInvalidPattern):
		fmt.Fprintln(r.out, "Invalid pattern")
		return nil
	case errors.Is(err, solver.ErrInvalidGuess):
		fmt.Fprintf(r.out, "Invalid word: need %d letters\n", r.s.Length)
		return nil
	case errors.Is(err, solver.ErrEmptyResult):
		r.echo(next)
		r.s = next
		fmt.Fprintln(r.out, "No word found")
		return nil
	case err != nil:
		return err
	}

	r.echo(next)
	r.s = next
	r.announce()
	return nil
}

// start replaces the current session with a fresh one of the given length.
func (r *repl) start(ctx context.Context, length int) error {
	r.progress.expect(countLength(r.vocab, length))
	s, err := r.ctl.Start(ctx, length, r.vocab)
	r.progress.finish()
	if err != nil {
		return err
	}
	r.s = s
	r.announce()
	return nil
}

// command runs a ':' command and reports whether the loop should stop.
func (r *repl) command(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true, nil
	case ":list":
		printList(r.out, r.s)
	case ":new":
		length := r.s.Length
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 || n > pattern.MaxLength {
				fmt.Fprintf(r.out, "Invalid length %q\n", fields[1])
				return false, nil
			}
			length = n
		}
		err := r.start(ctx, length)
		if errors.Is(err, solver.ErrDegenerateInput) {
			fmt.Fprintf(r.out, "No words of length %d\n", length)
			return false, nil
		}
		return false, err
	default:
		fmt.Fprintf(r.out, "Unknown command %s (commands: :new [length], :list, :quit)\n", fields[0])
	}
	return false, nil
}

func (r *repl) echo(next *session.Session) {
	last := next.History[len(next.History)-1]
	fmt.Fprintln(r.out, tiles(last.Guess, last.Pattern, next.Length))
}

func (r *repl) announce() {
	if w, ok := r.s.Answer(); ok {
		fmt.Fprintf(r.out, "Answer: %s (round %d)\n", w, r.s.Round())
	}
}

// prompt writes label and reads one trimmed, non-empty line.
func (r *repl) prompt(label string) (string, bool) {
	for {
		fmt.Fprint(r.out, label)
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return "", false
		}
		if line := strings.TrimSpace(r.in.Text()); line != "" {
			return line, true
		}
	}
}

func countLength(list []string, length int) int {
	n := 0
	for _, w := range list {
		if len(w) == length {
			n++
		}
	}
	return n
}
