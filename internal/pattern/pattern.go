// internal/pattern/pattern.go
//
// Feedback codec for the solver.
// Responsibilities:
//   - Score a guess against an answer with the two-pass Wordle algorithm.
//   - Pack the per-letter marks into a single base-3 integer (position i weighs 3^i).
//   - Parse and format the "2 2 0 0 0" form players type in.
//
// Notes:
//   - Marks: absent=0, present=1, exact=2. The same values are used on input.
//   - A guess letter is marked present at most as many times as it remains
//     unconsumed in the answer after exact matches are taken out.

package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLength is the longest word whose outcome code fits in a Code.
const MaxLength = 40

// Mark is the evaluation result for a single letter of a guess.
type Mark uint8

const (
	Absent  Mark = iota // letter not in the answer (or all occurrences used up)
	Present             // letter in the answer at another position
	Exact               // letter at this position
)

func (m Mark) String() string {
	switch m {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Exact:
		return "exact"
	}
	return fmt.Sprintf("mark(%d)", uint8(m))
}

// Code is the outcome of one guess packed as Σ mark(i)·3^i.
type Code uint64

// ErrInvalidPattern is returned for patterns with the wrong number of marks
// or a mark outside {0,1,2}.
var ErrInvalidPattern = errors.New("invalid pattern")

var pow3 [MaxLength + 1]uint64

func init() {
	pow3[0] = 1
	for i := 1; i <= MaxLength; i++ {
		pow3[i] = pow3[i-1] * 3
	}
}

// Space returns the number of distinct codes for words of length n (3^n).
func Space(n int) uint64 { return pow3[n] }

// AllExact returns the code of a fully correct guess of length n.
func AllExact(n int) Code { return Code(pow3[n] - 1) }

// Valid reports whether c is a code for words of length n.
func Valid(c Code, n int) bool {
	return n >= 0 && n <= MaxLength && uint64(c) < pow3[n]
}

// Encode scores guess against answer.
//
// Pass 1:
//   - Mark exact matches and count the remaining answer letters.
//
// Pass 2:
//   - For each non-exact guess letter: if a count remains for it, mark Present
//     and decrement the count; otherwise leave it Absent.
//
// Encode panics if the lengths differ or exceed MaxLength.
func Encode(guess, answer string) Code {
	n := len(guess)
	if n != len(answer) {
		panic(fmt.Sprintf("pattern: length mismatch: %q vs %q", guess, answer))
	}
	if n > MaxLength {
		panic(fmt.Sprintf("pattern: word length %d exceeds %d", n, MaxLength))
	}

	var (
		counts [256]uint8
		exact  uint64
		code   uint64
	)
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			exact |= 1 << i
			code += 2 * pow3[i]
		} else {
			counts[answer[i]]++
		}
	}
	for i := 0; i < n; i++ {
		if exact&(1<<i) != 0 {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			counts[c]--
			code += pow3[i]
		}
	}
	return Code(code)
}

// Marks is Encode unpacked into per-position marks.
func Marks(guess, answer string) []Mark {
	return Decode(Encode(guess, answer), len(guess))
}

// Decode unpacks c into n marks, least significant position first.
func Decode(c Code, n int) []Mark {
	out := make([]Mark, n)
	v := uint64(c)
	for i := 0; i < n; i++ {
		out[i] = Mark(v % 3)
		v /= 3
	}
	return out
}

// FromMarks packs per-position marks into a Code.
func FromMarks(marks []Mark) (Code, error) {
	if len(marks) > MaxLength {
		return 0, fmt.Errorf("%w: %d marks exceeds %d", ErrInvalidPattern, len(marks), MaxLength)
	}
	var code uint64
	for i, m := range marks {
		if m > Exact {
			return 0, fmt.Errorf("%w: mark %d at position %d", ErrInvalidPattern, m, i+1)
		}
		code += uint64(m) * pow3[i]
	}
	return Code(code), nil
}

// Parse reads n marks typed as whitespace-separated digits ("2 2 0 0 0").
// A single run of exactly n digits ("22000") is accepted as well.
func Parse(s string, n int) (Code, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 && n > 1 && len(fields[0]) == n {
		fields = strings.Split(fields[0], "")
	}
	if len(fields) != n {
		return 0, fmt.Errorf("%w: want %d marks, got %d", ErrInvalidPattern, n, len(fields))
	}
	marks := make([]Mark, n)
	for i, f := range fields {
		switch f {
		case "0":
			marks[i] = Absent
		case "1":
			marks[i] = Present
		case "2":
			marks[i] = Exact
		default:
			return 0, fmt.Errorf("%w: %q at position %d is not 0, 1 or 2", ErrInvalidPattern, f, i+1)
		}
	}
	return FromMarks(marks)
}

// Format renders c as n space-separated digits, the same form Parse accepts.
func Format(c Code, n int) string {
	marks := Decode(c, n)
	var b strings.Builder
	for i, m := range marks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('0' + byte(m))
	}
	return b.String()
}
