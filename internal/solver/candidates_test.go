package solver

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewCandidatesSortsAndDedupes(t *testing.T) {
	c := mustCandidates(t, 5, []string{"slate", "crane", "slate", "apple"})
	want := []string{"apple", "crane", "slate"}
	if got := c.Words(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if c.Len() != 3 || c.Length() != 5 || c.Version() != 0 {
		t.Fatalf("unexpected snapshot: len=%d length=%d version=%d", c.Len(), c.Length(), c.Version())
	}
	if !c.Contains("crane") || c.Contains("trace") {
		t.Fatalf("Contains is wrong")
	}
}

func TestNewCandidatesRejectsMixedLengths(t *testing.T) {
	if _, err := NewCandidates(5, []string{"crane", "cranes"}); !errors.Is(err, ErrWordLength) {
		t.Fatalf("got %v, want ErrWordLength", err)
	}
	if _, err := NewCandidates(0, nil); !errors.Is(err, ErrWordLength) {
		t.Fatalf("length 0: got %v, want ErrWordLength", err)
	}
}

func TestWordsReturnsCopy(t *testing.T) {
	c := mustCandidates(t, 5, []string{"apple", "crane"})
	w := c.Words()
	w[0] = "zzzzz"
	if c.Words()[0] != "apple" {
		t.Fatalf("Words exposed internal storage")
	}
}

func TestFingerprintDependsOnContentOnly(t *testing.T) {
	a := mustCandidates(t, 5, []string{"crane", "apple", "slate"})
	b := mustCandidates(t, 5, []string{"slate", "crane", "apple", "apple"})
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("same words, different fingerprints")
	}
	c := mustCandidates(t, 5, []string{"crane", "apple", "plate"})
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatalf("different words, same fingerprint")
	}
	if len(a.Fingerprint()) != 64 {
		t.Fatalf("fingerprint %q is not a hex BLAKE2b-256 digest", a.Fingerprint())
	}
}

func TestSubsetOfAcrossSessions(t *testing.T) {
	small := mustCandidates(t, 5, []string{"apple", "crane"})
	big := mustCandidates(t, 5, []string{"apple", "crane", "slate"})
	if !small.SubsetOf(big) {
		t.Fatalf("expected subset")
	}
	if big.SubsetOf(small) {
		t.Fatalf("unexpected subset")
	}
}
