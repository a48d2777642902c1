package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

func writeWords(t *testing.T, list ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(strings.Join(list, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	return path
}

// runCLI drives run with the given stdin and returns stdout.
func runCLI(t *testing.T, input string, extra ...string) (string, error) {
	t.Helper()
	path := writeWords(t, "apple", "alley", "angle", "cat")
	args := append([]string{"-words", path, "-cache", "off", "-no-color", "-top", "3", "-length", "5"}, extra...)
	var out bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(input), &out, io.Discard)
	return out.String(), err
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestREPLSolves(t *testing.T) {
	out, err := runCLI(t, "apple\n2 0 0 2 2\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, out,
		"vocab: 3",
		"1.5850: angle\n1.5850: apple\n0.9183: alley\n",
		"Input word: Input pattern: ",
		"A P P L E  (2 0 0 2 2)",
		"Answer: angle (round 2)",
	)
}

func TestREPLInvalidPatternThenNoWord(t *testing.T) {
	out, err := runCLI(t, "apple\n2 2\napples\n2 2 2 2 2\napple\n2 2 0 0 0\nangle\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, out,
		"Invalid pattern",
		"Invalid word: need 5 letters",
		"No word found",
		"Session finished",
	)
	if got := strings.Count(out, "vocab: 3"); got != 3 {
		t.Fatalf("ranking printed %d times, want 3 (replayed after each bad input)", got)
	}
}

func TestREPLCommands(t *testing.T) {
	out, err := runCLI(t, ":list\n:new 4\n:new x\n:bogus\n:new 3\n:quit\napple\n")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, out,
		"alley angle apple\n",
		"No words of length 4",
		`Invalid length "x"`,
		"Unknown command :bogus",
		"Answer: cat (round 1)",
	)
	if strings.Contains(out, "Input pattern") {
		t.Fatalf("read past :quit:\n%s", out)
	}
}

func TestREPLMissingLength(t *testing.T) {
	_, err := runCLI(t, "", "-length", "7")
	if !errors.Is(err, solver.ErrDegenerateInput) {
		t.Fatalf("got %v, want ErrDegenerateInput", err)
	}
}

func TestSimulate(t *testing.T) {
	out, err := runCLI(t, "", "-simulate", "alley")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, out,
		"1. A N G L E  (2 0 0 1 1)",
		"2. A L L E Y  (2 2 2 2 2)",
		"Solved alley in 2 guesses",
	)
}

func TestSimulateUnknownAnswer(t *testing.T) {
	_, err := runCLI(t, "", "-simulate", "zzzzz")
	if !errors.Is(err, solver.ErrEmptyResult) {
		t.Fatalf("got %v, want ErrEmptyResult", err)
	}
}

func TestRunWithSQLiteCache(t *testing.T) {
	path := writeWords(t, "apple", "alley", "angle")
	dsn := filepath.Join(t.TempDir(), "cache", "scores.db")
	args := []string{"-words", path, "-cache", dsn, "-cache-min", "1", "-no-color"}
	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		if err := run(context.Background(), args, strings.NewReader(":quit\n"), &out, io.Discard); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		assertContains(t, out.String(), "1.5850: angle")
	}
	if _, err := os.Stat(dsn); err != nil {
		t.Fatalf("cache file not created: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("WORD_LENGTH", "6")
	t.Setenv("TOP_N", "4")
	t.Setenv("WORKERS", "bogus")
	t.Setenv("CACHE_DSN", "memory")

	cfg, err := loadConfig(nil, io.Discard)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Length != 6 || cfg.Top != 4 || cfg.CacheDSN != cacheMemory || cfg.Workers < 1 {
		t.Fatalf("env not applied: %+v", cfg)
	}

	cfg, err = loadConfig([]string{"-length", "5", "-top", "0", "-workers", "0"}, io.Discard)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Length != 5 || cfg.Top != 1 || cfg.Workers != 1 {
		t.Fatalf("flags not applied: %+v", cfg)
	}

	if _, err := loadConfig([]string{"-length", "41"}, io.Discard); err == nil {
		t.Fatal("accepted length 41")
	}
	if _, err := loadConfig([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("-h: got %v, want flag.ErrHelp", err)
	}
}

func TestTilesWithColor(t *testing.T) {
	setColors(true)
	defer setColors(false)
	got := tiles("abc", 0, 3)
	if !strings.Contains(got, "\x1b[") || strings.Contains(got, "(") {
		t.Fatalf("tiles(abc) = %q", got)
	}
}
