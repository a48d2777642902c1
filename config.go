// config.go
//
// Runtime configuration for the solver CLI.
// Sources, lowest precedence first:
//   1. Built-in defaults.
//   2. Environment (optionally loaded from .env by godotenv in main).
//   3. Command-line flags.
//
// Environment variables:
//   WORD_LENGTH=5            word length for the first session
//   WORDS_FILE=/path/list    word list (embedded default when unset)
//   CACHE_DSN=./data/scores.db | memory | off
//   CACHE_MIN_WORDS=200      smallest candidate set worth caching
//   TOP_N=10                 ranked suggestions shown per round
//   WORKERS=<NumCPU>         scoring goroutines
//   LOG_LEVEL=warn           zerolog level
//   LOG_FORMAT=console       console | json
//   NO_COLOR=1               plain tiles

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
)

const (
	cacheMemory = "memory"
	cacheOff    = "off"
)

type config struct {
	Length    int
	WordsFile string
	CacheDSN  string
	CacheMin  int
	Top       int
	Workers   int
	LogLevel  string
	LogFormat string
	NoColor   bool
	Simulate  string // answer to auto-play against
	Opener    string // first guess when simulating
}

// loadConfig reads the environment, then parses args over it.
func loadConfig(args []string, stderr io.Writer) (config, error) {
	cfg := config{
		Length:    envInt("WORD_LENGTH", 5),
		WordsFile: os.Getenv("WORDS_FILE"),
		CacheDSN:  getEnv("CACHE_DSN", "./data/scores.db"),
		CacheMin:  envInt("CACHE_MIN_WORDS", 200),
		Top:       envInt("TOP_N", 10),
		Workers:   envInt("WORKERS", runtime.NumCPU()),
		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
		NoColor:   os.Getenv("NO_COLOR") != "",
	}

	fs := flag.NewFlagSet("solver", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.Length, "length", cfg.Length, "word length")
	fs.StringVar(&cfg.WordsFile, "words", cfg.WordsFile, "word list file (one word per line)")
	fs.StringVar(&cfg.CacheDSN, "cache", cfg.CacheDSN, `score cache: SQLite path, "memory" or "off"`)
	fs.IntVar(&cfg.CacheMin, "cache-min", cfg.CacheMin, "smallest candidate set worth caching")
	fs.IntVar(&cfg.Top, "top", cfg.Top, "suggestions shown per round")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "scoring goroutines")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored tiles")
	fs.StringVar(&cfg.Simulate, "simulate", "", "auto-play against this answer and exit")
	fs.StringVar(&cfg.Opener, "opener", "", "first guess when simulating")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.Length < 1 || cfg.Length > pattern.MaxLength {
		return cfg, fmt.Errorf("length must be 1..%d, got %d", pattern.MaxLength, cfg.Length)
	}
	if cfg.Top < 1 {
		cfg.Top = 1
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt returns k parsed as an int, or def if unset or malformed.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
