// main.go
//
// Entry point for the entropy-ranked word solver.
// Responsibilities:
//   - Load .env, configuration and logging.
//   - Load the vocabulary and open the score cache.
//   - Run the interactive round loop, or auto-play with -simulate.

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/cache"
	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("solver exited")
	}
}

// run is main without process globals, so the CLI can be driven from tests.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		return err
	}
	setupLogging(cfg, stderr)
	setColors(!cfg.NoColor)

	vocab, err := words.LoadAll(cfg.WordsFile)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	log.Info().Int("words", len(vocab)).Interface("lengths", words.Lengths(vocab)).Msg("vocabulary loaded")

	store, closeStore, err := openCache(cfg.CacheDSN)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer closeStore()

	progress := newScoreProgress(stderr)
	scorer := solver.NewScorer(solver.WithWorkers(cfg.Workers), solver.WithProgress(progress.add))
	var opts []session.Option
	if store != nil {
		opts = append(opts, session.WithCache(store, cfg.CacheMin))
	}
	ctl := session.NewController(scorer, opts...)

	if cfg.Simulate != "" {
		return simulate(ctx, ctl, vocab, cfg, progress, stdout)
	}
	return newREPL(ctl, vocab, cfg.Top, progress, stdin, stdout).run(ctx, cfg.Length)
}

// simulate auto-plays one game against cfg.Simulate and prints each guess.
func simulate(ctx context.Context, ctl *session.Controller, vocab []string, cfg config, progress *scoreProgress, out io.Writer) error {
	length := len(strings.TrimSpace(cfg.Simulate))
	progress.expect(countLength(vocab, length))
	start, err := ctl.Start(ctx, length, vocab)
	progress.finish()
	if err != nil {
		return err
	}

	began := time.Now()
	_, guesses, err := ctl.Simulate(ctx, start, cfg.Simulate, cfg.Opener)
	answer := strings.ToLower(strings.TrimSpace(cfg.Simulate))
	for i, g := range guesses {
		fmt.Fprintf(out, "%d. %s\n", i+1, tiles(g, pattern.Encode(g, answer), length))
	}
	if err != nil {
		return err
	}
	log.Info().Str("answer", answer).Int("guesses", len(guesses)).Dur("elapsed", time.Since(began)).Msg("simulation finished")
	fmt.Fprintf(out, "Solved %s in %d guesses\n", answer, len(guesses))
	return nil
}

// openCache returns the score store selected by dsn, or nil when caching is off.
func openCache(dsn string) (cache.Store, func(), error) {
	switch dsn {
	case cacheOff, "":
		return nil, func() {}, nil
	case cacheMemory:
		return cache.NewMemoryStore(), func() {}, nil
	}

	db, err := cache.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := cache.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	log.Info().Str("dsn", dsn).Msg("score cache ready")
	return cache.NewSQLiteStore(db), closeDB(db), nil
}

func closeDB(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close score cache")
		}
	}
}

// setupLogging points the global zerolog logger at w.
func setupLogging(cfg config, w io.Writer) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: cfg.NoColor, TimeFormat: time.Kitchen})
}
