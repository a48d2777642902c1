package cache

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleKey(t *testing.T) (Key, []solver.Entry) {
	t.Helper()
	c, err := solver.NewCandidates(5, []string{"apple", "alley", "angle"})
	if err != nil {
		t.Fatalf("NewCandidates: %v", err)
	}
	entries, err := solver.Score(c)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	return KeyFor(c), entries
}

func testStoreRoundTrip(t *testing.T, st Store) {
	ctx := context.Background()
	key, entries := sampleKey(t)

	if _, err := st.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty store: got %v, want ErrNotFound", err)
	}
	if err := st.Put(ctx, key, entries); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := st.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, entries) {
		t.Fatalf("got %v, want %v", got, entries)
	}

	// Same length, other content: still a miss.
	other := Key{Length: key.Length, Fingerprint: "deadbeef"}
	if _, err := st.Get(ctx, other); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other fingerprint: got %v, want ErrNotFound", err)
	}

	// Put replaces.
	replaced := entries[:1]
	if err := st.Put(ctx, key, replaced); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, err = st.Get(ctx, key)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if !reflect.DeepEqual(got, replaced) {
		t.Fatalf("after replace got %v, want %v", got, replaced)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore())
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewSQLiteStore(setupTestDB(t)))
}

func TestMemoryStoreCopiesEntries(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	key, entries := sampleKey(t)
	if err := st.Put(ctx, key, entries); err != nil {
		t.Fatalf("put: %v", err)
	}
	entries[0].Word = "zzzzz"
	got, _ := st.Get(ctx, key)
	if got[0].Word == "zzzzz" {
		t.Fatalf("store aliased the caller's slice")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", n)
	}
	for _, table := range []string{"score_sets", "score_entries"} {
		var name string
		if err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name); err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "scores.db")
	key, entries := sampleKey(t)

	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := NewSQLiteStore(db).Put(ctx, key, entries); err != nil {
		t.Fatalf("put: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate after reopen: %v", err)
	}
	got, err := NewSQLiteStore(db).Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, entries) {
		t.Fatalf("got %v, want %v", got, entries)
	}
}
