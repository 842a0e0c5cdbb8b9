package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-memory/internal/rank"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(user string, lvl, moves, elapsed, points int, date string) rank.Record {
	return rank.Record{
		Username:       user,
		Level:          lvl,
		Moves:          moves,
		ElapsedSeconds: elapsed,
		Points:         points,
		DateKey:        date,
	}
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestAppendAndFetchScores(t *testing.T) {
	store := openTestStore(t)

	records := []rank.Record{
		testRecord("alice", 1, 2, 10, 960, "2026-08-29"),
		testRecord("bob", 1, 5, 30, 890, "2026-08-29"),
		testRecord("alice", 2, 6, 40, 1860, "2026-08-28"),
	}
	for _, rec := range records {
		if _, err := store.AppendScore(rec); err != nil {
			t.Fatalf("AppendScore() failed: %v", err)
		}
	}

	got, err := store.AllScores()
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("AllScores() returned %d records, expected 3", len(got))
	}

	// Insertion order must be preserved for the aggregator's tie-breaks.
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d = %+v, expected %+v", i, got[i], records[i])
		}
	}
}

func TestScoresOnFiltersByDate(t *testing.T) {
	store := openTestStore(t)

	store.AppendScore(testRecord("alice", 1, 2, 10, 960, "2026-08-29"))
	store.AppendScore(testRecord("bob", 1, 5, 30, 890, "2026-08-28"))

	got, err := store.ScoresOn("2026-08-29")
	if err != nil {
		t.Fatalf("ScoresOn() failed: %v", err)
	}
	if len(got) != 1 || got[0].Username != "alice" {
		t.Errorf("ScoresOn() = %+v, expected only alice's record", got)
	}
}

func TestUserMaxLevel(t *testing.T) {
	store := openTestStore(t)

	if lvl, err := store.UserMaxLevel("nobody"); err != nil || lvl != 0 {
		t.Errorf("UserMaxLevel(no history) = %d, %v; expected 0, nil", lvl, err)
	}

	store.AppendScore(testRecord("alice", 1, 2, 10, 960, "2026-08-29"))
	store.AppendScore(testRecord("alice", 3, 8, 60, 2800, "2026-08-29"))
	store.AppendScore(testRecord("alice", 2, 6, 40, 1860, "2026-08-29"))

	lvl, err := store.UserMaxLevel("alice")
	if err != nil {
		t.Fatalf("UserMaxLevel() failed: %v", err)
	}
	if lvl != 3 {
		t.Errorf("UserMaxLevel() = %d, expected 3", lvl)
	}
}

func TestCreateProfileUniqueIgnoringCase(t *testing.T) {
	store := openTestStore(t)

	p, err := store.CreateProfile("Alice")
	if err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}
	if p.ID == "" {
		t.Error("CreateProfile() returned empty ID")
	}

	if _, err := store.CreateProfile("alice"); !errors.Is(err, ErrProfileExists) {
		t.Errorf("CreateProfile(duplicate) = %v, expected ErrProfileExists", err)
	}
}

func TestFindProfile(t *testing.T) {
	store := openTestStore(t)

	if p, err := store.FindProfile("ghost"); err != nil || p != nil {
		t.Errorf("FindProfile(missing) = %v, %v; expected nil, nil", p, err)
	}

	created, err := store.CreateProfile("Carol")
	if err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}

	found, err := store.FindProfile("carol")
	if err != nil {
		t.Fatalf("FindProfile() failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Errorf("FindProfile() = %+v, expected profile %s", found, created.ID)
	}
}

func TestEnsureProfileIdempotent(t *testing.T) {
	store := openTestStore(t)

	first, err := store.EnsureProfile("dave")
	if err != nil {
		t.Fatalf("EnsureProfile() failed: %v", err)
	}
	second, err := store.EnsureProfile("dave")
	if err != nil {
		t.Fatalf("EnsureProfile() failed: %v", err)
	}

	if first != second {
		t.Errorf("EnsureProfile() returned different IDs: %s vs %s", first, second)
	}

	profiles, err := store.Profiles()
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(profiles) != 1 {
		t.Errorf("Profiles() returned %d profiles, expected 1", len(profiles))
	}
}
