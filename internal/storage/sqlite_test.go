package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(RunRecord{Score: 42}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.Prefs("").SetInt("HighScore", 42); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if high, _ := store.HighScore(""); high != 42 {
		t.Errorf("HighScore() after reopen = %d, expected 42", high)
	}
	if v, _ := store.Prefs(LocalScope).Int("HighScore"); v != 42 {
		t.Errorf("pref after reopen = %d, expected 42", v)
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/runner")

	got, err := ExpandPath("~/.neometro/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if got != "/home/runner/.neometro/scores.db" {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute paths should be unchanged, got %q", got)
	}
}

func TestSaveRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.SaveRun(RunRecord{Score: 361, Distance: 50, Duration: 5, Seed: 7})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if rec.ID == (ulid.ULID{}) {
		t.Fatal("SaveRun() should assign an ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("SaveRun() should set CreatedAt")
	}

	runs, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != rec.ID || got.Score != 361 || got.Distance != 50 || got.Duration != 5 || got.Seed != 7 {
		t.Errorf("stored run = %+v, expected %+v", got, rec)
	}
	if d := got.CreatedAt.Sub(rec.CreatedAt); d > time.Second || d < -time.Second {
		t.Errorf("CreatedAt drifted by %v", d)
	}
}

func TestTopRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 500, 300, 200, 400} {
		if _, err := store.SaveRun(RunRecord{Player: "aria", Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	store.SaveRun(RunRecord{Player: "kai", Score: 900})

	runs, err := store.TopRuns("aria", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("runs not in expected order: %v", runs)
	}

	all, _ := store.TopRuns("", 0)
	if len(all) != 6 || all[0].Player != "kai" {
		t.Errorf("TopRuns for everyone = %v", all)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveRun(RunRecord{Score: i})
	}

	runs, err := store.RecentRuns("", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Score != 4 || runs[1].Score != 3 {
		t.Errorf("RecentRuns() = %v, expected the last two, newest first", runs)
	}
}

func TestHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	if high, err := store.HighScore(""); err != nil || high != 0 {
		t.Fatalf("HighScore() on empty store = %d, %v", high, err)
	}

	store.SaveRun(RunRecord{Player: "aria", Score: 100})
	store.SaveRun(RunRecord{Player: "aria", Score: 300})
	store.SaveRun(RunRecord{Player: "kai", Score: 200})

	if high, _ := store.HighScore("aria"); high != 300 {
		t.Errorf("HighScore(aria) = %d, expected 300", high)
	}

	if err := store.ClearRuns("aria"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns("aria", 10); len(runs) != 0 {
		t.Errorf("expected no runs for aria after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns("kai", 10); len(runs) != 1 {
		t.Error("other players should not be affected by a clear")
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats("")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveRun(RunRecord{Score: 100, Distance: 20, Duration: 2})
	store.SaveRun(RunRecord{Score: 300, Distance: 60, Duration: 6})

	stats, err = store.Stats("")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalDistance != 80 || stats.LongestRun != 60 || stats.TotalTime != 8 {
		t.Errorf("distance stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestPrefsDefaultsAndRoundTrip(t *testing.T) {
	store := openTestStore(t)
	p := store.Prefs("")

	if p.Scope() != LocalScope {
		t.Errorf("empty scope should map to %q, got %q", LocalScope, p.Scope())
	}
	if v, err := p.Int("HasSeenStory"); err != nil || v != 0 {
		t.Errorf("absent key = %d, %v; expected 0, nil", v, err)
	}

	if err := p.SetInt("TimesPlayed", 1); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	if err := p.SetInt("TimesPlayed", 2); err != nil {
		t.Fatalf("SetInt() overwrite failed: %v", err)
	}
	if v, _ := p.Int("TimesPlayed"); v != 2 {
		t.Errorf("TimesPlayed = %d, expected 2", v)
	}

	p.SetInt("HasSeenStory", 1)
	all, err := p.All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(all) != 2 || all["HasSeenStory"] != 1 {
		t.Errorf("All() = %v", all)
	}

	if err := p.Delete("HasSeenStory", "TimesPlayed", "Missing"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if v, _ := p.Int("TimesPlayed"); v != 0 {
		t.Errorf("deleted key should read as 0, got %d", v)
	}
}

func TestPrefsScopesAreIsolated(t *testing.T) {
	store := openTestStore(t)

	store.Prefs("aria").SetInt("HighScore", 1500)
	store.Prefs("kai").SetInt("HighScore", 200)

	if v, _ := store.Prefs("aria").Int("HighScore"); v != 1500 {
		t.Errorf("aria HighScore = %d", v)
	}
	if v, _ := store.Prefs(LocalScope).Int("HighScore"); v != 0 {
		t.Errorf("local HighScore = %d, expected 0", v)
	}
}

func TestStoreConcurrentWriters(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 10 {
				if _, err := store.SaveRun(RunRecord{Score: i*10 + j}); err != nil {
					t.Errorf("SaveRun() failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	stats, _ := store.Stats("")
	if stats.Runs != 80 {
		t.Errorf("expected 80 runs, got %d", stats.Runs)
	}
}
