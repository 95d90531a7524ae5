package main

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "trials.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTopResultsRanksBestTimePerPlayer(t *testing.T) {
	store := newTestStore(t)

	saves := []struct {
		player string
		millis int64
	}{
		{"ana", 1200},
		{"ana", 900},
		{"bo", 1000},
		{"cy", 3000},
	}
	for _, s := range saves {
		if err := store.SaveResult(s.player, s.millis); err != nil {
			t.Fatalf("SaveResult(%s): %v", s.player, err)
		}
	}

	results, err := store.TopResults(10)
	if err != nil {
		t.Fatalf("TopResults: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	want := []TrialResult{
		{Name: "ana", Millis: 900, Rank: 1},
		{Name: "bo", Millis: 1000, Rank: 2},
		{Name: "cy", Millis: 3000, Rank: 3},
	}
	for i, w := range want {
		if results[i] != w {
			t.Errorf("result %d = %+v, want %+v", i, results[i], w)
		}
	}
}

func TestTopResultsHonorsLimit(t *testing.T) {
	store := newTestStore(t)
	for i, name := range []string{"a", "b", "c", "d"} {
		if err := store.SaveResult(name, int64(1000+i)); err != nil {
			t.Fatalf("SaveResult: %v", err)
		}
	}

	results, err := store.TopResults(2)
	if err != nil {
		t.Fatalf("TopResults: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestBestFor(t *testing.T) {
	store := newTestStore(t)
	store.SaveResult("ana", 1500)
	store.SaveResult("ana", 700)

	best, err := store.BestFor("ana")
	if err != nil {
		t.Fatalf("BestFor: %v", err)
	}
	if best != 700 {
		t.Errorf("best = %d, want 700", best)
	}

	none, err := store.BestFor("nobody")
	if err != nil {
		t.Fatalf("BestFor(nobody): %v", err)
	}
	if none != 0 {
		t.Errorf("best for unknown player = %d, want 0", none)
	}
}
