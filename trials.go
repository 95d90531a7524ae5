package main

import (
	"log"
	"sync"
	"time"
)

// TrialResult is one entry on the best-times board
type TrialResult struct {
	Name   string `json:"name"`
	Millis int64  `json:"millis"`
	Rank   int    `json:"rank"`
}

// TrialBoard tracks finished runs. It caches the ranked best times so the
// broadcast loop never queries sqlite on the hot path; the cache refreshes
// whenever a run is recorded.
type TrialBoard struct {
	store *Store
	mu    sync.RWMutex
	best  []TrialResult
}

// NewTrialBoard wraps a store and primes the cache from past sessions
func NewTrialBoard(store *Store) *TrialBoard {
	tb := &TrialBoard{store: store}
	tb.refresh()
	return tb
}

// RecordFinish stores a completed run and reports whether it was the
// player's new personal best. Runs shorter than MinTrialMillis are
// discarded (a spawn marker inside the exit region, or clock skew).
func (tb *TrialBoard) RecordFinish(player *Player, elapsed time.Duration) (TrialResult, bool) {
	millis := elapsed.Milliseconds()
	if millis < MinTrialMillis {
		return TrialResult{}, false
	}

	// A returning player's first finish compares against their persisted
	// history, not just this session. Seeded before the save so the run
	// being recorded does not count as its own history.
	if player.BestMillis == 0 {
		if past, err := tb.store.BestFor(player.Name); err != nil {
			log.Printf("Failed to load past best for %s: %v", player.Name, err)
		} else {
			player.BestMillis = past
		}
	}

	if err := tb.store.SaveResult(player.Name, millis); err != nil {
		log.Printf("Failed to persist trial for %s: %v", player.Name, err)
		return TrialResult{}, false
	}

	personalBest := player.BestMillis == 0 || millis < player.BestMillis
	if personalBest {
		player.BestMillis = millis
	}

	tb.refresh()

	result := TrialResult{Name: player.Name, Millis: millis}
	for _, entry := range tb.BestTimes() {
		if entry.Name == player.Name {
			result.Rank = entry.Rank
			break
		}
	}
	return result, personalBest
}

// BestTimes returns the cached ranked board
func (tb *TrialBoard) BestTimes() []TrialResult {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	out := make([]TrialResult, len(tb.best))
	copy(out, tb.best)
	return out
}

func (tb *TrialBoard) refresh() {
	results, err := tb.store.TopResults(BestTimesCount)
	if err != nil {
		log.Printf("Failed to refresh best times: %v", err)
		return
	}
	tb.mu.Lock()
	tb.best = results
	tb.mu.Unlock()
}
