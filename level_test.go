package main

import (
	"math"
	"os"
	"testing"
)

func TestLoadLevel(t *testing.T) {
	level, err := LoadLevel(os.DirFS("."), "testdata/small.tmx")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}

	if level.Width != 1000 || level.Height != 1000 {
		t.Errorf("dimensions = %.0fx%.0f, want 1000x1000", level.Width, level.Height)
	}
	if len(level.Obstacles) != 3 {
		t.Fatalf("loaded %d obstacles, want 3", len(level.Obstacles))
	}

	byName := make(map[string]*Obstacle)
	for _, obs := range level.Obstacles {
		byName[obs.Name] = obs
	}
	if bar := byName["bar"]; bar == nil || !bar.Collides {
		t.Error("bar missing or not solid")
	}
	if rug := byName["rug"]; rug == nil || rug.Collides {
		t.Error("rug missing or wrongly solid")
	}

	if want := (Vec2{X: 80, Y: 80}); level.Spawn != want {
		t.Errorf("spawn = %+v, want %+v", level.Spawn, want)
	}
	if !level.HasExit {
		t.Fatal("exit region not loaded")
	}
	if level.Exit.X != 850 || level.Exit.Y != 850 || level.Exit.Width != 100 || level.Exit.Height != 100 {
		t.Errorf("exit = %+v", level.Exit)
	}
}

func TestLoadLevelRejectsExitOutsideBounds(t *testing.T) {
	// The exit rect sits past the 500x500 map edge and can never be reached
	if _, err := LoadLevel(os.DirFS("."), "testdata/badexit.tmx"); err == nil {
		t.Error("expected error for out-of-bounds exit region")
	}
}

func TestSpawnPointJittersAroundSpawn(t *testing.T) {
	level, err := LoadLevel(os.DirFS("."), "testdata/small.tmx")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}

	for i := 0; i < 50; i++ {
		p := level.SpawnPoint()
		if math.Abs(p.X-level.Spawn.X) > SpawnJitter || math.Abs(p.Y-level.Spawn.Y) > SpawnJitter {
			t.Fatalf("spawn point %+v strayed from %+v", p, level.Spawn)
		}
	}
}

func TestLoadLevelMissingFile(t *testing.T) {
	if _, err := LoadLevel(os.DirFS("."), "testdata/nope.tmx"); err == nil {
		t.Error("expected error for missing level")
	}
}

func TestBuildEngineSkipsDecorative(t *testing.T) {
	level, err := LoadLevel(os.DirFS("."), "testdata/small.tmx")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}

	engine, err := level.BuildEngine(16, 16, GridCellSize)
	if err != nil {
		t.Fatalf("BuildEngine: %v", err)
	}
	if n := len(engine.Obstacles()); n != 2 {
		t.Errorf("indexed %d obstacles, want 2 solid", n)
	}
	for _, obs := range engine.Obstacles() {
		if obs.Name == "rug" {
			t.Error("decorative rug was indexed")
		}
		if len(obs.GridCells) == 0 {
			t.Errorf("obstacle %s has no recorded grid cells", obs.Name)
		}
	}
}

func TestShippedArenaLevelLoads(t *testing.T) {
	level, err := LoadLevel(os.DirFS("."), "levels/arena.tmx")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if _, err := level.BuildEngine(PlayerHalfWidth, PlayerHalfDepth, GridCellSize); err != nil {
		t.Fatalf("BuildEngine: %v", err)
	}
	if !level.HasExit {
		t.Error("arena level has no exit region")
	}
}
