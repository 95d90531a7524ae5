package main

import (
	"testing"
	"time"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()

	level := &Level{
		Name:   "test",
		Width:  1000,
		Height: 1000,
		Obstacles: []*Obstacle{
			NewObstacle("wall", 400, 0, 100, 1000, true),
		},
		Spawn:   Vec2{X: 100, Y: 500},
		Exit:    Rect{X: 800, Y: 800, Width: 100, Height: 100},
		HasExit: true,
	}
	engine, err := level.BuildEngine(0, 0, GridCellSize)
	if err != nil {
		t.Fatalf("BuildEngine: %v", err)
	}

	return NewWorld(level, engine, NewTrialBoard(newTestStore(t)))
}

func TestPlayerStopsAtWall(t *testing.T) {
	w := newTestWorld(t)
	player := NewPlayer("ana", w.Level.Spawn, nil)
	w.AddPlayer(player)

	player.InputDirection = Vec2{X: 1, Y: 0}
	for i := 0; i < 120; i++ {
		w.Update(1.0 / TickRate)
	}

	if player.Position.X != 399 {
		t.Errorf("player X = %v, want 399 (stopped one unit before the wall)", player.Position.X)
	}
	if player.Position.Y != 500 {
		t.Errorf("player Y drifted to %v", player.Position.Y)
	}
	if player.LastHitID != w.Level.Obstacles[0].ID {
		t.Errorf("LastHitID = %q, want the wall", player.LastHitID)
	}
}

func TestStationaryPlayerDoesNotMove(t *testing.T) {
	w := newTestWorld(t)
	player := NewPlayer("bo", w.Level.Spawn, nil)
	w.AddPlayer(player)

	for i := 0; i < 10; i++ {
		w.Update(1.0 / TickRate)
	}

	if player.Position != w.Level.Spawn {
		t.Errorf("idle player moved to %+v", player.Position)
	}
	if player.LastHitID != "" {
		t.Errorf("idle player reported hit %q", player.LastHitID)
	}
}

func TestInputQueueDrivesDirection(t *testing.T) {
	w := newTestWorld(t)
	player := NewPlayer("cy", w.Level.Spawn, nil)
	w.AddPlayer(player)

	w.InputQueue <- PlayerInput{
		PlayerID:  player.ID,
		Direction: Vec2{X: 0, Y: -1},
		Seq:       7,
		Timestamp: time.Now(),
	}
	w.Update(1.0 / TickRate)

	if player.InputDirection != (Vec2{X: 0, Y: -1}) {
		t.Errorf("input direction = %+v", player.InputDirection)
	}
	if player.LastSeq != 7 {
		t.Errorf("seq = %d, want 7", player.LastSeq)
	}
	if player.Position.Y >= w.Level.Spawn.Y {
		t.Errorf("player did not move up: Y = %v", player.Position.Y)
	}
}

func TestReachingExitFinishesTrial(t *testing.T) {
	w := newTestWorld(t)
	player := NewPlayer("dee", w.Level.Spawn, nil)
	w.AddPlayer(player)

	player.Position = Vec2{X: 850, Y: 850}
	player.RunStart = time.Now().Add(-2 * time.Second)
	w.Update(1.0 / TickRate)

	if player.Position != w.Level.Spawn {
		t.Errorf("player not reset to spawn, at %+v", player.Position)
	}
	if player.BestMillis < 1900 || player.BestMillis > 3000 {
		t.Errorf("recorded time %dms out of range", player.BestMillis)
	}

	board := w.Board.BestTimes()
	if len(board) != 1 || board[0].Name != "dee" {
		t.Fatalf("best times = %+v", board)
	}
}

func TestTooFastTrialIsDiscarded(t *testing.T) {
	w := newTestWorld(t)
	player := NewPlayer("ed", w.Level.Spawn, nil)
	w.AddPlayer(player)

	// A finish within the bogus-run threshold must not reach the board
	player.Position = Vec2{X: 850, Y: 850}
	player.RunStart = time.Now()
	w.Update(1.0 / TickRate)

	if player.Position != w.Level.Spawn {
		t.Errorf("player not reset to spawn, at %+v", player.Position)
	}
	if len(w.Board.BestTimes()) != 0 {
		t.Errorf("bogus run made the board: %+v", w.Board.BestTimes())
	}
}

func TestWallStatesMirrorLevel(t *testing.T) {
	w := newTestWorld(t)

	walls := w.WallStates()
	if len(walls) != 1 {
		t.Fatalf("got %d wall states, want 1", len(walls))
	}
	ws := walls[0]
	if ws.Name != "wall" || !ws.Collides {
		t.Errorf("wall state = %+v", ws)
	}
	if ws.X != 400 || ws.Y != 0 || ws.Width != 100 || ws.Height != 1000 {
		t.Errorf("wall geometry = %+v", ws)
	}
}
