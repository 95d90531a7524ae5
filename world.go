package main

import (
	"log"
	"sync"
	"time"
)

// World represents the game world state. The level and collision engine
// are immutable after construction; only player state changes per tick.
type World struct {
	Level      *Level
	Engine     *CollisionEngine
	Board      *TrialBoard
	Players    map[string]*Player
	InputQueue chan PlayerInput
	mu         sync.RWMutex
}

// NewWorld creates a world for one loaded level
func NewWorld(level *Level, engine *CollisionEngine, board *TrialBoard) *World {
	return &World{
		Level:      level,
		Engine:     engine,
		Board:      board,
		Players:    make(map[string]*Player),
		InputQueue: make(chan PlayerInput, InputQueueSize),
	}
}

// Start begins the game loop
func (w *World) Start() {
	go w.GameLoop()
	go w.BroadcastLoop()
}

// GameLoop runs the main game tick at 30Hz
func (w *World) GameLoop() {
	ticker := time.NewTicker(time.Duration(TickInterval) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		w.Update(float64(TickInterval) / 1000.0)
	}
}

// BroadcastLoop sends state updates to clients at 15Hz and the trial
// board at a slower cadence
func (w *World) BroadcastLoop() {
	stateTicker := time.NewTicker(time.Second / BroadcastRate)
	boardTicker := time.NewTicker(TrialBroadcastSecs * time.Second)
	defer stateTicker.Stop()
	defer boardTicker.Stop()

	for {
		select {
		case <-stateTicker.C:
			w.BroadcastState()
		case <-boardTicker.C:
			w.BroadcastBestTimes()
		}
	}
}

// Update updates the game state for one tick
func (w *World) Update(dt float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// 1. Process input queue
	w.ProcessInputs()

	// 2. Move players through the obstacle set
	w.UpdatePhysics(dt)

	// 3. Finish trials for players inside the exit region
	w.CheckTrialFinishes()
}

// ProcessInputs drains the input queue and updates player input state
func (w *World) ProcessInputs() {
	for {
		select {
		case input := <-w.InputQueue:
			if player, exists := w.Players[input.PlayerID]; exists {
				// The direction persists until the next input update
				player.InputDirection = input.Direction
				player.LastSeq = input.Seq
			}
		default:
			return
		}
	}
}

// UpdatePhysics advances each player along its desired movement segment,
// letting the collision engine stop or slide it at walls. The resolved
// position comes from the last collision result of the tick.
func (w *World) UpdatePhysics(dt float64) {
	for _, player := range w.Players {
		targetVelocity := player.InputDirection.Mul(PlayerSpeed)
		player.Velocity = Lerp(player.Velocity, targetVelocity, VelocityLerp)

		desired := player.Position.Add(player.Velocity.Mul(dt))
		desired.X = Clamp(desired.X, PlayerHalfWidth, w.Level.Width-PlayerHalfWidth)
		desired.Y = Clamp(desired.Y, PlayerHalfDepth, w.Level.Height-PlayerHalfDepth)

		results := w.Engine.ResolveMovement(Segment{Start: player.Position, End: desired})
		last := results[len(results)-1]

		player.Position = Vec2{
			X: Clamp(last.NewPos.X, PlayerHalfWidth, w.Level.Width-PlayerHalfWidth),
			Y: Clamp(last.NewPos.Y, PlayerHalfDepth, w.Level.Height-PlayerHalfDepth),
		}

		if results[0].Obstacle != nil {
			player.LastHitID = results[0].Obstacle.ID
		} else {
			player.LastHitID = ""
		}
	}
}

// CheckTrialFinishes completes the run of any player standing in the exit
// region, persists the time, and resets them to spawn
func (w *World) CheckTrialFinishes() {
	if !w.Level.HasExit {
		return
	}

	for _, player := range w.Players {
		if player.Finished || !w.Level.Exit.Contains(player.Position) {
			continue
		}

		player.Finished = true
		elapsed := time.Since(player.RunStart)
		result, personalBest := w.Board.RecordFinish(player, elapsed)

		if player.Client != nil {
			player.Client.SendMessage(ServerMessage{
				Type: "finish",
				Payload: FinishPayload{
					Millis:       elapsed.Milliseconds(),
					PersonalBest: personalBest,
					Rank:         result.Rank,
				},
			})
		}
		log.Printf("Player %s finished in %dms", player.Name, elapsed.Milliseconds())

		player.ResetRun(w.Level.Spawn)
	}
}

// BroadcastState sends the per-player game state
func (w *World) BroadcastState() {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, player := range w.Players {
		if player.Client == nil {
			continue
		}

		state := w.BuildStateForPlayer(player)
		player.Client.SendMessage(ServerMessage{
			Type:    "state",
			Payload: state,
		})
	}
}

// BroadcastBestTimes sends the ranked trial board to everyone
func (w *World) BroadcastBestTimes() {
	w.mu.RLock()
	defer w.mu.RUnlock()

	entries := w.Board.BestTimes()
	if len(entries) == 0 {
		return
	}
	payload := BestTimesPayload{Entries: entries}

	for _, player := range w.Players {
		if player.Client == nil {
			continue
		}
		player.Client.SendMessage(ServerMessage{
			Type:    "bestTimes",
			Payload: payload,
		})
	}
}

// BuildStateForPlayer creates a game state message for a specific player
func (w *World) BuildStateForPlayer(player *Player) GameStatePayload {
	hitName := ""
	if player.LastHitID != "" {
		for _, obs := range w.Engine.Obstacles() {
			if obs.ID == player.LastHitID {
				hitName = obs.Name
				break
			}
		}
	}

	you := PlayerState{
		ID:        player.ID,
		X:         player.Position.X,
		Y:         player.Position.Y,
		VelX:      player.Velocity.X,
		VelY:      player.Velocity.Y,
		Seq:       player.LastSeq,
		RunMillis: time.Since(player.RunStart).Milliseconds(),
		Hit:       hitName,
	}

	others := make([]OtherPlayerState, 0)
	for _, other := range w.Players {
		if other.ID == player.ID {
			continue
		}
		others = append(others, OtherPlayerState{
			ID:   other.ID,
			Name: other.Name,
			X:    other.Position.X,
			Y:    other.Position.Y,
			VelX: other.Velocity.X,
			VelY: other.Velocity.Y,
		})
	}

	return GameStatePayload{You: you, Others: others}
}

// WallStates returns the level's obstacles in wire form
func (w *World) WallStates() []WallState {
	walls := make([]WallState, 0, len(w.Level.Obstacles))
	for _, obs := range w.Level.Obstacles {
		r := obs.BoundsRect()
		walls = append(walls, WallState{
			ID:       obs.ID,
			Name:     obs.Name,
			X:        r.X,
			Y:        r.Y,
			Width:    r.Width,
			Height:   r.Height,
			Collides: obs.Collides,
		})
	}
	return walls
}

// AddPlayer adds a new player to the world
func (w *World) AddPlayer(player *Player) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.Players[player.ID] = player
	log.Printf("Added player %s to world. Total players: %d", player.ID, len(w.Players))
}

// Disconnect removes a player when they disconnect
func (w *World) Disconnect(client *Client) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if client.Player != nil {
		delete(w.Players, client.Player.ID)
		log.Printf("Player %s disconnected. Total players: %d", client.Player.ID, len(w.Players))
	}

	close(client.Send)
}
