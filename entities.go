package main

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a connected subject moving through the level
type Player struct {
	ID       string
	Name     string
	Position Vec2
	Velocity Vec2
	LastSeq  uint32
	Client   *Client

	// InputDirection persists between input messages, matching how the
	// client samples its pointer.
	InputDirection Vec2

	// Trial state for the current life
	RunStart   time.Time
	Finished   bool
	LastHitID  string // obstacle blocking the most recent tick, if any
	BestMillis int64  // personal best this session, 0 = none
}

// NewPlayer creates a new player at the level spawn point
func NewPlayer(name string, spawn Vec2, client *Client) *Player {
	return &Player{
		ID:       uuid.NewString(),
		Name:     name,
		Position: spawn,
		Client:   client,
		RunStart: time.Now(),
	}
}

// ResetRun puts the player back at spawn and restarts the trial clock
func (p *Player) ResetRun(spawn Vec2) {
	p.Position = spawn
	p.Velocity = Vec2{}
	p.RunStart = time.Now()
	p.Finished = false
	p.LastHitID = ""
}

// PlayerInput represents one input message from a client
type PlayerInput struct {
	PlayerID  string
	Direction Vec2
	Seq       uint32
	Timestamp time.Time
}
