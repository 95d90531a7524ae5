package main

// ClientMessage represents incoming messages from clients
type ClientMessage struct {
	Type string  `json:"type"`
	Name string  `json:"name,omitempty"`
	DirX float64 `json:"dirX,omitempty"`
	DirY float64 `json:"dirY,omitempty"`
	Seq  uint32  `json:"seq,omitempty"`
}

// ServerMessage represents outgoing messages to clients
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// WallState describes one obstacle for the client renderer
type WallState struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Collides bool    `json:"collides"`
}

// RectState describes an axis-aligned region for the client
type RectState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// WelcomePayload is sent after a player joins. The wall list goes out
// once here; the level is static so it never needs re-sending.
type WelcomePayload struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	WorldWidth  float64     `json:"worldWidth"`
	WorldHeight float64     `json:"worldHeight"`
	Spawn       Vec2        `json:"spawn"`
	Walls       []WallState `json:"walls"`
	Exit        *RectState  `json:"exit,omitempty"`
}

// GameStatePayload contains the current game state for a player
type GameStatePayload struct {
	You    PlayerState        `json:"you"`
	Others []OtherPlayerState `json:"others"`
}

// PlayerState represents the player's own state
type PlayerState struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VelX      float64 `json:"velX"`
	VelY      float64 `json:"velY"`
	Seq       uint32  `json:"seq"`
	RunMillis int64   `json:"runMillis"`
	Hit       string  `json:"hit,omitempty"` // obstacle name blocking the last tick
}

// OtherPlayerState represents another player's state
type OtherPlayerState struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VelX float64 `json:"velX"`
	VelY float64 `json:"velY"`
}

// FinishPayload is sent to a player who reached the exit
type FinishPayload struct {
	Millis       int64 `json:"millis"`
	PersonalBest bool  `json:"personalBest"`
	Rank         int   `json:"rank,omitempty"`
}

// BestTimesPayload carries the ranked trial board
type BestTimesPayload struct {
	Entries []TrialResult `json:"entries"`
}
