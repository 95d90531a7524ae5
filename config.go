package main

const (
	// Game loop configuration
	TickRate      = 30              // Game updates per second
	BroadcastRate = 15              // State broadcasts per second
	TickInterval  = 1000 / TickRate // milliseconds

	// Player configuration
	PlayerSpeed     = 240.0 // units per second
	VelocityLerp    = 0.25  // smoothing factor for velocity changes
	PlayerHalfWidth = 16.0  // half the subject footprint along X
	PlayerHalfDepth = 16.0  // half the subject footprint along Y
	SpawnJitter     = 24.0  // max per-axis offset applied to join placement

	// Collision engine
	GridCellSize = 500.0 // nominal broad-phase cell edge length

	// Trials
	BestTimesCount     = 10  // entries kept on the best-times board
	TrialBroadcastSecs = 5   // how often best times go out
	MinTrialMillis     = 500 // runs faster than this are discarded as bogus

	// Network
	InputQueueSize   = 10000
	WriteChannelSize = 256
	PingInterval     = 2000 // milliseconds
	MaxPlayerNameLen = 20

	// Defaults overridable by flags
	DefaultAddr      = ":8080"
	DefaultLevelPath = "levels/arena.tmx"
	DefaultDBPath    = "mazebound.db"
)
