package main

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"
)

// Level is the static world description loaded from a Tiled map: the
// playable boundaries, the obstacle set, the spawn point, and the trial
// exit region.
type Level struct {
	Name      string
	Width     float64
	Height    float64
	Obstacles []*Obstacle
	Spawn     Vec2
	Exit      Rect
	HasExit   bool
}

// LoadLevel parses a TMX file and extracts the collision-relevant object
// layers. It takes an fs.FS so callers can pass os.DirFS in production and
// a testdata FS in tests.
//
// Layer conventions: rectangle objects in the "walls" group become
// obstacles (a "collides" property of "false" marks decorative rects),
// the first object in the "spawn" group is the spawn point, and the first
// object in the "exit" group is the trial finish region.
func LoadLevel(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	level := &Level{
		Name:   tmxPath,
		Width:  float64(levelMap.Width * levelMap.TileWidth),
		Height: float64(levelMap.Height * levelMap.TileHeight),
	}
	if level.Width <= 0 || level.Height <= 0 {
		return nil, fmt.Errorf("level %s: non-positive dimensions %.0fx%.0f", tmxPath, level.Width, level.Height)
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "walls":
			for i, o := range og.Objects {
				name := o.Name
				if name == "" {
					name = fmt.Sprintf("wall-%d", i+1)
				}
				collides := o.Properties.GetString("collides") != "false"
				level.Obstacles = append(level.Obstacles,
					NewObstacle(name, o.X, o.Y, o.Width, o.Height, collides))
			}
		case "spawn":
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				level.Spawn = Vec2{X: o.X, Y: o.Y}
			}
		case "exit":
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				level.Exit = Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
				level.HasExit = true
			}
		}
	}

	if len(level.Obstacles) == 0 {
		return nil, fmt.Errorf("level %s: no walls object group", tmxPath)
	}
	if level.HasExit {
		bounds := Rect{Width: level.Width, Height: level.Height}
		if !level.Exit.Intersects(bounds) {
			return nil, fmt.Errorf("level %s: exit region at (%.0f,%.0f) lies outside the level bounds",
				tmxPath, level.Exit.X, level.Exit.Y)
		}
	}
	if level.Spawn == (Vec2{}) {
		// Fall back to the level center so a map without a spawn marker
		// still boots.
		level.Spawn = Vec2{X: level.Width / 2, Y: level.Height / 2}
	}

	return level, nil
}

// SpawnPoint returns the spawn with a small random offset, so players
// joining at the same moment do not stack on one point
func (l *Level) SpawnPoint() Vec2 {
	return Vec2{
		X: l.Spawn.X + RandomFloat(-SpawnJitter, SpawnJitter),
		Y: l.Spawn.Y + RandomFloat(-SpawnJitter, SpawnJitter),
	}
}

// BuildEngine indexes the level's solid obstacles for the given subject
// footprint.
func (l *Level) BuildEngine(halfW, halfD, cellSize float64) (*CollisionEngine, error) {
	return NewCollisionEngine(l.Width, l.Height, l.Obstacles, halfW, halfD, cellSize)
}
