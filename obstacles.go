package main

import "github.com/google/uuid"

// Corner indices into Bounds and Hitbox. Edge i runs from corner i to
// corner (i+1)%4, so edges 0 and 2 are horizontal and edges 1 and 3 are
// vertical.
const (
	cornerTopLeft = iota
	cornerTopRight
	cornerBottomRight
	cornerBottomLeft
)

// CellCoord identifies a broad-phase grid cell by column and row
type CellCoord struct {
	Col int
	Row int
}

// Obstacle is a solid axis-aligned rectangle in the level. Bounds holds
// the true rectangle, Hitbox the rectangle inflated by the subject's
// half-extents so the subject can be treated as a point. Hitbox is only
// populated for solid obstacles and never changes after index construction.
type Obstacle struct {
	ID       string
	Name     string
	Bounds   [4]Vec2
	Hitbox   [4]Vec2
	Collides bool

	// GridCells records which broad-phase cells the hitbox overlaps.
	// Kept for debugging and consistency checks, not used by queries.
	GridCells []CellCoord
}

// NewObstacle creates an obstacle from a top-left position and size.
// Corners are stored top-left, top-right, bottom-right, bottom-left.
func NewObstacle(name string, x, y, width, height float64, collides bool) *Obstacle {
	return &Obstacle{
		ID:       uuid.NewString(),
		Name:     name,
		Collides: collides,
		Bounds: [4]Vec2{
			{X: x, Y: y},
			{X: x + width, Y: y},
			{X: x + width, Y: y + height},
			{X: x, Y: y + height},
		},
	}
}

// InflateHitbox expands the bounds outward by the subject's half-extents,
// preserving corner order (the Minkowski sum of the rectangle and the
// subject footprint).
func (o *Obstacle) InflateHitbox(halfW, halfD float64) {
	o.Hitbox = [4]Vec2{
		{X: o.Bounds[cornerTopLeft].X - halfW, Y: o.Bounds[cornerTopLeft].Y - halfD},
		{X: o.Bounds[cornerTopRight].X + halfW, Y: o.Bounds[cornerTopRight].Y - halfD},
		{X: o.Bounds[cornerBottomRight].X + halfW, Y: o.Bounds[cornerBottomRight].Y + halfD},
		{X: o.Bounds[cornerBottomLeft].X - halfW, Y: o.Bounds[cornerBottomLeft].Y + halfD},
	}
}

// HitboxContains reports whether a point lies inside the inflated
// rectangle, bounds inclusive.
func (o *Obstacle) HitboxContains(p Vec2) bool {
	return p.X >= o.Hitbox[cornerTopLeft].X && p.X <= o.Hitbox[cornerBottomRight].X &&
		p.Y >= o.Hitbox[cornerTopLeft].Y && p.Y <= o.Hitbox[cornerBottomRight].Y
}

// BoundsRect returns the true rectangle as a Rect, for broadcasting to
// clients.
func (o *Obstacle) BoundsRect() Rect {
	return Rect{
		X:      o.Bounds[cornerTopLeft].X,
		Y:      o.Bounds[cornerTopLeft].Y,
		Width:  o.Bounds[cornerBottomRight].X - o.Bounds[cornerTopLeft].X,
		Height: o.Bounds[cornerBottomRight].Y - o.Bounds[cornerTopLeft].Y,
	}
}
