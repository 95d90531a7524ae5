package main

import (
	"fmt"
	"math"
)

// CollisionResult describes the outcome of one narrow-phase query.
// Obstacle is nil when the movement was unobstructed. CollisionPoint is
// only meaningful when Obstacle is set; NewPos is where the subject ends
// up either way.
type CollisionResult struct {
	Obstacle       *Obstacle
	CollisionPoint Vec2
	NewPos         Vec2
}

// CollisionEngine resolves swept movement of a point subject against the
// static obstacle set. Built once per level; queries never mutate it, so
// it is safe to share for the level's lifetime without locking.
type CollisionEngine struct {
	Width  float64
	Height float64
	grid   *Grid
	solid  []*Obstacle
}

// NewCollisionEngine inflates the solid obstacles' hitboxes by the
// subject's half-extents and indexes them into the broad-phase grid.
// Non-solid obstacles are excluded entirely and never appear in queries.
func NewCollisionEngine(width, height float64, obstacles []*Obstacle, halfW, halfD, cellSize float64) (*CollisionEngine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("collision engine: level boundaries %.1fx%.1f must be positive", width, height)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("collision engine: cell size %.1f must be positive", cellSize)
	}

	grid := NewGrid(width, height, cellSize)
	var solid []*Obstacle
	for _, obs := range obstacles {
		if !obs.Collides {
			continue
		}
		obs.InflateHitbox(halfW, halfD)
		grid.Insert(obs)
		solid = append(solid, obs)
	}

	return &CollisionEngine{
		Width:  width,
		Height: height,
		grid:   grid,
		solid:  solid,
	}, nil
}

// Obstacles returns the indexed solid obstacles
func (e *CollisionEngine) Obstacles() []*Obstacle {
	return e.solid
}

// ResolveMovement resolves one tick's movement segment. It returns one
// result, or two when the rebound leg produced by the first collision is
// itself blocked. The recursion stops there: the second result's NewPos
// is pinned to its collision point rather than querying a third time.
// Callers take the NewPos of the last result as the resolved position.
func (e *CollisionEngine) ResolveMovement(seg Segment) []CollisionResult {
	first := e.testSegment(seg)
	if first.Obstacle == nil || first.CollisionPoint == first.NewPos {
		return []CollisionResult{first}
	}

	rebound := Segment{Start: first.CollisionPoint, End: first.NewPos}
	second := e.testSegment(rebound)
	if second.Obstacle != nil {
		second.NewPos = second.CollisionPoint
		return []CollisionResult{first, second}
	}

	return []CollisionResult{first}
}

// edgeHit records one segment/edge crossing during the narrow phase
type edgeHit struct {
	point    Vec2
	obstacle *Obstacle
	edge     int
	dist     float64
}

// testSegment runs one narrow-phase pass: collect every edge crossing
// across all candidate obstacles, then resolve the nearest one. All
// crossings are collected before resolution because exact-distance ties
// at shared corners need quadrant disambiguation, not first-found wins.
func (e *CollisionEngine) testSegment(seg Segment) CollisionResult {
	if seg.Degenerate() {
		// A stationary subject cannot collide
		return CollisionResult{NewPos: seg.End}
	}

	var hits []edgeHit
	for _, obs := range e.grid.RelevantObstacles(seg) {
		hits = collectEdgeHits(seg, obs, hits)
	}
	if len(hits) == 0 {
		return CollisionResult{NewPos: seg.End}
	}

	nearest := hits[0].dist
	for _, h := range hits[1:] {
		if h.dist < nearest {
			nearest = h.dist
		}
	}

	var tied []edgeHit
	for _, h := range hits {
		if h.dist == nearest {
			tied = append(tied, h)
		}
	}

	if len(tied) == 1 {
		return resolveEdgeHit(seg, tied[0])
	}
	return resolveCornerHit(seg, tied)
}

// collectEdgeHits appends every crossing between the segment and the four
// hitbox edges of one obstacle. Horizontal edges (0, 2) hold a constant Y,
// vertical edges (1, 3) a constant X.
func collectEdgeHits(seg Segment, obs *Obstacle, hits []edgeHit) []edgeHit {
	for i := 0; i < 4; i++ {
		a := obs.Hitbox[i]
		b := obs.Hitbox[(i+1)%4]

		var point Vec2
		if i%2 == 0 {
			y := a.Y
			if (seg.Start.Y-y)*(seg.End.Y-y) > 0 {
				continue // both endpoints strictly on one side
			}
			if seg.Start.Y == seg.End.Y {
				continue // lying along the wall is not a crossing
			}
			x := seg.Start.X
			if seg.Start.X != seg.End.X {
				t := (y - seg.Start.Y) / (seg.End.Y - seg.Start.Y)
				x = seg.Start.X + t*(seg.End.X-seg.Start.X)
			}
			if (x-a.X)*(x-b.X) > 0 {
				continue // crossing falls outside the edge span
			}
			point = Vec2{X: x, Y: y}
		} else {
			x := a.X
			if (seg.Start.X-x)*(seg.End.X-x) > 0 {
				continue
			}
			if seg.Start.X == seg.End.X {
				continue
			}
			y := seg.Start.Y
			if seg.Start.Y != seg.End.Y {
				t := (x - seg.Start.X) / (seg.End.X - seg.Start.X)
				y = seg.Start.Y + t*(seg.End.Y-seg.Start.Y)
			}
			if (y-a.Y)*(y-b.Y) > 0 {
				continue
			}
			point = Vec2{X: x, Y: y}
		}

		hits = append(hits, edgeHit{
			point:    point,
			obstacle: obs,
			edge:     i,
			dist:     Distance(seg.Start, point),
		})
	}
	return hits
}

// resolveEdgeHit stops the subject at a single blocking edge. The
// collision point is pushed one unit outward along the edge normal so the
// subject never sits exactly on (or inside) the hitbox boundary on the
// next query. The non-blocked axis keeps the desired end coordinate,
// which slides the subject along the wall face.
func resolveEdgeHit(seg Segment, hit edgeHit) CollisionResult {
	cp := hit.point
	switch hit.edge {
	case 0: // top
		cp.Y -= 1
	case 1: // right
		cp.X += 1
	case 2: // bottom
		cp.Y += 1
	case 3: // left
		cp.X -= 1
	}

	var newPos Vec2
	if hit.edge%2 == 0 {
		newPos = Vec2{X: seg.End.X, Y: cp.Y}
	} else {
		newPos = Vec2{X: cp.X, Y: seg.End.Y}
	}

	return CollisionResult{
		Obstacle:       hit.obstacle,
		CollisionPoint: cp,
		NewPos:         newPos,
	}
}

// resolveCornerHit disambiguates movement through a point shared by two
// or more edges. The three quadrants around the shared point that the
// movement could continue into are probed one unit diagonally; whichever
// of them fall inside a tied obstacle's hitbox decide between passing
// through, sliding along one axis, or stopping outright.
//
// When a probe sits inside several tied obstacles at once the first one
// in collection order wins; the per-obstacle answer is identical for the
// block test but the choice shows up in which obstacle gets reported.
func resolveCornerHit(seg Segment, tied []edgeHit) CollisionResult {
	p := tied[0].point

	sx := axisSign(seg.End.X - p.X)
	sy := axisSign(seg.End.Y - p.Y)

	blockedBy := func(q Vec2) *Obstacle {
		for _, h := range tied {
			if h.obstacle.HitboxContains(q) {
				return h.obstacle
			}
		}
		return nil
	}

	forward := blockedBy(Vec2{X: p.X + sx, Y: p.Y + sy})
	if forward == nil {
		// The shared corner is being grazed, not entered
		return CollisionResult{NewPos: seg.End}
	}

	// Probe the two quadrants adjacent to the forward one. With the X sign
	// flipped the subject can still advance along Y, and vice versa.
	alongY := blockedBy(Vec2{X: p.X - sx, Y: p.Y + sy}) == nil
	alongX := blockedBy(Vec2{X: p.X + sx, Y: p.Y - sy}) == nil

	// Like the single-edge stop, the blocked coordinate backs off one unit
	// from the corner so the rebound leg starts strictly outside every
	// tied hitbox instead of re-hitting the perpendicular edge at zero
	// distance.
	slideX := func() CollisionResult {
		cp := Vec2{X: p.X, Y: p.Y - sy}
		return CollisionResult{Obstacle: forward, CollisionPoint: cp, NewPos: Vec2{X: seg.End.X, Y: cp.Y}}
	}
	slideY := func() CollisionResult {
		cp := Vec2{X: p.X - sx, Y: p.Y}
		return CollisionResult{Obstacle: forward, CollisionPoint: cp, NewPos: Vec2{X: cp.X, Y: seg.End.Y}}
	}

	switch {
	case !alongX && !alongY:
		// Boxed in: back away diagonally opposite the forward quadrant
		stop := Vec2{X: p.X - sx, Y: p.Y - sy}
		return CollisionResult{Obstacle: forward, CollisionPoint: stop, NewPos: stop}
	case alongX && !alongY:
		return slideX()
	case alongY && !alongX:
		return slideY()
	default:
		// Both slides open: follow the axis with more travel left
		if math.Abs(seg.End.X-p.X) > math.Abs(seg.End.Y-p.Y) {
			return slideX()
		}
		return slideY()
	}
}

// axisSign returns the probe direction for one axis. A zero difference
// (end point exactly on the corner axis) defaults to +1.
func axisSign(d float64) float64 {
	if d < 0 {
		return -1
	}
	return 1
}
