package main

import "math"

// Grid is the broad-phase spatial partition: a fixed-size cell grid over
// the level plane. Cells are stored in a flat row-major slice with the
// column and row counts precomputed at construction. Each cell lists every
// solid obstacle whose inflated hitbox overlaps it. The grid is built once
// per level and read-only afterwards.
type Grid struct {
	CellSize float64
	Cols     int
	Rows     int
	cells    [][]*Obstacle // index = row*Cols + col
}

// NewGrid creates an empty grid covering [0, width) x [0, height). The
// last column and row may be narrower than CellSize where the level
// boundary clips them.
func NewGrid(width, height, cellSize float64) *Grid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	return &Grid{
		CellSize: cellSize,
		Cols:     cols,
		Rows:     rows,
		cells:    make([][]*Obstacle, cols*rows),
	}
}

// CellAt returns the column and row of the cell containing a point,
// clamped to the valid range so boundary positions stay in-grid.
func (g *Grid) CellAt(p Vec2) (int, int) {
	col := int(math.Floor(p.X / g.CellSize))
	row := int(math.Floor(p.Y / g.CellSize))
	if col < 0 {
		col = 0
	} else if col >= g.Cols {
		col = g.Cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.Rows {
		row = g.Rows - 1
	}
	return col, row
}

// Insert appends an obstacle to every cell its hitbox spans and records
// the span on the obstacle itself.
func (g *Grid) Insert(obs *Obstacle) {
	minCol, minRow := g.CellAt(obs.Hitbox[cornerTopLeft])
	maxCol, maxRow := g.CellAt(obs.Hitbox[cornerBottomRight])

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			idx := row*g.Cols + col
			g.cells[idx] = append(g.cells[idx], obs)
			obs.GridCells = append(obs.GridCells, CellCoord{Col: col, Row: row})
		}
	}
}

// CellObstacles returns the obstacles overlapping one cell
func (g *Grid) CellObstacles(col, row int) []*Obstacle {
	return g.cells[row*g.Cols+col]
}

// RelevantObstacles returns the deduplicated set of obstacles that could
// block a movement segment: everything in the start and end cells, plus
// the two corner-adjacent cells when the segment changes cell on both
// axes (a diagonal cell change can clip an obstacle that only touches a
// diagonal neighbor).
func (g *Grid) RelevantObstacles(seg Segment) []*Obstacle {
	startCol, startRow := g.CellAt(seg.Start)
	endCol, endRow := g.CellAt(seg.End)

	coords := [][2]int{{startCol, startRow}}
	if endCol != startCol || endRow != startRow {
		coords = append(coords, [2]int{endCol, endRow})
	}
	if endCol != startCol && endRow != startRow {
		coords = append(coords,
			[2]int{startCol, endRow},
			[2]int{endCol, startRow})
	}

	seen := make(map[*Obstacle]struct{})
	var result []*Obstacle
	for _, c := range coords {
		for _, obs := range g.CellObstacles(c[0], c[1]) {
			if _, ok := seen[obs]; ok {
				continue
			}
			seen[obs] = struct{}{}
			result = append(result, obs)
		}
	}
	return result
}
