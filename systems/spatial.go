package systems

import "gonum.org/v1/gonum/spatial/r2"

// Neighbor holds a nearby item with precomputed spatial data.
type Neighbor struct {
	Index  int     // index into the slice the grid was built from
	Delta  r2.Vec  // offset from the query origin to the item
	DistSq float64 // squared distance
}

// SpatialGrid buckets slice indices by position for radius queries.
// Offsets are plain (non-wrapping): ants do not sense across the arena edge.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int
	points   []r2.Vec
}

// NewSpatialGrid creates a spatial grid covering the given arena size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all items from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.points = g.points[:0]
}

// Insert adds the item with the given slice index at p.
// Items must be inserted in ascending index order.
func (g *SpatialGrid) Insert(index int, p r2.Vec) {
	for len(g.points) <= index {
		g.points = append(g.points, r2.Vec{})
	}
	g.points[index] = p
	idx := g.cellIndex(p)
	g.cells[idx] = append(g.cells[idx], index)
}

// QueryRadiusInto finds items within radius of origin and appends them to dst.
// Reuse dst across calls to avoid allocations. Result order follows grid
// cells, not indices; callers that need encounter order compare Index.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, origin r2.Vec, radius float64) []Neighbor {
	minCol, minRow := g.cellCoords(r2.Vec{X: origin.X - radius, Y: origin.Y - radius})
	maxCol, maxRow := g.cellCoords(r2.Vec{X: origin.X + radius, Y: origin.Y + radius})
	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, i := range g.cells[row*g.cols+col] {
				d := r2.Sub(g.points[i], origin)
				distSq := r2.Norm2(d)
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{Index: i, Delta: d, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// cellCoords returns the clamped column and row for a position.
func (g *SpatialGrid) cellCoords(p r2.Vec) (int, int) {
	col := int(p.X / g.cellSize)
	row := int(p.Y / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}

// cellIndex returns the flat index for a position.
func (g *SpatialGrid) cellIndex(p r2.Vec) int {
	col, row := g.cellCoords(p)
	return row*g.cols + col
}
