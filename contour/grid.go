package contour

import "fmt"

// Cell is the per-grid-point sample state.
type Cell struct {
	Value  float64 // accumulated field value at the grid point
	Active bool    // Value > threshold
	Kind   Corners // configuration of the cell whose top-left corner is this point
}

// Grid is a fixed-size row-major buffer of cells, reused across updates.
type Grid struct {
	Rows, Cols int
	cells      []Cell
}

// NewGrid allocates a rows x cols grid.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("contour: invalid grid size %dx%d", rows, cols))
	}
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// InBounds reports whether (row, col) addresses a grid point.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

func (g *Grid) index(row, col int) int {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("contour: grid index (%d, %d) out of range %dx%d", row, col, g.Rows, g.Cols))
	}
	return row*g.Cols + col
}

// At returns the cell at (row, col). Out-of-range access panics.
func (g *Grid) At(row, col int) *Cell {
	return &g.cells[g.index(row, col)]
}

// RowCol converts a flat index into (row, col).
func (g *Grid) RowCol(i int) (row, col int) {
	if i < 0 || i >= len(g.cells) {
		panic(fmt.Sprintf("contour: flat index %d out of range %d", i, len(g.cells)))
	}
	return i / g.Cols, i % g.Cols
}

// Len returns the number of grid points.
func (g *Grid) Len() int {
	return len(g.cells)
}

// value reads a corner value; points beyond the grid read as 0.
func (g *Grid) value(row, col int) float64 {
	if !g.InBounds(row, col) {
		return 0
	}
	return g.cells[row*g.Cols+col].Value
}

// active reads a corner activation; points beyond the grid are inactive.
func (g *Grid) active(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.cells[row*g.Cols+col].Active
}

// Activate samples the field at every grid point and marks points above
// threshold active. Points on row 0 or column 0 are left at zero so contours
// never cross the domain boundary. Returns the number of active points.
func (g *Grid) Activate(sources []Source, unit, threshold float64) int {
	active := 0
	for i := range g.cells {
		row, col := i/g.Cols, i%g.Cols
		c := &g.cells[i]
		if row == 0 || col == 0 {
			c.Value = 0
			c.Active = false
			continue
		}
		c.Value = FieldValue(Point{X: float64(col) * unit, Y: float64(row) * unit}, sources)
		c.Active = c.Value > threshold
		if c.Active {
			active++
		}
	}
	return active
}
