package model

// Faction identifies a player. Neutral marks cells nobody owns.
type Faction int

const Neutral Faction = -1

// Cell is one hex of the battlefield. The grid owns every cell; Occupant is a
// weak back-reference kept in sync by World.
type Cell struct {
	Coord      Coord
	Terrain    Terrain
	Occupant   *Unit
	IsBase     bool
	Owner      Faction
	// Home is the faction the base was built for. Capture changes Owner only.
	Home       Faction
	IsResource bool
	Collected  bool

	neighbors []*Cell
}

// Neighbors returns the adjacent cells in fixed E, NE, NW, W, SW, SE order
// (cells off the grid are skipped). The slice is set once by NewGrid.
func (c *Cell) Neighbors() []*Cell { return c.neighbors }

func (c *Cell) MovementCost() float64 { return c.Terrain.MovementCost() }

func (c *Cell) IsOccupied() bool { return c.Occupant != nil }

// PassableFor reports whether a unit of faction f may enter the cell. A
// faction's own base is closed to its own units; an empty enemy base stays
// open so it can be captured.
func (c *Cell) PassableFor(f Faction) bool {
	if c.Terrain == Water {
		return false
	}
	if c.IsBase && c.Owner == f {
		return false
	}
	return !c.IsOccupied()
}

// IsEnemyBase reports whether the cell is a base owned by someone other than f.
func (c *Cell) IsEnemyBase(f Faction) bool {
	return c.IsBase && c.Owner != f && c.Owner != Neutral
}

// Grid is the hex adjacency graph. Cells are stored row-major:
// cells[row*Cols + col].
type Grid struct {
	Cols  int
	Rows  int
	cells []*Cell
}

// NewGrid builds a cols×rows grid, asking terrain for each coordinate, and
// links every cell to its neighbors once.
func NewGrid(cols, rows int, terrain func(Coord) Terrain) *Grid {
	g := &Grid{Cols: cols, Rows: rows, cells: make([]*Cell, cols*rows)}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := Coord{Col: col, Row: row}
			t := Plain
			if terrain != nil {
				t = terrain(c)
			}
			g.cells[row*cols+col] = &Cell{Coord: c, Terrain: t, Owner: Neutral, Home: Neutral}
		}
	}
	for _, cell := range g.cells {
		for _, adj := range cell.Coord.Adjacent() {
			if n := g.At(adj); n != nil {
				cell.neighbors = append(cell.neighbors, n)
			}
		}
	}
	return g
}

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Col >= 0 && c.Col < g.Cols && c.Row >= 0 && c.Row < g.Rows
}

// At returns the cell at c, or nil when c is off the grid.
func (g *Grid) At(c Coord) *Cell {
	if !g.InBounds(c) {
		return nil
	}
	return g.cells[c.Row*g.Cols+c.Col]
}

// Index returns the row-major index of c. Callers must check InBounds.
func (g *Grid) Index(c Coord) int { return c.Row*g.Cols + c.Col }

// Cells returns every cell in row-major order. The slice must not be modified.
func (g *Grid) Cells() []*Cell { return g.cells }

// Base returns the base cell owned by f, or nil. A faction holding several
// bases gets its home base while it still owns it, otherwise the first
// owned base in row-major order.
func (g *Grid) Base(f Faction) *Cell {
	var first *Cell
	for _, c := range g.cells {
		if !c.IsBase || c.Owner != f {
			continue
		}
		if c.Home == f {
			return c
		}
		if first == nil {
			first = c
		}
	}
	return first
}

// EnemyBase returns the first base not owned by f, or nil.
func (g *Grid) EnemyBase(f Faction) *Cell {
	for _, c := range g.cells {
		if c.IsEnemyBase(f) {
			return c
		}
	}
	return nil
}

// Within returns every cell whose hex distance from center is at most radius,
// in row-major order.
func (g *Grid) Within(center Coord, radius int) []*Cell {
	var out []*Cell
	for _, c := range g.cells {
		if Distance(center, c.Coord) <= radius {
			out = append(out, c)
		}
	}
	return out
}

// SetBase marks c as the base of f.
func (g *Grid) SetBase(c Coord, f Faction) {
	if cell := g.At(c); cell != nil {
		cell.IsBase = true
		cell.Owner = f
		cell.Home = f
	}
}

// SetResource marks c as an uncollected resource node.
func (g *Grid) SetResource(c Coord) {
	if cell := g.At(c); cell != nil {
		cell.IsResource = true
		cell.Collected = false
	}
}
