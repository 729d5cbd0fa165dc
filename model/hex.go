package model

import "fmt"

// Coord addresses a cell in odd-r offset layout: odd rows are shifted half a
// cell to the right. Col and Row are zero-based.
type Coord struct {
	Col int `json:"col" yaml:"col"`
	Row int `json:"row" yaml:"row"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Col, c.Row) }

// cube converts an odd-r offset coordinate to cube coordinates.
func (c Coord) cube() (x, y, z int) {
	x = c.Col - (c.Row-(c.Row&1))/2
	z = c.Row
	y = -x - z
	return x, y, z
}

// Distance returns the number of hex steps between a and b, ignoring terrain.
func Distance(a, b Coord) int {
	ax, ay, az := a.cube()
	bx, by, bz := b.cube()
	return (abs(ax-bx) + abs(ay-by) + abs(az-bz)) / 2
}

// neighborOffsets lists the six odd-r neighbor deltas in E, NE, NW, W, SW, SE
// order, indexed by row parity.
var neighborOffsets = [2][6]Coord{
	{{1, 0}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}},
	{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {0, 1}, {1, 1}},
}

// Adjacent returns the six coordinates around c. Some may lie off the grid.
func (c Coord) Adjacent() [6]Coord {
	var out [6]Coord
	for i, d := range neighborOffsets[c.Row&1] {
		out[i] = Coord{Col: c.Col + d.Col, Row: c.Row + d.Row}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
