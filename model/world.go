package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInsufficientMovement = errors.New("insufficient movement")
	ErrCellBlocked          = errors.New("cell blocked")
	ErrNotOnBoard           = errors.New("unit not on board")
)

// World is the mutable battlefield a turn is planned against. Version is
// bumped on every mutation so cached computations can tell they are stale.
type World struct {
	Grid      *Grid
	Units     *Roster
	Resources map[Faction]int
	Turn      int

	version uint64
}

func NewWorld(g *Grid) *World {
	return &World{Grid: g, Units: NewRoster(), Resources: make(map[Faction]int)}
}

// Version increases monotonically with every mutation of the board.
func (w *World) Version() uint64 { return w.version }

func (w *World) touch() { w.version++ }

// Place puts u on the cell at c and adds it to the roster.
func (w *World) Place(u *Unit, c Coord) error {
	cell := w.Grid.At(c)
	if cell == nil {
		return fmt.Errorf("place %s at %s: off grid", u.ID, c)
	}
	if cell.IsOccupied() {
		return fmt.Errorf("place %s at %s: %w", u.ID, c, ErrCellBlocked)
	}
	if !w.Units.Add(u) {
		return fmt.Errorf("place %s: duplicate unit id", u.ID)
	}
	cell.Occupant = u
	u.Cell = cell
	w.touch()
	return nil
}

// Spawn creates a unit of profile p for f on the cell at c.
func (w *World) Spawn(id string, f Faction, p *Profile, c Coord) (*Unit, error) {
	u := NewUnit(id, f, p)
	if err := w.Place(u, c); err != nil {
		return nil, err
	}
	return u, nil
}

// MoveUnit moves u to dest, charging cost against its remaining movement.
// Occupancy on both cells is updated together. Water, occupied cells and
// u's own base are refused.
func (w *World) MoveUnit(u *Unit, dest *Cell, cost float64) error {
	if u.Cell == nil {
		return ErrNotOnBoard
	}
	if dest == u.Cell {
		return nil
	}
	if !dest.PassableFor(u.Faction) {
		return ErrCellBlocked
	}
	if cost > u.RemainingMovement {
		return ErrInsufficientMovement
	}
	u.Cell.Occupant = nil
	dest.Occupant = u
	u.Cell = dest
	u.RemainingMovement -= cost
	u.HasMoved = true
	w.touch()
	return nil
}

// Kill removes a dead unit from the board and the roster.
func (w *World) Kill(u *Unit) {
	w.Units.Remove(u)
	w.touch()
}

// Collect harvests the resource node under u, crediting amount to its
// faction. It reports whether anything was collected.
func (w *World) Collect(u *Unit, amount int) bool {
	c := u.Cell
	if c == nil || !c.IsResource || c.Collected {
		return false
	}
	c.Collected = true
	w.Resources[u.Faction] += amount
	w.touch()
	return true
}

// Capture hands the enemy base under u to u's faction.
func (w *World) Capture(u *Unit) bool {
	c := u.Cell
	if c == nil || !c.IsEnemyBase(u.Faction) {
		return false
	}
	c.Owner = u.Faction
	w.touch()
	return true
}

// Spend deducts amount from f's resources if it can afford it.
func (w *World) Spend(f Faction, amount int) bool {
	if w.Resources[f] < amount {
		return false
	}
	w.Resources[f] -= amount
	return true
}

// StartTurn refreshes every unit of f and credits income.
func (w *World) StartTurn(f Faction, income int) {
	for _, u := range w.Units.Faction(f) {
		u.ResetForNewTurn()
	}
	w.Resources[f] += income
	w.touch()
}

// Factions returns every faction that owns a base or a unit, in ascending
// order.
func (w *World) Factions() []Faction {
	seen := map[Faction]bool{}
	var out []Faction
	add := func(f Faction) {
		if f == Neutral || seen[f] {
			return
		}
		seen[f] = true
		out = append(out, f)
	}
	for _, c := range w.Grid.Cells() {
		if c.IsBase {
			add(c.Owner)
		}
	}
	for _, u := range w.Units.All() {
		add(u.Faction)
	}
	slices.Sort(out)
	return out
}
