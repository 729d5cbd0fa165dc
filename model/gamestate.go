package model

import (
	"errors"
	"fmt"
)

// GameState is the board snapshot the host sends at the start of an AI turn.
type GameState struct {
	Turn      int             `json:"turn"`
	Faction   Faction         `json:"faction"`
	Map       MapState        `json:"map"`
	Units     []UnitState     `json:"units"`
	Resources map[Faction]int `json:"resources"`
}

type MapState struct {
	Cols  int         `json:"cols"`
	Rows  int         `json:"rows"`
	Cells []CellState `json:"cells"`
}

// CellState describes one non-default cell. Cells missing from the list are
// neutral plain.
type CellState struct {
	Col       int      `json:"col"`
	Row       int      `json:"row"`
	Terrain   Terrain  `json:"terrain"`
	Base      bool     `json:"base,omitempty"`
	Owner     Faction  `json:"owner"`
	// Home is the base's original faction when it differs from Owner.
	Home      *Faction `json:"home,omitempty"`
	Resource  bool     `json:"resource,omitempty"`
	Collected bool     `json:"collected,omitempty"`
}

type UnitState struct {
	ID                string   `json:"id"`
	Faction           Faction  `json:"faction"`
	Type              UnitType `json:"type"`
	Col               int      `json:"col"`
	Row               int      `json:"row"`
	Health            int      `json:"health"`
	RemainingMovement *float64 `json:"remainingMovement,omitempty"`
	HasAttacked       bool     `json:"hasAttacked,omitempty"`
	Order             Order    `json:"order"`
}

func (u UnitState) TypeName() string { return u.Type.String() }

var ErrEmptyMap = errors.New("map has no cells")

// Build turns the snapshot into a World using the given profiles. Units
// with no health left are dead and are not placed. A unit without an
// explicit remaining movement starts the turn fresh.
func (gs *GameState) Build(profiles Profiles) (*World, error) {
	if gs.Map.Cols <= 0 || gs.Map.Rows <= 0 {
		return nil, ErrEmptyMap
	}
	g := NewGrid(gs.Map.Cols, gs.Map.Rows, nil)
	for _, cs := range gs.Map.Cells {
		cell := g.At(Coord{Col: cs.Col, Row: cs.Row})
		if cell == nil {
			return nil, fmt.Errorf("cell (%d,%d) outside %dx%d map", cs.Col, cs.Row, gs.Map.Cols, gs.Map.Rows)
		}
		cell.Terrain = cs.Terrain
		if cs.Base {
			cell.IsBase = true
			cell.Owner = cs.Owner
			cell.Home = cs.Owner
			if cs.Home != nil {
				cell.Home = *cs.Home
			}
		}
		if cs.Resource {
			cell.IsResource = true
			cell.Collected = cs.Collected
		}
	}

	w := NewWorld(g)
	w.Turn = gs.Turn
	for f, amount := range gs.Resources {
		w.Resources[f] = amount
	}
	for _, us := range gs.Units {
		if us.Health <= 0 {
			continue
		}
		p, ok := profiles[us.Type]
		if !ok {
			return nil, fmt.Errorf("unit %s: no profile for %s", us.ID, us.Type)
		}
		u := NewUnit(us.ID, us.Faction, p)
		u.Health = us.Health
		if us.RemainingMovement != nil {
			u.RemainingMovement = *us.RemainingMovement
		}
		u.HasAttacked = us.HasAttacked
		u.Order = us.Order
		if err := w.Place(u, Coord{Col: us.Col, Row: us.Row}); err != nil {
			return nil, fmt.Errorf("build world: %w", err)
		}
	}
	return w, nil
}

// Snapshot is the inverse of Build, used by the headless runner and tests.
func (w *World) Snapshot(turn int, f Faction) *GameState {
	gs := &GameState{
		Turn:      turn,
		Faction:   f,
		Map:       MapState{Cols: w.Grid.Cols, Rows: w.Grid.Rows},
		Resources: make(map[Faction]int, len(w.Resources)),
	}
	for k, v := range w.Resources {
		gs.Resources[k] = v
	}
	for _, c := range w.Grid.Cells() {
		if c.Terrain == Plain && !c.IsBase && !c.IsResource {
			continue
		}
		cs := CellState{
			Col: c.Coord.Col, Row: c.Coord.Row, Terrain: c.Terrain,
			Base: c.IsBase, Owner: c.Owner,
			Resource: c.IsResource, Collected: c.Collected,
		}
		if c.IsBase && c.Home != c.Owner {
			home := c.Home
			cs.Home = &home
		}
		gs.Map.Cells = append(gs.Map.Cells, cs)
	}
	for _, u := range w.Units.All() {
		if u.Cell == nil {
			continue
		}
		rm := u.RemainingMovement
		gs.Units = append(gs.Units, UnitState{
			ID: u.ID, Faction: u.Faction, Type: u.Type(),
			Col: u.Cell.Coord.Col, Row: u.Cell.Coord.Row,
			Health: u.Health, RemainingMovement: &rm,
			HasAttacked: u.HasAttacked, Order: u.Order,
		})
	}
	return gs
}
