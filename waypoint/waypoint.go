// Package waypoint derives the turn's points of interest from the board and
// the influence field.
package waypoint

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/nstehr/hexfront/model"
)

type Category int

const (
	Attack Category = iota
	Defense
	Rally
	Resource
	EnemyBase
)

func (c Category) String() string {
	switch c {
	case Attack:
		return "attack"
	case Defense:
		return "defense"
	case Rally:
		return "rally"
	case Resource:
		return "resource"
	case EnemyBase:
		return "enemy_base"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

const (
	EnemyBasePriority    = 10
	AttackPriority       = 6
	BaseDefensePriority  = 9
	PerimeterPriority    = 7
	RallyBasePriority    = 5
	ResourceBasePriority = 6
	resourceNearBase     = 5
	resourceFarFromBase  = 10
	minPriority          = 1
	maxPriority          = 10
)

// Waypoint is an immutable point of interest for one faction.
type Waypoint struct {
	Cell     *model.Cell
	Category Category
	Priority int
	Owner    model.Faction
}

// Influence is what the generator reads from the influence field.
type Influence interface {
	Friendly(c model.Coord) float64
	Enemy(c model.Coord) float64
	Net(c model.Coord) float64
	IsSafe(c model.Coord) bool
	SafeCells() []*model.Cell
}

type Options struct {
	DefenseRadius int
	RallyPoints   int
}

func DefaultOptions() Options { return Options{DefenseRadius: 3, RallyPoints: 5} }

// Set is one turn's waypoints in generation order.
type Set struct {
	items []Waypoint
}

// Generate rebuilds the waypoint set from scratch. A nil field skips every
// influence-derived waypoint.
func Generate(g *model.Grid, field Influence, owner model.Faction, opts Options) *Set {
	s := &Set{}
	if g == nil {
		slog.Warn("waypoint generation skipped: no grid")
		return s
	}
	if field == nil {
		slog.Warn("waypoint generation without influence field", "faction", owner)
	}
	s.attack(g, field, owner)
	s.defense(g, field, owner, opts.DefenseRadius)
	s.rally(field, owner, opts.RallyPoints)
	s.resources(g, field, owner)
	slog.Debug("waypoints generated", "faction", owner, "count", len(s.items))
	return s
}

func (s *Set) add(c *model.Cell, cat Category, prio int, owner model.Faction) {
	s.items = append(s.items, Waypoint{Cell: c, Category: cat, Priority: prio, Owner: owner})
}

func (s *Set) attack(g *model.Grid, field Influence, owner model.Faction) {
	if base := g.EnemyBase(owner); base != nil {
		s.add(base, EnemyBase, EnemyBasePriority, owner)
	}
	if field == nil {
		return
	}
	for _, c := range g.Cells() {
		if c.IsBase || c.Terrain == model.Water {
			continue
		}
		if field.Friendly(c.Coord) > 0 && field.Enemy(c.Coord) > 0 {
			s.add(c, Attack, AttackPriority, owner)
		}
	}
}

func (s *Set) defense(g *model.Grid, field Influence, owner model.Faction, radius int) {
	base := g.Base(owner)
	if base == nil {
		return
	}
	s.add(base, Defense, BaseDefensePriority, owner)
	if field == nil {
		return
	}
	for _, c := range g.Within(base.Coord, radius) {
		if c != base && field.Net(c.Coord) > 0 {
			s.add(c, Defense, PerimeterPriority, owner)
		}
	}
}

func (s *Set) rally(field Influence, owner model.Faction, limit int) {
	if field == nil || limit <= 0 {
		return
	}
	safe := slices.Clone(field.SafeCells())
	slices.SortStableFunc(safe, func(a, b *model.Cell) int {
		na, nb := field.Net(a.Coord), field.Net(b.Coord)
		switch {
		case na > nb:
			return -1
		case na < nb:
			return 1
		}
		return 0
	})
	count := min(limit, len(safe))
	for i := 0; i < count; i++ {
		s.add(safe[i], Rally, RallyBasePriority+(count-1-i), owner)
	}
}

func (s *Set) resources(g *model.Grid, field Influence, owner model.Faction) {
	base := g.Base(owner)
	for _, c := range g.Cells() {
		if !c.IsResource || c.Collected {
			continue
		}
		s.add(c, Resource, resourcePriority(c, base, field), owner)
	}
}

func resourcePriority(c, base *model.Cell, field Influence) int {
	p := ResourceBasePriority
	if base != nil {
		switch d := model.Distance(c.Coord, base.Coord); {
		case d < resourceNearBase:
			p += 2
		case d > resourceFarFromBase:
			p--
		}
	}
	if field != nil && field.IsSafe(c.Coord) {
		p++
	}
	return max(minPriority, min(maxPriority, p))
}

// All returns a copy of every waypoint.
func (s *Set) All() []Waypoint {
	if s == nil {
		return nil
	}
	return slices.Clone(s.items)
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// ByCategory returns the waypoints of cat in generation order.
func (s *Set) ByCategory(cat Category) []Waypoint {
	if s == nil {
		return nil
	}
	var out []Waypoint
	for _, w := range s.items {
		if w.Category == cat {
			out = append(out, w)
		}
	}
	return out
}

// HighestPriority returns the first waypoint of cat with the highest
// priority, or nil.
func (s *Set) HighestPriority(cat Category) *Waypoint {
	var best *Waypoint
	for _, w := range s.ByCategory(cat) {
		if best == nil || w.Priority > best.Priority {
			best = &w
		}
	}
	return best
}

// Nearest returns the waypoint of cat closest to from by hex distance, or
// nil.
func (s *Set) Nearest(from model.Coord, cat Category) *Waypoint {
	var best *Waypoint
	bestDist := 0
	for _, w := range s.ByCategory(cat) {
		if d := model.Distance(from, w.Cell.Coord); best == nil || d < bestDist {
			best, bestDist = &w, d
		}
	}
	return best
}
