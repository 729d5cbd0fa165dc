// Package influence maintains per-cell friendly and enemy military pressure
// for one observing faction.
package influence

import (
	"log/slog"

	"github.com/nstehr/hexfront/model"
)

const (
	DefaultMaxRange        = 5.0
	DefaultDangerThreshold = -5.0
)

// Field holds one friendly and one enemy scalar per grid cell, indexed
// row-major like the grid. Between Recompute calls it is read-only.
type Field struct {
	grid     *model.Grid
	friendly []float64
	enemy    []float64

	MaxRange        float64
	DangerThreshold float64
	Observer        model.Faction
}

func NewField(g *model.Grid) *Field {
	f := &Field{
		grid:            g,
		MaxRange:        DefaultMaxRange,
		DangerThreshold: DefaultDangerThreshold,
		Observer:        model.Neutral,
	}
	if g != nil {
		f.friendly = make([]float64, g.Cols*g.Rows)
		f.enemy = make([]float64, g.Cols*g.Rows)
	}
	return f
}

// Strength is the pressure a unit exerts at its own cell.
func Strength(u *model.Unit) float64 {
	return float64(u.AttackPower()) * u.HealthFraction() * u.Profile.InfluenceMultiplier
}

// Recompute clears both layers and propagates every living unit's strength.
// Units of observer count as friendly, everything else as enemy.
func (f *Field) Recompute(units []*model.Unit, observer model.Faction) {
	if f.grid == nil {
		slog.Warn("influence recompute skipped: no grid")
		return
	}
	clear(f.friendly)
	clear(f.enemy)
	f.Observer = observer

	for _, u := range units {
		if u == nil || u.Cell == nil || !u.IsAlive() {
			continue
		}
		layer := f.enemy
		if u.Faction == observer {
			layer = f.friendly
		}
		f.propagate(u.Cell, Strength(u), layer)
	}
}

// propagate flood-fills terrain cost out to MaxRange and adds the decayed
// strength to each reached cell once, at its cheapest cost.
func (f *Field) propagate(source *model.Cell, strength float64, layer []float64) {
	costs := map[*model.Cell]float64{source: 0}
	order := []*model.Cell{source}
	queue := []*model.Cell{source}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		base := costs[cur]
		for _, n := range cur.Neighbors() {
			c := base + n.MovementCost()
			if c > f.MaxRange {
				continue
			}
			prev, seen := costs[n]
			if seen && c >= prev {
				continue
			}
			if !seen {
				order = append(order, n)
			}
			costs[n] = c
			queue = append(queue, n)
		}
	}

	for _, c := range order {
		decay := max(0, 1-costs[c]/f.MaxRange)
		layer[f.grid.Index(c.Coord)] += strength * decay
	}
}

func (f *Field) index(c model.Coord) (int, bool) {
	if f.grid == nil || !f.grid.InBounds(c) {
		return 0, false
	}
	return f.grid.Index(c), true
}

func (f *Field) Friendly(c model.Coord) float64 {
	if i, ok := f.index(c); ok {
		return f.friendly[i]
	}
	return 0
}

func (f *Field) Enemy(c model.Coord) float64 {
	if i, ok := f.index(c); ok {
		return f.enemy[i]
	}
	return 0
}

// Net is friendly minus enemy pressure at c.
func (f *Field) Net(c model.Coord) float64 {
	return f.Friendly(c) - f.Enemy(c)
}

func (f *Field) IsSafe(c model.Coord) bool { return f.Net(c) > 0 }

// IsDanger requires a clearer margin than IsSafe.
func (f *Field) IsDanger(c model.Coord) bool { return f.Net(c) < f.DangerThreshold }

func (f *Field) cells(keep func(model.Coord) bool) []*model.Cell {
	if f.grid == nil {
		return nil
	}
	var out []*model.Cell
	for _, c := range f.grid.Cells() {
		if keep(c.Coord) {
			out = append(out, c)
		}
	}
	return out
}

func (f *Field) SafeCells() []*model.Cell { return f.cells(f.IsSafe) }

func (f *Field) DangerCells() []*model.Cell { return f.cells(f.IsDanger) }

// NearestSafe returns the safe cell closest to from by hex distance, or nil.
func (f *Field) NearestSafe(from model.Coord) *model.Cell {
	var best *model.Cell
	bestDist := 0
	for _, c := range f.SafeCells() {
		if d := model.Distance(from, c.Coord); best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Control is the share of contested ground the observer holds: safe cells
// over cells with any net influence. Zero when nothing is contested.
func (f *Field) Control() float64 {
	var safe, nonzero int
	for i := range f.friendly {
		net := f.friendly[i] - f.enemy[i]
		if net != 0 {
			nonzero++
		}
		if net > 0 {
			safe++
		}
	}
	if nonzero == 0 {
		return 0
	}
	return float64(safe) / float64(nonzero)
}
