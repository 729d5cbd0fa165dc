package pathfind

import (
	"math"

	"github.com/nstehr/hexfront/model"
)

// InfluenceReader is the slice of the influence field the tactical searches
// need.
type InfluenceReader interface {
	Net(c model.Coord) float64
}

// Weights tune the tactical search.
type Weights struct {
	Danger   float64
	Cover    float64
	Distance float64
}

func DefaultWeights() Weights {
	return Weights{Danger: 2.0, Cover: 1.5, Distance: 1.0}
}

// Tactical searches paths and positions that trade movement cost against
// influence and cover. A nil influence reader turns it into a plain
// terrain-cost search.
type Tactical struct {
	Influence InfluenceReader
	Weights   Weights
}

func NewTactical(field InfluenceReader, w Weights) *Tactical {
	return &Tactical{Influence: field, Weights: w}
}

func (t *Tactical) net(c *model.Cell) float64 {
	if t.Influence == nil {
		return 0
	}
	return t.Influence.Net(c.Coord)
}

type searchNode struct {
	cell   *model.Cell
	parent *searchNode
	g, h   float64
	tac    float64
}

func (n *searchNode) total() float64 { return n.g + n.h + n.tac }

// FindPath runs A* from start to goal. Frontier order is accumulated
// movement cost plus accumulated tactical cost plus hex distance to goal.
// The goal itself may be occupied or a base so callers can path toward a
// target and trim the tail. Returns nil when goal is unreachable.
func (t *Tactical) FindPath(start, goal *model.Cell, u *model.Unit, avoidDanger bool) []*model.Cell {
	if start == nil || goal == nil || u == nil {
		return nil
	}
	if start == goal {
		return []*model.Cell{start}
	}

	open := []*searchNode{{cell: start, h: float64(model.Distance(start.Coord, goal.Coord))}}
	closed := make(map[*model.Cell]bool)

	for len(open) > 0 {
		best := 0
		for i := 1; i < len(open); i++ {
			if open[i].total() < open[best].total() {
				best = i
			}
		}
		cur := open[best]
		if cur.cell == goal {
			return reconstruct(cur)
		}
		open = append(open[:best], open[best+1:]...)
		closed[cur.cell] = true

		for _, n := range cur.cell.Neighbors() {
			if closed[n] {
				continue
			}
			if n == goal {
				if n.Terrain == model.Water {
					continue
				}
			} else if !n.PassableFor(u.Faction) {
				continue
			}
			g := cur.g + u.StepCost(n)*t.Weights.Distance
			h := float64(model.Distance(n.Coord, goal.Coord))
			tac := cur.tac + t.stepCost(n, u, avoidDanger)

			var existing *searchNode
			for _, o := range open {
				if o.cell == n {
					existing = o
					break
				}
			}
			if existing == nil {
				open = append(open, &searchNode{cell: n, parent: cur, g: g, h: h, tac: tac})
			} else if g+h+tac < existing.total() {
				existing.g, existing.h, existing.tac = g, h, tac
				existing.parent = cur
			}
		}
	}
	return nil
}

// stepCost is the tactical penalty for entering c, never negative.
func (t *Tactical) stepCost(c *model.Cell, u *model.Unit, avoidDanger bool) float64 {
	cost := 0.0
	if avoidDanger && t.Influence != nil {
		if net := t.net(c); net < 0 {
			cost += math.Abs(net) * t.Weights.Danger
		} else {
			cost -= net * 0.1
		}
	}
	switch c.Terrain {
	case model.Forest:
		cost -= t.Weights.Cover
	case model.Mountain:
		if u.Type() == model.Artillery {
			cost -= t.Weights.Cover * 1.5
		} else {
			cost -= t.Weights.Cover * 0.5
		}
	}
	return math.Max(0, cost)
}

func reconstruct(n *searchNode) []*model.Cell {
	var path []*model.Cell
	for ; n != nil; n = n.parent {
		path = append(path, n.cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindSafestCell scores every cell within maxDistance hops of from that u
// could stand on, by net influence plus a cover bonus, and returns the first
// best one. Without influence data it returns from.
func (t *Tactical) FindSafestCell(from *model.Cell, maxDistance int, u *model.Unit) *model.Cell {
	if from == nil || t.Influence == nil {
		return from
	}
	type item struct {
		cell *model.Cell
		hops int
	}
	queue := []item{{from, 0}}
	visited := map[*model.Cell]bool{from: true}
	var candidates []*model.Cell

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.hops <= maxDistance {
			candidates = append(candidates, cur.cell)
		}
		if cur.hops >= maxDistance {
			continue
		}
		for _, n := range cur.cell.Neighbors() {
			if !visited[n] && n.PassableFor(u.Faction) {
				visited[n] = true
				queue = append(queue, item{n, cur.hops + 1})
			}
		}
	}

	safest := from
	bestScore := math.Inf(-1)
	for _, c := range candidates {
		score := t.net(c)
		switch c.Terrain {
		case model.Forest:
			score += 2
		case model.Mountain:
			score += 1
		}
		if score > bestScore {
			bestScore = score
			safest = c
		}
	}
	return safest
}

// FindBestAttackPosition looks for an empty cell from which attacker can hit
// target, at a hex distance from target between max(1, minRange) and the
// attacker's range and no more than maxDistance from from. The attacker's
// own cell counts as empty. Returns nil when there is no such cell.
func (t *Tactical) FindBestAttackPosition(g *model.Grid, from *model.Cell, target, attacker *model.Unit, maxDistance, minRange int) *model.Cell {
	if g == nil || from == nil || target == nil || target.Cell == nil || attacker == nil {
		return nil
	}
	lo := max(1, minRange)
	hi := attacker.AttackRange()

	var best *model.Cell
	bestScore := math.Inf(-1)
	for _, c := range g.Within(target.Cell.Coord, hi) {
		if d := model.Distance(c.Coord, target.Cell.Coord); d < lo {
			continue
		}
		if c != attacker.Cell && !c.PassableFor(attacker.Faction) {
			continue
		}
		dist := model.Distance(from.Coord, c.Coord)
		if dist > maxDistance {
			continue
		}
		score := t.net(c) * 0.5
		switch {
		case c.Terrain == model.Forest:
			score += 2
		case c.Terrain == model.Plain && attacker.Type() == model.Cavalry:
			score += 1.5
		}
		score -= float64(dist) * 0.2
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// ReachablePath trims path to what u can walk with budget: it accumulates
// step costs and stops at the first step it cannot afford. Occupied cells
// along the way are stepped over rather than stopped on, except the final
// destination which is kept even when occupied.
func ReachablePath(path []*model.Cell, budget float64, u *model.Unit) []*model.Cell {
	if len(path) == 0 {
		return nil
	}
	out := []*model.Cell{path[0]}
	spent := 0.0
	for i := 1; i < len(path); i++ {
		spent += u.StepCost(path[i])
		if spent > budget {
			break
		}
		if !path[i].IsOccupied() || i == len(path)-1 {
			out = append(out, path[i])
		}
	}
	return out
}

// PathCost sums u's step costs along path, excluding the first cell.
func PathCost(path []*model.Cell, u *model.Unit) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += u.StepCost(path[i])
	}
	return total
}
