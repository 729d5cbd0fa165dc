// Package pathfind computes movement over the hex grid: per-unit Dijkstra
// cost fields and an influence-aware tactical A*.
package pathfind

import "github.com/nstehr/hexfront/model"

// Node is one entry of a cost field: the cheapest known cost from the origin
// and the cell it was reached from.
type Node struct {
	Cell   *model.Cell
	Cost   float64
	Parent *model.Cell
}

// CostField is the result of a single-source Dijkstra from a unit's cell.
// It is only valid for the unit position, remaining movement and world
// version it was built for.
type CostField struct {
	Origin *model.Cell
	unit   *model.Unit
	nodes  map[*model.Cell]*Node
	order  []*model.Cell
}

// BuildCostField runs Dijkstra from u's cell. Water and u's own base are
// never entered. Occupied cells are recorded but not expanded, so enemies
// show up as attack candidates without being walked through. Equal costs
// keep whichever node was discovered first.
func BuildCostField(u *model.Unit) *CostField {
	cf := &CostField{unit: u, nodes: make(map[*model.Cell]*Node)}
	if u == nil || u.Cell == nil {
		return cf
	}
	cf.Origin = u.Cell

	start := &Node{Cell: u.Cell}
	cf.add(start)
	open := []*Node{start}
	closed := make(map[*model.Cell]bool)

	for len(open) > 0 {
		best := 0
		for i := 1; i < len(open); i++ {
			if open[i].Cost < open[best].Cost {
				best = i
			}
		}
		cur := open[best]
		open = append(open[:best], open[best+1:]...)
		closed[cur.Cell] = true

		if cur.Cell != cf.Origin && cur.Cell.IsOccupied() {
			continue
		}
		for _, n := range cur.Cell.Neighbors() {
			if closed[n] || !enterable(n, u.Faction) {
				continue
			}
			cost := cur.Cost + u.StepCost(n)
			if existing, ok := cf.nodes[n]; !ok {
				node := &Node{Cell: n, Cost: cost, Parent: cur.Cell}
				cf.add(node)
				open = append(open, node)
			} else if cost < existing.Cost {
				existing.Cost = cost
				existing.Parent = cur.Cell
			}
		}
	}
	return cf
}

func enterable(c *model.Cell, f model.Faction) bool {
	if c.Terrain == model.Water {
		return false
	}
	return !(c.IsBase && c.Owner == f)
}

func (cf *CostField) add(n *Node) {
	cf.nodes[n.Cell] = n
	cf.order = append(cf.order, n.Cell)
}

// Reached reports whether c was reached from the origin.
func (cf *CostField) Reached(c *model.Cell) bool {
	_, ok := cf.nodes[c]
	return ok
}

// Cost returns the accumulated cost to c; ok is false when c was not reached.
func (cf *CostField) Cost(c *model.Cell) (float64, bool) {
	n, ok := cf.nodes[c]
	if !ok {
		return 0, false
	}
	return n.Cost, true
}

// Parent returns the cell c was reached from, nil for the origin or an
// unreached cell.
func (cf *CostField) Parent(c *model.Cell) *model.Cell {
	if n, ok := cf.nodes[c]; ok {
		return n.Parent
	}
	return nil
}

// Nodes returns every reached node in discovery order.
func (cf *CostField) Nodes() []*Node {
	out := make([]*Node, 0, len(cf.order))
	for _, c := range cf.order {
		out = append(out, cf.nodes[c])
	}
	return out
}

// WithinAttackRange lists reached cells whose cost is at most the unit's
// attack range, occupied or not.
func (cf *CostField) WithinAttackRange() []*model.Cell {
	if cf.unit == nil {
		return nil
	}
	limit := float64(cf.unit.AttackRange())
	var out []*model.Cell
	for _, c := range cf.order {
		if cost := cf.nodes[c].Cost; cost > 0 && cost <= limit {
			out = append(out, c)
		}
	}
	return out
}

// WithinMovement lists empty cells the unit can still reach this turn.
func (cf *CostField) WithinMovement() []*model.Cell {
	if cf.unit == nil {
		return nil
	}
	var out []*model.Cell
	for _, c := range cf.order {
		cost := cf.nodes[c].Cost
		if cost > 0 && cost <= cf.unit.RemainingMovement && !c.IsOccupied() {
			out = append(out, c)
		}
	}
	return out
}

// Path walks parent links from target back to the origin. It returns nil
// when target was never reached.
func (cf *CostField) Path(target *model.Cell) []*model.Cell {
	if !cf.Reached(target) {
		return nil
	}
	var path []*model.Cell
	for c := target; c != nil; c = cf.Parent(c) {
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
