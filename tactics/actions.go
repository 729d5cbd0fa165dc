package tactics

import (
	"log/slog"
	"math"

	"github.com/nstehr/hexfront/bt"
	"github.com/nstehr/hexfront/combat"
	"github.com/nstehr/hexfront/model"
	"github.com/nstehr/hexfront/pathfind"
	"github.com/nstehr/hexfront/waypoint"
)

func (ai *UnitAI) idle() bt.Status { return bt.Success }

// reach is the hex radius worth searching for positions this turn.
func (ai *UnitAI) reach() int { return int(math.Ceil(ai.unit.RemainingMovement)) }

func (ai *UnitAI) strike(target *model.Unit) bool {
	if target == nil {
		return false
	}
	if _, err := combat.Attack(ai.env.World, ai.unit, target, ai.env.Journal); err != nil {
		slog.Debug("attack rejected", "unit", ai.unit.ID, "target", target.ID, "error", err)
		return false
	}
	return true
}

func (ai *UnitAI) attackInRange() bt.Status {
	return bt.Bool(ai.strike(combat.BestTarget(ai.unit, ai.enemies())))
}

func (ai *UnitAI) attackAtSafeRange() bt.Status {
	return bt.Bool(ai.strike(combat.BestTarget(ai.unit, ai.targetsBeyond(ai.env.Settings.ArtillerySafeDistance-1))))
}

// walk moves the unit along path, which must start at its cell, and
// captures an enemy base it ends on.
func (ai *UnitAI) walk(path []*model.Cell) bool {
	u := ai.unit
	if len(path) < 2 || path[0] != u.Cell {
		return false
	}
	dest := path[len(path)-1]
	if err := ai.env.World.MoveUnit(u, dest, pathfind.PathCost(path, u)); err != nil {
		slog.Debug("move rejected", "unit", u.ID, "to", dest.Coord, "error", err)
		return false
	}
	coords := make([]model.Coord, len(path))
	for i, c := range path {
		coords[i] = c.Coord
	}
	ai.env.Journal.Moved(u, coords)

	if dest.IsEnemyBase(u.Faction) && ai.env.World.Capture(u) {
		ai.env.Journal.Captured(u, dest.Coord)
		slog.Info("enemy base captured", "unit", u.ID, "faction", u.Faction, "at", dest.Coord)
	}
	return true
}

// moveToward spends this turn's movement on the way to goal. Cells the unit
// can reach exactly are walked along the cost field; everything else goes
// through the tactical search, trimmed to the budget and to the last cell
// the unit may stand on.
func (ai *UnitAI) moveToward(goal *model.Cell, avoidDanger bool) bool {
	u := ai.unit
	if goal == nil || goal == u.Cell || !ai.hasMovement() {
		return false
	}
	var path []*model.Cell
	if !avoidDanger && goal.PassableFor(u.Faction) {
		cf := ai.env.Fields.For(u)
		if cost, ok := cf.Cost(goal); ok && cost <= u.RemainingMovement {
			path = cf.Path(goal)
		}
	}
	if path == nil {
		full := ai.env.Tactical.FindPath(u.Cell, goal, u, avoidDanger)
		path = pathfind.ReachablePath(full, u.RemainingMovement, u)
	}
	for len(path) > 1 && !path[len(path)-1].PassableFor(u.Faction) {
		path = path[:len(path)-1]
	}
	return ai.walk(path)
}

func (ai *UnitAI) invadeEnemyBase() bt.Status {
	base := ai.env.World.Grid.EnemyBase(ai.unit.Faction)
	if base == nil {
		return bt.Failure
	}
	return bt.Bool(ai.walk(ai.env.Fields.For(ai.unit).Path(base)))
}

// findCoverCell scores reachable forest and mountain cells near the unit.
func (ai *UnitAI) findCoverCell() *model.Cell {
	u := ai.unit
	var best *model.Cell
	bestScore := math.Inf(-1)
	for _, c := range ai.env.Fields.For(u).WithinMovement() {
		if !c.Terrain.IsCover() {
			continue
		}
		d := model.Distance(u.Cell.Coord, c.Coord)
		if d > ai.env.Settings.CoverSearchRadius {
			continue
		}
		score := 0.0
		if ai.env.Field != nil {
			score += ai.env.Field.Net(c.Coord)
		}
		if c.Terrain == model.Forest {
			score += 2
		} else {
			score += 1
		}
		score -= 0.1 * float64(d)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

func (ai *UnitAI) seekCover() bt.Status {
	cover := ai.findCoverCell()
	if cover == nil {
		return bt.Failure
	}
	return bt.Bool(ai.walk(ai.env.Fields.For(ai.unit).Path(cover)))
}

func (ai *UnitAI) retreat() bt.Status {
	u := ai.unit
	if !ai.hasMovement() {
		return bt.Failure
	}
	if f := ai.env.Field; f != nil {
		if f.IsSafe(u.Cell.Coord) {
			return bt.Success
		}
		safest := ai.env.Tactical.FindSafestCell(u.Cell, ai.env.Settings.RetreatSearchRadius, u)
		if safest == u.Cell {
			return bt.Success
		}
		if safest != nil && ai.moveToward(safest, true) {
			return bt.Success
		}
		if near := f.NearestSafe(u.Cell.Coord); near != nil && ai.moveToward(near, true) {
			return bt.Success
		}
	}
	if base := ai.env.World.Grid.Base(u.Faction); base != nil {
		return bt.Bool(ai.moveToward(base, true))
	}
	return bt.Failure
}

// attack carries out an Attack order. Units with a safe distance only fire
// at targets at least safe-1 hexes away and back off after firing when an
// enemy is closer than that.
func (ai *UnitAI) attack(safe int, avoidDanger bool) bt.Status {
	u := ai.unit
	if avoidDanger && ai.inDanger() {
		u.Order = model.OrderRetreat
		return ai.retreat()
	}
	if !u.HasAttacked && ai.strike(combat.BestTarget(u, ai.targetsBeyond(safe-1))) {
		if safe > 0 {
			ai.kite(safe)
		}
		return bt.Success
	}

	moved := ai.advance(safe, avoidDanger)
	if moved && !u.HasAttacked {
		ai.strike(combat.BestTarget(u, ai.targetsBeyond(safe-1)))
	}
	return bt.Bool(moved || u.HasAttacked)
}

// advance moves toward the best firing position on the nearest enemy, or
// failing that toward the enemy, the front line or the enemy base.
func (ai *UnitAI) advance(safe int, avoidDanger bool) bool {
	u := ai.unit
	if !ai.hasMovement() {
		return false
	}
	var goal *model.Cell
	e, d := ai.nearestEnemy()
	if e != nil {
		goal = ai.env.Tactical.FindBestAttackPosition(ai.env.World.Grid, u.Cell, e, u, ai.reach(), safe)
		if goal == nil && d <= ai.env.Settings.EngageRange {
			goal = e.Cell
		}
	}
	if goal == nil {
		goal = waypointCell(ai.env.Waypoints.HighestPriority(waypoint.Attack))
	}
	if goal == nil {
		goal = waypointCell(ai.env.Waypoints.HighestPriority(waypoint.EnemyBase))
	}
	if goal == nil && e != nil {
		goal = e.Cell
	}
	return ai.moveToward(goal, avoidDanger)
}

// kite restores the safe distance after firing.
func (ai *UnitAI) kite(safe int) bool {
	u := ai.unit
	e, d := ai.nearestEnemy()
	if e == nil || d >= safe || !ai.hasMovement() {
		return false
	}
	goal := ai.env.Tactical.FindBestAttackPosition(ai.env.World.Grid, u.Cell, e, u, ai.reach(), safe)
	if goal == nil {
		goal = ai.env.Tactical.FindSafestCell(u.Cell, ai.env.Settings.RetreatSearchRadius, u)
	}
	return ai.moveToward(goal, true)
}

// defend holds ground near the base: fire on what is in range, intercept
// enemies that come close and otherwise drift back to a defense waypoint.
func (ai *UnitAI) defend(safe int) bt.Status {
	u := ai.unit
	if e, d := ai.nearestEnemy(); e != nil {
		if safe > 0 && d < safe && ai.hasMovement() {
			moved := ai.kite(safe)
			if !u.HasAttacked {
				ai.strike(combat.BestTarget(u, ai.targetsBeyond(safe-1)))
			}
			return bt.Bool(moved || u.HasAttacked)
		}
		if !u.HasAttacked && ai.strike(combat.BestTarget(u, ai.targetsBeyond(safe-1))) {
			return bt.Success
		}
		if d <= ai.env.Settings.InterceptRange && ai.hasMovement() {
			goal := ai.env.Tactical.FindBestAttackPosition(ai.env.World.Grid, u.Cell, e, u, ai.reach(), max(1, safe))
			if goal == nil && safe == 0 {
				goal = e.Cell
			}
			if ai.moveToward(goal, safe > 0) {
				if !u.HasAttacked {
					ai.strike(combat.BestTarget(u, ai.targetsBeyond(safe-1)))
				}
				return bt.Success
			}
		}
	}
	wp := ai.env.Waypoints.Nearest(u.Cell.Coord, waypoint.Defense)
	if wp != nil && model.Distance(u.Cell.Coord, wp.Cell.Coord) > 2 && ai.hasMovement() {
		return bt.Bool(ai.moveToward(wp.Cell, safe > 0))
	}
	return bt.Success
}

// patrol sweeps cavalry between the defense waypoints: each turn it heads
// for the one farthest from where it stands.
func (ai *UnitAI) patrol() bt.Status {
	u := ai.unit
	var goal *model.Cell
	bestDist := -1
	for _, wp := range ai.env.Waypoints.ByCategory(waypoint.Defense) {
		if !wp.Cell.PassableFor(u.Faction) {
			continue
		}
		if d := model.Distance(u.Cell.Coord, wp.Cell.Coord); d > bestDist {
			goal, bestDist = wp.Cell, d
		}
	}
	if goal != nil {
		ai.moveToward(goal, false)
	}
	return bt.Success
}

func (ai *UnitAI) collectHere() bool {
	c := ai.unit.Cell
	amount := ai.env.Settings.ResourceYield
	if !c.IsResource || c.Collected || !ai.env.World.Collect(ai.unit, amount) {
		return false
	}
	ai.env.Journal.Collected(ai.unit, c.Coord, amount)
	slog.Debug("resource collected", "unit", ai.unit.ID, "at", c.Coord, "amount", amount)
	return true
}

// nearestResource returns the closest uncollected resource waypoint nobody
// else stands on.
func (ai *UnitAI) nearestResource() *model.Cell {
	u := ai.unit
	var best *model.Cell
	bestDist := 0
	for _, wp := range ai.env.Waypoints.ByCategory(waypoint.Resource) {
		c := wp.Cell
		if c.Collected || (c.IsOccupied() && c.Occupant != u) {
			continue
		}
		if d := model.Distance(u.Cell.Coord, c.Coord); best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func (ai *UnitAI) gather() bt.Status {
	if ai.collectHere() {
		return bt.Success
	}
	goal := ai.nearestResource()
	if goal == nil || !ai.moveToward(goal, true) {
		return bt.Failure
	}
	ai.collectHere()
	return bt.Success
}

// raid is the cavalry gather: it ignores danger on the way and takes a shot
// if one presents itself.
func (ai *UnitAI) raid() bt.Status {
	u := ai.unit
	moved := false
	if !ai.collectHere() {
		goal := ai.nearestResource()
		if goal == nil {
			return bt.Failure
		}
		moved = ai.moveToward(goal, false)
		ai.collectHere()
	}
	if !u.HasAttacked {
		ai.strike(combat.BestTarget(u, ai.enemies()))
	}
	return bt.Bool(moved || u.Cell.IsResource)
}

func (ai *UnitAI) charge() bt.Status {
	u := ai.unit
	e, _ := ai.nearestEnemy()
	if e == nil {
		return bt.Failure
	}
	goal := ai.env.Tactical.FindBestAttackPosition(ai.env.World.Grid, u.Cell, e, u, ai.reach(), 1)
	if goal == nil {
		goal = e.Cell
	}
	moved := ai.moveToward(goal, false)
	if moved && !u.HasAttacked {
		ai.strike(combat.BestTarget(u, ai.enemies()))
	}
	return bt.Bool(moved)
}

func waypointCell(wp *waypoint.Waypoint) *model.Cell {
	if wp == nil {
		return nil
	}
	return wp.Cell
}
