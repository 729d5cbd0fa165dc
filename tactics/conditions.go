package tactics

import (
	"github.com/nstehr/hexfront/combat"
	"github.com/nstehr/hexfront/model"
)

func (ai *UnitAI) enemies() []*model.Unit {
	var out []*model.Unit
	for _, e := range ai.env.World.Units.Enemies(ai.unit.Faction) {
		if e.Cell != nil {
			out = append(out, e)
		}
	}
	return out
}

// nearestEnemy returns the closest enemy by hex distance; ties keep roster
// order.
func (ai *UnitAI) nearestEnemy() (*model.Unit, int) {
	var best *model.Unit
	bestDist := 0
	for _, e := range ai.enemies() {
		if d := model.Distance(ai.unit.Cell.Coord, e.Cell.Coord); best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, bestDist
}

func (ai *UnitAI) hasMovement() bool { return ai.unit.RemainingMovement > 0 }

// inDanger is true when the unit is badly hurt or stands in enemy-dominated
// ground.
func (ai *UnitAI) inDanger() bool {
	if ai.unit.HealthFraction() < ai.env.Settings.LowHealth {
		return true
	}
	return ai.env.Field != nil && ai.env.Field.IsDanger(ai.unit.Cell.Coord)
}

func (ai *UnitAI) enemyInAttackRange() bool {
	return !ai.unit.HasAttacked && combat.BestTarget(ai.unit, ai.enemies()) != nil
}

// canInvadeEnemyBase holds when an empty enemy base is reachable with the
// movement left this turn.
func (ai *UnitAI) canInvadeEnemyBase() bool {
	base := ai.env.World.Grid.EnemyBase(ai.unit.Faction)
	if base == nil || base.IsOccupied() || !ai.hasMovement() {
		return false
	}
	cost, ok := ai.env.Fields.For(ai.unit).Cost(base)
	return ok && cost <= ai.unit.RemainingMovement
}

func (ai *UnitAI) canSeekCover() bool {
	if ai.unit.Cell.Terrain.IsCover() || !ai.hasMovement() {
		return false
	}
	if e, _ := ai.nearestEnemy(); e == nil {
		return false
	}
	return ai.findCoverCell() != nil
}

// canCharge holds when the nearest enemy is out of reach of an attack from
// here but within charge range.
func (ai *UnitAI) canCharge() bool {
	if !ai.hasMovement() {
		return false
	}
	e, d := ai.nearestEnemy()
	if e == nil {
		return false
	}
	return d > ai.unit.AttackRange() && d <= ai.env.Settings.ChargeRange
}

func (ai *UnitAI) enemyTooClose() bool {
	e, d := ai.nearestEnemy()
	return e != nil && d < ai.env.Settings.ArtillerySafeDistance && ai.hasMovement()
}

// targetsBeyond filters the enemies in range to those at least minDist hexes
// away.
func (ai *UnitAI) targetsBeyond(minDist int) []*model.Unit {
	var out []*model.Unit
	for _, e := range combat.InRange(ai.unit, ai.enemies()) {
		if model.Distance(ai.unit.Cell.Coord, e.Cell.Coord) >= minDist {
			out = append(out, e)
		}
	}
	return out
}

func (ai *UnitAI) hasTargetAtSafeRange() bool {
	if ai.unit.HasAttacked {
		return false
	}
	return len(ai.targetsBeyond(ai.env.Settings.ArtillerySafeDistance-1)) > 0
}
