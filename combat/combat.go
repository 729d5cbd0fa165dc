// Package combat resolves attacks between units.
package combat

import (
	"errors"
	"log/slog"

	"github.com/nstehr/hexfront/model"
)

var (
	ErrNoTarget        = errors.New("no target")
	ErrAlreadyAttacked = errors.New("already attacked this turn")
	ErrFriendlyFire    = errors.New("target is friendly")
	ErrOutOfRange      = errors.New("target out of range")
)

// Check returns nil when attacker may attack target right now.
func Check(attacker, target *model.Unit) error {
	if attacker == nil || target == nil || !target.IsAlive() || target.Cell == nil || attacker.Cell == nil {
		return ErrNoTarget
	}
	if attacker.HasAttacked {
		return ErrAlreadyAttacked
	}
	if attacker.Faction == target.Faction {
		return ErrFriendlyFire
	}
	if model.Distance(attacker.Cell.Coord, target.Cell.Coord) > attacker.AttackRange() {
		return ErrOutOfRange
	}
	return nil
}

func CanAttack(attacker, target *model.Unit) bool { return Check(attacker, target) == nil }

// ExpectedDamage is the damage attacker deals per hit.
func ExpectedDamage(attacker *model.Unit) int {
	if attacker == nil {
		return 0
	}
	return attacker.AttackPower()
}

// WouldBeLethal reports whether one hit from attacker destroys target.
func WouldBeLethal(attacker, target *model.Unit) bool {
	if attacker == nil || target == nil {
		return false
	}
	return target.Health <= attacker.AttackPower()
}

// Result describes a resolved attack.
type Result struct {
	Damage    int
	Remaining int
	Killed    bool
}

// Attack applies one hit and marks the attacker as having attacked. A
// destroyed target is removed from the world.
func Attack(w *model.World, attacker, target *model.Unit, j *model.Journal) (Result, error) {
	if err := Check(attacker, target); err != nil {
		return Result{}, err
	}
	dmg := ExpectedDamage(attacker)
	target.Health -= dmg
	attacker.HasAttacked = true
	res := Result{Damage: dmg, Remaining: max(target.Health, 0), Killed: !target.IsAlive()}

	j.Attacked(attacker, target, dmg)
	slog.Debug("attack", "attacker", attacker.ID, "target", target.ID, "damage", dmg, "remaining", res.Remaining, "killed", res.Killed)
	if res.Killed && w != nil {
		w.Kill(target)
	}
	return res, nil
}

// InRange returns the living enemies of attacker within its attack range, in
// roster order. It ignores the has-attacked flag.
func InRange(attacker *model.Unit, units []*model.Unit) []*model.Unit {
	if attacker == nil || attacker.Cell == nil {
		return nil
	}
	var out []*model.Unit
	for _, u := range units {
		if u.Faction == attacker.Faction || !u.IsAlive() || u.Cell == nil {
			continue
		}
		if model.Distance(attacker.Cell.Coord, u.Cell.Coord) <= attacker.AttackRange() {
			out = append(out, u)
		}
	}
	return out
}

// BestTarget picks among the enemies in range: lethal hits first, then the
// highest attack power, then the lowest health. Ties keep the first found.
func BestTarget(attacker *model.Unit, units []*model.Unit) *model.Unit {
	var best *model.Unit
	for _, u := range InRange(attacker, units) {
		if best == nil || better(attacker, u, best) {
			best = u
		}
	}
	return best
}

func better(attacker, a, b *model.Unit) bool {
	la, lb := WouldBeLethal(attacker, a), WouldBeLethal(attacker, b)
	if la != lb {
		return la
	}
	if a.AttackPower() != b.AttackPower() {
		return a.AttackPower() > b.AttackPower()
	}
	return a.Health < b.Health
}
