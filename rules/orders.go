package rules

import (
	"math"
	"sort"

	"github.com/nstehr/hexfront/model"
)

// Apportion splits n units into attackers, gatherers and defenders per the
// doctrine weights. At least one defender is kept whenever there are units.
func Apportion(n int, d Doctrine) (attackers, gatherers, defenders int) {
	d.Validate()
	attackers = int(math.Ceil(float64(n) * d.Aggression))
	gatherers = int(math.Ceil(float64(n) * d.EconomicFocus))
	defenders = n - attackers - gatherers
	if defenders < 1 && n > 0 {
		defenders = 1
		attackers = max(0, attackers-1)
	}
	return attackers, gatherers, defenders
}

// AssignOrders hands out orders to units, healthiest and strongest first:
// attackers, then defenders, then gatherers. Units left over go idle.
func AssignOrders(units []*model.Unit, d Doctrine) {
	sorted := make([]*model.Unit, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool {
		hi, hj := sorted[i].HealthFraction(), sorted[j].HealthFraction()
		if hi != hj {
			return hi > hj
		}
		return sorted[i].AttackPower() > sorted[j].AttackPower()
	})

	attackers, gatherers, defenders := Apportion(len(sorted), d)
	for i, u := range sorted {
		switch {
		case i < attackers:
			u.Order = model.OrderAttack
		case i < attackers+defenders:
			u.Order = model.OrderDefend
		case i < attackers+defenders+gatherers:
			u.Order = model.OrderGather
		default:
			u.Order = model.OrderIdle
		}
	}
}
