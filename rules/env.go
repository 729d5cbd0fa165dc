package rules

import (
	"strings"

	"github.com/nstehr/hexfront/model"
)

// RuleEnv wraps the strategic context and exposes helper methods callable
// from expr expressions.
type RuleEnv struct {
	Context  StrategicContext
	Doctrine Doctrine
}

func (e RuleEnv) NumericalAdvantage() float64 { return e.Context.NumericalAdvantage }

func (e RuleEnv) ResourceAdvantage() float64 { return e.Context.ResourceAdvantage }

func (e RuleEnv) BaseThreatened() bool { return e.Context.BaseThreatened }

func (e RuleEnv) TerritorialControl() float64 { return e.Context.TerritorialControl }

// EnemyNearBase is the production view of a threatened base.
func (e RuleEnv) EnemyNearBase() bool { return e.Context.BaseThreatened }

func (e RuleEnv) Aggression() float64 { return e.Doctrine.Aggression }

func (e RuleEnv) EconomicFocus() float64 { return e.Doctrine.EconomicFocus }

func (e RuleEnv) Turn() int { return e.Context.Turn }

func (e RuleEnv) Resources() int { return e.Context.OwnResources }

func (e RuleEnv) EnemyCount() int { return e.Context.EnemyCount }

// UnitCount counts own living units whose type name matches t
// (case-insensitive).
func (e RuleEnv) UnitCount(t string) int {
	n := 0
	for _, u := range e.Context.OwnUnits {
		if strings.EqualFold(u.Type().String(), t) {
			n++
		}
	}
	return n
}

func (e RuleEnv) HasUnit(t string) bool { return e.UnitCount(t) > 0 }

func (e RuleEnv) TotalUnits() int { return len(e.Context.OwnUnits) }

// Posture exposes the current posture name, e.g. `Posture() == "aggressive"`.
func (e RuleEnv) Posture() string { return e.Doctrine.Posture.String() }

// typeCounts is used for logging production decisions.
func typeCounts(units []*model.Unit) map[string]int {
	out := make(map[string]int, len(model.UnitTypes))
	for _, u := range units {
		out[u.Type().String()]++
	}
	return out
}
