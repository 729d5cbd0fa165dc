package rules

import (
	"fmt"

	"github.com/nstehr/hexfront/config"
	"github.com/nstehr/hexfront/model"
)

// Thresholds parameterize the built-in posture table.
type Thresholds struct {
	OverwhelmingAdvantage float64
	OverwhelmingControl   float64
	Outnumbered           float64
	ResourceStarved       float64
	StarvedMinAdvantage   float64
	Superior              float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		OverwhelmingAdvantage: 1.8,
		OverwhelmingControl:   0.5,
		Outnumbered:           0.5,
		ResourceStarved:       0.5,
		StarvedMinAdvantage:   0.8,
		Superior:              1.3,
	}
}

// postureCategory groups every transition so exactly one fires per turn.
const postureCategory = "posture"

// CompileTransitions generates the posture table from th. Conditions are
// built via fmt.Sprintf with interpolated values, so the compiler never
// generates invalid expr.
func CompileTransitions(th Thresholds) []*Rule {
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:         "base-threatened",
		Priority:     600,
		Category:     postureCategory,
		Exclusive:    true,
		ConditionSrc: `BaseThreatened()`,
		Action:       ActionSetPosture(Defensive),
	})

	rules = append(rules, &Rule{
		Name:      "overwhelming",
		Priority:  500,
		Category:  postureCategory,
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(`NumericalAdvantage() > %g && TerritorialControl() > %g`,
			th.OverwhelmingAdvantage, th.OverwhelmingControl),
		Action: ActionSetPosture(Aggressive),
	})

	rules = append(rules, &Rule{
		Name:         "outnumbered",
		Priority:     400,
		Category:     postureCategory,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`NumericalAdvantage() < %g`, th.Outnumbered),
		Action:       ActionSetPosture(Defensive),
	})

	rules = append(rules, &Rule{
		Name:      "resource-starved",
		Priority:  300,
		Category:  postureCategory,
		Exclusive: true,
		ConditionSrc: fmt.Sprintf(`ResourceAdvantage() < %g && NumericalAdvantage() > %g`,
			th.ResourceStarved, th.StarvedMinAdvantage),
		Action: ActionSetPosture(Economic),
	})

	rules = append(rules, &Rule{
		Name:         "superior",
		Priority:     200,
		Category:     postureCategory,
		Exclusive:    true,
		ConditionSrc: fmt.Sprintf(`NumericalAdvantage() > %g`, th.Superior),
		Action:       ActionSetPosture(Aggressive),
	})

	rules = append(rules, &Rule{
		Name:         "steady",
		Priority:     0,
		Category:     postureCategory,
		Exclusive:    true,
		ConditionSrc: `true`,
		Action:       ActionSetPosture(Balanced),
	})

	return rules
}

// TransitionRules turns a configured posture table into rules. Conditions
// are compiled later by the engine.
func TransitionRules(table []config.Transition) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(table))
	for i, t := range table {
		p, err := ParsePosture(t.Posture)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("transition-%d", i)
		}
		rules = append(rules, &Rule{
			Name:         name,
			Priority:     t.Priority,
			Category:     postureCategory,
			Exclusive:    true,
			ConditionSrc: t.When,
			Action:       ActionSetPosture(p),
		})
	}
	return rules, nil
}

// CompileProduction generates the weighted production rules for d. Every
// rule that matches adds its weight to one unit type; none are exclusive.
func CompileProduction(d Doctrine) []*Rule {
	d.Validate()
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:         "threat-artillery",
		Priority:     40,
		Category:     "production",
		ConditionSrc: `EnemyNearBase() && UnitCount("artillery") < 2`,
		Action:       ActionScore(model.Artillery, 4),
	})

	// Aggressive doctrines favor fast units.
	if d.Aggression > 0.7 {
		rules = append(rules, &Rule{
			Name:         "aggressive-cavalry",
			Priority:     30,
			Category:     "production",
			ConditionSrc: `UnitCount("cavalry") < TotalUnits() * 0.3`,
			Action:       ActionScore(model.Cavalry, 3),
		})
	}

	rules = append(rules, &Rule{
		Name:         "need-firepower",
		Priority:     20,
		Category:     "production",
		ConditionSrc: `UnitCount("artillery") < TotalUnits() * 0.2 && TotalUnits() > 2`,
		Action:       ActionScore(model.Artillery, 2),
	})

	rules = append(rules, &Rule{
		Name:         "baseline-infantry",
		Priority:     10,
		Category:     "production",
		ConditionSrc: `true`,
		Action:       ActionScore(model.Infantry, 1),
	})

	return rules
}
