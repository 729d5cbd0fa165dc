package rules

import (
	"log/slog"

	"github.com/nstehr/hexfront/model"
)

// ActionSetPosture returns an action that moves the machine to p.
func ActionSetPosture(p Posture) ActionFunc {
	return func(env RuleEnv, d *Decision) error {
		d.Posture = p
		d.PostureSet = true
		if n := len(d.Fired); n > 0 {
			d.PostureRule = d.Fired[n-1]
		}
		return nil
	}
}

// ActionScore returns an action that adds weight to t's production score.
func ActionScore(t model.UnitType, weight float64) ActionFunc {
	return func(env RuleEnv, d *Decision) error {
		d.Scores[t] += weight
		slog.Debug("production score", "unit", t, "weight", weight, "total", d.Scores[t])
		return nil
	}
}
