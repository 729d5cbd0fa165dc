package rules

import (
	"log/slog"

	"github.com/nstehr/hexfront/model"
)

// Producer scores unit types with doctrine-derived production rules. The
// rule set is recompiled whenever the doctrine changes.
type Producer struct {
	engine   *Engine
	compiled Doctrine
}

func NewProducer(d Doctrine) (*Producer, error) {
	engine, err := NewEngine(CompileProduction(d))
	if err != nil {
		return nil, err
	}
	return &Producer{engine: engine, compiled: d}, nil
}

// Decide returns the unit type with the highest score under ctx and d.
func (p *Producer) Decide(ctx StrategicContext, d Doctrine) (model.UnitType, map[model.UnitType]float64) {
	if d.Posture != p.compiled.Posture || d.Aggression != p.compiled.Aggression {
		if err := p.engine.Swap(CompileProduction(d)); err != nil {
			slog.Error("production rules failed to compile", "error", err)
		} else {
			p.compiled = d
		}
	}
	dec := p.engine.Evaluate(RuleEnv{Context: ctx, Doctrine: d})
	best := pickBest(dec.Scores)
	slog.Debug("production decision",
		"faction", ctx.Faction,
		"unit", best,
		"scores", dec.Scores,
		"fired", dec.Fired,
		"army", typeCounts(ctx.OwnUnits),
	)
	return best, dec.Scores
}

// pickBest returns the highest scoring type; ties favor Infantry, then
// Cavalry, then Artillery.
func pickBest(scores map[model.UnitType]float64) model.UnitType {
	best := model.Infantry
	for _, t := range model.UnitTypes {
		if scores[t] > scores[best] {
			best = t
		}
	}
	return best
}

// DecideProduction is a one-shot Producer for callers without a cached
// rule set.
func DecideProduction(ctx StrategicContext, d Doctrine) model.UnitType {
	p, err := NewProducer(d)
	if err != nil {
		slog.Error("production rules failed to compile", "error", err)
		return model.Infantry
	}
	t, _ := p.Decide(ctx, d)
	return t
}
