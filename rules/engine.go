package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/hexfront/model"
)

// Decision collects what the rules that fired this evaluation decided.
type Decision struct {
	Posture     Posture
	PostureSet  bool
	PostureRule string
	Scores      map[model.UnitType]float64
	Fired       []string
}

func newDecision() *Decision {
	return &Decision{Scores: make(map[model.UnitType]float64)}
}

// Engine runs compiled rules against the strategic context.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category, so exactly one posture transition applies per turn.
type Engine struct {
	rules []*Rule
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// Evaluate runs every rule against env and returns the accumulated decision.
func (e *Engine) Evaluate(env RuleEnv) *Decision {
	d := newDecision()
	fired := make(map[string]bool) // category → exclusive rule already fired

	for _, r := range e.rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category)
		d.Fired = append(d.Fired, r.Name)

		if r.Action != nil {
			if err := r.Action(env, d); err != nil {
				slog.Error("rule action error", "rule", r.Name, "error", err)
			}
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}
	return d
}

// Swap replaces the rule set. Compiles first; if compilation fails the old
// rules remain active.
func (e *Engine) Swap(newRules []*Rule) error {
	compiled, err := compileRules(newRules)
	if err != nil {
		return err
	}
	e.rules = compiled
	slog.Info("rule set swapped", "count", len(compiled), "rules", e.Names())
	return nil
}

// Names lists the active rules in evaluation order.
func (e *Engine) Names() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	out := make([]*Rule, 0, len(rules))
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		c := *r
		c.program = prog
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out, nil
}
