package rules

import (
	"log/slog"

	"github.com/nstehr/hexfront/config"
)

// Machine is the strategic state machine. Every turn the transition table
// is evaluated from the top regardless of the current posture; the first
// matching transition sets the new doctrine.
type Machine struct {
	engine   *Engine
	doctrine Doctrine
	lastRule string
}

// NewMachine starts in Balanced with the built-in transition table.
func NewMachine() *Machine {
	engine, err := NewEngine(CompileTransitions(DefaultThresholds()))
	if err != nil {
		// The built-in table is generated from constants.
		panic(err)
	}
	return &Machine{engine: engine, doctrine: DefaultDoctrine()}
}

// SetTransitions replaces the built-in table. A table that fails to compile
// leaves the previous one active.
func (m *Machine) SetTransitions(table []config.Transition) error {
	if len(table) == 0 {
		return nil
	}
	rules, err := TransitionRules(table)
	if err != nil {
		return err
	}
	return m.engine.Swap(rules)
}

// Doctrine is the posture currently in force.
func (m *Machine) Doctrine() Doctrine { return m.doctrine }

// LastRule names the transition that fired on the most recent Update.
func (m *Machine) LastRule() string { return m.lastRule }

// Update evaluates the transition table against ctx and reports whether the
// posture changed. When nothing matches the posture is kept.
func (m *Machine) Update(ctx StrategicContext) (Doctrine, bool) {
	d := m.engine.Evaluate(RuleEnv{Context: ctx, Doctrine: m.doctrine})
	if !d.PostureSet {
		return m.doctrine, false
	}
	m.lastRule = d.PostureRule
	if d.Posture == m.doctrine.Posture {
		return m.doctrine, false
	}

	prev := m.doctrine.Posture
	m.doctrine = DoctrineFor(d.Posture)
	m.doctrine.Rationale = d.PostureRule
	slog.Info("posture changed",
		"faction", ctx.Faction,
		"from", prev,
		"to", m.doctrine.Posture,
		"rule", d.PostureRule,
		"numerical_advantage", ctx.NumericalAdvantage,
		"territorial_control", ctx.TerritorialControl,
	)
	return m.doctrine, true
}
