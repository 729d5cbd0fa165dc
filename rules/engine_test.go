package rules

import (
	"testing"

	"github.com/nstehr/hexfront/config"
	"github.com/nstehr/hexfront/model"
)

func TestDefaultTransitionsCompile(t *testing.T) {
	engine, err := NewEngine(CompileTransitions(DefaultThresholds()))
	if err != nil {
		t.Fatalf("NewEngine(CompileTransitions()) failed: %v", err)
	}
	if len(engine.rules) != 6 {
		t.Errorf("expected 6 rules, got %d", len(engine.rules))
	}
	// Verify priority ordering (descending).
	for i := 1; i < len(engine.rules); i++ {
		if engine.rules[i].Priority > engine.rules[i-1].Priority {
			t.Errorf("rules not sorted by priority: %s (%d) > %s (%d)",
				engine.rules[i].Name, engine.rules[i].Priority,
				engine.rules[i-1].Name, engine.rules[i-1].Priority)
		}
	}
}

func TestProductionRulesCompile(t *testing.T) {
	for _, p := range []Posture{Balanced, Aggressive, Defensive, Economic} {
		if _, err := NewEngine(CompileProduction(DoctrineFor(p))); err != nil {
			t.Errorf("CompileProduction(%s) failed: %v", p, err)
		}
	}
}

func TestSwapKeepsRulesOnError(t *testing.T) {
	engine, err := NewEngine(CompileTransitions(DefaultThresholds()))
	if err != nil {
		t.Fatal(err)
	}
	before := engine.Names()

	bad := []*Rule{{Name: "broken", ConditionSrc: `NoSuchHelper() > 1`}}
	if err := engine.Swap(bad); err == nil {
		t.Fatal("Swap with an unknown helper should fail")
	}
	after := engine.Names()
	if len(after) != len(before) {
		t.Fatalf("rule count changed after failed swap: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("rule %d changed from %s to %s", i, before[i], after[i])
		}
	}
}

func TestNonBoolConditionRejected(t *testing.T) {
	_, err := NewEngine([]*Rule{{Name: "number", ConditionSrc: `TotalUnits()`}})
	if err == nil {
		t.Error("a non-boolean condition should not compile")
	}
}

func TestExclusiveRuleBlocksCategory(t *testing.T) {
	engine, err := NewEngine([]*Rule{
		{Name: "low", Priority: 1, Category: "c", Exclusive: true, ConditionSrc: `true`, Action: ActionSetPosture(Economic)},
		{Name: "high", Priority: 2, Category: "c", Exclusive: true, ConditionSrc: `true`, Action: ActionSetPosture(Aggressive)},
		{Name: "other", Priority: 0, Category: "d", ConditionSrc: `true`, Action: ActionScore(model.Cavalry, 1)},
	})
	if err != nil {
		t.Fatal(err)
	}
	d := engine.Evaluate(RuleEnv{})
	if d.Posture != Aggressive || d.PostureRule != "high" {
		t.Errorf("posture = %s via %q, want aggressive via high", d.Posture, d.PostureRule)
	}
	if len(d.Fired) != 2 {
		t.Errorf("fired = %v, want [high other]", d.Fired)
	}
	if d.Scores[model.Cavalry] != 1 {
		t.Errorf("cavalry score = %v, want 1", d.Scores[model.Cavalry])
	}
}

func TestTransitionRulesFromConfig(t *testing.T) {
	rules, err := TransitionRules([]config.Transition{
		{Name: "always-econ", Priority: 10, When: "true", Posture: "economic"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 1 || rules[0].Category != postureCategory || !rules[0].Exclusive {
		t.Fatalf("unexpected rules: %+v", rules)
	}

	if _, err := TransitionRules([]config.Transition{{When: "true", Posture: "reckless"}}); err == nil {
		t.Error("unknown posture should be rejected")
	}
}
