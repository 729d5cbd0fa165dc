package rules

import "github.com/expr-lang/expr/vm"

// ActionFunc records a rule's effect on the turn's decision when its
// condition holds.
type ActionFunc func(env RuleEnv, d *Decision) error

// Rule is the atomic unit of strategic behavior: a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive so
// only one posture transition fires per turn while production rules stack.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source (preserved for logging and overrides)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
