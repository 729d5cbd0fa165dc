// Package tactics drives individual units with per-type behavior trees.
package tactics

import (
	"log/slog"

	"github.com/nstehr/hexfront/bt"
	"github.com/nstehr/hexfront/config"
	"github.com/nstehr/hexfront/influence"
	"github.com/nstehr/hexfront/model"
	"github.com/nstehr/hexfront/pathfind"
	"github.com/nstehr/hexfront/waypoint"
)

// Settings are the per-unit thresholds the trees read.
type Settings struct {
	ArtillerySafeDistance int
	ChargeRange           int
	InterceptRange        int
	EngageRange           int
	CoverSearchRadius     int
	RetreatSearchRadius   int
	InfantryRetreatHealth float64
	CavalryRetreatHealth  float64
	LowHealth             float64
	ResourceYield         int
}

func DefaultSettings() Settings {
	return Settings{
		ArtillerySafeDistance: 3,
		ChargeRange:           4,
		InterceptRange:        4,
		EngageRange:           5,
		CoverSearchRadius:     2,
		RetreatSearchRadius:   3,
		InfantryRetreatHealth: 0.25,
		CavalryRetreatHealth:  0.4,
		LowHealth:             0.3,
		ResourceYield:         25,
	}
}

// SettingsFrom maps the tactical and economy config sections onto Settings.
func SettingsFrom(c *config.Config) Settings {
	s := DefaultSettings()
	if c == nil {
		return s
	}
	s.ArtillerySafeDistance = c.Tactical.ArtillerySafeDistance
	s.ChargeRange = c.Tactical.ChargeRange
	s.InterceptRange = c.Tactical.InterceptRange
	s.CoverSearchRadius = c.Tactical.CoverSearchRadius
	s.RetreatSearchRadius = c.Tactical.RetreatSearchRadius
	s.InfantryRetreatHealth = c.Tactical.InfantryRetreatHealth
	s.CavalryRetreatHealth = c.Tactical.CavalryRetreatHealth
	s.EngageRange = c.Tactical.EngageRange
	s.LowHealth = c.Tactical.LowHealth
	s.ResourceYield = c.Economy.ResourceYield
	return s
}

// Env holds the collaborators shared by every unit of one faction for one
// turn. Field and Waypoints may be nil; the trees then fall back to plain
// movement and skip waypoint-driven behavior.
type Env struct {
	World     *model.World
	Field     *influence.Field
	Waypoints *waypoint.Set
	Fields    *pathfind.CostFields
	Tactical  *pathfind.Tactical
	Journal   *model.Journal
	Settings  Settings
}

// NewEnv wires the cost-field cache and tactical pathfinder for w.
func NewEnv(w *model.World, field *influence.Field, wps *waypoint.Set, j *model.Journal, s Settings, weights pathfind.Weights) *Env {
	env := &Env{
		World:     w,
		Field:     field,
		Waypoints: wps,
		Fields:    pathfind.NewCostFields(w),
		Journal:   j,
		Settings:  s,
	}
	var reader pathfind.InfluenceReader
	if field != nil {
		reader = field
	}
	env.Tactical = pathfind.NewTactical(reader, weights)
	return env
}

// UnitAI binds one unit to its tree.
type UnitAI struct {
	env   *Env
	unit  *model.Unit
	root  bt.Node
	trace []string
}

// treeBuilders selects the behavior tree for each unit type.
var treeBuilders = map[model.UnitType]func(ai *UnitAI) bt.Node{
	model.Infantry:  infantryTree,
	model.Cavalry:   cavalryTree,
	model.Artillery: artilleryTree,
}

// New builds the tree for u's type. Unknown types get the infantry tree.
func New(env *Env, u *model.Unit) *UnitAI {
	ai := &UnitAI{env: env, unit: u}
	build, ok := treeBuilders[u.Type()]
	if !ok {
		build = infantryTree
	}
	ai.root = build(ai)
	return ai
}

// Run ticks the tree once from the root.
func (ai *UnitAI) Run() bt.Status {
	if ai.unit.Cell == nil || !ai.unit.IsAlive() {
		return bt.Failure
	}
	st := ai.root.Tick()
	slog.Debug("unit turn",
		"unit", ai.unit.ID,
		"type", ai.unit.Type(),
		"order", ai.unit.Order,
		"status", st,
		"trace", ai.trace,
	)
	return st
}

// Trace lists the actions that ran, in order.
func (ai *UnitAI) Trace() []string { return ai.trace }

func (ai *UnitAI) Unit() *model.Unit { return ai.unit }

// step wraps fn as an action node that records name when it runs.
func (ai *UnitAI) step(name string, fn func() bt.Status) bt.Node {
	return bt.Action(func() bt.Status {
		ai.trace = append(ai.trace, name)
		return fn()
	})
}

// when pairs a guard with an action.
func (ai *UnitAI) when(cond func() bool, name string, fn func() bt.Status) bt.Node {
	return bt.Sequence(bt.Condition(cond), ai.step(name, fn))
}

func (ai *UnitAI) ordered(o model.Order) func() bool {
	return func() bool { return ai.unit.Order == o }
}
