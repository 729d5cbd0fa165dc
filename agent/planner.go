package agent

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nstehr/hexfront/config"
	"github.com/nstehr/hexfront/influence"
	"github.com/nstehr/hexfront/model"
	"github.com/nstehr/hexfront/pathfind"
	"github.com/nstehr/hexfront/rules"
	"github.com/nstehr/hexfront/tactics"
	"github.com/nstehr/hexfront/waypoint"
)

// TurnReport is everything the planner did for one faction in one turn.
type TurnReport struct {
	ID             string
	Turn           int
	Faction        model.Faction
	Doctrine       rules.Doctrine
	PostureChanged bool
	Context        rules.StrategicContext
	Actions        []model.Outcome
	Produced       *model.Unit
	Events         []Event
	// Traces maps unit ID to the tree actions that ran for it.
	Traces map[string][]string
}

// factionState is what survives between turns for one faction.
type factionState struct {
	machine  *rules.Machine
	producer *rules.Producer
	tracker  eventTracker
}

// Planner runs the whole decision pipeline for every faction it is asked
// to play. It keeps per-faction posture, production rules and event
// history; everything else is rebuilt from the world each turn.
type Planner struct {
	cfg      *config.Config
	settings tactics.Settings
	weights  pathfind.Weights
	factions map[model.Faction]*factionState
}

// NewPlanner validates the posture table in cfg up front so a bad table is
// reported at startup rather than on the first turn. A nil cfg uses the
// embedded defaults.
func NewPlanner(cfg *config.Config) (*Planner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if len(cfg.Strategy.Transitions) > 0 {
		if _, err := rules.TransitionRules(cfg.Strategy.Transitions); err != nil {
			return nil, fmt.Errorf("posture transitions: %w", err)
		}
	}
	return &Planner{
		cfg:      cfg,
		settings: tactics.SettingsFrom(cfg),
		weights: pathfind.Weights{
			Danger:   cfg.Tactical.DangerWeight,
			Cover:    cfg.Tactical.CoverWeight,
			Distance: cfg.Tactical.DistanceWeight,
		},
		factions: make(map[model.Faction]*factionState),
	}, nil
}

// Profiles are the unit profiles the planner was configured with.
func (p *Planner) Profiles() model.Profiles { return p.cfg.Profiles() }

// Reset forgets every faction's posture and event history.
func (p *Planner) Reset() {
	p.factions = make(map[model.Faction]*factionState)
}

func (p *Planner) state(f model.Faction) (*factionState, error) {
	if st, ok := p.factions[f]; ok {
		return st, nil
	}
	m := rules.NewMachine()
	if err := m.SetTransitions(p.cfg.Strategy.Transitions); err != nil {
		return nil, err
	}
	prod, err := rules.NewProducer(m.Doctrine())
	if err != nil {
		return nil, err
	}
	st := &factionState{machine: m, producer: prod}
	p.factions[f] = st
	return st, nil
}

// Doctrine is the posture currently in force for f.
func (p *Planner) Doctrine(f model.Faction) rules.Doctrine {
	if st, ok := p.factions[f]; ok {
		return st.machine.Doctrine()
	}
	return rules.DefaultDoctrine()
}

// PlayTurn plans and executes one complete turn for f against w. The world
// is mutated in place: units move, attack, collect and capture, and at most
// one new unit is produced.
func (p *Planner) PlayTurn(w *model.World, f model.Faction) TurnReport {
	report := TurnReport{ID: uuid.NewString(), Faction: f, Traces: make(map[string][]string)}
	if w == nil || w.Grid == nil {
		slog.Warn("turn skipped: no world", "faction", f)
		report.Doctrine = p.Doctrine(f)
		return report
	}
	report.Turn = w.Turn

	st, err := p.state(f)
	if err != nil {
		slog.Error("faction setup failed", "faction", f, "error", err)
		report.Doctrine = p.Doctrine(f)
		return report
	}

	field := influence.NewField(w.Grid)
	field.MaxRange = float64(p.cfg.Influence.MaxRange)
	field.DangerThreshold = p.cfg.Influence.DangerThreshold
	field.Recompute(w.Units.All(), f)

	ctx := rules.Analyze(w, field, f, p.cfg.Strategy.ThreatRadius)
	doctrine, changed := st.machine.Update(ctx)
	report.Doctrine = doctrine
	report.PostureChanged = changed
	report.Context = ctx

	wps := waypoint.Generate(w.Grid, field, f, waypoint.Options{
		DefenseRadius: p.cfg.Strategy.DefenseRadius,
		RallyPoints:   p.cfg.Strategy.RallyPoints,
	})
	rules.AssignOrders(ctx.OwnUnits, doctrine)

	journal := &model.Journal{}
	env := tactics.NewEnv(w, field, wps, journal, p.settings, p.weights)
	for _, u := range ctx.OwnUnits {
		ai := tactics.New(env, u)
		ai.Run()
		report.Traces[u.ID] = ai.Trace()
	}

	// The trees changed the board; production and event detection read the
	// post-move state.
	field.Recompute(w.Units.All(), f)
	report.Produced = p.produce(w, f, st.producer, field, doctrine, journal)
	report.Actions = journal.Entries()

	after := rules.Analyze(w, field, f, p.cfg.Strategy.ThreatRadius)
	report.Events = st.tracker.observe(w.Turn, takeSnapshot(w, f, after, doctrine))

	slog.Info("turn planned",
		"faction", f,
		"turn", w.Turn,
		"posture", doctrine.Posture,
		"rule", st.machine.LastRule(),
		"units", len(ctx.OwnUnits),
		"actions", len(report.Actions),
		"attacks", journal.Count(model.OutcomeAttacked),
		"events", len(report.Events),
	)
	return report
}

// produce builds one unit on f's base when the base cell is free and the
// chosen type is affordable.
func (p *Planner) produce(w *model.World, f model.Faction, prod *rules.Producer, field *influence.Field, d rules.Doctrine, j *model.Journal) *model.Unit {
	base := w.Grid.Base(f)
	if base == nil {
		slog.Debug("no production: no base", "faction", f)
		return nil
	}
	if base.IsOccupied() {
		slog.Debug("no production: base occupied", "faction", f)
		return nil
	}

	ctx := rules.Analyze(w, field, f, p.cfg.Strategy.ThreatRadius)
	t, _ := prod.Decide(ctx, d)
	profile, ok := p.cfg.Profiles()[t]
	if !ok {
		slog.Error("no profile for unit type", "type", t)
		return nil
	}
	if !w.Spend(f, profile.Cost) {
		slog.Debug("no production: cannot afford", "faction", f, "type", t, "cost", profile.Cost, "resources", w.Resources[f])
		return nil
	}

	u, err := w.Spawn(uuid.NewString(), f, profile, base.Coord)
	if err != nil {
		w.Resources[f] += profile.Cost
		slog.Error("production failed", "faction", f, "type", t, "error", err)
		return nil
	}
	j.Produced(u, base.Coord)
	slog.Info("unit produced", "faction", f, "type", t, "id", u.ID, "cost", profile.Cost)
	return u
}
