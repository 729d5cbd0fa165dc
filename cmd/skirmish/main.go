package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/nstehr/hexfront/agent"
	"github.com/nstehr/hexfront/config"
	"github.com/nstehr/hexfront/model"
)

type runStats struct {
	runIndex int
	seed     int64

	turns    int
	winner   model.Faction
	decided  string // "capture", "annihilation" or "" when the turn limit ran out
	firstHit int

	attacks   map[model.Faction]int
	kills     map[model.Faction]int
	produced  map[model.Faction]int
	collected map[model.Faction]int
	survivors map[model.Faction]int
	postures  map[model.Faction][]string
	events    []agent.Event
}

func newRunStats(runIndex int, seed int64) runStats {
	return runStats{
		runIndex:  runIndex,
		seed:      seed,
		winner:    model.Neutral,
		firstHit:  -1,
		attacks:   map[model.Faction]int{},
		kills:     map[model.Faction]int{},
		produced:  map[model.Faction]int{},
		collected: map[model.Faction]int{},
		survivors: map[model.Faction]int{},
		postures:  map[model.Faction][]string{},
	}
}

func main() {
	var runs int
	var turns int
	var seedBase int64
	var seedStep int64
	var configPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 3, "number of AI-vs-AI matches")
	flag.IntVar(&turns, "turns", 40, "turn limit per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "map seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "YAML tuning file (defaults are embedded)")
	flag.BoolVar(&verbose, "v", false, "log every planner decision")
	flag.Parse()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if turns <= 0 {
		fmt.Println("error: -turns must be > 0")
		return
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Skirmish Report ===\n")
	fmt.Printf("runs=%d turns=%d seed_base=%d seed_step=%d\n\n", runs, turns, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runMatch(i+1, seed, turns, cfg)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// startingArmy is what each faction fields on turn one.
var startingArmy = []model.UnitType{model.Infantry, model.Infantry, model.Cavalry, model.Artillery}

// deploy places startingArmy on free land cells nearest to f's base.
func deploy(w *model.World, f model.Faction, profiles model.Profiles) error {
	base := w.Grid.Base(f)
	if base == nil {
		return fmt.Errorf("faction %d has no base", f)
	}
	cells := w.Grid.Within(base.Coord, 3)
	sort.SliceStable(cells, func(i, j int) bool {
		return model.Distance(base.Coord, cells[i].Coord) < model.Distance(base.Coord, cells[j].Coord)
	})
	n := 0
	for _, c := range cells {
		if n == len(startingArmy) {
			return nil
		}
		if c.IsBase || c.IsOccupied() || c.Terrain == model.Water {
			continue
		}
		id := fmt.Sprintf("f%d-%s-%d", f, startingArmy[n], n)
		if _, err := w.Spawn(id, f, profiles[startingArmy[n]], c.Coord); err != nil {
			return err
		}
		n++
	}
	if n < len(startingArmy) {
		return fmt.Errorf("faction %d: room for only %d units", f, n)
	}
	return nil
}

func runMatch(runIndex int, seed int64, turns int, cfg *config.Config) (runStats, error) {
	rs := newRunStats(runIndex, seed)
	planner, err := agent.NewPlanner(cfg)
	if err != nil {
		return rs, err
	}
	profiles := planner.Profiles()

	w := model.GenerateWorld(model.DefaultMapOptions(seed))
	factions := w.Factions()
	for _, f := range factions {
		if err := deploy(w, f, profiles); err != nil {
			return rs, err
		}
	}

	for turn := 1; turn <= turns; turn++ {
		w.Turn = turn
		rs.turns = turn
		for _, f := range factions {
			w.StartTurn(f, cfg.Economy.IncomePerTurn)
			r := planner.PlayTurn(w, f)
			tally(&rs, r)
			if winner, how := decide(w, factions); how != "" {
				rs.winner, rs.decided = winner, how
				countSurvivors(&rs, w, factions)
				return rs, nil
			}
		}
	}
	countSurvivors(&rs, w, factions)
	return rs, nil
}

func tally(rs *runStats, r agent.TurnReport) {
	for _, o := range r.Actions {
		switch o.Kind {
		case model.OutcomeAttacked:
			rs.attacks[r.Faction]++
			if rs.firstHit < 0 {
				rs.firstHit = r.Turn
			}
			if o.Killed {
				rs.kills[r.Faction]++
			}
		case model.OutcomeProduced:
			rs.produced[r.Faction]++
		case model.OutcomeCollected:
			rs.collected[r.Faction] += o.Amount
		}
	}
	seen := rs.postures[r.Faction]
	if p := r.Doctrine.Posture.String(); len(seen) == 0 || seen[len(seen)-1] != p {
		rs.postures[r.Faction] = append(seen, p)
	}
	rs.events = append(rs.events, r.Events...)
}

// decide reports a winner once only one faction still holds a base, or
// only one faction has units left.
func decide(w *model.World, factions []model.Faction) (model.Faction, string) {
	var holding []model.Faction
	for _, f := range factions {
		if w.Grid.Base(f) != nil {
			holding = append(holding, f)
		}
	}
	if len(holding) == 1 {
		return holding[0], "capture"
	}
	var standing []model.Faction
	for _, f := range factions {
		if len(w.Units.Faction(f)) > 0 {
			standing = append(standing, f)
		}
	}
	if len(standing) == 1 {
		return standing[0], "annihilation"
	}
	return model.Neutral, ""
}

func countSurvivors(rs *runStats, w *model.World, factions []model.Faction) {
	for _, f := range factions {
		rs.survivors[f] = len(w.Units.Faction(f))
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	if rs.decided == "" {
		fmt.Printf("result: draw after %d turns\n", rs.turns)
	} else {
		fmt.Printf("result: faction %d wins by %s on turn %d\n", rs.winner, rs.decided, rs.turns)
	}
	fmt.Printf("first_attack_turn=%d\n", rs.firstHit)
	for _, f := range sortedFactions(rs.survivors) {
		fmt.Printf("faction %d: attacks=%d kills=%d produced=%d collected=%d survivors=%d postures=%s\n",
			f, rs.attacks[f], rs.kills[f], rs.produced[f], rs.collected[f], rs.survivors[f], strings.Join(rs.postures[f], "→"))
	}
	if s := agent.FormatEvents(rs.events); s != "" {
		fmt.Print(s)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	wins := map[model.Faction]int{}
	draws := 0
	totalTurns := 0
	for _, rs := range all {
		totalTurns += rs.turns
		if rs.decided == "" {
			draws++
			continue
		}
		wins[rs.winner]++
	}
	fmt.Printf("=== Aggregate ===\n")
	fmt.Printf("matches=%d draws=%d avg_turns=%.1f\n", len(all), draws, float64(totalTurns)/float64(len(all)))
	for _, f := range sortedFactions(wins) {
		fmt.Printf("faction %d wins=%d\n", f, wins[f])
	}
}

func sortedFactions(m map[model.Faction]int) []model.Faction {
	out := make([]model.Faction, 0, len(m))
	for f := range m {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
