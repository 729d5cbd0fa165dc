package agent

import (
	"fmt"
	"strings"

	"github.com/nstehr/hexfront/model"
	"github.com/nstehr/hexfront/rules"
)

// EventKind identifies a strategic change worth surfacing to the host.
type EventKind string

const (
	EventPostureChanged EventKind = "posture_changed"
	EventBaseThreatened EventKind = "base_threatened"
	EventBaseLost       EventKind = "base_lost"
	EventArmyDevastated EventKind = "army_devastated"
	EventHeavyLosses    EventKind = "heavy_losses"
	EventFirstContact   EventKind = "first_contact"
)

// Event is a significant change detected by diffing consecutive turns of
// one faction.
type Event struct {
	Kind   EventKind
	Turn   int
	Detail string // human-readable, shown in the host's log panel
}

// stateSnapshot captures the diffable fields of one faction's turn.
type stateSnapshot struct {
	posture        rules.Posture
	hasBase        bool
	baseThreatened bool
	unitIDs        map[string]bool
	combatCount    int
	contact        bool // an enemy is within contactRange of one of our units
}

// contactRange is how close an enemy must come before first_contact fires.
const contactRange = 5

// heavyLossThreshold is the minimum units lost in one turn for heavy_losses.
const heavyLossThreshold = 3

// takeSnapshot captures the current diffable state for next turn's comparison.
func takeSnapshot(w *model.World, f model.Faction, ctx rules.StrategicContext, d rules.Doctrine) stateSnapshot {
	snap := stateSnapshot{
		posture:        d.Posture,
		hasBase:        w.Grid.Base(f) != nil,
		baseThreatened: ctx.BaseThreatened,
		unitIDs:        make(map[string]bool, len(ctx.OwnUnits)),
		combatCount:    len(ctx.OwnUnits),
	}
	for _, u := range ctx.OwnUnits {
		snap.unitIDs[u.ID] = true
	}
	snap.contact = inContact(ctx.OwnUnits, w.Units.Enemies(f))
	return snap
}

func inContact(own, enemies []*model.Unit) bool {
	for _, u := range own {
		if u.Cell == nil {
			continue
		}
		for _, e := range enemies {
			if e.Cell != nil && model.Distance(u.Cell.Coord, e.Cell.Coord) <= contactRange {
				return true
			}
		}
	}
	return false
}

// detectEvents compares cur against the previous snapshot. Returns nil if
// prev is nil (first turn).
func detectEvents(turn int, cur stateSnapshot, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}

	var events []Event

	if prev.posture != cur.posture {
		events = append(events, Event{
			Kind:   EventPostureChanged,
			Turn:   turn,
			Detail: fmt.Sprintf("Posture changed: %s → %s", prev.posture, cur.posture),
		})
	}

	if !prev.baseThreatened && cur.baseThreatened {
		events = append(events, Event{
			Kind:   EventBaseThreatened,
			Turn:   turn,
			Detail: "Enemy units within striking distance of our base",
		})
	}

	if prev.hasBase && !cur.hasBase {
		events = append(events, Event{
			Kind:   EventBaseLost,
			Turn:   turn,
			Detail: "Our base has been captured",
		})
	}

	// army_devastated: >50% of the army lost (floor of 4 to avoid early noise)
	devastated := false
	if prev.combatCount >= 4 && cur.combatCount < prev.combatCount {
		lost := prev.combatCount - cur.combatCount
		if float64(lost)/float64(prev.combatCount) > 0.5 {
			devastated = true
			events = append(events, Event{
				Kind:   EventArmyDevastated,
				Turn:   turn,
				Detail: fmt.Sprintf("Army devastated: %d→%d units (lost %d%%)", prev.combatCount, cur.combatCount, 100*lost/prev.combatCount),
			})
		}
	}

	// heavy_losses counts by ID so units replaced by production still show.
	if lost := countMissing(prev.unitIDs, cur.unitIDs); !devastated && lost >= heavyLossThreshold {
		events = append(events, Event{
			Kind:   EventHeavyLosses,
			Turn:   turn,
			Detail: fmt.Sprintf("Lost %d units since last turn", lost),
		})
	}

	if !prev.contact && cur.contact {
		events = append(events, Event{
			Kind:   EventFirstContact,
			Turn:   turn,
			Detail: "Enemy forces sighted near our units",
		})
	}

	return events
}

// countMissing returns how many IDs in prev are absent from cur.
func countMissing(prev, cur map[string]bool) int {
	n := 0
	for id := range prev {
		if !cur[id] {
			n++
		}
	}
	return n
}

// eventTracker carries one faction's snapshot from turn to turn.
type eventTracker struct {
	prev *stateSnapshot
}

func (t *eventTracker) observe(turn int, cur stateSnapshot) []Event {
	events := detectEvents(turn, cur, t.prev)
	t.prev = &cur
	return events
}

// FormatEvents renders events as a "Recent Events" block for logs and the
// skirmish report.
func FormatEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Recent Events:\n")
	for _, e := range events {
		fmt.Fprintf(&b, "- [turn %d] %s: %s\n", e.Turn, e.Kind, e.Detail)
	}
	return b.String()
}
