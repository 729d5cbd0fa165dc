package agent

import (
	"strings"
	"testing"

	"github.com/nstehr/hexfront/model"
	"github.com/nstehr/hexfront/rules"
)

// baseSnapshot returns a quiet mid-game snapshot with six units.
func baseSnapshot() stateSnapshot {
	return stateSnapshot{
		posture:     rules.Balanced,
		hasBase:     true,
		unitIDs:     map[string]bool{"u1": true, "u2": true, "u3": true, "u4": true, "u5": true, "u6": true},
		combatCount: 6,
	}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func hasKind(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func TestDetectEvents_NoEvents(t *testing.T) {
	prev := baseSnapshot()
	events := detectEvents(5, baseSnapshot(), &prev)
	if len(events) != 0 {
		t.Errorf("expected 0 events, got %d: %+v", len(events), events)
	}
}

func TestDetectEvents_NilPrev(t *testing.T) {
	events := detectEvents(1, baseSnapshot(), nil)
	if events != nil {
		t.Errorf("expected nil events for nil prev, got %+v", events)
	}
}

func TestDetectEvents_PostureChanged(t *testing.T) {
	prev := baseSnapshot()
	cur := baseSnapshot()
	cur.posture = rules.Defensive

	events := detectEvents(7, cur, &prev)
	if len(events) != 1 || events[0].Kind != EventPostureChanged {
		t.Fatalf("expected posture_changed, got %v", kinds(events))
	}
	if events[0].Turn != 7 {
		t.Errorf("turn = %d, want 7", events[0].Turn)
	}
	if !strings.Contains(events[0].Detail, "defensive") {
		t.Errorf("detail %q should name the new posture", events[0].Detail)
	}
}

func TestDetectEvents_BaseThreatenedOnlyOnRisingEdge(t *testing.T) {
	prev := baseSnapshot()
	cur := baseSnapshot()
	cur.baseThreatened = true
	if events := detectEvents(3, cur, &prev); !hasKind(events, EventBaseThreatened) {
		t.Fatalf("expected base_threatened, got %v", kinds(events))
	}

	prev.baseThreatened = true
	if events := detectEvents(4, cur, &prev); hasKind(events, EventBaseThreatened) {
		t.Errorf("base_threatened should not repeat while the threat persists")
	}
}

func TestDetectEvents_BaseLost(t *testing.T) {
	prev := baseSnapshot()
	cur := baseSnapshot()
	cur.hasBase = false
	if events := detectEvents(9, cur, &prev); !hasKind(events, EventBaseLost) {
		t.Errorf("expected base_lost, got %v", kinds(events))
	}
}

func TestDetectEvents_ArmyDevastated(t *testing.T) {
	tests := []struct {
		name      string
		prevCount int
		curCount  int
		want      bool
	}{
		{"lost more than half", 6, 2, true},
		{"lost exactly half", 6, 3, false},
		{"small army ignored", 3, 0, false},
		{"army grew", 4, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := stateSnapshot{combatCount: tt.prevCount, unitIDs: map[string]bool{}}
			cur := stateSnapshot{combatCount: tt.curCount, unitIDs: map[string]bool{}}
			got := hasKind(detectEvents(2, cur, &prev), EventArmyDevastated)
			if got != tt.want {
				t.Errorf("army_devastated = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectEvents_HeavyLossesCountsReplacedUnits(t *testing.T) {
	prev := baseSnapshot()
	cur := baseSnapshot()
	// Three units died and three were produced: the count is flat but the
	// losses still show up by ID.
	for _, id := range []string{"u1", "u2", "u3"} {
		delete(cur.unitIDs, id)
	}
	for _, id := range []string{"n1", "n2", "n3"} {
		cur.unitIDs[id] = true
	}

	events := detectEvents(6, cur, &prev)
	if !hasKind(events, EventHeavyLosses) {
		t.Fatalf("expected heavy_losses, got %v", kinds(events))
	}
	if hasKind(events, EventArmyDevastated) {
		t.Errorf("army size did not drop; army_devastated should not fire")
	}
}

func TestDetectEvents_FirstContact(t *testing.T) {
	prev := baseSnapshot()
	cur := baseSnapshot()
	cur.contact = true
	if events := detectEvents(4, cur, &prev); !hasKind(events, EventFirstContact) {
		t.Fatalf("expected first_contact, got %v", kinds(events))
	}
	prev.contact = true
	if events := detectEvents(5, cur, &prev); hasKind(events, EventFirstContact) {
		t.Errorf("first_contact should fire once")
	}
}

func TestInContact(t *testing.T) {
	w := model.NewWorld(model.NewGrid(12, 3, nil))
	p := model.DefaultProfiles()[model.Infantry]
	own, _ := w.Spawn("a", 0, p, model.Coord{Col: 0, Row: 1})
	far, _ := w.Spawn("e", 1, p, model.Coord{Col: 10, Row: 1})

	if inContact([]*model.Unit{own}, []*model.Unit{far}) {
		t.Errorf("enemy 10 hexes away should not be in contact")
	}
	if err := w.MoveUnit(far, w.Grid.At(model.Coord{Col: 4, Row: 1}), 0); err != nil {
		t.Fatal(err)
	}
	if !inContact([]*model.Unit{own}, []*model.Unit{far}) {
		t.Errorf("enemy 4 hexes away should be in contact")
	}
}

func TestEventTrackerCarriesSnapshot(t *testing.T) {
	var tr eventTracker
	if events := tr.observe(1, baseSnapshot()); events != nil {
		t.Fatalf("first observation should report nothing, got %v", kinds(events))
	}
	next := baseSnapshot()
	next.posture = rules.Aggressive
	if events := tr.observe(2, next); !hasKind(events, EventPostureChanged) {
		t.Fatalf("expected posture_changed on second turn, got %v", kinds(events))
	}
	if events := tr.observe(3, next); len(events) != 0 {
		t.Errorf("unchanged turn should report nothing, got %v", kinds(events))
	}
}

func TestFormatEvents(t *testing.T) {
	if got := FormatEvents(nil); got != "" {
		t.Errorf("FormatEvents(nil) = %q, want empty", got)
	}
	got := FormatEvents([]Event{{Kind: EventBaseLost, Turn: 12, Detail: "Our base has been captured"}})
	want := "Recent Events:\n- [turn 12] base_lost: Our base has been captured\n"
	if got != want {
		t.Errorf("FormatEvents = %q, want %q", got, want)
	}
}
