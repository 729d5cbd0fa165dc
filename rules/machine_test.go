package rules

import (
	"testing"

	"github.com/nstehr/hexfront/config"
)

func TestMachineScenarios(t *testing.T) {
	tests := []struct {
		name string
		ctx  StrategicContext
		want Posture
	}{
		{"outnumbered", StrategicContext{NumericalAdvantage: 0.3, ResourceAdvantage: 1}, Defensive},
		{"overwhelming", StrategicContext{NumericalAdvantage: 2.0, TerritorialControl: 0.6, ResourceAdvantage: 1}, Aggressive},
		{"superior without control", StrategicContext{NumericalAdvantage: 1.5, TerritorialControl: 0.2, ResourceAdvantage: 1}, Aggressive},
		{"base threatened beats advantage", StrategicContext{NumericalAdvantage: 3, TerritorialControl: 0.9, BaseThreatened: true}, Defensive},
		{"resource starved", StrategicContext{NumericalAdvantage: 1.0, ResourceAdvantage: 0.2}, Economic},
		{"starved but outnumbered", StrategicContext{NumericalAdvantage: 0.4, ResourceAdvantage: 0.2}, Defensive},
		{"even", StrategicContext{NumericalAdvantage: 1.0, ResourceAdvantage: 1.0}, Balanced},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine()
			d, _ := m.Update(tc.ctx)
			if d.Posture != tc.want {
				t.Errorf("posture = %s (rule %s), want %s", d.Posture, m.LastRule(), tc.want)
			}
			want := DoctrineFor(tc.want)
			if d.Aggression != want.Aggression || d.EconomicFocus != want.EconomicFocus {
				t.Errorf("weights = %.1f/%.1f, want %.1f/%.1f",
					d.Aggression, d.EconomicFocus, want.Aggression, want.EconomicFocus)
			}
		})
	}
}

func TestMachineReportsChange(t *testing.T) {
	m := NewMachine()
	even := StrategicContext{NumericalAdvantage: 1, ResourceAdvantage: 1}
	if _, changed := m.Update(even); changed {
		t.Error("balanced -> balanced should not report a change")
	}
	if _, changed := m.Update(StrategicContext{NumericalAdvantage: 0.2}); !changed {
		t.Error("balanced -> defensive should report a change")
	}
	// No hysteresis: the next turn's context alone decides.
	d, changed := m.Update(even)
	if !changed || d.Posture != Balanced {
		t.Errorf("expected immediate return to balanced, got %s changed=%v", d.Posture, changed)
	}
}

func TestMachineCustomTransitions(t *testing.T) {
	m := NewMachine()
	err := m.SetTransitions([]config.Transition{
		{Name: "rush", Priority: 10, When: "Turn() < 5", Posture: "aggressive"},
		{Name: "hold", Priority: 0, When: "true", Posture: "defensive"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if d, _ := m.Update(StrategicContext{Turn: 2}); d.Posture != Aggressive {
		t.Errorf("turn 2: posture = %s, want aggressive", d.Posture)
	}
	if d, _ := m.Update(StrategicContext{Turn: 9}); d.Posture != Defensive {
		t.Errorf("turn 9: posture = %s, want defensive", d.Posture)
	}
}

func TestMachineBadTransitionsKeepTable(t *testing.T) {
	m := NewMachine()
	err := m.SetTransitions([]config.Transition{{Name: "bad", When: "Bogus(", Posture: "economic"}})
	if err == nil {
		t.Fatal("SetTransitions should reject an invalid condition")
	}
	if d, _ := m.Update(StrategicContext{NumericalAdvantage: 0.3}); d.Posture != Defensive {
		t.Errorf("built-in table should still apply, got %s", d.Posture)
	}
}
