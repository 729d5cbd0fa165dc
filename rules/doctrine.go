package rules

import (
	"fmt"
	"strings"
)

// Posture is the strategic state machine's current aggregate policy.
type Posture int

const (
	Balanced Posture = iota
	Aggressive
	Defensive
	Economic
)

func (p Posture) String() string {
	switch p {
	case Balanced:
		return "balanced"
	case Aggressive:
		return "aggressive"
	case Defensive:
		return "defensive"
	case Economic:
		return "economic"
	}
	return fmt.Sprintf("posture(%d)", int(p))
}

func ParsePosture(s string) (Posture, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "balanced":
		return Balanced, nil
	case "aggressive":
		return Aggressive, nil
	case "defensive":
		return Defensive, nil
	case "economic":
		return Economic, nil
	}
	return Balanced, fmt.Errorf("unknown posture %q", s)
}

func (p Posture) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Doctrine is a posture plus the two weights derived from it. Weights are
// 0.0–1.0; order apportionment and production read them.
type Doctrine struct {
	Posture       Posture `json:"posture"`
	Aggression    float64 `json:"aggression"`
	EconomicFocus float64 `json:"economicFocus"`
	Rationale     string  `json:"rationale,omitempty"`
}

var postureWeights = map[Posture][2]float64{
	Aggressive: {0.8, 0.1},
	Defensive:  {0.2, 0.3},
	Economic:   {0.3, 0.6},
	Balanced:   {0.5, 0.3},
}

// DoctrineFor returns the fixed weights of p.
func DoctrineFor(p Posture) Doctrine {
	w, ok := postureWeights[p]
	if !ok {
		p, w = Balanced, postureWeights[Balanced]
	}
	return Doctrine{Posture: p, Aggression: w[0], EconomicFocus: w[1]}
}

// DefaultDoctrine is the posture the machine starts in.
func DefaultDoctrine() Doctrine { return DoctrineFor(Balanced) }

// Validate clamps both weights to [0, 1].
func (d *Doctrine) Validate() {
	d.Aggression = clamp(d.Aggression, 0, 1)
	d.EconomicFocus = clamp(d.EconomicFocus, 0, 1)
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
