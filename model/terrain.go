package model

import (
	"fmt"
	"strings"
)

// Terrain classifies a hex cell. Water is impassable to every unit type.
type Terrain byte

const (
	Plain    Terrain = 0
	Forest   Terrain = 1
	Mountain Terrain = 2
	Water    Terrain = 3
)

// impassableCost is large enough that no movement budget or influence range
// ever reaches across water.
const impassableCost = 999

// MovementCost is the base cost of entering a cell of this terrain, before
// any per-unit modifier.
func (t Terrain) MovementCost() float64 {
	switch t {
	case Plain:
		return 1
	case Forest:
		return 2
	case Mountain:
		return 3
	case Water:
		return impassableCost
	}
	return 1
}

// IsCover reports whether the terrain gives cover to a unit standing on it.
func (t Terrain) IsCover() bool {
	return t == Forest || t == Mountain
}

func (t Terrain) String() string {
	switch t {
	case Plain:
		return "plain"
	case Forest:
		return "forest"
	case Mountain:
		return "mountain"
	case Water:
		return "water"
	}
	return fmt.Sprintf("terrain(%d)", byte(t))
}

// ParseTerrain maps a host terrain name to a Terrain. Matching is
// case-insensitive.
func ParseTerrain(s string) (Terrain, error) {
	switch strings.ToLower(s) {
	case "plain", "plains", "":
		return Plain, nil
	case "forest":
		return Forest, nil
	case "mountain":
		return Mountain, nil
	case "water":
		return Water, nil
	}
	return Plain, fmt.Errorf("unknown terrain %q", s)
}

func (t Terrain) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Terrain) UnmarshalText(b []byte) error {
	v, err := ParseTerrain(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
