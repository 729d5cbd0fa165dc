// Package config loads the AI's tuning knobs from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nstehr/hexfront/model"
)

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Units     []model.Profile `yaml:"units"`
	Influence Influence       `yaml:"influence"`
	Tactical  Tactical        `yaml:"tactical"`
	Strategy  Strategy        `yaml:"strategy"`
	Economy   Economy         `yaml:"economy"`
}

type Influence struct {
	MaxRange        int     `yaml:"max_range"`
	DangerThreshold float64 `yaml:"danger_threshold"`
}

type Tactical struct {
	DangerWeight          float64 `yaml:"danger_weight"`
	CoverWeight           float64 `yaml:"cover_weight"`
	DistanceWeight        float64 `yaml:"distance_weight"`
	ArtillerySafeDistance int     `yaml:"artillery_safe_distance"`
	ChargeRange           int     `yaml:"charge_range"`
	InterceptRange        int     `yaml:"intercept_range"`
	CoverSearchRadius     int     `yaml:"cover_search_radius"`
	InfantryRetreatHealth float64 `yaml:"infantry_retreat_health"`
	CavalryRetreatHealth  float64 `yaml:"cavalry_retreat_health"`
	RetreatSearchRadius   int     `yaml:"retreat_search_radius"`
	EngageRange           int     `yaml:"engage_range"`
	LowHealth             float64 `yaml:"low_health"`
}

type Strategy struct {
	ThreatRadius  int          `yaml:"threat_radius"`
	DefenseRadius int          `yaml:"defense_radius"`
	RallyPoints   int          `yaml:"rally_points"`
	Transitions   []Transition `yaml:"transitions"`
}

// Transition is one row of a user-supplied posture table.
type Transition struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
	When     string `yaml:"when"`
	Posture  string `yaml:"posture"`
}

type Economy struct {
	IncomePerTurn int `yaml:"income_per_turn"`
	ResourceYield int `yaml:"resource_yield"`
}

// Default returns the embedded configuration.
func Default() *Config {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return &c
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: reading %q: %w", path, err)
	}
	if err := Parse(data, c); err != nil {
		return nil, fmt.Errorf("config.Load: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes data over c and validates the result.
func Parse(data []byte, c *Config) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	return c.Validate()
}

var ErrDuplicateUnit = errors.New("duplicate unit type")

// Validate fills unit profiles from the defaults, clamps weights to their
// valid ranges and rejects structural mistakes.
func (c *Config) Validate() error {
	defaults := model.DefaultProfiles()
	seen := make(map[model.UnitType]bool)
	for i := range c.Units {
		p := &c.Units[i]
		if seen[p.Type] {
			return fmt.Errorf("%w: %s", ErrDuplicateUnit, p.Type)
		}
		seen[p.Type] = true
		fillProfile(p, defaults[p.Type])
	}
	for _, t := range model.UnitTypes {
		if !seen[t] {
			c.Units = append(c.Units, *defaults[t])
		}
	}

	c.Influence.MaxRange = clampInt(c.Influence.MaxRange, 1, 20)
	if c.Influence.DangerThreshold > 0 {
		c.Influence.DangerThreshold = -c.Influence.DangerThreshold
	}

	t := &c.Tactical
	t.DangerWeight = clamp(t.DangerWeight, 0, 10)
	t.CoverWeight = clamp(t.CoverWeight, 0, 10)
	t.DistanceWeight = clamp(t.DistanceWeight, 0, 10)
	t.ArtillerySafeDistance = clampInt(t.ArtillerySafeDistance, 1, 10)
	t.ChargeRange = clampInt(t.ChargeRange, 1, 10)
	t.InterceptRange = clampInt(t.InterceptRange, 1, 10)
	t.CoverSearchRadius = clampInt(t.CoverSearchRadius, 1, 6)
	t.RetreatSearchRadius = clampInt(t.RetreatSearchRadius, 1, 10)
	t.InfantryRetreatHealth = clamp(t.InfantryRetreatHealth, 0, 1)
	t.CavalryRetreatHealth = clamp(t.CavalryRetreatHealth, 0, 1)
	t.EngageRange = clampInt(t.EngageRange, 1, 20)
	t.LowHealth = clamp(t.LowHealth, 0, 1)

	s := &c.Strategy
	s.ThreatRadius = clampInt(s.ThreatRadius, 1, 20)
	s.DefenseRadius = clampInt(s.DefenseRadius, 0, 10)
	s.RallyPoints = clampInt(s.RallyPoints, 0, 5)
	for i, tr := range s.Transitions {
		if tr.When == "" || tr.Posture == "" {
			return fmt.Errorf("transition %d (%q): when and posture are required", i, tr.Name)
		}
	}

	if c.Economy.IncomePerTurn < 0 {
		c.Economy.IncomePerTurn = 0
	}
	if c.Economy.ResourceYield < 0 {
		c.Economy.ResourceYield = 0
	}
	return nil
}

// Profiles indexes the unit profiles by type.
func (c *Config) Profiles() model.Profiles {
	out := make(model.Profiles, len(c.Units))
	for i := range c.Units {
		p := c.Units[i]
		out[p.Type] = &p
	}
	return out
}

func fillProfile(p, def *model.Profile) {
	if def == nil {
		return
	}
	if p.Name == "" {
		p.Name = def.Name
	}
	if p.Cost <= 0 {
		p.Cost = def.Cost
	}
	if p.MaxHealth <= 0 {
		p.MaxHealth = def.MaxHealth
	}
	if p.AttackPower <= 0 {
		p.AttackPower = def.AttackPower
	}
	if p.AttackRange <= 0 {
		p.AttackRange = def.AttackRange
	}
	if p.MovementPoints <= 0 {
		p.MovementPoints = def.MovementPoints
	}
	if p.InfluenceMultiplier <= 0 {
		p.InfluenceMultiplier = def.InfluenceMultiplier
	}
	if p.Terrain == (model.TerrainModifiers{}) {
		p.Terrain = def.Terrain
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
