package model

import (
	"fmt"
	"strings"
)

// UnitType selects a Profile. Behavior differs per type through the tactics
// package's tree table, not through subtypes.
type UnitType byte

const (
	Infantry  UnitType = 0
	Cavalry   UnitType = 1
	Artillery UnitType = 2
)

// UnitTypes lists every type in production tie-break order.
var UnitTypes = []UnitType{Infantry, Cavalry, Artillery}

func (t UnitType) String() string {
	switch t {
	case Infantry:
		return "infantry"
	case Cavalry:
		return "cavalry"
	case Artillery:
		return "artillery"
	}
	return fmt.Sprintf("unit(%d)", byte(t))
}

func ParseUnitType(s string) (UnitType, error) {
	switch strings.ToLower(s) {
	case "infantry":
		return Infantry, nil
	case "cavalry":
		return Cavalry, nil
	case "artillery":
		return Artillery, nil
	}
	return Infantry, fmt.Errorf("unknown unit type %q", s)
}

func (t UnitType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *UnitType) UnmarshalText(b []byte) error {
	v, err := ParseUnitType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Order is the standing instruction the strategic layer gives a unit.
type Order byte

const (
	OrderIdle Order = iota
	OrderAttack
	OrderDefend
	OrderGather
	OrderRetreat
)

func (o Order) String() string {
	switch o {
	case OrderIdle:
		return "idle"
	case OrderAttack:
		return "attack"
	case OrderDefend:
		return "defend"
	case OrderGather:
		return "gather"
	case OrderRetreat:
		return "retreat"
	}
	return fmt.Sprintf("order(%d)", byte(o))
}

func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "idle", "":
		return OrderIdle, nil
	case "attack":
		return OrderAttack, nil
	case "defend":
		return OrderDefend, nil
	case "gather", "gatherresources":
		return OrderGather, nil
	case "retreat":
		return OrderRetreat, nil
	}
	return OrderIdle, fmt.Errorf("unknown order %q", s)
}

func (o Order) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Order) UnmarshalText(b []byte) error {
	v, err := ParseOrder(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// TerrainModifiers scale a cell's base movement cost for one unit type.
// Zero means "unmodified".
type TerrainModifiers struct {
	Plain    float64 `yaml:"plain" json:"plain"`
	Forest   float64 `yaml:"forest" json:"forest"`
	Mountain float64 `yaml:"mountain" json:"mountain"`
}

// For returns the multiplier for t.
func (m TerrainModifiers) For(t Terrain) float64 {
	var v float64
	switch t {
	case Plain:
		v = m.Plain
	case Forest:
		v = m.Forest
	case Mountain:
		v = m.Mountain
	}
	if v <= 0 {
		return 1
	}
	return v
}

// Profile holds the fixed stats of a unit type.
type Profile struct {
	Type                UnitType         `yaml:"type" json:"type"`
	Name                string           `yaml:"name" json:"name"`
	Cost                int              `yaml:"cost" json:"cost"`
	MaxHealth           int              `yaml:"max_health" json:"maxHealth"`
	AttackPower         int              `yaml:"attack_power" json:"attackPower"`
	AttackRange         int              `yaml:"attack_range" json:"attackRange"`
	MovementPoints      int              `yaml:"movement_points" json:"movementPoints"`
	InfluenceMultiplier float64          `yaml:"influence_multiplier" json:"influenceMultiplier"`
	Terrain             TerrainModifiers `yaml:"terrain" json:"terrain"`
}

// Profiles indexes profiles by type.
type Profiles map[UnitType]*Profile

// DefaultProfiles returns the stock infantry, cavalry and artillery stats.
func DefaultProfiles() Profiles {
	return Profiles{
		Infantry: {
			Type: Infantry, Name: "Infantry", Cost: 20, MaxHealth: 50,
			AttackPower: 10, AttackRange: 1, MovementPoints: 3,
			InfluenceMultiplier: 1.0,
			Terrain:             TerrainModifiers{Plain: 1.0, Forest: 0.8, Mountain: 1.2},
		},
		Cavalry: {
			Type: Cavalry, Name: "Cavalry", Cost: 30, MaxHealth: 30,
			AttackPower: 12, AttackRange: 2, MovementPoints: 5,
			InfluenceMultiplier: 1.2,
			Terrain:             TerrainModifiers{Plain: 0.7, Forest: 1.5, Mountain: 1.3},
		},
		Artillery: {
			Type: Artillery, Name: "Artillery", Cost: 40, MaxHealth: 20,
			AttackPower: 15, AttackRange: 4, MovementPoints: 2,
			InfluenceMultiplier: 1.5,
			Terrain:             TerrainModifiers{Plain: 1.0, Forest: 1.5, Mountain: 2.0},
		},
	}
}

// Unit is a single piece on the board. Cell is a weak reference kept in sync
// with Cell.Occupant by World.
type Unit struct {
	ID                string
	Faction           Faction
	Profile           *Profile
	Health            int
	RemainingMovement float64
	HasAttacked       bool
	HasMoved          bool
	Order             Order
	Cell              *Cell
}

// NewUnit returns a fresh, fully healed unit with its turn state reset.
// It is not placed on the grid.
func NewUnit(id string, f Faction, p *Profile) *Unit {
	u := &Unit{ID: id, Faction: f, Profile: p, Health: p.MaxHealth}
	u.ResetForNewTurn()
	return u
}

func (u *Unit) Type() UnitType { return u.Profile.Type }

func (u *Unit) AttackPower() int { return u.Profile.AttackPower }

func (u *Unit) AttackRange() int { return u.Profile.AttackRange }

func (u *Unit) IsAlive() bool { return u.Health > 0 }

// HealthFraction is current over max health, in [0, 1].
func (u *Unit) HealthFraction() float64 {
	if u.Profile.MaxHealth <= 0 {
		return 0
	}
	f := float64(u.Health) / float64(u.Profile.MaxHealth)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// StepCost is what this unit pays to enter c.
func (u *Unit) StepCost(c *Cell) float64 {
	return c.MovementCost() * u.Profile.Terrain.For(c.Terrain)
}

// ResetForNewTurn clears the per-turn flags and refills movement.
func (u *Unit) ResetForNewTurn() {
	u.HasAttacked = false
	u.HasMoved = false
	u.RemainingMovement = float64(u.Profile.MovementPoints)
}

// Coord returns the unit's position; ok is false when it is off the board.
func (u *Unit) Coord() (Coord, bool) {
	if u.Cell == nil {
		return Coord{}, false
	}
	return u.Cell.Coord, true
}

func (u *Unit) String() string {
	pos := "off-board"
	if u.Cell != nil {
		pos = u.Cell.Coord.String()
	}
	return fmt.Sprintf("%s[%s f%d %s hp=%d]", u.ID, u.Type(), u.Faction, pos, u.Health)
}
