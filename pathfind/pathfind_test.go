package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/hexfront/model"
)

type stubInfluence map[model.Coord]float64

func (s stubInfluence) Net(c model.Coord) float64 { return s[c] }

func mixedTerrain(c model.Coord) model.Terrain {
	if c == (model.Coord{Col: 3, Row: 3}) {
		return model.Water
	}
	switch (c.Col + c.Row) % 4 {
	case 1:
		return model.Forest
	case 2:
		return model.Mountain
	}
	return model.Plain
}

func spawn(t *testing.T, w *model.World, id string, f model.Faction, typ model.UnitType, c model.Coord) *model.Unit {
	t.Helper()
	u, err := w.Spawn(id, f, model.DefaultProfiles()[typ], c)
	require.NoError(t, err)
	return u
}

func at(w *model.World, col, row int) *model.Cell {
	return w.Grid.At(model.Coord{Col: col, Row: row})
}

func TestCostFieldParentConsistency(t *testing.T) {
	w := model.NewWorld(model.NewGrid(8, 8, mixedTerrain))
	w.Grid.SetBase(model.Coord{Col: 0, Row: 4}, 0)
	u := spawn(t, w, "cav", 0, model.Cavalry, model.Coord{Col: 1, Row: 1})
	spawn(t, w, "enemy", 1, model.Infantry, model.Coord{Col: 4, Row: 2})

	cf := BuildCostField(u)
	require.NotEmpty(t, cf.Nodes())

	for _, n := range cf.Nodes() {
		path := cf.Path(n.Cell)
		require.NotEmpty(t, path)
		assert.Equal(t, u.Cell, path[0], "path to %s starts at origin", n.Cell.Coord)
		assert.Equal(t, n.Cell, path[len(path)-1])
		if n.Cell == cf.Origin {
			assert.Nil(t, n.Parent)
			continue
		}
		parentCost, ok := cf.Cost(n.Parent)
		require.True(t, ok)
		assert.Equal(t, parentCost+u.StepCost(n.Cell), n.Cost, "cell %s", n.Cell.Coord)
	}

	assert.False(t, cf.Reached(at(w, 3, 3)), "water is never entered")
	assert.False(t, cf.Reached(at(w, 0, 4)), "own base is never entered")
}

func TestCostFieldOccupiedCellsAreTerminal(t *testing.T) {
	w := model.NewWorld(model.NewGrid(6, 1, nil))
	u := spawn(t, w, "inf", 0, model.Infantry, model.Coord{Col: 0, Row: 0})
	spawn(t, w, "enemy", 1, model.Infantry, model.Coord{Col: 2, Row: 0})

	cf := BuildCostField(u)

	assert.True(t, cf.Reached(at(w, 2, 0)))
	assert.False(t, cf.Reached(at(w, 3, 0)))
	assert.Contains(t, cf.WithinAttackRange(), at(w, 1, 0))
	assert.NotContains(t, cf.WithinAttackRange(), at(w, 2, 0))
	assert.Equal(t, []*model.Cell{at(w, 1, 0)}, cf.WithinMovement())
	assert.Nil(t, cf.Path(at(w, 4, 0)))
}

func TestCostFieldRanges(t *testing.T) {
	w := model.NewWorld(model.NewGrid(8, 1, nil))
	art := spawn(t, w, "art", 0, model.Artillery, model.Coord{Col: 0, Row: 0})
	spawn(t, w, "enemy", 1, model.Infantry, model.Coord{Col: 4, Row: 0})

	cf := BuildCostField(art)

	attack := cf.WithinAttackRange()
	assert.Len(t, attack, 4)
	assert.Contains(t, attack, at(w, 4, 0), "occupied cells count for attack range")
	assert.Equal(t, []*model.Cell{at(w, 1, 0), at(w, 2, 0)}, cf.WithinMovement())

	art.RemainingMovement = 1
	assert.Equal(t, []*model.Cell{at(w, 1, 0)}, BuildCostField(art).WithinMovement())
}

func TestCostFieldsCache(t *testing.T) {
	w := model.NewWorld(model.NewGrid(5, 5, nil))
	u := spawn(t, w, "inf", 0, model.Infantry, model.Coord{Col: 2, Row: 2})
	cache := NewCostFields(w)

	first := cache.For(u)
	assert.Same(t, first, cache.For(u))
	assert.Equal(t, 1, cache.Hits)

	require.NoError(t, w.MoveUnit(u, at(w, 3, 2), 1))
	moved := cache.For(u)
	assert.NotSame(t, first, moved)
	assert.Equal(t, at(w, 3, 2), moved.Origin)
	assert.Equal(t, 2, cache.Misses)

	// Another unit dying makes every field stale.
	other := spawn(t, w, "e", 1, model.Infantry, model.Coord{Col: 0, Row: 0})
	w.Kill(other)
	assert.NotSame(t, moved, cache.For(u))
}

func TestFindPathAroundWater(t *testing.T) {
	water := func(c model.Coord) model.Terrain {
		if c.Col == 2 && c.Row < 2 {
			return model.Water
		}
		return model.Plain
	}
	w := model.NewWorld(model.NewGrid(5, 3, water))
	u := spawn(t, w, "inf", 0, model.Infantry, model.Coord{Col: 0, Row: 0})
	tac := NewTactical(nil, DefaultWeights())

	path := tac.FindPath(u.Cell, at(w, 4, 0), u, false)
	require.NotNil(t, path)
	assert.Equal(t, u.Cell, path[0])
	assert.Equal(t, at(w, 4, 0), path[len(path)-1])
	for i, c := range path {
		assert.NotEqual(t, model.Water, c.Terrain)
		if i > 0 {
			assert.Equal(t, 1, model.Distance(path[i-1].Coord, c.Coord))
		}
	}
}

func TestFindPathNoRoute(t *testing.T) {
	w := model.NewWorld(model.NewGrid(5, 1, func(c model.Coord) model.Terrain {
		if c.Col == 2 {
			return model.Water
		}
		return model.Plain
	}))
	u := spawn(t, w, "inf", 0, model.Infantry, model.Coord{Col: 0, Row: 0})
	assert.Nil(t, NewTactical(nil, DefaultWeights()).FindPath(u.Cell, at(w, 4, 0), u, true))
}

func TestFindPathIntoOccupiedGoal(t *testing.T) {
	w := model.NewWorld(model.NewGrid(5, 1, nil))
	u := spawn(t, w, "inf", 0, model.Infantry, model.Coord{Col: 0, Row: 0})
	e := spawn(t, w, "e", 1, model.Infantry, model.Coord{Col: 3, Row: 0})

	path := NewTactical(nil, DefaultWeights()).FindPath(u.Cell, e.Cell, u, false)
	assert.Equal(t, []*model.Cell{at(w, 0, 0), at(w, 1, 0), at(w, 2, 0), at(w, 3, 0)}, path)
}

func TestFindPathAvoidsDanger(t *testing.T) {
	w := model.NewWorld(model.NewGrid(5, 3, nil))
	u := spawn(t, w, "inf", 0, model.Infantry, model.Coord{Col: 0, Row: 1})
	danger := stubInfluence{
		{Col: 1, Row: 1}: -10,
		{Col: 2, Row: 1}: -10,
		{Col: 3, Row: 1}: -10,
	}
	tac := NewTactical(danger, DefaultWeights())

	direct := tac.FindPath(u.Cell, at(w, 4, 1), u, false)
	assert.Len(t, direct, 5)

	safe := tac.FindPath(u.Cell, at(w, 4, 1), u, true)
	require.NotNil(t, safe)
	for _, c := range safe {
		assert.GreaterOrEqual(t, danger.Net(c.Coord), 0.0, "path crosses danger at %s", c.Coord)
	}
}

func TestTacticalStepCostNeverNegative(t *testing.T) {
	tac := NewTactical(stubInfluence{{Col: 0, Row: 0}: 40, {Col: 1, Row: 0}: -3}, DefaultWeights())
	art := model.NewUnit("a", 0, model.DefaultProfiles()[model.Artillery])
	inf := model.NewUnit("i", 0, model.DefaultProfiles()[model.Infantry])
	mountain := &model.Cell{Terrain: model.Mountain}
	safe := &model.Cell{Coord: model.Coord{Col: 0, Row: 0}, Terrain: model.Plain}
	hostile := &model.Cell{Coord: model.Coord{Col: 1, Row: 0}, Terrain: model.Forest}

	assert.Equal(t, 0.0, tac.stepCost(mountain, art, true))
	assert.Equal(t, 0.0, tac.stepCost(safe, inf, true))
	assert.InDelta(t, 6-1.5, tac.stepCost(hostile, inf, true), 1e-9)
	assert.Equal(t, 0.0, tac.stepCost(hostile, inf, false))
}

func TestFindSafestCellBoundAndTieBreak(t *testing.T) {
	w := model.NewWorld(model.NewGrid(7, 7, nil))
	u := spawn(t, w, "inf", 0, model.Infantry, model.Coord{Col: 3, Row: 3})
	field := stubInfluence{
		{Col: 5, Row: 3}: 10,
		{Col: 1, Row: 3}: 10,
		{Col: 6, Row: 3}: 50,
	}
	tac := NewTactical(field, DefaultWeights())

	got := tac.FindSafestCell(u.Cell, 2, u)
	assert.Equal(t, at(w, 5, 3), got)
	assert.LessOrEqual(t, model.Distance(u.Cell.Coord, got.Coord), 2)

	assert.Same(t, u.Cell, NewTactical(nil, DefaultWeights()).FindSafestCell(u.Cell, 2, u))
}

func TestFindSafestCellIsMaximal(t *testing.T) {
	terrain := func(c model.Coord) model.Terrain {
		if (c.Col*3+c.Row)%5 == 0 {
			return model.Forest
		}
		return model.Plain
	}
	w := model.NewWorld(model.NewGrid(9, 9, terrain))
	u := spawn(t, w, "art", 0, model.Artillery, model.Coord{Col: 4, Row: 4})
	field := stubInfluence{}
	for _, c := range w.Grid.Cells() {
		field[c.Coord] = float64((c.Coord.Col*7+c.Coord.Row*3)%11) - 5
	}
	tac := NewTactical(field, DefaultWeights())
	score := func(c *model.Cell) float64 {
		s := field.Net(c.Coord)
		if c.Terrain == model.Forest {
			s += 2
		}
		return s
	}

	for radius := 0; radius <= 3; radius++ {
		got := tac.FindSafestCell(u.Cell, radius, u)
		require.LessOrEqual(t, model.Distance(u.Cell.Coord, got.Coord), radius)
		for _, c := range w.Grid.Within(u.Cell.Coord, radius) {
			assert.GreaterOrEqual(t, score(got), score(c), "radius %d: %s beats %s", radius, c.Coord, got.Coord)
		}
	}
}

func TestFindBestAttackPositionKeepsMinRange(t *testing.T) {
	w := model.NewWorld(model.NewGrid(10, 7, nil))
	art := spawn(t, w, "art", 0, model.Artillery, model.Coord{Col: 0, Row: 3})
	target := spawn(t, w, "e", 1, model.Infantry, model.Coord{Col: 6, Row: 3})
	tac := NewTactical(nil, DefaultWeights())

	got := tac.FindBestAttackPosition(w.Grid, art.Cell, target, art, 2, 3)
	assert.Equal(t, at(w, 2, 3), got)

	assert.Nil(t, tac.FindBestAttackPosition(w.Grid, art.Cell, target, art, 1, 3))
}

func TestFindBestAttackPositionPrefersForest(t *testing.T) {
	terrain := func(c model.Coord) model.Terrain {
		if c == (model.Coord{Col: 2, Row: 1}) {
			return model.Forest
		}
		return model.Plain
	}
	w := model.NewWorld(model.NewGrid(5, 3, terrain))
	inf := spawn(t, w, "inf", 0, model.Infantry, model.Coord{Col: 0, Row: 1})
	target := spawn(t, w, "e", 1, model.Infantry, model.Coord{Col: 3, Row: 1})

	got := NewTactical(nil, DefaultWeights()).FindBestAttackPosition(w.Grid, inf.Cell, target, inf, 3, 1)
	assert.Equal(t, at(w, 2, 1), got)
}

func TestReachablePath(t *testing.T) {
	w := model.NewWorld(model.NewGrid(6, 1, nil))
	u := spawn(t, w, "inf", 0, model.Infantry, model.Coord{Col: 0, Row: 0})
	full := []*model.Cell{at(w, 0, 0), at(w, 1, 0), at(w, 2, 0), at(w, 3, 0), at(w, 4, 0), at(w, 5, 0)}

	assert.Equal(t, full[:4], ReachablePath(full, 3, u))

	spawn(t, w, "ally", 0, model.Infantry, model.Coord{Col: 2, Row: 0})
	assert.Equal(t, []*model.Cell{full[0], full[1], full[3]}, ReachablePath(full, 3, u))

	// The final destination is kept even when occupied.
	assert.Equal(t, full[:3], ReachablePath(full[:3], 3, u))

	at(w, 1, 0).Terrain = model.Forest
	assert.Equal(t, []*model.Cell{full[0], full[1]}, ReachablePath(full, 3, u))

	assert.Nil(t, ReachablePath(nil, 3, u))
}
