package waypoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/hexfront/influence"
	"github.com/nstehr/hexfront/model"
)

func scenario(t *testing.T) (*model.World, *influence.Field) {
	t.Helper()
	w := model.NewWorld(model.NewGrid(12, 5, nil))
	w.Grid.SetBase(model.Coord{Col: 0, Row: 2}, 0)
	w.Grid.SetBase(model.Coord{Col: 11, Row: 2}, 1)
	w.Grid.SetResource(model.Coord{Col: 1, Row: 1})
	w.Grid.SetResource(model.Coord{Col: 11, Row: 0})
	w.Grid.SetResource(model.Coord{Col: 5, Row: 4})
	w.Grid.At(model.Coord{Col: 5, Row: 4}).Collected = true

	p := model.DefaultProfiles()
	for _, s := range []struct {
		id  string
		f   model.Faction
		typ model.UnitType
		at  model.Coord
	}{
		{"a1", 0, model.Infantry, model.Coord{Col: 2, Row: 2}},
		{"a2", 0, model.Artillery, model.Coord{Col: 3, Row: 1}},
		{"b1", 1, model.Cavalry, model.Coord{Col: 8, Row: 2}},
		{"b2", 1, model.Infantry, model.Coord{Col: 9, Row: 3}},
	} {
		_, err := w.Spawn(s.id, s.f, p[s.typ], s.at)
		require.NoError(t, err)
	}
	f := influence.NewField(w.Grid)
	f.Recompute(w.Units.All(), 0)
	return w, f
}

func TestEnemyBaseIsUniquelyTopPriority(t *testing.T) {
	w, f := scenario(t)
	s := Generate(w.Grid, f, 0, DefaultOptions())

	bases := s.ByCategory(EnemyBase)
	require.Len(t, bases, 1)
	assert.Equal(t, model.Coord{Col: 11, Row: 2}, bases[0].Cell.Coord)
	assert.Equal(t, 10, bases[0].Priority)

	tens := 0
	for _, wp := range s.All() {
		assert.GreaterOrEqual(t, wp.Priority, 1)
		assert.LessOrEqual(t, wp.Priority, 10)
		assert.Equal(t, model.Faction(0), wp.Owner)
		if wp.Priority == 10 {
			tens++
		}
	}
	assert.Equal(t, 1, tens)
}

func TestRallyPriorities(t *testing.T) {
	w, f := scenario(t)
	s := Generate(w.Grid, f, 0, DefaultOptions())

	rally := s.ByCategory(Rally)
	require.Len(t, rally, 5)
	for i, wp := range rally {
		assert.Equal(t, 9-i, wp.Priority)
		assert.True(t, f.IsSafe(wp.Cell.Coord))
		if i > 0 {
			assert.GreaterOrEqual(t, f.Net(rally[i-1].Cell.Coord), f.Net(wp.Cell.Coord))
		}
	}
	// Nothing outside the rally set is safer than its weakest member.
	weakest := f.Net(rally[4].Cell.Coord)
	picked := map[*model.Cell]bool{}
	for _, wp := range rally {
		picked[wp.Cell] = true
	}
	for _, c := range f.SafeCells() {
		if !picked[c] {
			assert.LessOrEqual(t, f.Net(c.Coord), weakest)
		}
	}
}

func TestContestedAndDefense(t *testing.T) {
	w, f := scenario(t)
	s := Generate(w.Grid, f, 0, DefaultOptions())

	attack := s.ByCategory(Attack)
	require.NotEmpty(t, attack)
	for _, wp := range attack {
		assert.Equal(t, 6, wp.Priority)
		assert.False(t, wp.Cell.IsBase)
		assert.Greater(t, f.Friendly(wp.Cell.Coord), 0.0)
		assert.Greater(t, f.Enemy(wp.Cell.Coord), 0.0)
	}

	defense := s.ByCategory(Defense)
	require.NotEmpty(t, defense)
	assert.Equal(t, w.Grid.Base(0), defense[0].Cell)
	assert.Equal(t, 9, defense[0].Priority)
	for _, wp := range defense[1:] {
		assert.Equal(t, 7, wp.Priority)
		assert.LessOrEqual(t, model.Distance(wp.Cell.Coord, defense[0].Cell.Coord), 3)
		assert.Greater(t, f.Net(wp.Cell.Coord), 0.0)
	}
	assert.Equal(t, defense[0].Cell, s.HighestPriority(Defense).Cell)
}

func TestResourcePriorities(t *testing.T) {
	w, f := scenario(t)
	s := Generate(w.Grid, f, 0, DefaultOptions())

	res := s.ByCategory(Resource)
	require.Len(t, res, 2, "collected nodes are skipped")
	byCoord := map[model.Coord]int{}
	for _, wp := range res {
		byCoord[wp.Cell.Coord] = wp.Priority
	}
	assert.Equal(t, 9, byCoord[model.Coord{Col: 1, Row: 1}], "near base and safe")
	assert.Equal(t, 5, byCoord[model.Coord{Col: 11, Row: 0}], "far from base")

	near := s.Nearest(model.Coord{Col: 10, Row: 1}, Resource)
	require.NotNil(t, near)
	assert.Equal(t, model.Coord{Col: 11, Row: 0}, near.Cell.Coord)
	assert.Equal(t, model.Coord{Col: 1, Row: 1}, s.HighestPriority(Resource).Cell.Coord)
}

func TestGenerateWithoutInfluence(t *testing.T) {
	w, _ := scenario(t)
	s := Generate(w.Grid, nil, 0, DefaultOptions())

	assert.Len(t, s.ByCategory(EnemyBase), 1)
	assert.Len(t, s.ByCategory(Defense), 1)
	assert.Empty(t, s.ByCategory(Rally))
	assert.Empty(t, s.ByCategory(Attack))
	assert.Len(t, s.ByCategory(Resource), 2)
	assert.Nil(t, s.HighestPriority(Rally))
	assert.Nil(t, s.Nearest(model.Coord{}, Rally))
}

func TestHighestPriorityTieKeepsFirst(t *testing.T) {
	g := model.NewGrid(3, 1, nil)
	s := &Set{}
	s.add(g.At(model.Coord{Col: 0, Row: 0}), Attack, 6, 0)
	s.add(g.At(model.Coord{Col: 1, Row: 0}), Attack, 6, 0)
	s.add(g.At(model.Coord{Col: 2, Row: 0}), Attack, 4, 0)

	assert.Equal(t, model.Coord{Col: 0, Row: 0}, s.HighestPriority(Attack).Cell.Coord)
	assert.Equal(t, model.Coord{Col: 2, Row: 0}, s.Nearest(model.Coord{Col: 2, Row: 0}, Attack).Cell.Coord)
}
