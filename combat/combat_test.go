package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/hexfront/model"
)

func setup(t *testing.T) (*model.World, model.Profiles) {
	t.Helper()
	return model.NewWorld(model.NewGrid(8, 8, nil)), model.DefaultProfiles()
}

func spawn(t *testing.T, w *model.World, id string, f model.Faction, p *model.Profile, c model.Coord) *model.Unit {
	t.Helper()
	u, err := w.Spawn(id, f, p, c)
	require.NoError(t, err)
	return u
}

func TestCheck(t *testing.T) {
	w, p := setup(t)
	inf := spawn(t, w, "inf", 0, p[model.Infantry], model.Coord{Col: 2, Row: 2})
	ally := spawn(t, w, "ally", 0, p[model.Infantry], model.Coord{Col: 3, Row: 2})
	near := spawn(t, w, "near", 1, p[model.Infantry], model.Coord{Col: 1, Row: 2})
	far := spawn(t, w, "far", 1, p[model.Infantry], model.Coord{Col: 6, Row: 2})

	assert.NoError(t, Check(inf, near))
	assert.ErrorIs(t, Check(inf, ally), ErrFriendlyFire)
	assert.ErrorIs(t, Check(inf, far), ErrOutOfRange)
	assert.ErrorIs(t, Check(inf, nil), ErrNoTarget)

	inf.HasAttacked = true
	assert.ErrorIs(t, Check(inf, near), ErrAlreadyAttacked)
	assert.False(t, CanAttack(inf, near))
}

func TestAttackOncePerTurn(t *testing.T) {
	w, p := setup(t)
	art := spawn(t, w, "art", 0, p[model.Artillery], model.Coord{Col: 1, Row: 1})
	inf := spawn(t, w, "inf", 1, p[model.Infantry], model.Coord{Col: 4, Row: 1})
	var j model.Journal

	res, err := Attack(w, art, inf, &j)
	require.NoError(t, err)
	assert.Equal(t, Result{Damage: 15, Remaining: 35}, res)
	assert.True(t, art.HasAttacked)

	_, err = Attack(w, art, inf, &j)
	assert.ErrorIs(t, err, ErrAlreadyAttacked)
	assert.Equal(t, 35, inf.Health)
	assert.Equal(t, 1, j.Count(model.OutcomeAttacked))
}

func TestAttackKillRemovesUnit(t *testing.T) {
	w, p := setup(t)
	cav := spawn(t, w, "cav", 0, p[model.Cavalry], model.Coord{Col: 1, Row: 1})
	art := spawn(t, w, "art", 1, p[model.Artillery], model.Coord{Col: 2, Row: 1})
	art.Health = 10
	cell := art.Cell
	var j model.Journal

	require.True(t, WouldBeLethal(cav, art))
	res, err := Attack(w, cav, art, &j)
	require.NoError(t, err)

	assert.True(t, res.Killed)
	assert.Equal(t, 0, res.Remaining)
	assert.Nil(t, cell.Occupant)
	assert.Nil(t, w.Units.Get("art"))
	require.Len(t, j.Entries(), 1)
	assert.True(t, j.Entries()[0].Killed)
}

func TestBestTarget(t *testing.T) {
	w, p := setup(t)
	art := spawn(t, w, "art", 0, p[model.Artillery], model.Coord{Col: 3, Row: 3})

	spawn(t, w, "inf", 1, p[model.Infantry], model.Coord{Col: 4, Row: 3})
	cav := spawn(t, w, "cav", 1, p[model.Cavalry], model.Coord{Col: 2, Row: 3})
	enemyArt := spawn(t, w, "eart", 1, p[model.Artillery], model.Coord{Col: 3, Row: 5})
	spawn(t, w, "far", 1, p[model.Artillery], model.Coord{Col: 7, Row: 7})

	// Highest attack power wins when nothing is lethal.
	enemyArt.Health = 18
	assert.Equal(t, enemyArt, BestTarget(art, w.Units.All()))

	// A lethal hit beats attack power.
	cav.Health = 15
	assert.Equal(t, cav, BestTarget(art, w.Units.All()))

	// Lowest health breaks an attack power tie.
	cav.Health = 30
	enemyArt.Health = 20
	other := spawn(t, w, "eart2", 1, p[model.Artillery], model.Coord{Col: 4, Row: 4})
	other.Health = 19
	assert.Equal(t, other, BestTarget(art, w.Units.All()))
}

func TestBestTargetNoneInRange(t *testing.T) {
	w, p := setup(t)
	inf := spawn(t, w, "inf", 0, p[model.Infantry], model.Coord{Col: 0, Row: 0})
	spawn(t, w, "e", 1, p[model.Infantry], model.Coord{Col: 5, Row: 5})
	assert.Nil(t, BestTarget(inf, w.Units.All()))
}
