package model

import (
	"math/rand/v2"

	"github.com/ojrac/opensimplex-go"
)

// MapOptions controls GenerateWorld.
type MapOptions struct {
	Cols, Rows int
	Seed       int64
	// Scale is the noise frequency; smaller values give larger features.
	Scale float64
	// Resources is the number of resource nodes scattered on land.
	Resources int
}

// DefaultMapOptions returns a 20x14 two-player board.
func DefaultMapOptions(seed int64) MapOptions {
	return MapOptions{Cols: 20, Rows: 14, Seed: seed, Scale: 0.18, Resources: 8}
}

// terrainAt buckets a normalized noise sample into a terrain band.
func terrainAt(v float64) Terrain {
	switch {
	case v < 0.22:
		return Water
	case v < 0.58:
		return Plain
	case v < 0.80:
		return Forest
	default:
		return Mountain
	}
}

// GenerateGrid builds a noise-driven terrain grid. The same seed always
// yields the same grid.
func GenerateGrid(opts MapOptions) *Grid {
	noise := opensimplex.NewNormalized(opts.Seed)
	scale := opts.Scale
	if scale <= 0 {
		scale = 0.18
	}
	return NewGrid(opts.Cols, opts.Rows, func(c Coord) Terrain {
		// Odd rows sit half a cell to the right.
		x := float64(c.Col) + 0.5*float64(c.Row&1)
		y := float64(c.Row) * 0.866
		return terrainAt(noise.Eval2(x*scale, y*scale))
	})
}

// GenerateWorld builds a two-faction skirmish map: faction 0's base on the
// west edge, faction 1's on the east edge, base surroundings cleared to
// plain, and resource nodes on land cells.
func GenerateWorld(opts MapOptions) *World {
	g := GenerateGrid(opts)
	mid := opts.Rows / 2
	bases := []Coord{{Col: 1, Row: mid}, {Col: opts.Cols - 2, Row: mid}}
	for f, b := range bases {
		for _, c := range g.Within(b, 2) {
			c.Terrain = Plain
		}
		g.SetBase(b, Faction(f))
	}
	// Keep a land corridor between the bases.
	for col := 0; col < opts.Cols; col++ {
		if c := g.At(Coord{Col: col, Row: mid}); c != nil && c.Terrain == Water {
			c.Terrain = Plain
		}
	}

	rng := rand.New(rand.NewPCG(uint64(opts.Seed), 0x9e3779b97f4a7c15))
	placed := 0
	for tries := 0; placed < opts.Resources && tries < opts.Resources*50; tries++ {
		c := g.At(Coord{Col: rng.IntN(opts.Cols), Row: rng.IntN(opts.Rows)})
		if c.Terrain == Water || c.IsBase || c.IsResource {
			continue
		}
		if Distance(c.Coord, bases[0]) < 3 || Distance(c.Coord, bases[1]) < 3 {
			continue
		}
		g.SetResource(c.Coord)
		placed++
	}
	return NewWorld(g)
}
