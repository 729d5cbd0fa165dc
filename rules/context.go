package rules

import "github.com/nstehr/hexfront/model"

// DefaultThreatRadius is how close an enemy must be to the base to count as
// a threat.
const DefaultThreatRadius = 5

// StrategicContext is the per-turn summary the posture and production
// rules read.
type StrategicContext struct {
	Faction            model.Faction
	Turn               int
	OwnUnits           []*model.Unit
	EnemyCount         int
	OwnResources       int
	EnemyResources     int
	NumericalAdvantage float64
	ResourceAdvantage  float64
	BaseThreatened     bool
	TerritorialControl float64
}

// ControlReader reports the share of influenced cells a faction holds.
type ControlReader interface {
	Control() float64
}

// Analyze builds the strategic context for f. A nil control reader reports
// zero territorial control.
func Analyze(w *model.World, field ControlReader, f model.Faction, threatRadius int) StrategicContext {
	own := w.Units.Faction(f)
	enemies := w.Units.Enemies(f)

	ctx := StrategicContext{
		Faction:      f,
		Turn:         w.Turn,
		OwnUnits:     own,
		EnemyCount:   len(enemies),
		OwnResources: w.Resources[f],
	}
	for other, amount := range w.Resources {
		if other != f {
			ctx.EnemyResources += amount
		}
	}
	ctx.NumericalAdvantage = float64(len(own)) / float64(max(1, len(enemies)))
	ctx.ResourceAdvantage = float64(ctx.OwnResources) / float64(max(1, ctx.EnemyResources))

	if base := w.Grid.Base(f); base != nil {
		for _, e := range enemies {
			if e.Cell != nil && model.Distance(e.Cell.Coord, base.Coord) <= threatRadius {
				ctx.BaseThreatened = true
				break
			}
		}
	}
	if field != nil {
		ctx.TerritorialControl = field.Control()
	}
	return ctx
}
