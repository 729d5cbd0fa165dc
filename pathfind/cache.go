package pathfind

import (
	"log/slog"

	"github.com/nstehr/hexfront/model"
)

type fieldKey struct {
	cell      *model.Cell
	remaining float64
	version   uint64
}

type cachedField struct {
	key   fieldKey
	field *CostField
}

// CostFields hands out cost fields per unit and rebuilds one as soon as the
// unit moved, spent movement or anything else on the board changed.
type CostFields struct {
	world   *model.World
	entries map[string]cachedField

	Hits, Misses int
}

func NewCostFields(w *model.World) *CostFields {
	return &CostFields{world: w, entries: make(map[string]cachedField)}
}

// For returns a current cost field for u.
func (c *CostFields) For(u *model.Unit) *CostField {
	key := fieldKey{cell: u.Cell, remaining: u.RemainingMovement}
	if c.world != nil {
		key.version = c.world.Version()
	}
	if e, ok := c.entries[u.ID]; ok && e.key == key {
		c.Hits++
		return e.field
	}
	c.Misses++
	f := BuildCostField(u)
	c.entries[u.ID] = cachedField{key: key, field: f}
	slog.Debug("cost field built", "unit", u.ID, "reached", len(f.order))
	return f
}

// Reset drops every cached field.
func (c *CostFields) Reset() {
	clear(c.entries)
}
