package model

// Roster owns every unit on the board, in insertion order.
type Roster struct {
	units []*Unit
	byID  map[string]*Unit
}

func NewRoster() *Roster {
	return &Roster{byID: make(map[string]*Unit)}
}

// Add appends u. A unit with the same ID replaces nothing and is ignored.
func (r *Roster) Add(u *Unit) bool {
	if _, ok := r.byID[u.ID]; ok {
		return false
	}
	r.units = append(r.units, u)
	r.byID[u.ID] = u
	return true
}

// Remove drops u from every index and clears its cell link.
func (r *Roster) Remove(u *Unit) {
	if _, ok := r.byID[u.ID]; !ok {
		return
	}
	delete(r.byID, u.ID)
	for i, x := range r.units {
		if x == u {
			r.units = append(r.units[:i], r.units[i+1:]...)
			break
		}
	}
	if u.Cell != nil && u.Cell.Occupant == u {
		u.Cell.Occupant = nil
	}
	u.Cell = nil
}

func (r *Roster) Get(id string) *Unit { return r.byID[id] }

func (r *Roster) Len() int { return len(r.units) }

// All returns a copy of the roster so callers may mutate the board while
// iterating.
func (r *Roster) All() []*Unit {
	out := make([]*Unit, len(r.units))
	copy(out, r.units)
	return out
}

// Faction returns the living units of f.
func (r *Roster) Faction(f Faction) []*Unit {
	var out []*Unit
	for _, u := range r.units {
		if u.Faction == f && u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

// Enemies returns the living units not belonging to f.
func (r *Roster) Enemies(f Faction) []*Unit {
	var out []*Unit
	for _, u := range r.units {
		if u.Faction != f && u.IsAlive() {
			out = append(out, u)
		}
	}
	return out
}

