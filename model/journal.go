package model

// OutcomeKind names a discrete result of a unit action.
type OutcomeKind string

const (
	OutcomeMoved     OutcomeKind = "moved"
	OutcomeAttacked  OutcomeKind = "attacked"
	OutcomeCollected OutcomeKind = "collected"
	OutcomeCaptured  OutcomeKind = "captured"
	OutcomeProduced  OutcomeKind = "produced"
)

// Outcome is one entry the host replays to animate a turn.
type Outcome struct {
	Kind         OutcomeKind `json:"kind"`
	UnitID       string      `json:"unitId,omitempty"`
	From         *Coord      `json:"from,omitempty"`
	To           *Coord      `json:"to,omitempty"`
	Path         []Coord     `json:"path,omitempty"`
	TargetID     string      `json:"targetId,omitempty"`
	Damage       int         `json:"damage,omitempty"`
	TargetHealth int         `json:"targetHealth,omitempty"`
	Killed       bool        `json:"killed,omitempty"`
	UnitType     string      `json:"unitType,omitempty"`
	Amount       int         `json:"amount,omitempty"`
}

// Journal accumulates outcomes in the order they happened. A nil Journal
// discards everything.
type Journal struct {
	entries []Outcome
}

func (j *Journal) Record(o Outcome) {
	if j == nil {
		return
	}
	j.entries = append(j.entries, o)
}

func (j *Journal) Entries() []Outcome {
	if j == nil {
		return nil
	}
	return j.entries
}

// Count returns how many entries of kind k were recorded.
func (j *Journal) Count(k OutcomeKind) int {
	n := 0
	for _, e := range j.Entries() {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func coordPtr(c Coord) *Coord { return &c }

// Moved records a move along path (path[0] is the origin).
func (j *Journal) Moved(u *Unit, path []Coord) {
	if len(path) == 0 {
		return
	}
	j.Record(Outcome{
		Kind:   OutcomeMoved,
		UnitID: u.ID,
		From:   coordPtr(path[0]),
		To:     coordPtr(path[len(path)-1]),
		Path:   path,
	})
}

func (j *Journal) Attacked(attacker, target *Unit, damage int) {
	j.Record(Outcome{
		Kind:         OutcomeAttacked,
		UnitID:       attacker.ID,
		TargetID:     target.ID,
		Damage:       damage,
		TargetHealth: max(target.Health, 0),
		Killed:       !target.IsAlive(),
	})
}

func (j *Journal) Collected(u *Unit, at Coord, amount int) {
	j.Record(Outcome{Kind: OutcomeCollected, UnitID: u.ID, To: coordPtr(at), Amount: amount})
}

func (j *Journal) Captured(u *Unit, at Coord) {
	j.Record(Outcome{Kind: OutcomeCaptured, UnitID: u.ID, To: coordPtr(at)})
}

func (j *Journal) Produced(u *Unit, at Coord) {
	j.Record(Outcome{Kind: OutcomeProduced, UnitID: u.ID, To: coordPtr(at), UnitType: u.Type().String()})
}
