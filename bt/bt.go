// Package bt is a minimal behavior tree. Trees hold no state between ticks;
// callers rebuild or re-tick them from the root every turn.
package bt

type Status int

const (
	Failure Status = iota
	Success
	Running
)

func (s Status) String() string {
	switch s {
	case Failure:
		return "failure"
	case Success:
		return "success"
	case Running:
		return "running"
	}
	return "unknown"
}

type Node interface {
	Tick() Status
}

type actionNode struct{ fn func() Status }

func (a actionNode) Tick() Status { return a.fn() }

// Action wraps a decision function.
func Action(fn func() Status) Node { return actionNode{fn} }

type conditionNode struct{ fn func() bool }

func (c conditionNode) Tick() Status {
	if c.fn() {
		return Success
	}
	return Failure
}

// Condition maps a predicate to Success or Failure.
func Condition(fn func() bool) Node { return conditionNode{fn} }

type selector struct{ children []Node }

func (s selector) Tick() Status {
	for _, ch := range s.children {
		if st := ch.Tick(); st != Failure {
			return st
		}
	}
	return Failure
}

// Selector ticks children in order and returns the first status that is
// not Failure. Later children are not ticked.
func Selector(children ...Node) Node { return selector{children} }

type sequence struct{ children []Node }

func (s sequence) Tick() Status {
	for _, ch := range s.children {
		if st := ch.Tick(); st != Success {
			return st
		}
	}
	return Success
}

// Sequence ticks children in order and returns the first status that is
// not Success.
func Sequence(children ...Node) Node { return sequence{children} }

// Succeed returns Success after ticking n, whatever n returned.
func Succeed(n Node) Node {
	return Action(func() Status {
		n.Tick()
		return Success
	})
}

// Bool maps ok to Success or Failure.
func Bool(ok bool) Status {
	if ok {
		return Success
	}
	return Failure
}
