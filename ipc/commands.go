package ipc

import "github.com/nstehr/hexfront/model"

// AI → host message types.
const (
	TypeAck        = "ack"
	TypeTurnResult = "turn_result"
	TypeError      = "error"
)

type AckMessage struct {
	Status string `json:"status"`
}

// TurnResultMessage carries every action the AI took, in order, so the host
// can replay and animate them. Complete is always true; it is the host's
// signal that the AI's turn is over.
type TurnResultMessage struct {
	ID            string          `json:"id"`
	Turn          int             `json:"turn"`
	Faction       model.Faction   `json:"faction"`
	Posture       string          `json:"posture"`
	Aggression    float64         `json:"aggression"`
	EconomicFocus float64         `json:"economicFocus"`
	Actions       []model.Outcome `json:"actions"`
	Events        []EventMessage  `json:"events,omitempty"`
	Complete      bool            `json:"complete"`
}

type EventMessage struct {
	Kind   string `json:"kind"`
	Turn   int    `json:"turn"`
	Detail string `json:"detail"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
