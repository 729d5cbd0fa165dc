package ipc

import "github.com/nstehr/hexfront/model"

// Host → AI message types.
const (
	TypeHello     = "hello"
	TypeGameState = "game_state"
	TypeReset     = "reset"
)

type HelloMessage struct {
	Player  string        `json:"player"`
	Faction model.Faction `json:"faction"`
}

// GameStateMessage is the board snapshot for one AI turn.
type GameStateMessage = model.GameState
