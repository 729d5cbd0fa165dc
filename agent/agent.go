package agent

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/hexfront/ipc"
	"github.com/nstehr/hexfront/model"
)

// Agent owns the decision-making for a single player session.
type Agent struct {
	Conn    *ipc.Connection
	Player  string
	Faction model.Faction
	Planner *Planner
}

func New(conn *ipc.Connection, planner *Planner) *Agent {
	return &Agent{Conn: conn, Planner: planner, Faction: model.Neutral}
}

// Register installs the agent's handlers on its connection.
func (a *Agent) Register() {
	a.Conn.RegisterHandler(ipc.TypeHello, a.HandleHello)
	a.Conn.RegisterHandler(ipc.TypeGameState, a.HandleGameState)
	a.Conn.RegisterHandler(ipc.TypeReset, a.HandleReset)
}

// HandleHello completes the handshake so the host knows the AI is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}

	a.Player = hello.Player
	a.Faction = hello.Faction
	if a.Conn != nil {
		a.Conn.Player = hello.Player
	}
	slog.Info("player identified", "player", a.Player, "faction", a.Faction)

	return ack()
}

// HandleReset drops posture and event history, e.g. when the host starts a
// new match on the same connection.
func (a *Agent) HandleReset(ipc.Envelope) (*ipc.Envelope, error) {
	a.Planner.Reset()
	slog.Info("planner reset", "player", a.Player)
	return ack()
}

// HandleGameState plays one full turn against the received board and
// replies with every action taken.
func (a *Agent) HandleGameState(env ipc.Envelope) (*ipc.Envelope, error) {
	var gs ipc.GameStateMessage
	if err := env.Decode(&gs); err != nil {
		return nil, err
	}

	faction := gs.Faction
	if a.Faction != model.Neutral && a.Faction != faction {
		slog.Warn("game state for a different faction than the handshake", "hello", a.Faction, "state", faction)
	}

	unitTypes := make(map[string]int)
	for _, u := range gs.Units {
		if u.Faction == faction {
			unitTypes[u.TypeName()]++
		}
	}
	slog.Info("game state received",
		"player", a.Player,
		"turn", gs.Turn,
		"faction", faction,
		"resources", gs.Resources[faction],
		"map", fmt.Sprintf("%dx%d", gs.Map.Cols, gs.Map.Rows),
		"units", unitTypes,
		"total_units", len(gs.Units),
	)

	w, err := gs.Build(a.Planner.Profiles())
	if err != nil {
		return nil, fmt.Errorf("game_state turn %d: %w", gs.Turn, err)
	}

	report := a.Planner.PlayTurn(w, faction)
	if len(report.Events) > 0 {
		slog.Info("strategic events", "player", a.Player, "events", FormatEvents(report.Events))
	}

	result, err := ipc.NewEnvelope(ipc.TypeTurnResult, TurnResult(report))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// TurnResult converts a report into its wire form.
func TurnResult(r TurnReport) ipc.TurnResultMessage {
	msg := ipc.TurnResultMessage{
		ID:            r.ID,
		Turn:          r.Turn,
		Faction:       r.Faction,
		Posture:       r.Doctrine.Posture.String(),
		Aggression:    r.Doctrine.Aggression,
		EconomicFocus: r.Doctrine.EconomicFocus,
		Actions:       r.Actions,
		Complete:      true,
	}
	if msg.Actions == nil {
		msg.Actions = []model.Outcome{}
	}
	for _, e := range r.Events {
		msg.Events = append(msg.Events, ipc.EventMessage{Kind: string(e.Kind), Turn: e.Turn, Detail: e.Detail})
	}
	return msg
}

func ack() (*ipc.Envelope, error) {
	env, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &env, nil
}
