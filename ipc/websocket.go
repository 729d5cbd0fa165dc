package ipc

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// wsTransport carries one envelope per text frame.
type wsTransport struct {
	conn *websocket.Conn
}

func NewWebSocketTransport(conn *websocket.Conn) Transport {
	conn.SetReadLimit(MaxMessageSize)
	return wsTransport{conn: conn}
}

func (t wsTransport) Read() (Envelope, error) {
	_, data, err := t.conn.ReadMessage()
	if err != nil {
		return Envelope{}, fmt.Errorf("read frame: %w", err)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env, nil
}

func (t wsTransport) Write(env Envelope) error {
	msg, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return t.conn.WriteMessage(websocket.TextMessage, msg)
}

func (t wsTransport) Close() error { return t.conn.Close() }

// WebSocketHandler upgrades each request and hands the resulting connection
// to serve, which should block until the connection is done.
func WebSocketHandler(serve func(*Connection)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		slog.Info("websocket connection accepted", "remote", r.RemoteAddr)
		serve(NewConnection(NewWebSocketTransport(conn), nil))
	})
}
