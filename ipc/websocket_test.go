package ipc

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebSocketTransport(t *testing.T) {
	srv := httptest.NewServer(WebSocketHandler(func(c *Connection) {
		c.RegisterHandler(TypeHello, func(Envelope) (*Envelope, error) {
			ack, err := NewEnvelope(TypeAck, AckMessage{Status: "ok"})
			return &ack, err
		})
		c.ReadLoop()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))

	hello, _ := NewEnvelope(TypeHello, HelloMessage{Player: "web", Faction: 1})
	raw, _ := json.Marshal(hello)
	if err := ws.WriteMessage(websocket.TextMessage, raw); err != nil {
		t.Fatal(err)
	}

	kind, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if kind != websocket.TextMessage {
		t.Errorf("frame type = %d, want text", kind)
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatal(err)
	}
	if env.Type != TypeAck {
		t.Errorf("type = %q, want ack", env.Type)
	}
}
