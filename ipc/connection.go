package ipc

import (
	"io"
	"log/slog"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Transport moves whole envelopes. Framed streams and websockets both
// implement it.
type Transport interface {
	Read() (Envelope, error)
	Write(env Envelope) error
	Close() error
}

// streamTransport frames envelopes over a byte stream such as a unix socket.
type streamTransport struct {
	rw io.ReadWriteCloser
}

// NewStreamTransport wraps rw with length-prefixed framing.
func NewStreamTransport(rw io.ReadWriteCloser) Transport {
	return streamTransport{rw: rw}
}

func (t streamTransport) Read() (Envelope, error)  { return ReadEnvelope(t.rw) }
func (t streamTransport) Write(env Envelope) error { return WriteEnvelope(t.rw, env) }
func (t streamTransport) Close() error             { return t.rw.Close() }

// Connection represents a single game host talking to the sidecar.
// Each AI player gets its own connection, identified after the hello handshake.
type Connection struct {
	transport Transport
	handlers  map[string]Handler
	Player    string
}

func NewConnection(t Transport, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		transport: t,
		handlers:  handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.transport.Write(env)
}

// ReadLoop blocks until the connection closes or errors. It owns the conn lifetime
// so callers don't need to track cleanup. Messages are handled one at a time.
func (c *Connection) ReadLoop() {
	defer c.transport.Close()

	for {
		env, err := c.transport.Read()
		if err != nil {
			slog.Info("connection read ended", "player", c.Player, "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			if sendErr := c.Send(TypeError, ErrorMessage{Type: env.Type, Message: err.Error()}); sendErr != nil {
				slog.Error("failed to send error", "type", env.Type, "error", sendErr)
				return
			}
			continue
		}

		if resp != nil {
			if err := c.transport.Write(*resp); err != nil {
				slog.Error("failed to send response", "type", resp.Type, "error", err)
				return
			}
			slog.Info("sent response", "type", resp.Type, "player", c.Player)
		}
	}
}
