package game

import (
	"errors"

	"github.com/xichen1997/RTS-made-by-AI/shared/protocol"
)

type sessionStatus int

const (
	statusDisconnected sessionStatus = iota
	statusConnecting
	statusConnected
)

func (s sessionStatus) String() string {
	switch s {
	case statusConnecting:
		return "connecting"
	case statusConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// roomConn is the slice of Net the session needs; tests substitute a
// recorder.
type roomConn interface {
	Send(v any) error
	Inbound() <-chan []byte
	IsClosed() bool
	Close() error
}

var errNotConnected = errors.New("session: not connected")

// Session owns the socket lifecycle for one match room. The player id is
// only valid between a welcome frame and the next reset; nothing survives
// a reset, so a reconnect is always a fresh join.
type Session struct {
	status     sessionStatus
	playerID   string
	playerName string
	roomID     string
	conn       roomConn
}

func NewSession() *Session {
	return &Session{status: statusDisconnected}
}

func (s *Session) Status() sessionStatus { return s.status }
func (s *Session) Connected() bool       { return s.status == statusConnected }
func (s *Session) PlayerID() string      { return s.playerID }
func (s *Session) PlayerName() string    { return s.playerName }
func (s *Session) RoomID() string        { return s.roomID }
func (s *Session) Conn() roomConn        { return s.conn }

// StartConnecting marks the dial in progress so the UI can show it.
func (s *Session) StartConnecting(roomID string) {
	s.status = statusConnecting
	s.roomID = roomID
}

// Attach adopts a freshly dialed socket and sends the join request. The
// session stays in connecting until the server answers with a welcome.
func (s *Session) Attach(c roomConn, playerName string) error {
	s.conn = c
	s.status = statusConnecting
	s.playerName = playerName
	return c.Send(protocol.NewJoin(playerName))
}

// HandleWelcome completes the join handshake.
func (s *Session) HandleWelcome(w protocol.Welcome) {
	s.status = statusConnected
	s.playerID = w.PlayerID
	if w.RoomID != "" {
		s.roomID = w.RoomID
	}
	if w.PlayerName != "" {
		s.playerName = w.PlayerName
	}
}

// Send forwards a message iff the handshake has completed.
func (s *Session) Send(v any) error {
	if !s.Connected() || s.conn == nil || s.conn.IsClosed() {
		return errNotConnected
	}
	return s.conn.Send(v)
}

// Reset tears the socket down and discards every id tied to it. Callers
// are responsible for the matching selection/mirror resets.
func (s *Session) Reset() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	s.status = statusDisconnected
	s.playerID = ""
	s.roomID = ""
}
