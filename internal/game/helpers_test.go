package game

import (
	"encoding/json"
	"errors"

	"github.com/xichen1997/RTS-made-by-AI/shared/protocol"
)

// recordingRenderer counts proxy traffic so tests can assert on the
// mirror's create/update/destroy discipline.
type recordingRenderer struct {
	next     Handle
	live     map[Handle]EntityView
	creates  int
	updates  int
	destroys int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{live: map[Handle]EntityView{}}
}

func (r *recordingRenderer) CreateProxy(v EntityView) Handle {
	r.next++
	r.creates++
	r.live[r.next] = v
	return r.next
}

func (r *recordingRenderer) UpdateProxy(h Handle, v EntityView) {
	r.updates++
	r.live[h] = v
}

func (r *recordingRenderer) DestroyProxy(h Handle) {
	r.destroys++
	delete(r.live, h)
}

func (r *recordingRenderer) liveIDs(cat Category) map[string]bool {
	ids := map[string]bool{}
	for _, v := range r.live {
		if v.Category == cat {
			ids[v.ID] = true
		}
	}
	return ids
}

// fakeConn records outbound messages in place of a real socket.
type fakeConn struct {
	sent   [][]byte
	in     chan []byte
	closed bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 16)}
}

func (c *fakeConn) Send(v any) error {
	if c.closed {
		return errors.New("fake: closed")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.sent = append(c.sent, b)
	return nil
}

func (c *fakeConn) Inbound() <-chan []byte { return c.in }
func (c *fakeConn) IsClosed() bool         { return c.closed }
func (c *fakeConn) Close() error           { c.closed = true; return nil }

// lastCommand decodes the most recent outbound frame as a command.
func (c *fakeConn) lastCommand() (protocol.Command, bool) {
	for i := len(c.sent) - 1; i >= 0; i-- {
		var m protocol.CommandMsg
		if err := json.Unmarshal(c.sent[i], &m); err == nil && m.Type == protocol.TypeCommand {
			return m.Command, true
		}
	}
	return protocol.Command{}, false
}

func (c *fakeConn) commandCount() int {
	n := 0
	for _, b := range c.sent {
		var head struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(b, &head) == nil && head.Type == protocol.TypeCommand {
			n++
		}
	}
	return n
}

// ---- snapshot builders ----

func baseSnapshot() *protocol.Snapshot {
	return &protocol.Snapshot{
		MapSize: protocol.Size{W: 100, H: 100},
		Players: map[string]protocol.PlayerInfo{
			"me":  {Name: "Ada", Color: "#3cb44b", Credits: 1000},
			"foe": {Name: "Bo", Color: "#f58231", Credits: 1000},
		},
	}
}

func unit(id, owner, unitType string, x, y float64) protocol.UnitState {
	return protocol.UnitState{
		ID: id, Owner: owner, Type: unitType,
		Position: protocol.Vec2{X: x, Y: y},
		HP:       80, MaxHP: 80,
	}
}

func building(id, owner, bType string, x, y float64, buildable ...string) protocol.BuildingState {
	return protocol.BuildingState{
		ID: id, Owner: owner, Type: bType,
		Position: protocol.Vec2{X: x, Y: y},
		HP:       3000, MaxHP: 3000,
		BuildableUnits: buildable,
	}
}

func resource(id string, x, y, remaining float64) protocol.ResourceState {
	return protocol.ResourceState{
		ID: id, Position: protocol.Vec2{X: x, Y: y}, Remaining: remaining,
	}
}

// connectedFixture wires a world, selection and session that has already
// completed the join handshake as player "me".
func connectedFixture() (*World, *Selection, *Session, *Dispatcher, *Feed, *recordingRenderer, *fakeConn) {
	rend := newRecordingRenderer()
	w := NewWorld(rend)
	sel := NewSelection()
	sess := NewSession()
	feed := NewFeed()
	conn := newFakeConn()

	sess.StartConnecting("alpha")
	if err := sess.Attach(conn, "Ada"); err != nil {
		panic(err)
	}
	sess.HandleWelcome(protocol.Welcome{Type: protocol.TypeWelcome, PlayerID: "me", RoomID: "alpha", PlayerName: "Ada"})

	disp := NewDispatcher(sess, w, sel, feed)
	return w, sel, sess, disp, feed, rend, conn
}
