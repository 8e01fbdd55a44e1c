package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xichen1997/RTS-made-by-AI/shared/protocol"
)

func TestJoinHandshake(t *testing.T) {
	sess := NewSession()
	conn := newFakeConn()

	assert.Equal(t, "disconnected", sess.Status().String())

	sess.StartConnecting("alpha")
	assert.Equal(t, "connecting", sess.Status().String())

	require.NoError(t, sess.Attach(conn, "Ada"))
	require.Len(t, conn.sent, 1)
	assert.JSONEq(t, `{"type":"join","player_name":"Ada"}`, string(conn.sent[0]))
	assert.False(t, sess.Connected(), "connected only after welcome")

	sess.HandleWelcome(protocol.Welcome{PlayerID: "p9", RoomID: "alpha", PlayerName: "Ada"})
	assert.True(t, sess.Connected())
	assert.Equal(t, "p9", sess.PlayerID())
	assert.Equal(t, "alpha", sess.RoomID())
}

func TestSendRefusedUntilWelcome(t *testing.T) {
	sess := NewSession()
	conn := newFakeConn()
	sess.StartConnecting("alpha")
	require.NoError(t, sess.Attach(conn, "Ada"))

	err := sess.Send(protocol.NewPing())
	assert.ErrorIs(t, err, errNotConnected)
}

func TestResetDiscardsIdentity(t *testing.T) {
	sess := NewSession()
	conn := newFakeConn()
	sess.StartConnecting("alpha")
	require.NoError(t, sess.Attach(conn, "Ada"))
	sess.HandleWelcome(protocol.Welcome{PlayerID: "p9", RoomID: "alpha"})

	sess.Reset()
	assert.False(t, sess.Connected())
	assert.Empty(t, sess.PlayerID())
	assert.Empty(t, sess.RoomID())
	assert.True(t, conn.closed)
	assert.ErrorIs(t, sess.Send(protocol.NewPing()), errNotConnected)
}

// gameFixture builds a Game already attached to a fake socket, bypassing
// the dial path.
func gameFixture(t *testing.T) (*Game, *fakeConn) {
	t.Helper()
	g := New()
	conn := newFakeConn()
	g.sess.StartConnecting("alpha")
	require.NoError(t, g.sess.Attach(conn, "Ada"))
	g.scr = screenBattle
	return g, conn
}

func TestHandleFrameWelcomeThenState(t *testing.T) {
	g, _ := gameFixture(t)

	g.handleFrame([]byte(`{"type":"welcome","player_id":"me","room_id":"alpha","player_name":"Ada"}`))
	assert.True(t, g.sess.Connected())
	assert.Equal(t, "me", g.sess.PlayerID())

	g.handleFrame([]byte(`{
		"type":"state",
		"state":{
			"tick":1,
			"map_size":[100,100],
			"players":{"me":{"name":"Ada","color":"#3cb44b","credits":1000}},
			"units":[{"id":"u1","owner":"me","type":"soldier","position":[10,10],"hp":80,"max_hp":80}],
			"buildings":[],
			"resources":[],
			"events":["Ada established a base."]
		}
	}`))

	_, ok := g.world.Unit("u1")
	assert.True(t, ok)
	assert.Equal(t, protocol.Size{W: 100, H: 100}, g.world.MapSize)
	assert.Contains(t, g.feed.Entries(), "Ada established a base.")
}

func TestHandleFrameDropsGarbage(t *testing.T) {
	g, _ := gameFixture(t)
	g.handleFrame([]byte(`{"type":"welcome","player_id":"me","room_id":"alpha"}`))
	g.handleFrame([]byte(`{
		"type":"state",
		"state":{"tick":1,"map_size":[100,100],"players":{},"units":[{"id":"u1","owner":"me","type":"soldier","position":[10,10],"hp":80,"max_hp":80}],"buildings":[],"resources":[],"events":[]}
	}`))

	before := len(g.feed.Entries())
	g.handleFrame([]byte(`{"type":"loot_drop"}`))
	g.handleFrame([]byte(`{{{`))

	// advisories only; mirror untouched
	assert.Len(t, g.feed.Entries(), before+2)
	_, ok := g.world.Unit("u1")
	assert.True(t, ok)
	assert.True(t, g.sess.Connected())
}

func TestStateReconciliationPrunesSelection(t *testing.T) {
	g, _ := gameFixture(t)
	g.handleFrame([]byte(`{"type":"welcome","player_id":"me","room_id":"alpha"}`))
	g.handleFrame([]byte(`{
		"type":"state",
		"state":{"tick":1,"map_size":[100,100],"players":{"me":{"name":"Ada","color":"#3cb44b","credits":0}},"units":[{"id":"u2","owner":"me","type":"soldier","position":[10,10],"hp":80,"max_hp":80}],"buildings":[],"resources":[],"events":[]}
	}`))

	g.sel.Primary(unitRef("u2"), true, g.world, "me")
	require.Equal(t, []string{"u2"}, g.sel.UnitIDs())

	g.handleFrame([]byte(`{
		"type":"state",
		"state":{"tick":2,"map_size":[100,100],"players":{"me":{"name":"Ada","color":"#3cb44b","credits":0}},"units":[],"buildings":[],"resources":[],"events":[]}
	}`))
	assert.True(t, g.sel.Empty())
}

func TestSocketCloseResetsEverything(t *testing.T) {
	g, conn := gameFixture(t)
	g.handleFrame([]byte(`{"type":"welcome","player_id":"me","room_id":"alpha"}`))
	g.handleFrame([]byte(`{
		"type":"state",
		"state":{"tick":1,"map_size":[100,100],"players":{"me":{"name":"Ada","color":"#3cb44b","credits":0}},"units":[{"id":"u2","owner":"me","type":"soldier","position":[10,10],"hp":80,"max_hp":80}],"buildings":[],"resources":[],"events":[]}
	}`))
	g.sel.Primary(unitRef("u2"), true, g.world, "me")

	close(conn.in)
	g.updateBattle()

	assert.Equal(t, screenJoin, g.scr)
	assert.True(t, g.sel.Empty())
	assert.Zero(t, g.rend.ProxyCount())
	assert.False(t, g.sess.Connected())
	assert.Empty(t, g.sess.PlayerID())
}

func TestEventFrameFeedsLog(t *testing.T) {
	g, _ := gameFixture(t)
	g.handleFrame([]byte(`{"type":"event","message":"Bo joined the battle."}`))
	assert.Contains(t, g.feed.Entries(), "Bo joined the battle.")
}
