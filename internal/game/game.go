package game

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/xichen1997/RTS-made-by-AI/internal/netcfg"
	"github.com/xichen1997/RTS-made-by-AI/shared/protocol"
)

type screen int

const (
	screenJoin screen = iota
	screenBattle
)

const (
	defaultViewW = 1024
	defaultViewH = 640
	maxInputLen  = 24
)

// Fallback extent until the first snapshot arrives.
var defaultMapSize = protocol.Size{W: 96, H: 64}

type connResult struct {
	n   *Net
	err error
}

type prodButton struct {
	r        rect
	unitType string
}

// Game is the ebiten shell tying the core together. All mutation happens
// inside Update; Draw only reads.
type Game struct {
	cfg netcfg.Config
	scr screen

	// join screen
	nameInput  string
	roomInput  string
	focusRoom  bool
	connErrMsg string

	connCh          chan connResult
	connectInFlight bool
	pendingName     string

	sess  *Session
	world *World
	sel   *Selection
	disp  *Dispatcher
	feed  *Feed
	rend  *EbitenRenderer

	cam            Camera
	camPerspective bool
	viewW, viewH   int

	lastPing time.Time

	// widget rects, laid out in Draw and hit-tested next Update
	nameBox, roomBox   rect
	joinBtn, diceBtn   rect
	prodBtns           []prodButton
}

func New() *Game {
	cfg := netcfg.Load()
	g := &Game{
		cfg:       cfg,
		scr:       screenJoin,
		nameInput: cfg.PlayerName,
		roomInput: cfg.Room,
		connCh:    make(chan connResult, 1),
		viewW:     defaultViewW,
		viewH:     defaultViewH,
	}
	g.sess = NewSession()
	g.rend = NewEbitenRenderer()
	g.world = NewWorld(g.rend)
	g.sel = NewSelection()
	g.feed = NewFeed()
	g.disp = NewDispatcher(g.sess, g.world, g.sel, g.feed)
	g.rebuildCamera()
	return g
}

// rebuildCamera re-derives the pick transform. Called on resize, camera
// toggle, map-size change and disconnect so nothing stale is ever used.
func (g *Game) rebuildCamera() {
	size := g.world.MapSize
	if size.W <= 0 || size.H <= 0 {
		size = defaultMapSize
	}
	if g.camPerspective {
		g.cam = NewOrbitCamera(g.viewW, g.viewH, size)
	} else {
		g.cam = NewFlatCamera(g.viewW, g.viewH, size)
	}
}

func (g *Game) Update() error {
	switch g.scr {
	case screenJoin:
		g.updateJoin()
	case screenBattle:
		g.updateBattle()
	}
	return nil
}

func (g *Game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW != g.viewW || outsideH != g.viewH {
		g.viewW, g.viewH = outsideW, outsideH
		g.rebuildCamera()
	}
	return outsideW, outsideH
}

// ---- join screen ----

func freshRoomID() string {
	return uuid.NewString()[:8]
}

func (g *Game) updateJoin() {
	select {
	case res := <-g.connCh:
		g.connectInFlight = false
		if res.err != nil {
			g.sess.Reset()
			g.connErrMsg = "Could not reach the server."
			break
		}
		if err := g.sess.Attach(res.n, g.pendingName); err != nil {
			log.Printf("NET: join send failed: %v", err)
			g.sess.Reset()
			g.connErrMsg = "Connection dropped during join."
			break
		}
		g.feed.Add("Joining room " + g.sess.RoomID() + "…")
		g.scr = screenBattle
	default:
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		switch {
		case g.nameBox.hit(mx, my):
			g.focusRoom = false
		case g.roomBox.hit(mx, my):
			g.focusRoom = true
		case g.diceBtn.hit(mx, my):
			g.roomInput = freshRoomID()
		case g.joinBtn.hit(mx, my):
			g.startConnect()
		}
	}

	g.editFocusedInput()

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.focusRoom = !g.focusRoom
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.startConnect()
	}
}

func (g *Game) editFocusedInput() {
	target := &g.nameInput
	if g.focusRoom {
		target = &g.roomInput
	}

	if (ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)) &&
		inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if pasted, err := readClipboard(); err == nil {
			for _, r := range pasted {
				if len(*target) >= maxInputLen {
					break
				}
				if r >= 0x20 && r != 0x7f {
					*target += string(r)
				}
			}
		}
		return
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if len(*target) >= maxInputLen {
			break
		}
		if r >= 0x20 && r != 0x7f {
			*target += string(r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(*target) > 0 {
		*target = (*target)[:len(*target)-1]
	}
}

func (g *Game) startConnect() {
	if g.connectInFlight {
		return
	}
	name := strings.TrimSpace(g.nameInput)
	if name == "" {
		name = "Commander"
	}
	room := strings.TrimSpace(g.roomInput)
	if room == "" {
		room = freshRoomID()
		g.roomInput = room
	}
	g.pendingName = name
	g.connErrMsg = ""
	g.connectInFlight = true
	g.sess.StartConnecting(room)

	url := g.cfg.SocketURL(room)
	go func() {
		n, err := Dial(url)
		// send result without blocking forever; drop oldest on overflow
		select {
		case g.connCh <- connResult{n: n, err: err}:
		default:
			select {
			case <-g.connCh:
			default:
			}
			g.connCh <- connResult{n: n, err: err}
		}
	}()
}

// ---- battle screen ----

func (g *Game) updateBattle() {
	conn := g.sess.Conn()
	if conn == nil {
		g.onDisconnect("Connection lost.")
		return
	}

drain:
	for {
		select {
		case raw, ok := <-conn.Inbound():
			if !ok {
				g.onDisconnect("Connection closed.")
				return
			}
			g.handleFrame(raw)
		default:
			break drain
		}
	}

	if g.sess.Connected() && time.Since(g.lastPing) > 20*time.Second {
		_ = g.sess.Send(protocol.NewPing())
		g.lastPing = time.Now()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.sel.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.camPerspective = !g.camPerspective
		g.rebuildCamera()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.onDisconnect("Left the room.")
		return
	}

	mx, my := ebiten.CursorPosition()
	additive := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if bt, ok := g.prodButtonAt(mx, my); ok {
			g.disp.Produce(bt)
		} else if mp, ok := g.cam.ScreenToMap(float64(mx), float64(my)); ok {
			ref, found := g.world.PickAt(mp)
			if additive {
				g.sel.Additive(ref, found, g.world, g.sess.PlayerID())
			} else {
				g.sel.Primary(ref, found, g.world, g.sess.PlayerID())
			}
		} else if !additive {
			g.sel.Clear()
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && g.sel.UnitCount() > 0 {
		if mp, ok := g.cam.ScreenToMap(float64(mx), float64(my)); ok {
			g.disp.ContextAt(mp)
		}
	}
}

func (g *Game) prodButtonAt(mx, my int) (string, bool) {
	for _, b := range g.prodBtns {
		if b.r.hit(mx, my) {
			return b.unitType, true
		}
	}
	return "", false
}

// handleFrame decodes and applies one inbound frame. Bad frames are
// dropped with an advisory; mirror and selection stay untouched.
func (g *Game) handleFrame(raw []byte) {
	msg, err := protocol.Decode(raw)
	if err != nil {
		log.Printf("NET: dropping frame: %v", err)
		g.feed.Add("Ignored an unrecognized server message.")
		return
	}
	switch m := msg.(type) {
	case protocol.Welcome:
		g.sess.HandleWelcome(m)
		g.feed.Add("Joined room " + g.sess.RoomID() + " as " + g.sess.PlayerName() + ".")
	case protocol.State:
		prev := g.world.MapSize
		g.world.Reconcile(&m.State)
		g.sel.Prune(g.world)
		if g.world.MapSize != prev {
			g.rebuildCamera()
		}
		g.feed.AddBatch(m.State.Events)
	case protocol.Event:
		g.feed.Add(m.Message)
	case protocol.Pong:
	}
}

// onDisconnect runs the full session reset: socket torn down, selection
// emptied, every proxy destroyed, player id discarded. Reconnecting is
// always a fresh user-driven join.
func (g *Game) onDisconnect(reason string) {
	g.sess.Reset()
	g.sel.Clear()
	g.world.Clear()
	g.connectInFlight = false
	g.connErrMsg = reason
	g.feed.Add(reason)
	g.prodBtns = g.prodBtns[:0]
	g.scr = screenJoin
	g.rebuildCamera()
}

func (g *Game) Draw(dst *ebiten.Image) {
	switch g.scr {
	case screenJoin:
		g.drawJoin(dst)
	case screenBattle:
		g.drawBattle(dst)
	}
}
