package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/xichen1997/RTS-made-by-AI/shared/protocol"
)

const (
	topBarH  = 30
	pad      = 8
	btnW     = 120
	btnH     = 28
	feedRows = 8
)

type rect struct{ x, y, w, h int }

func (r rect) hit(mx, my int) bool {
	return mx >= r.x && mx <= r.x+r.w && my >= r.y && my <= r.y+r.h
}

func readClipboard() (string, error) {
	return clipboard.ReadAll()
}

// Production costs shown on the buttons. Display only; the server rejects
// anything the player cannot afford.
var unitCosts = map[string]int{
	"harvester": 300,
	"soldier":   150,
	"tank":      650,
}

var (
	bgColor     = color.NRGBA{0x14, 0x18, 0x1e, 0xff}
	mapColor    = color.NRGBA{0x1f, 0x29, 0x1f, 0xff}
	panelColor  = color.NRGBA{0x22, 0x28, 0x30, 0xff}
	boxColor    = color.NRGBA{0x30, 0x38, 0x44, 0xff}
	focusColor  = color.NRGBA{0x50, 0x70, 0xa0, 0xff}
	btnColor    = color.NRGBA{0x3a, 0x58, 0x3a, 0xff}
	errColor    = color.NRGBA{0xd0, 0x60, 0x50, 0xff}
	dimText     = color.NRGBA{0x9a, 0xa4, 0xb0, 0xff}
)

func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(dst, s, basicfont.Face7x13, x, y, clr)
}

func (g *Game) drawJoin(dst *ebiten.Image) {
	dst.Fill(bgColor)
	cx := g.viewW / 2

	drawText(dst, "RED HORIZON", cx-44, 120, color.White)
	drawText(dst, "choose a name and a room, then join", cx-122, 140, dimText)

	g.nameBox = rect{cx - 140, 180, 280, 26}
	g.roomBox = rect{cx - 140, 230, 280, 26}
	g.diceBtn = rect{cx + 148, 230, 60, 26}
	g.joinBtn = rect{cx - 60, 284, btnW, btnH}

	drawInputBox(dst, g.nameBox, g.nameInput, !g.focusRoom)
	drawText(dst, "name", g.nameBox.x, g.nameBox.y-6, dimText)
	drawInputBox(dst, g.roomBox, g.roomInput, g.focusRoom)
	drawText(dst, "room (blank = new)", g.roomBox.x, g.roomBox.y-6, dimText)

	drawButton(dst, g.diceBtn, "random")
	label := "Join"
	if g.connectInFlight {
		label = "Joining…"
	}
	drawButton(dst, g.joinBtn, label)

	if g.connErrMsg != "" {
		drawText(dst, g.connErrMsg, cx-len(g.connErrMsg)*7/2, 340, errColor)
	}
	drawText(dst, "Ctrl+V pastes into the focused field", cx-122, g.viewH-24, dimText)
}

func drawInputBox(dst *ebiten.Image, r rect, value string, focused bool) {
	vector.DrawFilledRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), boxColor, false)
	border := color.Color(dimText)
	if focused {
		border = focusColor
	}
	vector.StrokeRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 1, border, false)
	shown := value
	if focused {
		shown += "_"
	}
	drawText(dst, shown, r.x+6, r.y+17, color.White)
}

func drawButton(dst *ebiten.Image, r rect, label string) {
	vector.DrawFilledRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), btnColor, false)
	vector.StrokeRect(dst, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 1, dimText, false)
	drawText(dst, label, r.x+(r.w-len(label)*7)/2, r.y+r.h/2+4, color.White)
}

func (g *Game) drawBattle(dst *ebiten.Image) {
	dst.Fill(bgColor)
	g.drawGround(dst)
	g.rend.Draw(dst, g.cam, g.sel)
	g.drawTopBar(dst)
	g.drawProductionPanel(dst)
	g.drawFeed(dst)
}

// drawGround shades the playable area so out-of-bounds clicks read as
// such. Corners are projected through the active camera.
func (g *Game) drawGround(dst *ebiten.Image) {
	size := g.world.MapSize
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if _, flat := g.cam.(FlatCamera); flat {
		x1, y1 := g.cam.MapToScreen(protocol.Vec2{})
		x2, y2 := g.cam.MapToScreen(protocol.Vec2{X: size.W, Y: size.H})
		vector.DrawFilledRect(dst, float32(x1), float32(y1), float32(x2-x1), float32(y2-y1), mapColor, false)
		return
	}
	// perspective: trace the border instead of filling a trapezoid
	corners := []protocol.Vec2{
		{X: 0, Y: 0}, {X: size.W, Y: 0}, {X: size.W, Y: size.H}, {X: 0, Y: size.H}, {X: 0, Y: 0},
	}
	for i := 0; i+1 < len(corners); i++ {
		x1, y1 := g.cam.MapToScreen(corners[i])
		x2, y2 := g.cam.MapToScreen(corners[i+1])
		vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), 1, mapColor, true)
	}
}

func (g *Game) drawTopBar(dst *ebiten.Image) {
	vector.DrawFilledRect(dst, 0, 0, float32(g.viewW), topBarH, panelColor, false)

	status := g.sess.Status().String()
	left := fmt.Sprintf("room %s [%s]", g.sess.RoomID(), status)
	drawText(dst, left, pad, 19, color.White)

	if p, ok := g.world.Player(g.sess.PlayerID()); ok {
		right := fmt.Sprintf("%s   credits %d", p.Name, p.Credits)
		drawText(dst, right, g.viewW-len(right)*7-pad, 19, parseHexColor(p.Color))
	}
}

func (g *Game) drawProductionPanel(dst *ebiten.Image) {
	g.prodBtns = g.prodBtns[:0]
	bid := g.sel.BuildingID()
	if bid == "" {
		return
	}
	b, ok := g.world.Building(bid)
	if !ok {
		return
	}

	y := g.viewH - btnH - pad
	x := pad
	drawText(dst, strings.ToUpper(b.Type), x, y-24, color.White)
	if len(b.Queue) > 0 {
		drawText(dst, "queue: "+strings.Join(b.Queue, ", "), x, y-10, dimText)
	}
	if len(b.BuildableUnits) == 0 {
		drawText(dst, "no production available", x, y+18, dimText)
		return
	}
	for _, ut := range b.BuildableUnits {
		r := rect{x, y, btnW, btnH}
		label := ut
		if cost, ok := unitCosts[ut]; ok {
			label = fmt.Sprintf("%s (%d)", ut, cost)
		}
		drawButton(dst, r, label)
		g.prodBtns = append(g.prodBtns, prodButton{r: r, unitType: ut})
		x += btnW + pad
	}
}

func (g *Game) drawFeed(dst *ebiten.Image) {
	lines := g.feed.Tail(feedRows)
	y := g.viewH - btnH - pad*2 - 14*len(lines) - 40
	for _, ln := range lines {
		drawText(dst, ln, pad, y, dimText)
		y += 14
	}
}
