package game

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenRenderer keeps one sprite record per proxy and rasterizes them
// with vector shapes. It satisfies Renderer; the mirror owns proxy
// lifetimes, Draw only reads.
type EbitenRenderer struct {
	next    Handle
	sprites map[Handle]EntityView
}

func NewEbitenRenderer() *EbitenRenderer {
	return &EbitenRenderer{sprites: map[Handle]EntityView{}}
}

func (r *EbitenRenderer) CreateProxy(v EntityView) Handle {
	r.next++
	r.sprites[r.next] = v
	return r.next
}

func (r *EbitenRenderer) UpdateProxy(h Handle, v EntityView) {
	if _, ok := r.sprites[h]; ok {
		r.sprites[h] = v
	}
}

func (r *EbitenRenderer) DestroyProxy(h Handle) {
	delete(r.sprites, h)
}

func (r *EbitenRenderer) ProxyCount() int { return len(r.sprites) }

// Draw paints every live proxy through the camera. Buildings go under
// units; iteration is sorted so the z-order is stable frame to frame.
func (r *EbitenRenderer) Draw(dst *ebiten.Image, cam Camera, sel *Selection) {
	order := make([]Handle, 0, len(r.sprites))
	for h := range r.sprites {
		order = append(order, h)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := r.sprites[order[i]], r.sprites[order[j]]
		if a.Category != b.Category {
			return drawLayer(a.Category) < drawLayer(b.Category)
		}
		return order[i] < order[j]
	})

	for _, h := range order {
		v := r.sprites[h]
		sx, sy := cam.MapToScreen(v.Pos)
		if sx < -64 || sy < -64 || sx > float64(dst.Bounds().Dx())+64 || sy > float64(dst.Bounds().Dy())+64 {
			continue
		}
		x, y := float32(sx), float32(sy)
		clr := parseHexColor(v.Color)

		switch v.Category {
		case CategoryResource:
			vector.DrawFilledCircle(dst, x, y, 9, color.NRGBA{0xd8, 0xb4, 0x2f, 0xff}, true)
			vector.StrokeCircle(dst, x, y, 9, 1, color.NRGBA{0x6b, 0x58, 0x10, 0xff}, true)
		case CategoryBuilding:
			const bw, bh = 30, 22
			vector.DrawFilledRect(dst, x-bw/2, y-bh/2, bw, bh, clr, true)
			vector.StrokeRect(dst, x-bw/2, y-bh/2, bw, bh, 1, color.NRGBA{0, 0, 0, 0x80}, true)
			if sel != nil && sel.BuildingID() == v.ID {
				vector.StrokeRect(dst, x-bw/2-3, y-bh/2-3, bw+6, bh+6, 2, color.White, true)
			}
			drawHPBar(dst, x, y-bh/2-7, v.HP, v.MaxHP)
		case CategoryUnit:
			rad := float32(6)
			if v.Type == "tank" {
				rad = 8
			}
			vector.DrawFilledCircle(dst, x, y, rad, clr, true)
			if sel != nil && sel.HasUnit(v.ID) {
				vector.StrokeCircle(dst, x, y, rad+3, 2, color.White, true)
			}
			drawHPBar(dst, x, y-rad-6, v.HP, v.MaxHP)
		}
	}
}

func drawLayer(c Category) int {
	switch c {
	case CategoryResource:
		return 0
	case CategoryBuilding:
		return 1
	default:
		return 2
	}
}

func drawHPBar(dst *ebiten.Image, cx, top float32, hp, maxHP float64) {
	if maxHP <= 0 || hp >= maxHP {
		return
	}
	const w, h = 20, 3
	frac := float32(hp / maxHP)
	if frac < 0 {
		frac = 0
	}
	vector.DrawFilledRect(dst, cx-w/2, top, w, h, color.NRGBA{0x40, 0x10, 0x10, 0xff}, false)
	vector.DrawFilledRect(dst, cx-w/2, top, w*frac, h, color.NRGBA{0x30, 0xc0, 0x40, 0xff}, false)
}

// parseHexColor understands "#rrggbb"; anything else comes out gray.
func parseHexColor(s string) color.NRGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{0x80, 0x80, 0x80, 0xff}
	}
	hex := func(c byte) uint8 {
		switch {
		case c >= '0' && c <= '9':
			return c - '0'
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10
		}
		return 0
	}
	return color.NRGBA{
		R: hex(s[1])<<4 | hex(s[2]),
		G: hex(s[3])<<4 | hex(s[4]),
		B: hex(s[5])<<4 | hex(s[6]),
		A: 0xff,
	}
}
