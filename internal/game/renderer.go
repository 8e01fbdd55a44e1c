package game

import "github.com/xichen1997/RTS-made-by-AI/shared/protocol"

// Category distinguishes the three entity pools a snapshot carries.
type Category int

const (
	CategoryUnit Category = iota
	CategoryBuilding
	CategoryResource
)

func (c Category) String() string {
	switch c {
	case CategoryUnit:
		return "unit"
	case CategoryBuilding:
		return "building"
	default:
		return "resource"
	}
}

// Handle identifies a render proxy. Opaque outside the renderer.
type Handle uint64

// EntityView is everything a renderer may know about one entity. The
// world mirror resolves owner ids to colors before handing views over so
// renderers never look at snapshot internals.
type EntityView struct {
	Category  Category
	ID        string
	Owner     string
	Type      string
	Pos       protocol.Vec2
	HP        float64
	MaxHP     float64
	Remaining float64 // resources only
	Color     string  // "#rrggbb", neutral for resources
}

// Renderer is the capability surface the mirror drives. Proxies are
// created, moved and destroyed only by World.Reconcile / World.Clear.
type Renderer interface {
	CreateProxy(v EntityView) Handle
	UpdateProxy(h Handle, v EntityView)
	DestroyProxy(h Handle)
}
