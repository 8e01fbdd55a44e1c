package game

import (
	"math"

	"github.com/xichen1997/RTS-made-by-AI/shared/protocol"
)

// Camera converts between screen pixels and map units. Implementations
// are cheap values rebuilt whenever the viewport or map size changes, so
// no stale transform survives a resize or a room change.
type Camera interface {
	// ScreenToMap resolves a pointer position; false when the point
	// lands outside the map (or the ray misses the ground entirely).
	ScreenToMap(sx, sy float64) (protocol.Vec2, bool)
	// MapToScreen projects a map point for drawing.
	MapToScreen(p protocol.Vec2) (float64, float64)
}

// FlatCamera is the plain top-down view: a uniform scale from map units
// to the full viewport.
type FlatCamera struct {
	viewW, viewH float64
	mapW, mapH   float64
}

func NewFlatCamera(viewW, viewH int, size protocol.Size) FlatCamera {
	return FlatCamera{
		viewW: float64(viewW), viewH: float64(viewH),
		mapW: size.W, mapH: size.H,
	}
}

func (c FlatCamera) ScreenToMap(sx, sy float64) (protocol.Vec2, bool) {
	if c.viewW <= 0 || c.viewH <= 0 || c.mapW <= 0 || c.mapH <= 0 {
		return protocol.Vec2{}, false
	}
	p := protocol.Vec2{X: sx * c.mapW / c.viewW, Y: sy * c.mapH / c.viewH}
	if p.X < 0 || p.X > c.mapW || p.Y < 0 || p.Y > c.mapH {
		return protocol.Vec2{}, false
	}
	return p, true
}

func (c FlatCamera) MapToScreen(p protocol.Vec2) (float64, float64) {
	if c.mapW <= 0 || c.mapH <= 0 {
		return 0, 0
	}
	return p.X * c.viewW / c.mapW, p.Y * c.viewH / c.mapH
}

type vec3 struct{ x, y, z float64 }

func (a vec3) sub(b vec3) vec3    { return vec3{a.x - b.x, a.y - b.y, a.z - b.z} }
func (a vec3) add(b vec3) vec3    { return vec3{a.x + b.x, a.y + b.y, a.z + b.z} }
func (a vec3) scale(s float64) vec3 { return vec3{a.x * s, a.y * s, a.z * s} }
func (a vec3) dot(b vec3) float64 { return a.x*b.x + a.y*b.y + a.z*b.z }
func (a vec3) cross(b vec3) vec3 {
	return vec3{a.y*b.z - a.z*b.y, a.z*b.x - a.x*b.z, a.x*b.y - a.y*b.x}
}
func (a vec3) norm() vec3 {
	l := math.Sqrt(a.dot(a))
	if l == 0 {
		return a
	}
	return a.scale(1 / l)
}

// OrbitCamera is the perspective view the 3D client variants use: an eye
// hovering south of the map center, looking down at it. Map (x, y) lies
// in the world x/z plane; the ground is y = 0. Picking casts a ray
// through the pointer's NDC and intersects it with that plane.
type OrbitCamera struct {
	eye, target  vec3
	fovY         float64 // radians
	viewW, viewH float64
	mapW, mapH   float64

	// cached basis
	forward, right, up vec3
	tanF               float64
}

func NewOrbitCamera(viewW, viewH int, size protocol.Size) OrbitCamera {
	span := math.Max(size.W, size.H)
	if span <= 0 {
		span = 64
	}
	target := vec3{size.W / 2, 0, size.H / 2}
	eye := vec3{size.W / 2, span * 0.75, size.H/2 + span*0.65}
	return newOrbitCamera(eye, target, math.Pi/4, viewW, viewH, size)
}

func newOrbitCamera(eye, target vec3, fovY float64, viewW, viewH int, size protocol.Size) OrbitCamera {
	c := OrbitCamera{
		eye: eye, target: target, fovY: fovY,
		viewW: float64(viewW), viewH: float64(viewH),
		mapW: size.W, mapH: size.H,
	}
	c.forward = target.sub(eye).norm()
	worldUp := vec3{0, 1, 0}
	c.right = c.forward.cross(worldUp).norm()
	if c.right.dot(c.right) < 1e-12 {
		// looking straight down; pick an arbitrary horizontal basis
		c.right = vec3{1, 0, 0}
	}
	c.up = c.right.cross(c.forward)
	c.tanF = math.Tan(fovY / 2)
	return c
}

func (c OrbitCamera) aspect() float64 {
	if c.viewH <= 0 {
		return 1
	}
	return c.viewW / c.viewH
}

func (c OrbitCamera) ScreenToMap(sx, sy float64) (protocol.Vec2, bool) {
	if c.viewW <= 0 || c.viewH <= 0 || c.mapW <= 0 || c.mapH <= 0 {
		return protocol.Vec2{}, false
	}
	ndcX := 2*sx/c.viewW - 1
	ndcY := 1 - 2*sy/c.viewH

	dir := c.forward.
		add(c.right.scale(ndcX * c.tanF * c.aspect())).
		add(c.up.scale(ndcY * c.tanF))
	if math.Abs(dir.y) < 1e-9 {
		return protocol.Vec2{}, false // ray parallel to the ground
	}
	t := -c.eye.y / dir.y
	if t <= 0 {
		return protocol.Vec2{}, false // ground is behind the camera
	}
	hit := c.eye.add(dir.scale(t))
	p := protocol.Vec2{X: hit.x, Y: hit.z}
	if p.X < 0 || p.X > c.mapW || p.Y < 0 || p.Y > c.mapH {
		return protocol.Vec2{}, false
	}
	return p, true
}

func (c OrbitCamera) MapToScreen(p protocol.Vec2) (float64, float64) {
	rel := vec3{p.X, 0, p.Y}.sub(c.eye)
	cz := rel.dot(c.forward)
	if cz <= 1e-9 {
		return -1e9, -1e9 // behind the camera, park it far offscreen
	}
	cx := rel.dot(c.right)
	cy := rel.dot(c.up)
	ndcX := cx / (cz * c.tanF * c.aspect())
	ndcY := cy / (cz * c.tanF)
	return (ndcX + 1) / 2 * c.viewW, (1 - ndcY) / 2 * c.viewH
}
