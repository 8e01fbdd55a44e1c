package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xichen1997/RTS-made-by-AI/shared/protocol"
)

func TestFlatCameraMapsCorners(t *testing.T) {
	cam := NewFlatCamera(800, 600, protocol.Size{W: 100, H: 50})

	p, ok := cam.ScreenToMap(0, 0)
	require.True(t, ok)
	assert.Equal(t, protocol.Vec2{X: 0, Y: 0}, p)

	p, ok = cam.ScreenToMap(800, 600)
	require.True(t, ok)
	assert.Equal(t, protocol.Vec2{X: 100, Y: 50}, p)

	p, ok = cam.ScreenToMap(400, 300)
	require.True(t, ok)
	assert.InDelta(t, 50, p.X, 1e-9)
	assert.InDelta(t, 25, p.Y, 1e-9)
}

func TestFlatCameraRejectsOutOfBounds(t *testing.T) {
	cam := NewFlatCamera(800, 600, protocol.Size{W: 100, H: 50})

	_, ok := cam.ScreenToMap(-1, 10)
	assert.False(t, ok)
	_, ok = cam.ScreenToMap(10, 601)
	assert.False(t, ok)

	// degenerate viewport or map never resolves
	zero := NewFlatCamera(0, 0, protocol.Size{W: 100, H: 50})
	_, ok = zero.ScreenToMap(0, 0)
	assert.False(t, ok)
}

func TestFlatCameraRoundTrip(t *testing.T) {
	cam := NewFlatCamera(1024, 640, protocol.Size{W: 96, H: 64})
	for _, p := range []protocol.Vec2{{X: 1, Y: 1}, {X: 48, Y: 32}, {X: 95, Y: 63}} {
		sx, sy := cam.MapToScreen(p)
		back, ok := cam.ScreenToMap(sx, sy)
		require.True(t, ok)
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
	}
}

func TestOrbitCameraCenterHitsLookTarget(t *testing.T) {
	size := protocol.Size{W: 96, H: 64}
	cam := NewOrbitCamera(1024, 640, size)

	p, ok := cam.ScreenToMap(512, 320)
	require.True(t, ok)
	assert.InDelta(t, size.W/2, p.X, 1e-6)
	assert.InDelta(t, size.H/2, p.Y, 1e-6)
}

func TestOrbitCameraRoundTrip(t *testing.T) {
	cam := NewOrbitCamera(1024, 640, protocol.Size{W: 96, H: 64})
	for _, p := range []protocol.Vec2{{X: 48, Y: 32}, {X: 30, Y: 40}, {X: 70, Y: 20}} {
		sx, sy := cam.MapToScreen(p)
		back, ok := cam.ScreenToMap(sx, sy)
		require.True(t, ok, "point %+v should unproject", p)
		assert.InDelta(t, p.X, back.X, 1e-6)
		assert.InDelta(t, p.Y, back.Y, 1e-6)
	}
}

func TestOrbitCameraParallelRayMisses(t *testing.T) {
	// camera looking dead horizontal: the center ray never meets the ground
	size := protocol.Size{W: 96, H: 64}
	cam := newOrbitCamera(vec3{48, 20, 120}, vec3{48, 20, 0}, math.Pi/4, 1024, 640, size)

	_, ok := cam.ScreenToMap(512, 320)
	assert.False(t, ok)
}

func TestOrbitCameraSkywardRayMisses(t *testing.T) {
	size := protocol.Size{W: 96, H: 64}
	cam := newOrbitCamera(vec3{48, 20, 120}, vec3{48, 20, 0}, math.Pi/4, 1024, 640, size)

	// top of the screen points above the horizon
	_, ok := cam.ScreenToMap(512, 0)
	assert.False(t, ok)
}

func TestOrbitCameraRejectsPointsOffTheMap(t *testing.T) {
	cam := NewOrbitCamera(1024, 640, protocol.Size{W: 96, H: 64})

	// grazing ray near the top of the viewport lands far beyond the far edge
	if p, ok := cam.ScreenToMap(512, 1); ok {
		assert.True(t, p.X >= 0 && p.X <= 96 && p.Y >= 0 && p.Y <= 64)
	}
}
