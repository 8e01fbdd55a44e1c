package game

import (
	"math"

	"github.com/xichen1997/RTS-made-by-AI/shared/protocol"
)

// EntityRef names one pickable entity.
type EntityRef struct {
	Category Category
	ID       string
}

// Pick geometry lives in one table so the click feel stays consistent
// across renderers. Values are map units.
type footprint struct{ w, d float64 }

var unitPickRadii = map[string]float64{
	"harvester": 1.8,
	"soldier":   1.2,
	"tank":      2.0,
}

const defaultUnitPickRadius = 1.4

var buildingFootprints = map[string]footprint{
	"hq":      {8, 8},
	"factory": {7, 6},
}

var defaultBuildingFootprint = footprint{5, 5}

// Resources are deliberately easier to hit than units.
const (
	resourcePickRadius = 2.2
	resourcePickMargin = 0.8
)

func unitPickRadius(unitType string) float64 {
	if r, ok := unitPickRadii[unitType]; ok {
		return r
	}
	return defaultUnitPickRadius
}

func buildingFootprintFor(buildingType string) footprint {
	if f, ok := buildingFootprints[buildingType]; ok {
		return f
	}
	return defaultBuildingFootprint
}

func dist(a, b protocol.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// bboxDistance is the signed distance from p to an axis-aligned box
// centered at c; <= 0 means containment, and more negative means deeper.
func bboxDistance(p, c protocol.Vec2, f footprint) float64 {
	dx := math.Abs(p.X-c.X) - f.w/2
	dy := math.Abs(p.Y-c.Y) - f.d/2
	return math.Max(dx, dy)
}

// PickAt resolves a map point to the best-matching entity. Units beat
// buildings beat resources; within a category the closest (or deepest
// contained) candidate wins.
func (w *World) PickAt(p protocol.Vec2) (EntityRef, bool) {
	bestID := ""
	bestScore := math.Inf(1)

	for id, e := range w.units {
		d := dist(p, e.state.Position)
		if d < unitPickRadius(e.state.Type) && d < bestScore {
			bestID, bestScore = id, d
		}
	}
	if bestID != "" {
		return EntityRef{Category: CategoryUnit, ID: bestID}, true
	}

	for id, e := range w.buildings {
		d := bboxDistance(p, e.state.Position, buildingFootprintFor(e.state.Type))
		if d <= 0 && d < bestScore {
			bestID, bestScore = id, d
		}
	}
	if bestID != "" {
		return EntityRef{Category: CategoryBuilding, ID: bestID}, true
	}

	for id, e := range w.resources {
		d := dist(p, e.state.Position)
		if d < resourcePickRadius+resourcePickMargin && d < bestScore {
			bestID, bestScore = id, d
		}
	}
	if bestID != "" {
		return EntityRef{Category: CategoryResource, ID: bestID}, true
	}
	return EntityRef{}, false
}
