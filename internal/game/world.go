package game

import (
	"github.com/xichen1997/RTS-made-by-AI/shared/protocol"
)

const neutralColor = "#b0a070"

type unitEntry struct {
	state  protocol.UnitState
	handle Handle
}

type buildingEntry struct {
	state  protocol.BuildingState
	handle Handle
}

type resourceEntry struct {
	state  protocol.ResourceState
	handle Handle
}

// World mirrors the latest fully-reconciled snapshot. It is the single
// writer of render proxies: Reconcile and Clear are the only places a
// proxy is ever created or destroyed. The render tick reads, never writes.
type World struct {
	renderer  Renderer
	MapSize   protocol.Size
	players   map[string]protocol.PlayerInfo
	units     map[string]*unitEntry
	buildings map[string]*buildingEntry
	resources map[string]*resourceEntry
}

func NewWorld(r Renderer) *World {
	return &World{
		renderer:  r,
		players:   map[string]protocol.PlayerInfo{},
		units:     map[string]*unitEntry{},
		buildings: map[string]*buildingEntry{},
		resources: map[string]*resourceEntry{},
	}
}

// Reconcile applies one snapshot: upsert every entity present, destroy
// every proxy whose id is gone. After it returns the mirror keys equal
// the snapshot ids exactly, per category.
func (w *World) Reconcile(s *protocol.Snapshot) {
	if s.MapSize.W > 0 && s.MapSize.H > 0 {
		w.MapSize = s.MapSize
	}

	w.players = make(map[string]protocol.PlayerInfo, len(s.Players))
	for id, p := range s.Players {
		w.players[id] = p
	}

	seenU := make(map[string]bool, len(s.Units))
	for _, u := range s.Units {
		seenU[u.ID] = true
		if e, ok := w.units[u.ID]; ok {
			e.state = u
			w.renderer.UpdateProxy(e.handle, w.unitView(u))
		} else {
			w.units[u.ID] = &unitEntry{state: u, handle: w.renderer.CreateProxy(w.unitView(u))}
		}
	}
	for id, e := range w.units {
		if !seenU[id] {
			w.renderer.DestroyProxy(e.handle)
			delete(w.units, id)
		}
	}

	seenB := make(map[string]bool, len(s.Buildings))
	for _, b := range s.Buildings {
		seenB[b.ID] = true
		if e, ok := w.buildings[b.ID]; ok {
			e.state = b
			w.renderer.UpdateProxy(e.handle, w.buildingView(b))
		} else {
			w.buildings[b.ID] = &buildingEntry{state: b, handle: w.renderer.CreateProxy(w.buildingView(b))}
		}
	}
	for id, e := range w.buildings {
		if !seenB[id] {
			w.renderer.DestroyProxy(e.handle)
			delete(w.buildings, id)
		}
	}

	seenR := make(map[string]bool, len(s.Resources))
	for _, r := range s.Resources {
		seenR[r.ID] = true
		if e, ok := w.resources[r.ID]; ok {
			e.state = r
			w.renderer.UpdateProxy(e.handle, resourceView(r))
		} else {
			w.resources[r.ID] = &resourceEntry{state: r, handle: w.renderer.CreateProxy(resourceView(r))}
		}
	}
	for id, e := range w.resources {
		if !seenR[id] {
			w.renderer.DestroyProxy(e.handle)
			delete(w.resources, id)
		}
	}
}

// Clear destroys every proxy. Used on disconnect and room change.
func (w *World) Clear() {
	for id, e := range w.units {
		w.renderer.DestroyProxy(e.handle)
		delete(w.units, id)
	}
	for id, e := range w.buildings {
		w.renderer.DestroyProxy(e.handle)
		delete(w.buildings, id)
	}
	for id, e := range w.resources {
		w.renderer.DestroyProxy(e.handle)
		delete(w.resources, id)
	}
	w.players = map[string]protocol.PlayerInfo{}
	w.MapSize = protocol.Size{}
}

func (w *World) Unit(id string) (protocol.UnitState, bool) {
	e, ok := w.units[id]
	if !ok {
		return protocol.UnitState{}, false
	}
	return e.state, true
}

func (w *World) Building(id string) (protocol.BuildingState, bool) {
	e, ok := w.buildings[id]
	if !ok {
		return protocol.BuildingState{}, false
	}
	return e.state, true
}

func (w *World) Resource(id string) (protocol.ResourceState, bool) {
	e, ok := w.resources[id]
	if !ok {
		return protocol.ResourceState{}, false
	}
	return e.state, true
}

func (w *World) Player(id string) (protocol.PlayerInfo, bool) {
	p, ok := w.players[id]
	return p, ok
}

// PlayerColor resolves an owner id to its assigned color. Neutral for
// unowned entities and unknown owners.
func (w *World) PlayerColor(owner string) string {
	if p, ok := w.players[owner]; ok && p.Color != "" {
		return p.Color
	}
	return neutralColor
}

func (w *World) unitView(u protocol.UnitState) EntityView {
	return EntityView{
		Category: CategoryUnit,
		ID:       u.ID,
		Owner:    u.Owner,
		Type:     u.Type,
		Pos:      u.Position,
		HP:       u.HP,
		MaxHP:    u.MaxHP,
		Color:    w.PlayerColor(u.Owner),
	}
}

func (w *World) buildingView(b protocol.BuildingState) EntityView {
	return EntityView{
		Category: CategoryBuilding,
		ID:       b.ID,
		Owner:    b.Owner,
		Type:     b.Type,
		Pos:      b.Position,
		HP:       b.HP,
		MaxHP:    b.MaxHP,
		Color:    w.PlayerColor(b.Owner),
	}
}

func resourceView(r protocol.ResourceState) EntityView {
	return EntityView{
		Category:  CategoryResource,
		ID:        r.ID,
		Pos:       r.Position,
		Remaining: r.Remaining,
		Color:     neutralColor,
	}
}
