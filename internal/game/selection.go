package game

import "sort"

// Selection holds the locally selected units (own units only) and at most
// one selected building. Unit and building selection are mutually
// exclusive; additive clicks accumulate only within one category.
type Selection struct {
	units      map[string]bool
	buildingID string
}

func NewSelection() *Selection {
	return &Selection{units: map[string]bool{}}
}

func (s *Selection) Clear() {
	s.units = map[string]bool{}
	s.buildingID = ""
}

func (s *Selection) Empty() bool {
	return len(s.units) == 0 && s.buildingID == ""
}

func (s *Selection) HasUnit(id string) bool { return s.units[id] }
func (s *Selection) BuildingID() string     { return s.buildingID }
func (s *Selection) UnitCount() int         { return len(s.units) }

// UnitIDs returns the selected unit ids in stable order.
func (s *Selection) UnitIDs() []string {
	ids := make([]string, 0, len(s.units))
	for id := range s.units {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ownedPick reports whether the pick refers to an entity of the local
// player. Resources never qualify.
func ownedPick(ref EntityRef, w *World, localID string) bool {
	if localID == "" {
		return false
	}
	switch ref.Category {
	case CategoryUnit:
		u, ok := w.Unit(ref.ID)
		return ok && u.Owner == localID
	case CategoryBuilding:
		b, ok := w.Building(ref.ID)
		return ok && b.Owner == localID
	default:
		return false
	}
}

// Primary applies a plain left-click: replace with the owned pick, or
// clear. Enemy entities and resources are never selectable.
func (s *Selection) Primary(ref EntityRef, found bool, w *World, localID string) {
	s.Clear()
	if !found || !ownedPick(ref, w, localID) {
		return
	}
	switch ref.Category {
	case CategoryUnit:
		s.units[ref.ID] = true
	case CategoryBuilding:
		s.buildingID = ref.ID
	}
}

// Additive applies a modifier-held click: toggle membership for units,
// toggle/replace for buildings. Clicks on nothing or on non-owned
// entities leave the selection alone.
func (s *Selection) Additive(ref EntityRef, found bool, w *World, localID string) {
	if !found || !ownedPick(ref, w, localID) {
		return
	}
	switch ref.Category {
	case CategoryUnit:
		s.buildingID = ""
		if s.units[ref.ID] {
			delete(s.units, ref.ID)
		} else {
			s.units[ref.ID] = true
		}
	case CategoryBuilding:
		s.units = map[string]bool{}
		if s.buildingID == ref.ID {
			s.buildingID = ""
		} else {
			s.buildingID = ref.ID
		}
	}
}

// Prune drops ids that vanished from the mirror. Runs after every
// reconciliation so the selection never references a dead entity.
func (s *Selection) Prune(w *World) {
	for id := range s.units {
		if _, ok := w.Unit(id); !ok {
			delete(s.units, id)
		}
	}
	if s.buildingID != "" {
		if _, ok := w.Building(s.buildingID); !ok {
			s.buildingID = ""
		}
	}
}
