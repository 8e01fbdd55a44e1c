package protocol

import (
	"encoding/json"
	"fmt"
)

// Vec2 is a point in map units. The server serializes positions inside
// snapshots as two-element arrays, but expects command positions as
// {"x":..,"y":..} objects, so unmarshalling accepts both and marshalling
// always produces the object form.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v *Vec2) UnmarshalJSON(b []byte) error {
	var arr [2]float64
	if err := json.Unmarshal(b, &arr); err == nil {
		v.X, v.Y = arr[0], arr[1]
		return nil
	}
	var obj struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("protocol: bad position: %w", err)
	}
	v.X, v.Y = obj.X, obj.Y
	return nil
}

// Size is a map extent. Serialized as [width, height].
type Size struct {
	W float64
	H float64
}

func (s *Size) UnmarshalJSON(b []byte) error {
	var arr [2]float64
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("protocol: bad map_size: %w", err)
	}
	s.W, s.H = arr[0], arr[1]
	return nil
}

func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{s.W, s.H})
}

// PlayerInfo is the per-commander block of a snapshot, keyed by player id.
type PlayerInfo struct {
	Name    string `json:"name"`
	Color   string `json:"color"`
	Credits int    `json:"credits"`
}

type UnitState struct {
	ID       string  `json:"id"`
	Owner    string  `json:"owner"`
	Type     string  `json:"type"`
	Position Vec2    `json:"position"`
	HP       float64 `json:"hp"`
	MaxHP    float64 `json:"max_hp"`
	State    string  `json:"state,omitempty"`
}

type BuildingState struct {
	ID             string   `json:"id"`
	Owner          string   `json:"owner"`
	Type           string   `json:"type"`
	Position       Vec2     `json:"position"`
	HP             float64  `json:"hp"`
	MaxHP          float64  `json:"max_hp"`
	BuildableUnits []string `json:"buildable_units"`
	Queue          []string `json:"queue"`
}

type ResourceState struct {
	ID        string  `json:"id"`
	Position  Vec2    `json:"position"`
	Remaining float64 `json:"remaining"`
}

// Snapshot is the full authoritative state broadcast every tick batch.
// Events are the lines added since the previous snapshot, not cumulative.
type Snapshot struct {
	Tick      int64                 `json:"tick"`
	MapSize   Size                  `json:"map_size"`
	Players   map[string]PlayerInfo `json:"players"`
	Units     []UnitState           `json:"units"`
	Buildings []BuildingState       `json:"buildings"`
	Resources []ResourceState       `json:"resources"`
	Events    []string              `json:"events"`
}
