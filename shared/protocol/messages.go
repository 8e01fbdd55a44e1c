package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Frames are flat JSON objects tagged by "type", one object per websocket
// message.

const (
	TypeJoin    = "join"
	TypeWelcome = "welcome"
	TypeState   = "state"
	TypeEvent   = "event"
	TypeCommand = "command"
	TypePing    = "ping"
	TypePong    = "pong"
)

// ================= C -> S =================

type Join struct {
	Type       string `json:"type"`
	PlayerName string `json:"player_name"`
}

func NewJoin(name string) Join {
	return Join{Type: TypeJoin, PlayerName: name}
}

const (
	ActionMove      = "move"
	ActionAttack    = "attack"
	ActionHarvest   = "harvest"
	ActionBuildUnit = "build_unit"
)

// Command carries one order; which optional fields are set depends on Action.
type Command struct {
	Action     string   `json:"action"`
	UnitIDs    []string `json:"unit_ids,omitempty"`
	Position   *Vec2    `json:"position,omitempty"`
	TargetID   string   `json:"target_id,omitempty"`
	ResourceID string   `json:"resource_id,omitempty"`
	BuildingID string   `json:"building_id,omitempty"`
	UnitType   string   `json:"unit_type,omitempty"`
}

type CommandMsg struct {
	Type    string  `json:"type"`
	Command Command `json:"command"`
}

func NewCommand(c Command) CommandMsg {
	return CommandMsg{Type: TypeCommand, Command: c}
}

type Ping struct {
	Type string `json:"type"`
}

func NewPing() Ping { return Ping{Type: TypePing} }

// ================= S -> C =================

type Welcome struct {
	Type       string `json:"type"`
	PlayerID   string `json:"player_id"`
	RoomID     string `json:"room_id"`
	PlayerName string `json:"player_name"`
}

type State struct {
	Type  string   `json:"type"`
	State Snapshot `json:"state"`
}

type Event struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Pong struct {
	Type string `json:"type"`
}

// ErrUnknownType marks frames whose tag the client does not understand.
// Callers drop such frames rather than guessing.
var ErrUnknownType = errors.New("protocol: unknown message type")

// Decode parses one inbound frame into its typed message. Unknown tags
// fail closed.
func Decode(raw []byte) (any, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("protocol: bad frame: %w", err)
	}
	switch head.Type {
	case TypeWelcome:
		var m Welcome
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	case TypeState:
		var m State
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	case TypeEvent:
		var m Event
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		return m, nil
	case TypePong:
		return Pong{Type: TypePong}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, head.Type)
	}
}
