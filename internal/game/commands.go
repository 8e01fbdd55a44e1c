package game

import (
	"log"

	"github.com/xichen1997/RTS-made-by-AI/shared/protocol"
)

// Dispatcher turns gestures into outbound commands. Every send re-checks
// the selection against the mirror first, so an order can never name an
// id the server already destroyed.
type Dispatcher struct {
	sess  *Session
	world *World
	sel   *Selection
	feed  *Feed
}

func NewDispatcher(sess *Session, w *World, sel *Selection, feed *Feed) *Dispatcher {
	return &Dispatcher{sess: sess, world: w, sel: sel, feed: feed}
}

// liveSelectedUnits filters the selection down to units still present in
// the mirror.
func (d *Dispatcher) liveSelectedUnits() []string {
	ids := d.sel.UnitIDs()
	live := ids[:0]
	for _, id := range ids {
		if _, ok := d.world.Unit(id); ok {
			live = append(live, id)
		}
	}
	return live
}

// ContextAt handles a right-click at a map point with units selected:
// resource under the cursor means harvest, an enemy means attack,
// anything else means move.
func (d *Dispatcher) ContextAt(p protocol.Vec2) {
	if !d.sess.Connected() {
		return
	}
	ids := d.liveSelectedUnits()
	if len(ids) == 0 {
		return
	}

	cmd := protocol.Command{Action: protocol.ActionMove, UnitIDs: ids, Position: &protocol.Vec2{X: p.X, Y: p.Y}}
	if ref, ok := d.world.PickAt(p); ok {
		switch ref.Category {
		case CategoryResource:
			cmd = protocol.Command{Action: protocol.ActionHarvest, UnitIDs: ids, ResourceID: ref.ID}
		case CategoryUnit:
			if u, ok := d.world.Unit(ref.ID); ok && u.Owner != d.sess.PlayerID() {
				cmd = protocol.Command{Action: protocol.ActionAttack, UnitIDs: ids, TargetID: ref.ID}
			}
		case CategoryBuilding:
			if b, ok := d.world.Building(ref.ID); ok && b.Owner != d.sess.PlayerID() {
				cmd = protocol.Command{Action: protocol.ActionAttack, UnitIDs: ids, TargetID: ref.ID}
			}
		}
	}
	d.send(cmd)
}

// Produce asks the selected building to queue one unit. Gating failures
// surface as advisories and never reach the wire.
func (d *Dispatcher) Produce(unitType string) {
	bid := d.sel.BuildingID()
	if bid == "" {
		d.feed.Add("Select a production building first.")
		return
	}
	b, ok := d.world.Building(bid)
	if !ok {
		// vanished between gesture and dispatch
		return
	}
	if !contains(b.BuildableUnits, unitType) {
		d.feed.Add("That structure cannot build " + unitType + ".")
		return
	}
	if !d.sess.Connected() {
		return
	}
	d.send(protocol.Command{Action: protocol.ActionBuildUnit, BuildingID: bid, UnitType: unitType})
}

func (d *Dispatcher) send(cmd protocol.Command) {
	if err := d.sess.Send(protocol.NewCommand(cmd)); err != nil {
		log.Printf("NET: command(%s) failed: %v", cmd.Action, err)
		d.feed.Add("Order lost: not connected.")
	}
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
