package world

import (
	"github.com/udisondev/labyrinth/internal/model"
	"github.com/udisondev/labyrinth/internal/protocol"
)

// dispatch routes one inbound command to the addressed hero. Commands
// for unknown players or dead heroes are dropped.
func (w *World) dispatch(cmd protocol.Command) {
	u := w.Hero(cmd.Sender())
	if u == nil {
		w.log.Debug("command for absent hero dropped", "kind", cmd.Kind(), "uid", cmd.Sender())
		return
	}

	switch c := cmd.(type) {
	case protocol.Move:
		if u.State() != model.StateWalking || !u.UnitAttrs().Input() {
			return
		}
		u.Move(c.Dir)

	case protocol.ItemAction:
		if u.State() != model.StateWalking || !u.UnitAttrs().Input() {
			return
		}
		w.itemAction(u, c)

	case protocol.DuelAction:
		if !u.UnitAttrs().Input() {
			return
		}
		target := w.UnitByID(c.Target)
		if target == nil || target.Position().Manhattan(u.Position()) > 1 {
			w.log.Debug("duel target out of reach", "unit", u.ObjectID(), "target", c.Target)
			return
		}
		u.StartDuel(target)

	case protocol.SpellCast:
		var target *Unit
		if c.Target != model.InvalidObjectID {
			target = w.UnitByID(c.Target)
		}
		u.CastSpell(c.Spell, target)

	default:
		w.log.Warn("unsupported command rejected", "kind", cmd.Kind(), "uid", cmd.Sender())
	}
}

func (w *World) itemAction(u *Unit, c protocol.ItemAction) {
	switch c.Action {
	case model.ItemTake:
		obj, ok := w.storage.Get(c.Item)
		if !ok {
			return
		}
		it, ok := obj.(*Item)
		if !ok || it.Position() != u.Position() {
			w.log.Debug("item not under unit", "unit", u.ObjectID(), "item", c.Item)
			return
		}
		u.TakeItem(it)

	case model.ItemDrop:
		u.DropItem(c.Item)

	default:
		w.log.Warn("unknown item action", "action", c.Action, "unit", u.ObjectID())
	}
}
