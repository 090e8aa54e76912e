package gameplay

import (
	engineinput "delving/pkg/engine/input"
	"delving/pkg/game/state"
)

// ProcessIntent applies one high-level intent to the game. It reports
// whether the player asked to quit.
func ProcessIntent(g *state.Game, intent engineinput.Intent) (quit bool, err error) {
	if dir, ok := intent.Direction(); ok {
		Move(g, dir)
		return false, nil
	}

	switch intent.Action {
	case engineinput.ActionNone:
	case engineinput.ActionWait:
		Wait(g)
	case engineinput.ActionDescend:
		err = Descend(g)
	case engineinput.ActionRegenerate:
		err = Regenerate(g)
	case engineinput.ActionRevealMap:
		g.RevealMap = !g.RevealMap
		if g.RevealMap {
			logMessage(g, "The whole level is laid bare.")
		}
	case engineinput.ActionQuit:
		return true, nil
	}
	return false, err
}
