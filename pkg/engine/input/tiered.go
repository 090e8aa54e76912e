package input

import (
	"sort"
	"time"

	"delving/pkg/engine/world"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high‑level intent of the explorer.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveNorth
	ActionMoveNorthEast
	ActionMoveEast
	ActionMoveSouthEast
	ActionMoveSouth
	ActionMoveSouthWest
	ActionMoveWest
	ActionMoveNorthWest
	ActionWait

	// Level
	ActionDescend
	ActionRegenerate
	ActionRevealMap

	// Meta
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the user wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "k", "arrow_up").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Terminal raw mode already delivers one event per key press, so this is a
// distinct type only to keep the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Movement (arrows, Vim, numpad digits)
	"arrow_up":    ActionMoveNorth,
	"k":           ActionMoveNorth,
	"8":           ActionMoveNorth,
	"u":           ActionMoveNorthEast,
	"9":           ActionMoveNorthEast,
	"arrow_right": ActionMoveEast,
	"l":           ActionMoveEast,
	"6":           ActionMoveEast,
	"n":           ActionMoveSouthEast,
	"3":           ActionMoveSouthEast,
	"arrow_down":  ActionMoveSouth,
	"j":           ActionMoveSouth,
	"2":           ActionMoveSouth,
	"b":           ActionMoveSouthWest,
	"1":           ActionMoveSouthWest,
	"arrow_left":  ActionMoveWest,
	"h":           ActionMoveWest,
	"4":           ActionMoveWest,
	"y":           ActionMoveNorthWest,
	"7":           ActionMoveNorthWest,
	".":           ActionWait,
	"5":           ActionWait,

	// Level
	">":     ActionDescend,
	"enter": ActionDescend,
	"r":     ActionRegenerate,
	"m":     ActionRevealMap,

	// Quit
	"q":      ActionQuit,
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,
}

var moveDirections = map[Action]world.Direction{
	ActionMoveNorth:     world.North,
	ActionMoveNorthEast: world.NorthEast,
	ActionMoveEast:      world.East,
	ActionMoveSouthEast: world.SouthEast,
	ActionMoveSouth:     world.South,
	ActionMoveSouthWest: world.SouthWest,
	ActionMoveWest:      world.West,
	ActionMoveNorthWest: world.NorthWest,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// IntentFromKey runs a terminal key code through every layer
func IntentFromKey(code string) Intent {
	raw := RawInput{Device: DeviceTerminal, Code: code, Timestamp: time.Now()}
	return MapToIntent(NewDebouncedInput(raw))
}

// Direction returns the compass direction of a movement action
func (i Intent) Direction() (world.Direction, bool) {
	dir, ok := moveDirections[i.Action]
	return dir, ok
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveNorth:
		return "Move North"
	case ActionMoveNorthEast:
		return "Move North East"
	case ActionMoveEast:
		return "Move East"
	case ActionMoveSouthEast:
		return "Move South East"
	case ActionMoveSouth:
		return "Move South"
	case ActionMoveSouthWest:
		return "Move South West"
	case ActionMoveWest:
		return "Move West"
	case ActionMoveNorthWest:
		return "Move North West"
	case ActionWait:
		return "Wait"
	case ActionDescend:
		return "Descend"
	case ActionRegenerate:
		return "Regenerate"
	case ActionRevealMap:
		return "Reveal Map"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Ensure stable ordering of codes within each action so the help line doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
