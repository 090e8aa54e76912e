package input

import (
	"bufio"
	"strings"
	"testing"

	"delving/pkg/engine/world"
)

func TestReadKeyCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"k", "k"},
		{"\x1b[A", "arrow_up"},
		{"\x1bOB", "arrow_down"},
		{"\x1b[C", "arrow_right"},
		{"\x1b[D", "arrow_left"},
		{"\r", "enter"},
		{"\x03", "ctrl_c"},
		{"\x1b", "escape"},
		{"\x1b[Z", ""},
		{"\x01", ""},
	}

	for _, tt := range tests {
		got, err := readKeyCode(bufio.NewReader(strings.NewReader(tt.in)))
		if err != nil {
			t.Errorf("readKeyCode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("readKeyCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadKeyCodeEOF(t *testing.T) {
	if _, err := readKeyCode(bufio.NewReader(strings.NewReader(""))); err == nil {
		t.Error("readKeyCode on empty input should fail")
	}
}

func TestIntentFromKey(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"arrow_up", ActionMoveNorth},
		{"y", ActionMoveNorthWest},
		{"3", ActionMoveSouthEast},
		{">", ActionDescend},
		{"q", ActionQuit},
		{"ctrl_c", ActionQuit},
		{"z", ActionNone},
	}
	for _, tt := range tests {
		if got := IntentFromKey(tt.code).Action; got != tt.want {
			t.Errorf("IntentFromKey(%q) = %s, want %s", tt.code, ActionName(got), ActionName(tt.want))
		}
	}
}

func TestIntentDirection(t *testing.T) {
	dir, ok := IntentFromKey("b").Direction()
	if !ok || dir != world.SouthWest {
		t.Errorf("Direction() = %v, %v; want SouthWest, true", dir, ok)
	}
	if _, ok := IntentFromKey("r").Direction(); ok {
		t.Error("regenerate should not have a direction")
	}
}

func TestEveryMoveHasBindings(t *testing.T) {
	byAction := GetBindingsByAction()
	for a := ActionMoveNorth; a <= ActionMoveNorthWest; a++ {
		if len(byAction[a]) < 2 {
			t.Errorf("%s has bindings %v, want at least two", ActionName(a), byAction[a])
		}
	}
	codes := byAction[ActionQuit]
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Errorf("bindings not sorted: %v", codes)
		}
	}
}
