package input

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// readKeyCode reads one key press and returns its code: arrow keys as
// "arrow_up" and friends, enter as "enter", Ctrl+C as "ctrl_c", escape as
// "escape", and anything printable as itself.
func readKeyCode(r io.ByteReader) (string, error) {
	b1, err := r.ReadByte()
	if err != nil {
		return "", err
	}

	switch {
	case b1 == 3:
		return "ctrl_c", nil
	case b1 == '\n' || b1 == '\r':
		return "enter", nil
	case b1 == 0x1b:
		return readEscape(r)
	case b1 >= 32 && b1 < 127:
		return string(b1), nil
	default:
		return "", nil
	}
}

// readEscape decodes the rest of an arrow key escape sequence. Both CSI
// (ESC [) and SS3 (ESC O) forms are accepted.
func readEscape(r io.ByteReader) (string, error) {
	b2, err := r.ReadByte()
	if err != nil {
		return "escape", nil
	}
	if b2 != '[' && b2 != 'O' {
		return "escape", nil
	}

	b3, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	}
	// Unknown escape sequence - discard it
	return "", nil
}

// KeyReader reads single key presses from a terminal in raw mode
type KeyReader struct {
	in  *os.File
	buf *bufio.Reader
}

// NewKeyReader reads keys from f, usually os.Stdin
func NewKeyReader(f *os.File) *KeyReader {
	return &KeyReader{in: f, buf: bufio.NewReader(f)}
}

// ReadKey waits for one key press. The terminal is put into raw mode for
// the read and restored afterwards.
func (k *KeyReader) ReadKey() (string, error) {
	fd := int(k.in.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return "", err
		}
		defer term.Restore(fd, oldState)
	}
	return readKeyCode(k.buf)
}
