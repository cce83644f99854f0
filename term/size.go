package term

import (
	"fmt"
	"os"

	xterm "golang.org/x/term"
)

// Fallback viewport used when the output is not a terminal.
const (
	FallbackWidth  = 80
	FallbackHeight = 24
)

// TerminalSize returns the size of the terminal on stdout. When stdout is not
// a terminal it returns the fallback size along with the error.
func TerminalSize() (width, height int, err error) {
	width, height, err = xterm.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return FallbackWidth, FallbackHeight, fmt.Errorf("term: get size: %w", err)
	}
	return width, height, nil
}
