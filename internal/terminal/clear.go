// Package terminal provides small terminal helpers for the interactive prompts.
package terminal

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/term"
)

// ClearPreviousLines clears previously printed prompt lines so credentials
// never linger on screen after they have been entered. textLength is the
// total character count of the prompt plus the user's input; line wrapping
// against the current terminal width is accounted for.
func ClearPreviousLines(textLength int) {
	termWidth := 80 // fallback when not a tty
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		termWidth = width
	}

	totalLines := int(math.Ceil(float64(textLength) / float64(termWidth)))
	if totalLines < 1 {
		totalLines = 1
	}

	// After Enter the cursor sits on a fresh line below the input; +1 covers it.
	linesToClear := totalLines + 1
	for i := 0; i < linesToClear; i++ {
		fmt.Print("\r\x1b[2K")
		if i < linesToClear-1 {
			fmt.Print("\x1b[1A")
		}
	}
}
