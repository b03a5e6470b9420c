package diag

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/leonardosnt/assembler-interpreter/span"
)

// ColorReporter renders a fatal diagnostic as a single full-screen tcell
// view instead of DefaultReporter's plain stderr text. It waits for a
// keypress so the user has a chance to read the excerpt before the
// process exits, then terminates exactly like DefaultReporter.
type ColorReporter struct {
	Source string
}

func (r *ColorReporter) Report(kind Kind, message string, sp span.Span) {
	screen, err := tcell.NewScreen()
	if err != nil || screen.Init() != nil {
		// No usable terminal: fall back to the plain reporter rather
		// than losing the diagnostic.
		(&DefaultReporter{Source: r.Source, Out: os.Stderr}).Report(kind, message, sp)
		return
	}
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	srcStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	markStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	hintStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	screen.Clear()
	drawText(screen, 0, 0, errStyle, fmt.Sprintf("Error: %s (%s)", message, sp))

	line := lineAt(r.Source, sp.Line)
	if line != "" {
		drawText(screen, 0, 2, srcStyle, "> "+line)
		width := sp.ColEnd - sp.ColStart
		if width < 1 {
			width = 1
		}
		for i := 0; i < width; i++ {
			screen.SetContent(2+sp.ColStart+i, 3, '^', nil, markStyle)
		}
	}
	drawText(screen, 0, 5, hintStyle, "press any key to exit")
	screen.Show()
	screen.PollEvent()

	screen.Fini()
	os.Exit(1)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
