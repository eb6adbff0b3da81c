package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is used when neither the terminal nor $COLUMNS gives a width.
const DefaultTermWidth = 100

const (
	minCodeWidth = 20
	maxCodeWidth = 160
)

// DisplayContext describes where stdout output ends up.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext inspects stdout. Off a terminal the width comes from
// $COLUMNS when set, so piped tables still fit the caller's window.
func NewDisplayContext() *DisplayContext {
	return detectDisplay(os.Stdout.Fd(), os.Getenv("COLUMNS"))
}

// FixedDisplay returns a terminal DisplayContext of the given width.
func FixedDisplay(width int) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: true}
}

func detectDisplay(fd uintptr, columns string) *DisplayContext {
	d := &DisplayContext{TermWidth: DefaultTermWidth, IsTTY: term.IsTerminal(fd)}
	if d.IsTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			d.TermWidth = w
			return d
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(columns)); err == nil && n > 0 {
		d.TermWidth = n
	}
	return d
}

// CodeWidth returns the wrap width for rendered code blocks.
func (d *DisplayContext) CodeWidth() int {
	return min(max(d.TermWidth-MarkdownRenderMargin, minCodeWidth), maxCodeWidth)
}
