package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/board"
)

const (
	ClosedGlyph = "?"
	MarkedGlyph = "$"
)

func Glyph(c board.CellView) string {
	switch c.State {
	case board.Opened:
		return strconv.Itoa(c.Count)
	case board.Marked:
		return MarkedGlyph
	default:
		return ClosedGlyph
	}
}

// Rows renders each row of v as a string of glyphs.
func Rows(v board.View) []string {
	rows := make([]string, len(v))
	for i, row := range v {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(Glyph(c))
		}
		rows[i] = b.String()
	}
	return rows
}

// String renders v with 1-based row and column numbers:
//
//	%|123
//	-|---
//	1|?$1
//
// Boards wider than 9 columns get space separated, right aligned cells.
func String(v board.View) string {
	var (
		b   strings.Builder
		rw  = len(strconv.Itoa(v.Height()))
		cw  = len(strconv.Itoa(v.Width()))
		sep = ""
	)
	if cw > 1 {
		sep = " "
	}

	fmt.Fprintf(&b, "%*s|", rw, "%")
	for j := range v.Width() {
		if j > 0 {
			b.WriteString(sep)
		}
		fmt.Fprintf(&b, "%*d", cw, j+1)
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "%*s|", rw, "-")
	b.WriteString(strings.Repeat("-", v.Width()*cw+(v.Width()-1)*len(sep)))
	b.WriteByte('\n')

	for i, row := range v {
		fmt.Fprintf(&b, "%*d|", rw, i+1)
		for j, c := range row {
			if j > 0 {
				b.WriteString(sep)
			}
			fmt.Fprintf(&b, "%*s", cw, Glyph(c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func Board(w io.Writer, v board.View) error {
	_, err := io.WriteString(w, String(v))
	return err
}

// Clear resets the terminal.
func Clear(w io.Writer) error {
	_, err := io.WriteString(w, "\033c")
	return err
}
