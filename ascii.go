package mandel

import (
	"fmt"
	"io"
	"strings"
)

// Ramp shades escaped points from light to dark. Counts wrap around it.
const Ramp = ".,-~:;=!*#$@"

const RampLen = len(Ramp)

// Glyph returns the character for an iteration count. Points that reached the
// budget are inside the set and print as a space.
func Glyph(v, maxIter int) byte {
	if v == maxIter {
		return ' '
	}
	return Ramp[v%RampLen]
}

// Render converts g to one line of exactly g.Width characters per row.
func Render(g *Grid) []string {
	lines := make([]string, g.Height)
	var sb strings.Builder
	for y, row := range g.Rows {
		sb.Reset()
		sb.Grow(g.Width)
		for _, v := range row {
			sb.WriteByte(Glyph(v, g.MaxIter))
		}
		lines[y] = sb.String()
	}
	return lines
}

// WriteLines writes every line followed by a newline.
func WriteLines(w io.Writer, lines []string) error {
	for i, l := range lines {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return fmt.Errorf("write line %d: %w", i, err)
		}
	}
	return nil
}
