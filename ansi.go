package vid2ansi

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// ClearScreen is the full terminal reset written before every frame.
	ClearScreen = ESC + "c"
	Reset       = ESC + "[0m"
)

// Grid is a rendered frame: rows of cells, top to bottom.
type Grid [][]Cell

// Width returns the number of cells per row.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// Lines renders every row, each cell wrapped in its own color and reset
// sequence.
func (g Grid) Lines() []string {
	lines := make([]string, len(g))
	for y, row := range g {
		lines[y] = renderLine(row)
	}
	return lines
}

// String joins Lines with newlines, with a trailing newline.
func (g Grid) String() string {
	var sb strings.Builder
	for _, line := range g.Lines() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// cellWidth is the longest encoding of a cell: ESC[NNm, a rune, ESC[0m.
const cellWidth = len(ESC+"[") + 3 + 1 + utf8.UTFMax + len(Reset)

// renderLine writes a row into a builder sized up front so it does not
// grow while appending.
func renderLine(row []Cell) string {
	var sb strings.Builder
	sb.Grow(len(row) * cellWidth)
	for _, cell := range row {
		writeCell(&sb, cell)
	}
	return sb.String()
}

func writeCell(sb *strings.Builder, cell Cell) {
	sb.WriteString(ESC)
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(cell.Color.Code))
	sb.WriteByte('m')
	sb.WriteRune(cell.Char)
	sb.WriteString(Reset)
}
