package position

import (
	"fmt"
	"strings"
)

// Position is a zero-based row/column pair into a line-oriented buffer.
// Columns count characters (runes), not bytes.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func New(row, column int) Position {
	return Position{Row: row, Column: column}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Buffer gives row-wise access to the text being edited. Rows outside the
// buffer read as the empty string.
type Buffer interface {
	LineText(row int) string
}

// Lines is the simplest Buffer: a snapshot of the text split into rows.
type Lines []string

func NewLines(text string) Lines {
	split := strings.Split(text, "\n")
	for i, line := range split {
		split[i] = strings.TrimSuffix(line, "\r")
	}
	return Lines(split)
}

func (me Lines) LineText(row int) string {
	if row < 0 || row >= len(me) {
		return ""
	}
	return me[row]
}

// Previous returns the position immediately left of pos. Moving off column 0
// lands on the last character of the previous row, or on column 0 when that
// row is empty. There is nothing before 0:0.
func Previous(buf Buffer, pos Position) (Position, bool) {
	if pos.Column > 0 {
		return Position{Row: pos.Row, Column: pos.Column - 1}, true
	}

	if pos.Row <= 0 {
		return Position{}, false
	}

	row := pos.Row - 1
	column := 0
	if n := len([]rune(buf.LineText(row))); n > 0 {
		column = n - 1
	}

	return Position{Row: row, Column: column}, true
}

// CharAt returns the character at pos, or "" when pos is past the end of its row.
func CharAt(buf Buffer, pos Position) string {
	line := []rune(buf.LineText(pos.Row))
	if pos.Column < 0 || pos.Column >= len(line) {
		return ""
	}
	return string(line[pos.Column])
}

// LineUpTo returns the text of pos's row left of pos, including the character
// at pos when inclusive is set.
func LineUpTo(buf Buffer, pos Position, inclusive bool) string {
	line := []rune(buf.LineText(pos.Row))
	end := pos.Column
	if inclusive {
		end++
	}
	return string(line[:clamp(end, len(line))])
}

// LineFrom returns the text of pos's row from pos onward.
func LineFrom(buf Buffer, pos Position) string {
	line := []rune(buf.LineText(pos.Row))
	return string(line[clamp(pos.Column, len(line)):])
}

func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
