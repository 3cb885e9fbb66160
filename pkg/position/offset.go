package position

import (
	"bufio"
	"strings"
	"unicode/utf8"

	"github.com/apparentlymart/go-textseg/v13/textseg"
	"github.com/mattn/go-runewidth"
)

// FromOffset converts a rune offset into text into a Position.
func FromOffset(text string, offset int) Position {
	if offset <= 0 {
		return Position{}
	}

	pos := Position{}
	i := 0
	for _, r := range text {
		if i == offset {
			break
		}
		if r == '\n' {
			pos.Row++
			pos.Column = 0
		} else {
			pos.Column++
		}
		i++
	}

	return pos
}

// ToOffset converts pos into a rune offset into text. Columns past the end of
// a row are clamped to the row's length.
func ToOffset(text string, pos Position) int {
	split := strings.Split(text, "\n")
	offset := 0
	for i := 0; i < pos.Row && i < len(split); i++ {
		offset += utf8.RuneCountInString(split[i]) + 1
	}
	if pos.Row < len(split) {
		offset += clamp(pos.Column, utf8.RuneCountInString(split[pos.Row]))
	}
	return offset
}

// FromVisualColumn maps the column an editor displays (tabs expanded to
// tabWidth, wide characters counted by their display width) onto a character
// column of line. A visual column that falls inside a cluster resolves to the
// cluster boundary after it.
func FromVisualColumn(line string, visual, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}

	scanner := bufio.NewScanner(strings.NewReader(line))
	scanner.Split(textseg.ScanGraphemeClusters)

	width := 0
	column := 0
	for scanner.Scan() {
		if visual <= width {
			return column
		}

		cluster := scanner.Text()
		if cluster == "\t" {
			width += tabWidth - (width % tabWidth)
		} else {
			width += runewidth.StringWidth(cluster)
		}
		column += utf8.RuneCountInString(cluster)
	}

	return column
}
