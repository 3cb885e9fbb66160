// Package scopetest builds synthetic scope providers for tests.
package scopetest

import (
	"strings"

	"github.com/walteh/marko-inspect/pkg/position"
)

const Plain = "text.marko"

// Legend is the default mapping from mask characters to scope stacks.
var Legend = map[rune][]string{
	' ': {Plain},
	't': {Plain, "entity.name.tag.html"},
	'c': {Plain, "entity.name.tag.concise"},
	'm': {Plain, "support.function.marko-tag"},
	'a': {Plain, "entity.other.attribute-name.html"},
	'=': {Plain, "punctuation.separator.key-value.html"},
	's': {Plain, "string.quoted.double.js"},
	'j': {Plain, "source.js"},
	'p': {Plain, "punctuation.definition.tag.html"},
	'k': {Plain, "comment.block.html"},
}

// Painted is a buffer whose scopes are given by a mask laid over the text: the
// mask character at a position selects its stack from the legend. Mask rows
// may run past their text row so a caret at the end of a line can be scoped.
// Anything the mask does not cover is plain text.
type Painted struct {
	position.Lines

	mask   []string
	legend map[rune][]string
}

func Paint(text, mask string) *Painted {
	return PaintWith(text, mask, Legend)
}

func PaintWith(text, mask string, legend map[rune][]string) *Painted {
	return &Painted{
		Lines:  position.NewLines(text),
		mask:   strings.Split(mask, "\n"),
		legend: legend,
	}
}

func (me *Painted) ScopesAt(pos position.Position) []string {
	if pos.Row < 0 || pos.Row >= len(me.mask) {
		return []string{Plain}
	}

	row := []rune(me.mask[pos.Row])
	if pos.Column < 0 || pos.Column >= len(row) {
		return []string{Plain}
	}

	if stack, ok := me.legend[row[pos.Column]]; ok {
		return append([]string(nil), stack...)
	}

	return []string{Plain}
}
