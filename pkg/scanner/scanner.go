// Package scanner walks a buffer backward from a position, one character at a
// time, to recover the tag and attribute that enclose it without parsing the
// document.
//
// Walks are unbounded: they stop at the first boundary they recognize or at
// the start of the buffer, whichever comes first.
package scanner

import (
	"context"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/marko-inspect/pkg/position"
	"github.com/walteh/marko-inspect/pkg/recognize"
	"github.com/walteh/marko-inspect/pkg/scope"
)

// Tag is an enclosing tag found by a backward walk. Name is the raw scanned
// text, shorthand suffixes included.
type Tag struct {
	Name    string
	Concise bool
}

// Match is the result of the combined walk. AttributeName is empty when the
// walk reached the tag without crossing an attribute name.
type Match struct {
	Tag
	AttributeName string
}

// Adjacent is where the lookback over whitespace stopped.
type Adjacent struct {
	Position   position.Position
	Scopes     []string
	Whitespace bool
}

type Scanner struct {
	buf    position.Buffer
	scopes scope.Provider
	table  *scope.Table
}

// New returns a Scanner over buf. A nil table means scope.DefaultTable.
func New(buf position.Buffer, scopes scope.Provider, table *scope.Table) *Scanner {
	if table == nil {
		table = scope.DefaultTable()
	}
	return &Scanner{buf: buf, scopes: scopes, table: table}
}

func (me *Scanner) previous(pos position.Position) (position.Position, bool) {
	return position.Previous(me.buf, pos)
}

// NearestTag returns the closest tag name strictly left of pos.
func (me *Scanner) NearestTag(ctx context.Context, pos position.Position) (Tag, bool) {
	logger := zerolog.Ctx(ctx)

	for cur, ok := me.previous(pos); ok; cur, ok = me.previous(cur) {
		if !recognize.IsTagNameChar(position.CharAt(me.buf, cur)) {
			continue
		}

		stack := me.scopes.ScopesAt(cur)
		if !me.table.HasKind(stack, scope.KindTag) {
			continue
		}

		name, ok := recognize.TagName(position.LineUpTo(me.buf, cur, true))
		if !ok {
			continue
		}

		logger.Trace().Stringer("from", pos).Stringer("at", cur).Str("tag", name).Msg("nearest tag")

		return Tag{Name: name, Concise: me.concise(stack)}, true
	}

	logger.Trace().Stringer("from", pos).Msg("no tag before position")

	return Tag{}, false
}

func (me *Scanner) concise(stack []string) bool {
	for _, name := range stack {
		if info, ok := me.table.Lookup(name); ok && info.Kind == scope.KindTag {
			return info.Concise
		}
	}
	return false
}

// NearestTagAndAttribute walks left of pos looking first for an attribute name
// and then for the tag that owns it. At each candidate character the scope
// stack is read in order and the first entry that is a tag, or an attribute
// name while none has been captured yet, decides. A dangling attribute with
// no tag before it is not reported.
//
// Characters scoped only as embedded script are never boundaries, so a walk
// started inside a script expression value keeps going until it re-derives
// the attribute and tag the expression belongs to.
func (me *Scanner) NearestTagAndAttribute(ctx context.Context, pos position.Position) (Match, bool) {
	logger := zerolog.Ctx(ctx)

	var attributeName string

	for cur, ok := me.previous(pos); ok; cur, ok = me.previous(cur) {
		ch := position.CharAt(me.buf, cur)
		if !recognize.IsAttributeNameChar(ch) && !recognize.IsTagNameChar(ch) {
			continue
		}

		stack := me.scopes.ScopesAt(cur)

	entries:
		for _, name := range stack {
			info, ok := me.table.Lookup(name)
			if !ok {
				continue
			}

			switch {
			case info.Kind == scope.KindTag:
				tagName, ok := recognize.TagName(position.LineUpTo(me.buf, cur, true))
				if !ok {
					return Match{}, false
				}

				logger.Trace().Stringer("from", pos).Stringer("at", cur).
					Str("tag", tagName).Str("attribute", attributeName).Msg("nearest tag and attribute")

				return Match{
					Tag:           Tag{Name: tagName, Concise: info.Concise},
					AttributeName: attributeName,
				}, true
			case info.Kind == scope.KindAttributeName && attributeName == "":
				attrName, ok := recognize.AttributeName(position.LineUpTo(me.buf, cur, true))
				if !ok {
					return Match{}, false
				}
				attributeName = attrName
				break entries
			}
		}
	}

	logger.Trace().Stringer("from", pos).Str("attribute", attributeName).Msg("no enclosing tag")

	return Match{}, false
}

// Adjacent looks left of pos, on pos's row only, for the token the cursor
// sits after. It skips whitespace (noting that it did) and stops at the first
// character scoped with more than one entry. A `/` or `<` bounds the search.
func (me *Scanner) Adjacent(ctx context.Context, pos position.Position) (Adjacent, bool) {
	whitespace := false

	for cur, ok := me.previous(pos); ok && cur.Row == pos.Row; cur, ok = me.previous(cur) {
		ch := position.CharAt(me.buf, cur)

		switch {
		case ch == "/" || ch == "<":
			return Adjacent{}, false
		case isSpace(ch):
			whitespace = true
		default:
			if stack := me.scopes.ScopesAt(cur); len(stack) > 1 {
				zerolog.Ctx(ctx).Trace().Stringer("from", pos).Stringer("at", cur).
					Bool("whitespace", whitespace).Strs("scopes", stack).Msg("adjacent token")

				return Adjacent{Position: cur, Scopes: stack, Whitespace: whitespace}, true
			}
		}
	}

	return Adjacent{}, false
}

func isSpace(ch string) bool {
	r, size := utf8.DecodeRuneInString(ch)
	return size > 0 && unicode.IsSpace(r)
}
