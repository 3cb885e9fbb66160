// Package highlight produces TextMate-style scope stacks for a template buffer
// by running it through a chroma lexer once and painting every character
// with the scopes of the token that covers it.
//
// It stands in for an editor's highlighter so the inspector can run on plain
// files: tag names, attribute names, separators and values get the Marko
// scope names the default table classifies; everything else is plain text.
package highlight

import (
	"context"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/rs/zerolog"
	"github.com/walteh/marko-inspect/pkg/position"
	"github.com/walteh/marko-inspect/pkg/recognize"
	"github.com/walteh/marko-inspect/pkg/scope"
	"gitlab.com/tozd/go/errors"
)

const (
	ScopeTag            = "entity.name.tag.html"
	ScopeAttributeName  = "entity.other.attribute-name.html"
	ScopeSeparator      = "punctuation.separator.key-value.html"
	ScopeStringDouble   = "string.quoted.double.js"
	ScopeStringSingle   = "string.quoted.single.js"
	ScopeStringEnd      = "punctuation.definition.string.end.js"
	ScopeScript         = "source.js"
	ScopeStyle          = "source.css"
	ScopeTagPunctuation = "punctuation.definition.tag.html"
	ScopeComment        = "comment.block.html"
	ScopeEntity         = "constant.character.entity.html"
)

const DefaultLexer = "html"

const (
	embeddedScript = "script"
	embeddedStyle  = "style"
)

type options struct {
	lexer     string
	plainText string
}

type Option func(*options)

// WithLexer selects the chroma lexer by name or alias.
func WithLexer(name string) Option {
	return func(o *options) {
		if name != "" {
			o.lexer = name
		}
	}
}

// WithPlainText sets the scope every stack is rooted at.
func WithPlainText(name string) Option {
	return func(o *options) {
		if name != "" {
			o.plainText = name
		}
	}
}

// Document is a highlighted snapshot of a buffer. It is both the Buffer and
// the scope.Provider an inspection needs.
type Document struct {
	position.Lines

	plain  []string
	rows   [][]int
	stacks [][]string
}

var _ scope.Provider = (*Document)(nil)

func NewDocument(ctx context.Context, text string, opts ...Option) (*Document, error) {
	o := &options{lexer: DefaultLexer, plainText: scope.DefaultPlainText}
	for _, opt := range opts {
		opt(o)
	}

	lexer := lexers.Get(o.lexer)
	if lexer == nil {
		return nil, errors.Errorf("no lexer named %q", o.lexer)
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil, errors.Errorf("tokenising with %s: %w", o.lexer, err)
	}

	doc := &Document{
		Lines: position.NewLines(text),
		plain: []string{o.plainText},
	}

	p := &painter{doc: doc, index: make(map[string]int)}
	p.rows = [][]int{nil}

	count := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		p.paint(tok)
		count++
	}

	doc.rows = p.rows

	zerolog.Ctx(ctx).Debug().
		Str("lexer", o.lexer).
		Int("tokens", count).
		Int("rows", len(doc.rows)).
		Int("stacks", len(doc.stacks)).
		Msg("highlighted document")

	return doc, nil
}

// ScopesAt returns the stack of the character at pos. A position at or past
// the end of a row takes the stack of the row's last character, the way an
// editor reports the token a caret has just finished typing.
func (me *Document) ScopesAt(pos position.Position) []string {
	if pos.Row < 0 || pos.Row >= len(me.rows) {
		return me.plainStack()
	}

	row := me.rows[pos.Row]
	switch {
	case len(row) == 0 || pos.Column < 0:
		return me.plainStack()
	case pos.Column >= len(row):
		return me.stack(row[len(row)-1])
	default:
		return me.stack(row[pos.Column])
	}
}

func (me *Document) plainStack() []string {
	return append([]string(nil), me.plain...)
}

func (me *Document) stack(id int) []string {
	return append([]string(nil), me.stacks[id]...)
}

// painter walks the token stream keeping just enough state to tell tag
// markup from text and embedded script/style bodies.
type painter struct {
	doc   *Document
	index map[string]int
	rows  [][]int

	inTag    bool
	closing  bool
	tagName  string
	embedded string

	// glued is set right after a tag name until whitespace or markup
	// punctuation. The html lexer stops a tag name at `#`, so shorthand
	// like `div.box#hero` arrives as several tokens.
	glued bool
}

func (p *painter) paint(tok chroma.Token) {
	scopes := p.scopesFor(tok)
	if p.continuesTag(tok) {
		scopes = []string{ScopeTag}
	}

	runes := []rune(tok.Value)
	for i, r := range runes {
		switch {
		case r == '\n':
			p.rows = append(p.rows, nil)
			continue
		case r == '\r':
			continue
		}

		var s []string
		switch {
		case p.embedded != "":
			s = scopes
		case unicode.IsSpace(r) && !tok.Type.InSubCategory(chroma.LiteralString):
			s = nil
		case tok.Type.InSubCategory(chroma.LiteralString) && i == len(runes)-1 && i > 0 && isQuote(runes[0]) && r == runes[0]:
			s = append(append([]string(nil), scopes...), ScopeStringEnd)
		default:
			s = scopes
		}

		last := len(p.rows) - 1
		p.rows[last] = append(p.rows[last], p.intern(s))
	}

	p.advance(tok)
}

func (p *painter) scopesFor(tok chroma.Token) []string {
	if p.embedded == embeddedScript {
		return []string{ScopeScript}
	}
	if p.embedded == embeddedStyle {
		return []string{ScopeStyle}
	}

	switch {
	case tok.Type == chroma.NameTag:
		return []string{ScopeTag}
	case tok.Type == chroma.NameAttribute:
		return []string{ScopeAttributeName}
	case tok.Type == chroma.NameEntity:
		return []string{ScopeEntity}
	case tok.Type.InCategory(chroma.Comment):
		return []string{ScopeComment}
	case tok.Type == chroma.Operator && p.inTag && strings.Contains(tok.Value, "="):
		return []string{ScopeSeparator}
	case tok.Type.InSubCategory(chroma.LiteralString) && p.inTag:
		switch {
		case strings.HasPrefix(tok.Value, `"`):
			return []string{ScopeStringDouble}
		case strings.HasPrefix(tok.Value, `'`):
			return []string{ScopeStringSingle}
		default:
			return []string{ScopeScript}
		}
	case tok.Type == chroma.Punctuation && (p.inTag || strings.ContainsAny(tok.Value, "<>")):
		return []string{ScopeTagPunctuation}
	default:
		return nil
	}
}

// advance updates the markup state after tok has been painted. Inside a
// script or style body only the name of the closing tag matters.
func (p *painter) advance(tok chroma.Token) {
	switch {
	case p.embedded != "":
		p.glued = false
	case tok.Type == chroma.NameTag:
		p.glued = strings.TrimRightFunc(tok.Value, unicode.IsSpace) == tok.Value
	case !p.continuesTag(tok):
		p.glued = false
	}

	if p.embedded != "" {
		if tok.Type == chroma.NameTag && strings.EqualFold(strings.TrimSpace(tok.Value), p.embedded) {
			p.embedded = ""
			p.inTag = true
			p.closing = true
			p.tagName = strings.ToLower(strings.TrimSpace(tok.Value))
		}
		return
	}

	switch {
	case tok.Type == chroma.Punctuation && strings.Contains(tok.Value, "<"):
		p.inTag = true
		p.tagName = ""
		p.closing = strings.Contains(tok.Value[strings.LastIndex(tok.Value, "<"):], "/")
	case tok.Type == chroma.Punctuation && p.inTag && p.tagName == "" && strings.Contains(tok.Value, "/"):
		p.closing = true
	case tok.Type == chroma.NameTag:
		p.tagName = strings.ToLower(strings.TrimSpace(tok.Value))
	}

	if tok.Type == chroma.Punctuation && strings.Contains(tok.Value, ">") {
		selfClosing := strings.Contains(tok.Value, "/")
		if p.inTag && !p.closing && !selfClosing && (p.tagName == embeddedScript || p.tagName == embeddedStyle) {
			p.embedded = p.tagName
		}
		p.inTag = false
		p.closing = false
	}
}

// continuesTag reports whether tok is a shorthand run glued to the tag name
// painted before it.
func (p *painter) continuesTag(tok chroma.Token) bool {
	if !p.glued || p.embedded != "" || tok.Type == chroma.NameTag || tok.Value == "" {
		return false
	}
	for _, r := range tok.Value {
		if !recognize.IsTagNameChar(string(r)) {
			return false
		}
	}
	return true
}

func (p *painter) intern(tail []string) int {
	stack := append(append([]string(nil), p.doc.plain...), tail...)
	key := strings.Join(stack, "\x00")
	if id, ok := p.index[key]; ok {
		return id
	}
	id := len(p.doc.stacks)
	p.doc.stacks = append(p.doc.stacks, stack)
	p.index[key] = id
	return id
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}
