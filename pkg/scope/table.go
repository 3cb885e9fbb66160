package scope

import (
	"maps"
	"strings"
)

const (
	DefaultPlainText    = "text.marko"
	DefaultScriptSuffix = ".js"
)

// Table maps highlighter scope names onto Info. Lookups are exact; the only
// suffix rule is ScriptSuffix, which marks embedded script-language scopes
// the table does not otherwise know.
type Table struct {
	PlainText    string
	ScriptSuffix string

	entries map[string]Info
}

func NewTable(plainText, scriptSuffix string, entries map[string]Info) *Table {
	t := &Table{
		PlainText:    plainText,
		ScriptSuffix: scriptSuffix,
		entries:      make(map[string]Info, len(entries)),
	}
	maps.Copy(t.entries, entries)
	return t
}

// DefaultTable is the scope vocabulary of the Marko grammars.
func DefaultTable() *Table {
	return NewTable(DefaultPlainText, DefaultScriptSuffix, map[string]Info{
		"entity.other.attribute-name.html": {Kind: KindAttributeName},
		"support.function.marko-attribute": {Kind: KindAttributeName},

		"punctuation.separator.key-value.html": {Kind: KindAttributeNameValueSeparator},

		"punctuation.definition.string.end.js": {Kind: KindString},
		"string.quoted.double.js":              {Kind: KindString},
		"string.quoted.single.js":              {Kind: KindString},

		"entity.name.tag":                           {Kind: KindTag},
		"entity.name.tag.html":                      {Kind: KindTag},
		"entity.name.tag.concise":                   {Kind: KindTag, Concise: true},
		"support.function.marko-tag":                {Kind: KindTag},
		"support.function.marko-tag.html":           {Kind: KindTag},
		"support.function.marko-tag.concise":        {Kind: KindTag, Concise: true},
		"support.function.marko-tag.html.html":      {Kind: KindTag},
		"support.function.marko-tag.html.shorthand": {Kind: KindTag},
		"meta.tag.any.html":                         {Kind: KindTag},
		"meta.tag.other.html":                       {Kind: KindTag},
		"meta.tag.block.any.html":                   {Kind: KindTag},
		"meta.tag.inline.any.html":                  {Kind: KindTag},
		"meta.tag.structure.any.html":               {Kind: KindTag},
	})
}

// With returns a copy of the table with name mapped to info.
func (t *Table) With(name string, info Info) *Table {
	c := NewTable(t.PlainText, t.ScriptSuffix, t.entries)
	c.entries[name] = info
	return c
}

// WithMarkers returns a copy of the table with other plain text and script markers.
func (t *Table) WithMarkers(plainText, scriptSuffix string) *Table {
	return NewTable(plainText, scriptSuffix, t.entries)
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) Lookup(name string) (Info, bool) {
	info, ok := t.entries[name]
	return info, ok
}

// IsScript reports whether name is an unclassified embedded script scope.
func (t *Table) IsScript(name string) bool {
	if t.ScriptSuffix == "" {
		return false
	}
	if _, ok := t.entries[name]; ok {
		return false
	}
	return strings.HasSuffix(name, t.ScriptSuffix)
}

// IsPlainText reports whether stack is exactly the document's plain text scope.
func (t *Table) IsPlainText(stack []string) bool {
	return len(stack) == 1 && stack[0] == t.PlainText
}

// Classify returns the first entry of stack the table knows, in stack order.
func (t *Table) Classify(stack []string) (Info, bool) {
	for _, name := range stack {
		if info, ok := t.entries[name]; ok {
			return info, true
		}
	}
	return Info{}, false
}

// HasKind reports whether any entry of stack classifies as kind.
func (t *Table) HasKind(stack []string, kind Kind) bool {
	for _, name := range stack {
		if info, ok := t.entries[name]; ok && info.Kind == kind {
			return true
		}
	}
	return false
}

// HasScript reports whether any entry of stack is an embedded script scope.
func (t *Table) HasScript(stack []string) bool {
	for _, name := range stack {
		if t.IsScript(name) {
			return true
		}
	}
	return false
}
