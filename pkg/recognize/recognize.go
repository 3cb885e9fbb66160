// Package recognize holds the token matchers the inspector runs over single
// lines of text. Every matcher is anchored at the end of its input so it
// yields the token that ends exactly where a backward scan stopped.
package recognize

import (
	"regexp"
	"strings"
)

var (
	tagNameCharsRegExp  = regexp.MustCompile(`^[a-zA-Z0-9_#.:-]$`)
	attrNameCharsRegExp = regexp.MustCompile(`^[a-zA-Z0-9_#.:-]$`)

	tagNameRegExp  = regexp.MustCompile(`[a-zA-Z0-9.\-:#]+$`)
	attrNameRegExp = regexp.MustCompile(`[a-zA-Z0-9.\-:]+$`)

	tagShorthandRegExp = regexp.MustCompile(`([a-zA-Z0-9_-]+)[#.][a-zA-Z0-9_#.:-]+`)

	endingTagRegExp        = regexp.MustCompile(`</([a-zA-Z0-9.\-:#]+)?$`)
	endingTagBracketRegExp = regexp.MustCompile(`^\s*>`)

	prefixRegExp = regexp.MustCompile(`[A-Za-z0-9_\-.#]+$`)
)

// IsTagNameChar reports whether ch may appear in a tag name, shorthand included.
func IsTagNameChar(ch string) bool {
	return tagNameCharsRegExp.MatchString(ch)
}

func IsAttributeNameChar(ch string) bool {
	return attrNameCharsRegExp.MatchString(ch)
}

// TagName returns the tag name ending at the end of line, or false when the
// line does not end in one.
func TagName(line string) (string, bool) {
	m := tagNameRegExp.FindString(line)
	return m, m != ""
}

func AttributeName(line string) (string, bool) {
	m := attrNameRegExp.FindString(line)
	return m, m != ""
}

// Prefix is the text a completion inserted at the end of line replaces. It is
// empty when the line does not end in an identifier character.
func Prefix(line string) string {
	return prefixRegExp.FindString(line)
}

// Shorthand splits a tag name carrying CSS-style `.class` or `#id` suffixes,
// `div.box#hero` → `div`.
func Shorthand(name string) (string, bool) {
	m := tagShorthandRegExp.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DisplayTagName drops any shorthand suffix from a scanned tag name.
func DisplayTagName(raw string) string {
	if base, ok := Shorthand(raw); ok && strings.HasPrefix(raw, base) {
		return base
	}
	return raw
}

// EndingTag matches a `</` opener at the end of line and returns the part of
// the name typed after it, which may be empty.
func EndingTag(line string) (string, bool) {
	m := endingTagRegExp.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ClosesTag reports whether rest (the text right of the cursor) already
// starts with the `>` of a tag.
func ClosesTag(rest string) bool {
	return endingTagBracketRegExp.MatchString(rest)
}
