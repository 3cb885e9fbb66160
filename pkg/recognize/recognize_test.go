package recognize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/marko-inspect/pkg/recognize"
)

func TestTagName(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		wantOk bool
	}{
		{name: "simple", line: "<div", want: "div", wantOk: true},
		{name: "namespaced", line: "<my-app:item", want: "my-app:item", wantOk: true},
		{name: "shorthand_kept", line: "<div.box#hero", want: "div.box#hero", wantOk: true},
		{name: "trailing_colon", line: "<foo:", want: "foo:", wantOk: true},
		{name: "underscore_stops", line: "<my_tag", want: "tag", wantOk: true},
		{name: "trailing_space", line: "<div ", wantOk: false},
		{name: "empty", line: "", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := recognize.TagName(tt.line)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttributeName(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		wantOk bool
	}{
		{name: "simple", line: `<div class`, want: "class", wantOk: true},
		{name: "dashed", line: `<div data-foo`, want: "data-foo", wantOk: true},
		{name: "hash_not_allowed", line: `<div a#b`, want: "b", wantOk: true},
		{name: "quote", line: `<div class="`, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := recognize.AttributeName(tt.line)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCharClasses(t *testing.T) {
	for _, ch := range []string{"a", "Z", "0", "_", "#", ".", ":", "-"} {
		assert.True(t, recognize.IsTagNameChar(ch), ch)
		assert.True(t, recognize.IsAttributeNameChar(ch), ch)
	}
	for _, ch := range []string{"", " ", "<", ">", "=", `"`, "/", "é", "ab"} {
		assert.False(t, recognize.IsTagNameChar(ch), ch)
		assert.False(t, recognize.IsAttributeNameChar(ch), ch)
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{line: "", want: ""},
		{line: "<", want: ""},
		{line: "<div.box#hero", want: "div.box#hero"},
		{line: "<my_tag-1", want: "my_tag-1"},
		{line: `<div class="`, want: ""},
		{line: `<div class="a:b`, want: "b"},
		{line: "</di", want: "di"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, recognize.Prefix(tt.line))
		})
	}
}

func TestShorthand(t *testing.T) {
	base, ok := recognize.Shorthand("div.box#hero")
	assert.True(t, ok)
	assert.Equal(t, "div", base)

	base, ok = recognize.Shorthand("span#main")
	assert.True(t, ok)
	assert.Equal(t, "span", base)

	_, ok = recognize.Shorthand("div")
	assert.False(t, ok)

	_, ok = recognize.Shorthand("div.")
	assert.False(t, ok)

	assert.Equal(t, "div", recognize.DisplayTagName("div.box"))
	assert.Equal(t, "div", recognize.DisplayTagName("div"))
}

func TestEndingTag(t *testing.T) {
	name, ok := recognize.EndingTag("<div></di")
	assert.True(t, ok)
	assert.Equal(t, "di", name)

	name, ok = recognize.EndingTag("<div></")
	assert.True(t, ok)
	assert.Equal(t, "", name)

	_, ok = recognize.EndingTag("<div")
	assert.False(t, ok)

	_, ok = recognize.EndingTag("</div ")
	assert.False(t, ok)
}

func TestClosesTag(t *testing.T) {
	assert.True(t, recognize.ClosesTag(">"))
	assert.True(t, recognize.ClosesTag("  >text"))
	assert.False(t, recognize.ClosesTag(""))
	assert.False(t, recognize.ClosesTag("x>"))
}
