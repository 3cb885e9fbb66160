package scanner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/marko-inspect/pkg/position"
	"github.com/walteh/marko-inspect/pkg/scanner"
	"github.com/walteh/marko-inspect/pkg/scope"
	"github.com/walteh/marko-inspect/pkg/scope/scopetest"
)

func newScanner(text, mask string) *scanner.Scanner {
	p := scopetest.Paint(text, mask)
	return scanner.New(p, p, scope.DefaultTable())
}

func TestNearestTag(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		mask   string
		pos    position.Position
		want   scanner.Tag
		wantOk bool
	}{
		{
			name:   "skips_attributes_and_values",
			text:   `<div class="x" `,
			mask:   ` ttt aaaaa=sss  `,
			pos:    position.New(0, 15),
			want:   scanner.Tag{Name: "div"},
			wantOk: true,
		},
		{
			name:   "concise",
			text:   `div.box`,
			mask:   `ccccccc`,
			pos:    position.New(0, 7),
			want:   scanner.Tag{Name: "div.box", Concise: true},
			wantOk: true,
		},
		{
			name:   "across_rows",
			text:   "<my-tag\n\n  ",
			mask:   " tttttt\n\n  ",
			pos:    position.New(2, 2),
			want:   scanner.Tag{Name: "my-tag"},
			wantOk: true,
		},
		{
			name:   "unmatched_token_keeps_walking",
			text:   `<a_`,
			mask:   ` tt`,
			pos:    position.New(0, 3),
			want:   scanner.Tag{Name: "a"},
			wantOk: true,
		},
		{
			name:   "nothing_before",
			text:   `hello world`,
			mask:   ``,
			pos:    position.New(0, 11),
			wantOk: false,
		},
		{
			name:   "start_of_buffer",
			text:   `<div`,
			mask:   ` ttt`,
			pos:    position.New(0, 0),
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := newScanner(tt.text, tt.mask).NearestTag(context.Background(), tt.pos)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNearestTagAndAttribute(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		mask   string
		pos    position.Position
		want   scanner.Match
		wantOk bool
	}{
		{
			name:   "inside_string_value",
			text:   `<div class="x">`,
			mask:   ` ttt aaaaa=sssp`,
			pos:    position.New(0, 13),
			want:   scanner.Match{Tag: scanner.Tag{Name: "div"}, AttributeName: "class"},
			wantOk: true,
		},
		{
			name:   "closest_attribute_wins",
			text:   `<div id="a" class="b">`,
			mask:   ` ttt aa=sss aaaaa=sssp`,
			pos:    position.New(0, 20),
			want:   scanner.Match{Tag: scanner.Tag{Name: "div"}, AttributeName: "class"},
			wantOk: true,
		},
		{
			name:   "tag_only",
			text:   `<div`,
			mask:   ` ttt`,
			pos:    position.New(0, 4),
			want:   scanner.Match{Tag: scanner.Tag{Name: "div"}},
			wantOk: true,
		},
		{
			name:   "value_on_next_row",
			text:   "<div\n  class=\"x\"",
			mask:   " ttt\n  aaaaa=sss",
			pos:    position.New(1, 10),
			want:   scanner.Match{Tag: scanner.Tag{Name: "div"}, AttributeName: "class"},
			wantOk: true,
		},
		{
			name:   "script_expression_value",
			text:   `<div onClick=handle>`,
			mask:   ` ttt aaaaaaa=jjjjjjp`,
			pos:    position.New(0, 19),
			want:   scanner.Match{Tag: scanner.Tag{Name: "div"}, AttributeName: "onClick"},
			wantOk: true,
		},
		{
			name:   "concise_tag",
			text:   `div class=x`,
			mask:   `ccc aaaaa=j`,
			pos:    position.New(0, 11),
			want:   scanner.Match{Tag: scanner.Tag{Name: "div", Concise: true}, AttributeName: "class"},
			wantOk: true,
		},
		{
			name:   "dangling_attribute",
			text:   `class="x"`,
			mask:   `aaaaa=sss`,
			pos:    position.New(0, 8),
			wantOk: false,
		},
		{
			name:   "tag_token_that_does_not_match_aborts",
			text:   `<a_`,
			mask:   ` tt`,
			pos:    position.New(0, 3),
			wantOk: false,
		},
		{
			name:   "start_of_buffer",
			text:   ``,
			mask:   ``,
			pos:    position.New(0, 0),
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := newScanner(tt.text, tt.mask).NearestTagAndAttribute(context.Background(), tt.pos)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNearestTagAndAttributeFirstStackEntryDecides(t *testing.T) {
	legend := map[rune][]string{
		' ': {scopetest.Plain},
		't': scopetest.Legend['t'],
		// a string scope ahead of the tag scope does not stop the walk
		'x': {scopetest.Plain, "string.quoted.double.js", "entity.name.tag.html"},
		// an attribute scope ahead of the tag scope captures the attribute
		'y': {scopetest.Plain, "entity.other.attribute-name.html", "entity.name.tag.html"},
	}

	p := scopetest.PaintWith(`<ab`, ` xx`, legend)
	got, ok := scanner.New(p, p, nil).NearestTagAndAttribute(context.Background(), position.New(0, 3))
	require.True(t, ok)
	assert.Equal(t, scanner.Match{Tag: scanner.Tag{Name: "ab"}}, got)

	p = scopetest.PaintWith(`<ab c`, ` tt y`, legend)
	got, ok = scanner.New(p, p, nil).NearestTagAndAttribute(context.Background(), position.New(0, 5))
	require.True(t, ok)
	assert.Equal(t, scanner.Match{Tag: scanner.Tag{Name: "ab"}, AttributeName: "c"}, got)

	// once an attribute is held, the tag entry behind it ends the walk
	p = scopetest.PaintWith(`<ab cd`, ` tt yy`, legend)
	got, ok = scanner.New(p, p, nil).NearestTagAndAttribute(context.Background(), position.New(0, 6))
	require.True(t, ok)
	assert.Equal(t, scanner.Match{Tag: scanner.Tag{Name: "c"}, AttributeName: "cd"}, got)
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		mask           string
		pos            position.Position
		wantPos        position.Position
		wantWhitespace bool
		wantOk         bool
	}{
		{
			name:           "after_whitespace",
			text:           `<div `,
			mask:           ` ttt  `,
			pos:            position.New(0, 5),
			wantPos:        position.New(0, 3),
			wantWhitespace: true,
			wantOk:         true,
		},
		{
			name:    "directly_after",
			text:    `<div`,
			mask:    ` ttt `,
			pos:     position.New(0, 4),
			wantPos: position.New(0, 3),
			wantOk:  true,
		},
		{
			name:   "slash_bounds",
			text:   `</di`,
			mask:   ``,
			pos:    position.New(0, 4),
			wantOk: false,
		},
		{
			name:   "open_bracket_bounds",
			text:   `<  `,
			mask:   ``,
			pos:    position.New(0, 3),
			wantOk: false,
		},
		{
			name:   "stays_on_row",
			text:   "<div\n  ",
			mask:   " ttt\n  ",
			pos:    position.New(1, 2),
			wantOk: false,
		},
		{
			name:   "plain_text_only",
			text:   `hello `,
			mask:   ``,
			pos:    position.New(0, 6),
			wantOk: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := newScanner(tt.text, tt.mask).Adjacent(context.Background(), tt.pos)
			require.Equal(t, tt.wantOk, ok)
			if !tt.wantOk {
				return
			}
			assert.Equal(t, tt.wantPos, got.Position)
			assert.Equal(t, tt.wantWhitespace, got.Whitespace)
			assert.Len(t, got.Scopes, 2)
		})
	}
}
