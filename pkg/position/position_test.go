package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/marko-inspect/pkg/position"
)

func TestPrevious(t *testing.T) {
	buf := position.NewLines("<div\n\nab")

	tests := []struct {
		name   string
		pos    position.Position
		want   position.Position
		wantOk bool
	}{
		{
			name:   "start_of_buffer",
			pos:    position.New(0, 0),
			wantOk: false,
		},
		{
			name:   "same_row",
			pos:    position.New(0, 3),
			want:   position.New(0, 2),
			wantOk: true,
		},
		{
			name:   "into_empty_row",
			pos:    position.New(2, 0),
			want:   position.New(1, 0),
			wantOk: true,
		},
		{
			name:   "onto_last_char_of_previous_row",
			pos:    position.New(1, 0),
			want:   position.New(0, 3),
			wantOk: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := position.Previous(buf, tt.pos)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPreviousWalksWholeBuffer(t *testing.T) {
	buf := position.NewLines("ab\n\ncd")

	var seen []string
	pos := position.New(2, 2)
	for {
		prev, ok := position.Previous(buf, pos)
		if !ok {
			break
		}
		seen = append(seen, prev.String())
		pos = prev
	}

	assert.Equal(t, []string{"2:1", "2:0", "1:0", "0:1", "0:0"}, seen)
}

func TestLineSlicing(t *testing.T) {
	buf := position.NewLines("<div class=\"é\">\r\nnext")

	assert.Equal(t, "<div", position.LineUpTo(buf, position.New(0, 4), false))
	assert.Equal(t, "<div ", position.LineUpTo(buf, position.New(0, 4), true))
	assert.Equal(t, "é\">", position.LineFrom(buf, position.New(0, 12)))
	assert.Equal(t, "é", position.CharAt(buf, position.New(0, 12)))
	assert.Equal(t, "", position.CharAt(buf, position.New(0, 15)), "carriage return is trimmed")
	assert.Equal(t, "", position.CharAt(buf, position.New(7, 0)))
	assert.Equal(t, "", position.LineFrom(buf, position.New(1, 10)))
	assert.Equal(t, "next", position.LineUpTo(buf, position.New(1, 99), true))
}

func TestOffsets(t *testing.T) {
	text := "Hello\nWörld\nTest"

	tests := []struct {
		name   string
		offset int
		want   position.Position
	}{
		{name: "zero", offset: 0, want: position.New(0, 0)},
		{name: "first_line", offset: 3, want: position.New(0, 3)},
		{name: "second_line_multibyte", offset: 8, want: position.New(1, 2)},
		{name: "third_line", offset: 14, want: position.New(2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := position.FromOffset(text, tt.offset)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.offset, position.ToOffset(text, got))
		})
	}
}

func TestFromVisualColumn(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		visual   int
		tabWidth int
		want     int
	}{
		{name: "plain", line: "<div>", visual: 3, tabWidth: 4, want: 3},
		{name: "tab_expanded", line: "\t<div", visual: 5, tabWidth: 4, want: 2},
		{name: "inside_tab", line: "\t<div", visual: 2, tabWidth: 4, want: 1},
		{name: "wide_rune", line: "世界<a", visual: 5, tabWidth: 4, want: 3},
		{name: "past_end", line: "ab", visual: 10, tabWidth: 4, want: 2},
		{name: "zero_tab_width", line: "\tb", visual: 1, tabWidth: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, position.FromVisualColumn(tt.line, tt.visual, tt.tabWidth))
		})
	}
}
