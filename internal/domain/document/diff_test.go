package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want []LineChange
	}{
		{
			name: "identical",
			from: "a\nb",
			to:   "a\nb",
			want: []LineChange{},
		},
		{
			name: "appended line",
			from: "a",
			to:   "a\nb",
			want: []LineChange{{Line: 2, Type: ChangeAddition, NewValue: "b"}},
		},
		{
			name: "truncated line",
			from: "a\nb",
			to:   "a",
			want: []LineChange{{Line: 2, Type: ChangeRemoval, OldValue: "b"}},
		},
		{
			name: "modified middle line",
			from: "a\nb\nc",
			to:   "a\nB\nc",
			want: []LineChange{{Line: 2, Type: ChangeModification, OldValue: "b", NewValue: "B"}},
		},
		{
			name: "blank line filled counts as addition",
			from: "a\n\nc",
			to:   "a\nb\nc",
			want: []LineChange{{Line: 2, Type: ChangeAddition, NewValue: "b"}},
		},
		{
			name: "insertion shifts lines without move detection",
			from: "a\nc",
			to:   "a\nb\nc",
			want: []LineChange{
				{Line: 2, Type: ChangeModification, OldValue: "c", NewValue: "b"},
				{Line: 3, Type: ChangeAddition, NewValue: "c"},
			},
		},
		{
			name: "empty to content",
			from: "",
			to:   "x\ny",
			want: []LineChange{
				{Line: 1, Type: ChangeAddition, NewValue: "x"},
				{Line: 2, Type: ChangeAddition, NewValue: "y"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Diff(tc.from, tc.to))
		})
	}
}

func TestDiff_AntiSymmetric(t *testing.T) {
	texts := [][2]string{
		{"a\nb\nc", "a\n\nc\nd"},
		{"", "one\ntwo"},
		{"x\n\nz\n", "x\ny\n\nw"},
		{"same", "same"},
	}

	for _, pair := range texts {
		forward := Diff(pair[0], pair[1])
		backward := Diff(pair[1], pair[0])

		assert.Len(t, backward, len(forward))
		byLine := make(map[int]LineChange, len(backward))
		for _, c := range backward {
			byLine[c.Line] = c
		}

		for _, c := range forward {
			mirror, ok := byLine[c.Line]
			if !assert.True(t, ok, "line %d missing in reverse diff", c.Line) {
				continue
			}
			switch c.Type {
			case ChangeAddition:
				assert.Equal(t, ChangeRemoval, mirror.Type)
			case ChangeRemoval:
				assert.Equal(t, ChangeAddition, mirror.Type)
			case ChangeModification:
				assert.Equal(t, ChangeModification, mirror.Type)
			}
			assert.Equal(t, c.OldValue, mirror.NewValue)
			assert.Equal(t, c.NewValue, mirror.OldValue)
		}
	}
}
