package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyEdits(t *testing.T) {
	src := []byte("abcdef")

	tests := []struct {
		name  string
		edits []Edit
		want  string
	}{
		{
			name:  "no edits",
			edits: nil,
			want:  "abcdef",
		},
		{
			name:  "single replacement",
			edits: []Edit{{Start: 2, End: 4, Replacement: "XY"}},
			want:  "abXYef",
		},
		{
			name:  "deletion",
			edits: []Edit{{Start: 0, End: 3}},
			want:  "def",
		},
		{
			name:  "insertion",
			edits: []Edit{{Start: 3, End: 3, Replacement: "---"}},
			want:  "abc---def",
		},
		{
			// Ascending input order must not corrupt offsets.
			name: "multiple edits applied descending",
			edits: []Edit{
				{Start: 0, End: 1, Replacement: "A"},
				{Start: 5, End: 6, Replacement: "F"},
			},
			want: "AbcdeF",
		},
		{
			name: "replacement longer than span",
			edits: []Edit{
				{Start: 1, End: 2, Replacement: "BBBB"},
				{Start: 4, End: 5, Replacement: "E"},
			},
			want: "aBBBBcdEf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyEdits(src, tt.edits))
		})
	}
}
