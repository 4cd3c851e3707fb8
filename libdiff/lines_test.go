package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     []Line
	}{
		{
			name: "identical",
			from: "a\nb\n",
			to:   "a\nb\n",
		},
		{
			name: "replace",
			from: "a\nb\nc\n",
			to:   "a\nx\nc\n",
			want: []Line{{Equal, "a"}, {Delete, "b"}, {Insert, "x"}, {Equal, "c"}},
		},
		{
			name: "append",
			from: "a\n",
			to:   "a\nb\nc\n",
			want: []Line{{Equal, "a"}, {Insert, "b"}, {Insert, "c"}},
		},
		{
			name: "remove",
			from: "a\nb\nc\n",
			to:   "c\n",
			want: []Line{{Delete, "a"}, {Delete, "b"}, {Equal, "c"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lines(tt.from, tt.to)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContext(t *testing.T) {
	d := []Line{
		{Equal, "1"}, {Equal, "2"}, {Equal, "3"}, {Delete, "4"}, {Insert, "x"},
		{Equal, "5"}, {Equal, "6"}, {Equal, "7"}, {Equal, "8"},
	}
	want := []Line{
		{Op: Elided}, {Equal, "3"}, {Delete, "4"}, {Insert, "x"}, {Equal, "5"}, {Op: Elided},
	}
	if diff := cmp.Diff(want, Context(d, 1)); diff != "" {
		t.Errorf("Context() mismatch (-want +got):\n%s", diff)
	}
	if got := Changed(d); got != 2 {
		t.Errorf("Changed() = %d", got)
	}
	if got := d[3].String(); got != "- 4" {
		t.Errorf("String() = %q", got)
	}
}
