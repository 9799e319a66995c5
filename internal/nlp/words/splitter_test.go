package words

import (
	"strings"
	"testing"
)

func drain(s *Splitter) []string {
	var out []string
	for {
		w, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, w)
	}
}

func TestSplitter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "plain sentence",
			in:   "The quick brown fox",
			want: []string{"the", "quick", "brown", "fox"},
		},
		{
			name: "punctuation and digits",
			in:   "order #1234: ships 2-day, free!",
			want: []string{"order", "1234", "ships", "2", "day", "free"},
		},
		{
			name: "unicode words",
			in:   "naïve café — приве́т",
			want: []string{"naïve", "café", "приве", "т"},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "only separators",
			in:   " \t\n.,;!",
			want: nil,
		},
		{
			name: "overlong run dropped",
			in:   "before " + strings.Repeat("a", 41) + " after",
			want: []string{"before", "after"},
		},
		{
			name: "run at limit kept",
			in:   strings.Repeat("b", 40),
			want: []string{strings.Repeat("b", 40)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := drain(NewSplitter(tc.in))
			if len(got) != len(tc.want) {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("word %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestSplitterMoreDoesNotConsume(t *testing.T) {
	t.Parallel()

	s := NewSplitter("one two")
	for i := 0; i < 3; i++ {
		if !s.More() {
			t.Fatal("More reported exhaustion early")
		}
	}
	if w, ok := s.Next(); !ok || w != "one" {
		t.Fatalf("got %q %v, want \"one\" true", w, ok)
	}
	if w, ok := s.Next(); !ok || w != "two" {
		t.Fatalf("got %q %v, want \"two\" true", w, ok)
	}
	if s.More() {
		t.Fatal("More true after exhaustion")
	}
	if _, ok := s.Next(); ok {
		t.Fatal("Next true after exhaustion")
	}
}

func TestSliceSource(t *testing.T) {
	t.Parallel()

	src := NewSliceSource([]string{"a", "b"})
	if !src.More() {
		t.Fatal("More false on fresh source")
	}
	if w, _ := src.Next(); w != "a" {
		t.Fatalf("got %q, want a", w)
	}
	if w, _ := src.Next(); w != "b" {
		t.Fatalf("got %q, want b", w)
	}
	if src.More() {
		t.Fatal("More true after exhaustion")
	}
}
