package caption

import (
	"reflect"
	"testing"
)

func TestToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "  ", want: ""},
		{name: "plain", in: "sunset at the pier", want: "sunset at the pier"},
		{name: "tags and entities", in: `<b>Hello</b> &amp; <a href="https://x.test">welcome</a>`, want: "Hello & welcome"},
		{name: "script dropped", in: `hi<script>alert(1)</script> there`, want: "hi there"},
		{name: "breaks", in: "line one<br>line two</p><p>para</p>", want: "line one\nline two\n\npara"},
		{name: "collapses blank runs", in: "a\n\n\n\nb", want: "a\n\nb"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToText(tc.in); got != tc.want {
				t.Fatalf("ToText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("the quick brown fox\n\njumps", 10)
	want := []string{"the quick", "brown fox", "", "jumps"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrap_SplitsLongWords(t *testing.T) {
	got := Wrap("ééééééé ok", 3)
	want := []string{"ééé", "ééé", "é", "ok"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hell…" {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Fatalf("unexpected truncate: %q", got)
	}
	if got := Truncate("hi", 0); got != "" {
		t.Fatalf("unexpected truncate: %q", got)
	}
}
