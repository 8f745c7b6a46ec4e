package persona

import (
	"strings"
	"testing"
)

func TestIsSelfDescription(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"I'm a nurse in Boston", true},
		{"Imagine a nurse", false},
		{"i am a nurse", true},
		{"Honestly I AM tired", true},
		{"my name is Bob", true},
		{"These days I work as a plumber", true},
		{"I live in Lisbon now", true},
		{"I’m using a curly apostrophe", true},
		{"Miami is nice", false},
		{"I'mmersive experiences", false},
		{"Tim also lives in Lisbon", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSelfDescription(tt.text); got != tt.want {
			t.Errorf("IsSelfDescription(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet("  short text \n"); got != "short text..." {
		t.Errorf("Snippet(short) = %q, want %q", got, "short text...")
	}

	long := strings.Repeat("a", 150)
	got := Snippet(long)
	if got != strings.Repeat("a", 100)+"..." {
		t.Errorf("Snippet(long) = %q (len %d), want 100 chars plus ellipsis", got, len(got))
	}

	// Truncation counts characters, not bytes.
	multibyte := strings.Repeat("é", 120)
	got = Snippet(multibyte)
	if want := strings.Repeat("é", 100) + "..."; got != want {
		t.Errorf("Snippet(multibyte) = %q, want %q", got, want)
	}
}

func TestToneFor(t *testing.T) {
	tests := []struct {
		avg  float64
		want Tone
	}{
		{0.5, TonePositive},
		{-0.5, ToneNegative},
		{0.0, ToneNeutral},
		{0.2, ToneNeutral},
		{-0.2, ToneNeutral},
		{0.2000001, TonePositive},
		{-0.2000001, ToneNegative},
	}

	for _, tt := range tests {
		if got := ToneFor(tt.avg); got != tt.want {
			t.Errorf("ToneFor(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}
