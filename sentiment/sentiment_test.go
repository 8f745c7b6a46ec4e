package sentiment

import (
	"context"
	"testing"
)

func TestVaderPolarity(t *testing.T) {
	v := NewVader()
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		sign int
	}{
		{"positive", "I love this community, everyone here is wonderful and helpful!", 1},
		{"negative", "This is terrible. I hate it and the people are awful.", -1},
		{"blank", "   ", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Polarity(ctx, tt.text)
			if err != nil {
				t.Fatalf("Polarity failed: %v", err)
			}
			if got < -1 || got > 1 {
				t.Errorf("Polarity = %f, out of [-1, 1]", got)
			}
			switch tt.sign {
			case 1:
				if got <= 0 {
					t.Errorf("Polarity = %f, want > 0", got)
				}
			case -1:
				if got >= 0 {
					t.Errorf("Polarity = %f, want < 0", got)
				}
			default:
				if got != 0 {
					t.Errorf("Polarity = %f, want 0", got)
				}
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.5, 1},
		{-3, -1},
		{0.25, 0.25},
		{-1, -1},
	}
	for _, tt := range tests {
		if got := clamp(tt.in); got != tt.want {
			t.Errorf("clamp(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
