package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name    string
		pct     float64
		wantPct string
	}{
		{"empty", 0, "  0%"},
		{"half", 0.5, " 50%"},
		{"full", 1, "100%"},
		{"over clamps", 1.7, "100%"},
		{"negative clamps", -0.2, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderProgress(tt.pct, 10))
			assert.Contains(t, got, tt.wantPct)
			assert.Contains(t, got, "[")
		})
	}
}

func TestRenderCompactBar(t *testing.T) {
	tests := []struct {
		name       string
		pct        float64
		width      int
		wantFilled int
		wantEmpty  int
	}{
		{"0%", 0.0, 4, 0, 4},
		{"50%", 0.5, 10, 5, 5},
		{"100%", 1.0, 4, 4, 0},
		{"over 100% clamps", 1.5, 4, 4, 0},
		{"negative clamps", -0.5, 4, 0, 4},
		{"tiny width clamps to 2", 0.5, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderCompactBar(tt.pct, tt.width, StyleGreen))
			assert.NotContains(t, got, "[")
			assert.NotContains(t, got, "%")
			assert.Equal(t, tt.wantFilled, countRunes(got, filledBlock))
			assert.Equal(t, tt.wantEmpty, countRunes(got, emptyBlock))
		})
	}
}
