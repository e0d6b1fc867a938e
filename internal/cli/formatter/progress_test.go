package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   float64
		width int
		want  string
	}{
		{"0%", 0.0, 10, "  0%"},
		{"50%", 0.5, 10, " 50%"},
		{"100%", 1.0, 10, "100%"},
		{"over 100% clamps", 1.5, 10, "100%"},
		{"negative clamps", -0.5, 10, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width)
			assert.True(t, strings.HasSuffix(got, tt.want), "got %q", got)
			assert.True(t, strings.HasPrefix(got, "["))
		})
	}
}

func TestBarWidthClamp(t *testing.T) {
	b, _ := bar(0.5, 1)
	assert.Equal(t, filledBlock+emptyBlock, b)

	b, _ = bar(1, 4)
	assert.Equal(t, strings.Repeat(filledBlock, 4), b)
}

func TestRenderRestBar(t *testing.T) {
	got := RenderRestBar(0.25, 45, 8)
	assert.Contains(t, got, "0:45")
	assert.Contains(t, got, emptyBlock)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "5:00", FormatClock(300))
	assert.Equal(t, "0:09", FormatClock(9))
	assert.Equal(t, "0:00", FormatClock(-3))
}
