package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func bar(pct float64, width int) (string, float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled), pct
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	b, pct := bar(pct, width)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(b), pct*100)
}

// RenderRestBar renders elapsed rest as a bar that turns green near the end,
// followed by the remaining clock.
func RenderRestBar(progress float64, remainingSeconds, width int) string {
	b, pct := bar(progress, width)

	style := StyleYellow
	if pct >= 0.8 {
		style = StyleGreen
	}
	return fmt.Sprintf("%s %s", style.Render(b), Bold(FormatClock(remainingSeconds)))
}

// FormatClock renders whole seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
