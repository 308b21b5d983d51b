package uihelpers

import (
	"math"
	"path/filepath"
)

// ChromeInsets is the number of theme paddings between the window edge and the
// plot viewport: window padding and the padded chart row on both sides, plus the
// gap the border layout leaves between the gutter and the scroller.
const ChromeInsets = 5

// PlotViewportWidth estimates the visible width of the plot pane from the window
// width, the axis gutter and the theme padding. Never below 1.
func PlotViewportWidth(windowW float32, axisW float64, pad float32) float64 {
	w := float64(windowW) - axisW - ChromeInsets*float64(pad)
	if w < 1 {
		return 1
	}
	return math.Floor(w)
}

// ViewportWidth prefers the measured width of the laid-out scroller and falls
// back to PlotViewportWidth before the first layout pass.
func ViewportWidth(scrollW, windowW float32, axisW float64, pad float32) float64 {
	if scrollW >= 1 {
		return math.Floor(float64(scrollW))
	}
	return PlotViewportWidth(windowW, axisW, pad)
}

// ClampScrollOffset keeps a horizontal offset inside [0, content-viewport].
func ClampScrollOffset(offset, contentW, viewportW float64) float64 {
	maxOff := contentW - viewportW
	if maxOff < 0 {
		maxOff = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > maxOff {
		return maxOff
	}
	return offset
}

// OffsetToReveal returns the smallest scroll change that brings the slot
// [left,right] fully into a viewport currently scrolled to offset.
func OffsetToReveal(offset, left, right, contentW, viewportW float64) float64 {
	switch {
	case left < offset:
		offset = left
	case right > offset+viewportW:
		offset = right - viewportW
	}
	return ClampScrollOffset(offset, contentW, viewportW)
}

// ClampVisibleLimit keeps the +/- control within [1, 500], stepping by 1.
func ClampVisibleLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > 500 {
		return 500
	}
	return n
}

// TruncatePath shortens p to at most n characters, keeping the base name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	dir := filepath.Dir(p)
	if dir == "." || len(base)+4 >= n {
		return "..." + base
	}
	if left := n - len(base) - 4; len(dir) > left {
		dir = dir[:left]
	}
	return dir + string(filepath.Separator) + "..." + base
}
