package chart

import "math"

// MinWindow is the smallest visible index span the viewport may shrink to.
const MinWindow = 5

// DefaultZoomStep is the fraction of the current window size a single zoom
// step grows or shrinks it by.
const DefaultZoomStep = 0.15

// Window is an inclusive index range [Start, End] over the merged row
// table. A valid window over a domain of n rows satisfies
// 0 <= Start < End <= n-1 and End-Start >= MinWindow (or spans the full
// domain when the domain itself is smaller than that). Domains of fewer
// than two rows pin the window to {0, 0} with Size() == 0.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (w Window) Size() int {
	return w.End - w.Start
}

// Controller is the pan/zoom/reset state machine over a Window. The bounds
// are kept in float64 so that a zoom out exactly undoes a zoom in instead of
// accumulating integer rounding drift; Window() rounds at the edge. Every
// transition yields a fresh Window value, so callers can rely on simple
// equality checks to detect change. It never suspends and is safe to call on
// every frame.
type Controller struct {
	n      int
	startF float64
	endF   float64
}

func NewController(n int) *Controller {
	c := &Controller{n: n}
	c.Reset()
	return c
}

// Window returns the currently visible index range.
func (c *Controller) Window() Window {
	if c.n <= 1 {
		return Window{}
	}
	start := clampInt(int(math.Round(c.startF)), 0, c.n-2)
	end := clampInt(int(math.Round(c.endF)), start+1, c.n-1)
	return Window{Start: start, End: end}
}

// DomainSize returns the row count the controller currently spans.
func (c *Controller) DomainSize() int {
	return c.n
}

// Reset restores the full-domain view.
func (c *Controller) Reset() {
	c.startF = 0
	c.endF = float64(maxInt(c.n-1, 0))
}

// DomainChanged resets to the full domain when the underlying row count
// changes, and is a no-op otherwise so that data refreshes of the same
// length keep the user's view.
func (c *Controller) DomainChanged(newN int) {
	if newN == c.n {
		return
	}
	c.n = newN
	c.Reset()
}

// Pan shifts the window by a pixel delta scaled to the current window size.
// Dragging past an edge is clamped by sliding the whole window back inside
// the domain; the window size is preserved, never truncated.
func (c *Controller) Pan(deltaPixels, pixelWidth float64) {
	if !c.navigable() || pixelWidth <= 0 {
		return
	}
	size := c.endF - c.startF
	shift := deltaPixels / pixelWidth * size
	start := c.startF + shift
	end := c.endF + shift
	if start < 0 {
		start = 0
		end = size
	}
	if end > float64(c.n-1) {
		end = float64(c.n - 1)
		start = end - size
	}
	c.startF, c.endF = start, end
}

// Zoom shrinks (direction > 0) or grows (direction < 0) the window by
// stepFraction of its current size, keeping focusIndex at the same relative
// position inside the window so the point under the pointer stays visually
// stationary. Growing divides by the shrink factor, making a zoom out the
// exact inverse of a zoom in. stepFraction outside (0, 1) falls back to
// DefaultZoomStep.
func (c *Controller) Zoom(focusIndex int, direction int, stepFraction float64) {
	if !c.navigable() || direction == 0 {
		return
	}
	if stepFraction <= 0 || stepFraction >= 1 {
		stepFraction = DefaultZoomStep
	}
	size := c.endF - c.startF
	var newSize float64
	if direction > 0 {
		newSize = size * (1 - stepFraction)
	} else {
		newSize = size / (1 - stepFraction)
	}
	if newSize < MinWindow {
		newSize = MinWindow
	}
	if newSize > float64(c.n-1) {
		newSize = float64(c.n - 1)
	}

	focus := math.Min(math.Max(float64(focusIndex), c.startF), c.endF)
	rel := (focus - c.startF) / size
	start := focus - rel*newSize
	if start < 0 {
		start = 0
	}
	if start+newSize > float64(c.n-1) {
		start = float64(c.n-1) - newSize
	}
	c.startF, c.endF = start, start+newSize
}

// navigable reports whether the domain is big enough to move around in at
// all. Degenerate domains pin the window to whatever Reset produced.
func (c *Controller) navigable() bool {
	return c.n-1 > MinWindow
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
