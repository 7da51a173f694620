package tui

import (
	"math"

	"github.com/charmbracelet/bubbles/viewport"
)

// viewportSurface exposes a viewport to the scroll synchronizer in lines.
type viewportSurface struct {
	vp *viewport.Model
}

func (s viewportSurface) ScrollOffset() float64   { return float64(s.vp.YOffset) }
func (s viewportSurface) ViewportExtent() float64 { return float64(s.vp.Height) }
func (s viewportSurface) ContentExtent() float64  { return float64(s.vp.TotalLineCount()) }

func (s viewportSurface) SetScrollOffset(v float64) {
	s.vp.SetYOffset(int(math.Round(v)))
}
