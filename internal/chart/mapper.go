package chart

import (
	"math"

	"github.com/montanaflynn/stats"

	"stockpulse/internal/domain"
)

// Mapper converts merged-row indices and values into pixel coordinates for
// one viewport window. The vertical scale is fit to the min/max of the
// values inside the window only, so it is rebuilt on every viewport change.
type Mapper struct {
	win     Window
	minV    float64
	rangeV  float64
	width   float64
	height  float64
	padding float64
}

// NewMapper fits a mapper to the window slice of values. Nil entries are
// ignored when computing the vertical scale. A flat slice (max == min)
// substitutes a range of 1 so projection never divides by zero.
func NewMapper(win Window, values []*float64, dims domain.Dims) Mapper {
	visible := []float64{}
	for i := win.Start; i <= win.End && i < len(values); i++ {
		if values[i] != nil && isFinite(*values[i]) {
			visible = append(visible, *values[i])
		}
	}

	minV, maxV := 0.0, 0.0
	if len(visible) > 0 {
		minV, _ = stats.Min(visible)
		maxV, _ = stats.Max(visible)
	}
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}

	return Mapper{
		win:     win,
		minV:    minV,
		rangeV:  rangeV,
		width:   dims.Width,
		height:  dims.Height,
		padding: dims.Padding,
	}
}

func (m Mapper) IndexToX(i int) float64 {
	span := float64(m.win.Size())
	if span == 0 {
		span = 1
	}
	return m.padding + float64(i-m.win.Start)/span*(m.width-2*m.padding)
}

func (m Mapper) ValueToY(v float64) float64 {
	return m.height - m.padding - (v-m.minV)/m.rangeV*(m.height-2*m.padding)
}

// XToIndex inverts IndexToX for pointer hit-testing: the result is rounded
// to the nearest row index and clamped to the window.
func (m Mapper) XToIndex(pixelX float64) int {
	inner := m.width - 2*m.padding
	if inner <= 0 {
		return m.win.Start
	}
	rel := (pixelX - m.padding) / inner
	i := m.win.Start + int(math.Round(rel*float64(m.win.Size())))
	return clampInt(i, m.win.Start, m.win.End)
}

// ProjectToPixels maps the windowed slice of values onto the drawing
// surface. Nil values produce no point; the X positions of the surviving
// points stay aligned with their row indices.
func ProjectToPixels(values []*float64, win Window, dims domain.Dims) []domain.Point {
	m := NewMapper(win, values, dims)
	points := []domain.Point{}
	for i := win.Start; i <= win.End && i < len(values); i++ {
		if values[i] == nil || !isFinite(*values[i]) {
			continue
		}
		points = append(points, domain.Point{
			X: m.IndexToX(i),
			Y: m.ValueToY(*values[i]),
		})
	}
	return points
}

// ActualValues extracts the realized-close column from merged rows, in row
// order, for projection.
func ActualValues(rows []domain.MergedRow) []*float64 {
	out := make([]*float64, len(rows))
	for i, r := range rows {
		out[i] = r.Actual
	}
	return out
}

// ModelValues extracts one model's column from merged rows, in row order.
func ModelValues(rows []domain.MergedRow, model string) []*float64 {
	out := make([]*float64, len(rows))
	for i, r := range rows {
		out[i] = r.PerModel[model]
	}
	return out
}
