package chart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stockpulse/internal/domain"
)

func testDims() domain.Dims {
	return domain.Dims{Width: 800, Height: 400, Padding: 20}
}

func TestMapper(t *testing.T) {
	values := []*float64{fp(10), fp(20), fp(30), fp(40), fp(50), fp(60)}
	win := Window{Start: 0, End: 5}

	t.Run("endpoints land on the padded edges", func(t *testing.T) {
		m := NewMapper(win, values, testDims())
		require.InDelta(t, 20, m.IndexToX(0), 1e-9)
		require.InDelta(t, 780, m.IndexToX(5), 1e-9)
		// min maps to the bottom edge, max to the top
		require.InDelta(t, 380, m.ValueToY(10), 1e-9)
		require.InDelta(t, 20, m.ValueToY(60), 1e-9)
	})

	t.Run("xToIndex inverts indexToX", func(t *testing.T) {
		m := NewMapper(win, values, testDims())
		for i := win.Start; i <= win.End; i++ {
			require.Equal(t, i, m.XToIndex(m.IndexToX(i)))
		}
	})

	t.Run("xToIndex clamps to the window", func(t *testing.T) {
		m := NewMapper(Window{Start: 1, End: 4}, values, testDims())
		require.Equal(t, 1, m.XToIndex(-5000))
		require.Equal(t, 4, m.XToIndex(5000))
	})

	t.Run("vertical scale fits the visible slice only", func(t *testing.T) {
		spiky := []*float64{fp(1000), fp(10), fp(20), fp(30), fp(-500)}
		m := NewMapper(Window{Start: 1, End: 3}, spiky, testDims())
		// 10 and 30 are the window extremes; the out-of-window spike and
		// trough must not compress the visible range
		require.InDelta(t, 380, m.ValueToY(10), 1e-9)
		require.InDelta(t, 20, m.ValueToY(30), 1e-9)
	})

	t.Run("flat series substitutes a unit range", func(t *testing.T) {
		flat := []*float64{fp(42), fp(42), fp(42)}
		m := NewMapper(Window{Start: 0, End: 2}, flat, testDims())
		y := m.ValueToY(42)
		require.False(t, y != y, "flat series must not divide by zero")
		require.InDelta(t, 380, y, 1e-9)
	})

	t.Run("nil values are ignored for scaling", func(t *testing.T) {
		gappy := []*float64{fp(10), nil, fp(30)}
		m := NewMapper(Window{Start: 0, End: 2}, gappy, testDims())
		require.InDelta(t, 380, m.ValueToY(10), 1e-9)
		require.InDelta(t, 20, m.ValueToY(30), 1e-9)
	})
}

func TestProjectToPixels(t *testing.T) {
	values := []*float64{fp(10), nil, fp(30), fp(20), fp(40)}

	points := ProjectToPixels(values, Window{Start: 0, End: 4}, testDims())

	// the nil observation produces no point
	require.Len(t, points, 4)
	require.InDelta(t, 20, points[0].X, 1e-9)
	require.InDelta(t, 780, points[3].X, 1e-9)
	// lowest value sits at the bottom of the padded area
	require.InDelta(t, 380, points[0].Y, 1e-9)
}

func TestSeriesColumns(t *testing.T) {
	rows := []domain.MergedRow{
		{Date: "2024-06-06", Actual: fp(105), PerModel: map[string]*float64{"LSTM": fp(104)}, Kind: domain.RowKindPast},
		{Date: "2024-06-07", Actual: nil, PerModel: map[string]*float64{"LSTM": fp(106)}, Kind: domain.RowKindFuture},
	}

	require.Equal(t, []*float64{fp(105), nil}, ActualValues(rows))
	require.Equal(t, []*float64{fp(104), fp(106)}, ModelValues(rows, "LSTM"))
	require.Equal(t, []*float64{nil, nil}, ModelValues(rows, "missing"))
}
