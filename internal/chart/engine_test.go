package chart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stockpulse/internal/domain"
)

func testHistory(n int) domain.PriceHistory {
	h := domain.PriceHistory{}
	d := 1
	for len(h.Dates) < n {
		h.Dates = append(h.Dates, "2024-07-"+twoDigits(d))
		h.Closes = append(h.Closes, 100+float64(len(h.Closes)))
		d++
	}
	return h
}

func twoDigits(d int) string {
	return string([]byte{byte('0' + d/10), byte('0' + d%10)})
}

func TestEngine_ApplySnapshot(t *testing.T) {
	t.Run("stale token is a no-op on visible state", func(t *testing.T) {
		e := NewEngine(&stubScheduler{})

		t1 := e.Begin()
		// the user switched to another ticker before t1's fetch landed
		t2 := e.Begin()

		applied := e.ApplySnapshot(t1, testHistory(10), nil, nil, 10, 0)
		require.False(t, applied)
		require.Empty(t, e.Rows())

		applied = e.ApplySnapshot(t2, testHistory(12), nil, nil, 12, 0)
		require.True(t, applied)
		require.Len(t, e.Rows(), 12)
		require.Equal(t, Window{Start: 0, End: 11}, e.Viewport().Window())
	})

	t.Run("same-length refresh keeps the viewport", func(t *testing.T) {
		e := NewEngine(&stubScheduler{})
		require.True(t, e.ApplySnapshot(e.Begin(), testHistory(20), nil, nil, 20, 0))

		e.Viewport().Zoom(10, 1, DefaultZoomStep)
		zoomed := e.Viewport().Window()

		require.True(t, e.ApplySnapshot(e.Begin(), testHistory(20), nil, nil, 20, 0))
		require.Equal(t, zoomed, e.Viewport().Window())

		// a different row count resets to the full domain
		require.True(t, e.ApplySnapshot(e.Begin(), testHistory(25), nil, nil, 25, 0))
		require.Equal(t, Window{Start: 0, End: 24}, e.Viewport().Window())
	})
}

func TestEngine_Project(t *testing.T) {
	e := NewEngine(&stubScheduler{})

	_, err := e.ProjectActual(testDims())
	require.ErrorIs(t, err, ErrEmptyDomain)

	require.True(t, e.ApplySnapshot(
		e.Begin(),
		testHistory(10),
		nil,
		[]domain.ModelForecast{{Model: "LSTM", Predictions: []float64{1, 2}}},
		10,
		2,
	))

	actualPts, err := e.ProjectActual(testDims())
	require.NoError(t, err)
	// 10 past rows have closes; the 2 future rows have none
	require.Len(t, actualPts, 10)

	modelPts, err := e.ProjectModel("LSTM", testDims())
	require.NoError(t, err)
	require.Len(t, modelPts, 2)
}
