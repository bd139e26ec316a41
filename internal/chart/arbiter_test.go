package chart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArbiter(t *testing.T) {
	t.Run("tokens increase monotonically", func(t *testing.T) {
		a := &Arbiter{}
		t1 := a.Issue()
		t2 := a.Issue()
		t3 := a.Issue()
		require.Less(t, t1, t2)
		require.Less(t, t2, t3)
	})

	t.Run("only the latest token applies", func(t *testing.T) {
		a := &Arbiter{}
		t1 := a.Issue()
		require.True(t, a.ShouldApply(t1))

		// the user switched tickers before t1's payload arrived
		t2 := a.Issue()
		require.False(t, a.ShouldApply(t1))
		require.True(t, a.ShouldApply(t2))
	})
}
