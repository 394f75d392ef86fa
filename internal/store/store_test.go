package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type counterEvent string

func counterReducer(s int, ev counterEvent) int {
	switch ev {
	case "inc":
		return s + 1
	case "reset":
		return 0
	}
	return s
}

func TestDispatchAppliesReducer(t *testing.T) {
	st := New(0, counterReducer)

	st.Dispatch("inc")
	st.Dispatch("inc")
	require.Equal(t, 2, st.State())

	st.Dispatch("reset")
	require.Equal(t, 0, st.State())
}

func TestUnknownEventLeavesStateUnchanged(t *testing.T) {
	st := New(5, counterReducer)
	st.Dispatch("bogus")
	require.Equal(t, 5, st.State())
}

func TestSubscribeNotifiesWithNewState(t *testing.T) {
	st := New(0, counterReducer)

	var got []int
	unsub := st.Subscribe(func(s int) { got = append(got, s) })

	st.Dispatch("inc")
	st.Dispatch("inc")
	unsub()
	st.Dispatch("inc")

	require.Equal(t, []int{1, 2}, got)
	require.Equal(t, 3, st.State())
}

func TestConcurrentDispatchesAreSerialized(t *testing.T) {
	st := New(0, counterReducer)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch("inc")
		}()
	}
	wg.Wait()

	require.Equal(t, 100, st.State())
}
