package runstats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunStatistics(t *testing.T) {
	rs := Start(20)
	require.Equal(t, time.Duration(0), rs.GetCurrentUnitProcessingTime())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rs.EndUnit(time.Now().Add(-time.Millisecond), 3)
		}()
	}
	wg.Wait()
	done, total := rs.GetNumUnitsProcessed()
	require.Equal(t, 20, done)
	require.Equal(t, 20, total)
	require.Equal(t, int64(60), rs.GetNumRowsProcessed())
	require.GreaterOrEqual(t, rs.GetCurrentUnitProcessingTime(), time.Millisecond)

	rs.Finish()
	runtime := rs.GetRuntime()
	time.Sleep(time.Millisecond)
	require.Equal(t, runtime, rs.GetRuntime())
	require.Len(t, rs.LogAttrs(), 10)
	require.False(t, rs.GetStartTime().IsZero())
}
