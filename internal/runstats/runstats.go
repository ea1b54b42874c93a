// Package runstats tracks the progress of long-running evaluations which process many
// independent units of work, possibly concurrently.
package runstats

import (
	"sync"
	"time"
)

const statisticRollingWindows = 5

// RunStatistics contains statistics about a running evaluation
type RunStatistics struct {
	lock                   sync.Mutex
	startTime              time.Time
	totalRuntime           time.Duration
	finished               bool
	numUnits               int
	unitsProcessed         int
	rowsProcessed          int64
	recentUnitRuntimes     []time.Duration // for rolling average of recent unit processing times
	recentUnitRuntimesHead int
	recentUnitRuntimesLen  int
}

// Start returns RunStatistics tracking an evaluation of numUnits units
func Start(numUnits int) *RunStatistics {
	return &RunStatistics{
		startTime:          time.Now(),
		numUnits:           numUnits,
		recentUnitRuntimes: make([]time.Duration, statisticRollingWindows),
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.finished {
		rs.totalRuntime = time.Since(rs.startTime)
		rs.finished = true
	}
}

// EndUnit tracks the end of a unit of work which began at start and processed numRows rows
func (rs *RunStatistics) EndUnit(start time.Time, numRows int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.recentUnitRuntimes[rs.recentUnitRuntimesHead] = time.Since(start)
	rs.recentUnitRuntimesHead = (rs.recentUnitRuntimesHead + 1) % len(rs.recentUnitRuntimes)
	if rs.recentUnitRuntimesLen < len(rs.recentUnitRuntimes) {
		rs.recentUnitRuntimesLen++
	}
	rs.rowsProcessed += int64(numRows)
	rs.unitsProcessed++
}

// GetStartTime returns the start time of the evaluation
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the running time of the evaluation
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumUnitsProcessed returns the number of finished units, and the total number of units
func (rs *RunStatistics) GetNumUnitsProcessed() (int, int) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.unitsProcessed, rs.numUnits
}

// GetNumRowsProcessed returns the number of rows processed by finished units
func (rs *RunStatistics) GetNumRowsProcessed() int64 {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.rowsProcessed
}

// GetCurrentUnitProcessingTime returns a rolling average of unit processing time
func (rs *RunStatistics) GetCurrentUnitProcessingTime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.recentUnitRuntimesLen == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range rs.recentUnitRuntimes[:rs.recentUnitRuntimesLen] {
		total += d
	}
	return total / time.Duration(rs.recentUnitRuntimesLen)
}

// LogAttrs returns the current progress as key-value pairs for a structured logger
func (rs *RunStatistics) LogAttrs() []interface{} {
	done, total := rs.GetNumUnitsProcessed()
	return []interface{}{
		"done", done,
		"total", total,
		"rows", rs.GetNumRowsProcessed(),
		"avg_unit_time", rs.GetCurrentUnitProcessingTime(),
		"runtime", rs.GetRuntime(),
	}
}
