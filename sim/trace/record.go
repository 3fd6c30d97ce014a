// Package trace provides per-tick recording of simulation state.
// It does not import sim; it stores plain data types.
package trace

import "time"

// TickRecord captures company and software state at one tick.
type TickRecord struct {
	Tick        uint64
	Year        int
	Week        int
	Time        time.Time // wall-clock time the tick was recorded at
	Cash        int64
	Headcount   int
	Customers   uint32
	ActiveUsers uint64
	LinesOfCode uint32
	Quality     int
	Popularity  uint
}
