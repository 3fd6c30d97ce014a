package trace

import "time"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTicks      int
	FirstTick       uint64
	LastTick        uint64
	WeeksCovered    int // distinct game weeks seen
	PeakActiveUsers uint64
	CustomerDelta   int64 // last - first
	CashDelta       int64 // last - first
	MeanInterval    time.Duration
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil || len(st.Ticks) == 0 {
		return summary
	}

	first, last := st.Ticks[0], st.Ticks[len(st.Ticks)-1]
	summary.TotalTicks = len(st.Ticks)
	summary.FirstTick = first.Tick
	summary.LastTick = last.Tick
	summary.CustomerDelta = int64(last.Customers) - int64(first.Customers)
	summary.CashDelta = last.Cash - first.Cash

	type yearWeek struct{ year, week int }
	weeks := make(map[yearWeek]bool)
	for _, r := range st.Ticks {
		weeks[yearWeek{r.Year, r.Week}] = true
		if r.ActiveUsers > summary.PeakActiveUsers {
			summary.PeakActiveUsers = r.ActiveUsers
		}
	}
	summary.WeeksCovered = len(weeks)

	if len(st.Ticks) > 1 {
		summary.MeanInterval = last.Time.Sub(first.Time) / time.Duration(len(st.Ticks)-1)
	}

	return summary
}
