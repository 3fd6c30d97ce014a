package sim

import (
	"github.com/tycoon-sim/tycoon/sim/trace"
)

// UpdateFunc is the cross-entity update step of a tick. It runs after the tick
// counter advances and before the tick time is recorded, and sees the company
// and software through read-only views. Rules that couple company and
// employee productivity to software evolution attach here.
type UpdateFunc func(info TickInfo, company CompanyView, software SoftwareView) error

// NoUpdate is the default update step. It does nothing.
func NoUpdate(TickInfo, CompanyView, SoftwareView) error {
	return nil
}

// ChainUpdates runs fns in order and stops at the first error.
func ChainUpdates(fns ...UpdateFunc) UpdateFunc {
	return func(info TickInfo, c CompanyView, s SoftwareView) error {
		for _, fn := range fns {
			if err := fn(info, c, s); err != nil {
				return err
			}
		}
		return nil
	}
}

// TraceUpdate returns an update step that appends one record per tick to st.
// A nil trace or TraceLevelNone records nothing.
func TraceUpdate(st *trace.SimulationTrace) UpdateFunc {
	return func(info TickInfo, c CompanyView, s SoftwareView) error {
		if st == nil || !st.Config.Level.RecordsTicks() {
			return nil
		}
		st.RecordTick(trace.TickRecord{
			Tick:        info.Tick,
			Year:        info.YearWeek.Year,
			Week:        info.YearWeek.Week,
			Time:        info.Now,
			Cash:        c.CashInBank(),
			Headcount:   len(c.Employees()),
			Customers:   s.Customers(),
			ActiveUsers: s.ActiveUsers(),
			LinesOfCode: s.LinesOfCode(),
			Quality:     int(s.Quality()),
			Popularity:  s.MarketPopularity(info.YearWeek),
		})
		return nil
	}
}
