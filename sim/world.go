package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tycoon-sim/tycoon/sim/calendar"
)

// World is what the company and its software live in. It owns the Timeframe
// and a snapshot of market conditions, and borrows the company and software
// for the duration of each tick.
//
// World does not decide when a tick is due; the driver does, using
// LastTickTime and Speed.
type World struct {
	globalEconomicFactors uint16 // 0-1000
	competitionInMarket   uint16 // 0-1000
	jobMarket             uint16 // 0-1000

	timeframe *Timeframe
	update    UpdateFunc
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithUpdate sets the cross-entity update step. Multiple functions run in
// the given order.
func WithUpdate(fns ...UpdateFunc) WorldOption {
	return func(w *World) {
		switch len(fns) {
		case 0:
			w.update = NoUpdate
		case 1:
			w.update = fns[0]
		default:
			w.update = ChainUpdates(fns...)
		}
	}
}

// NewWorld creates a World. The market scalars are stored as given and never
// change during a run.
func NewWorld(globalEconomicFactors, competitionInMarket, jobMarket uint16, speed time.Duration, initialTicks uint64, opts ...WorldOption) *World {
	w := &World{
		globalEconomicFactors: globalEconomicFactors,
		competitionInMarket:   competitionInMarket,
		jobMarket:             jobMarket,
		timeframe:             NewTimeframe(speed, initialTicks),
		update:                NoUpdate,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start sets the wall-clock reference the first tick is measured from.
func (w *World) Start(now time.Time) {
	w.timeframe.Start(now)
	logrus.Infof("[tick %07d] World started at %s (%s)", w.timeframe.GameTicks(), now.Format(time.RFC3339), w.timeframe.CurrentYearWeek())
}

// Tick processes one tick: advance the counter, run the update step, record
// now as the tick time. The steps are not transactional. If the update step
// fails the counter has advanced but the time is not recorded, and the error
// is returned to the driver.
func (w *World) Tick(company CompanyView, software SoftwareView, now time.Time) error {
	w.timeframe.AdvanceTick()

	info := TickInfo{
		Tick:     w.timeframe.GameTicks(),
		YearWeek: w.timeframe.CurrentYearWeek(),
		Now:      now,
	}
	logrus.Debugf("[tick %07d] %s update", info.Tick, info.YearWeek)

	if err := w.update(info, company, software); err != nil {
		return fmt.Errorf("tick %d update: %w", info.Tick, err)
	}

	w.timeframe.RecordTime(now)
	return nil
}

// Timeframe exposes the world's timeframe for the driver's due check.
func (w *World) Timeframe() *Timeframe { return w.timeframe }

func (w *World) GlobalEconomicFactors() uint16 { return w.globalEconomicFactors }
func (w *World) CompetitionInMarket() uint16   { return w.competitionInMarket }
func (w *World) JobMarket() uint16             { return w.jobMarket }

func (w *World) Speed() time.Duration               { return w.timeframe.Speed() }
func (w *World) GameTicks() uint64                  { return w.timeframe.GameTicks() }
func (w *World) LastTickTime() time.Time            { return w.timeframe.LastTickTime() }
func (w *World) TicksPerWeek() uint64               { return w.timeframe.TicksPerWeek() }
func (w *World) GameYear() int                      { return w.timeframe.GameYear() }
func (w *World) GameMonth() int                     { return w.timeframe.GameMonth() }
func (w *World) GameWeek() int                      { return w.timeframe.GameWeek() }
func (w *World) GameYearWeek() uint64               { return w.timeframe.GameYearWeek() }
func (w *World) CurrentYearWeek() calendar.YearWeek { return w.timeframe.CurrentYearWeek() }
func (w *World) GameElapsedTime() time.Duration     { return w.timeframe.GameElapsed() }
