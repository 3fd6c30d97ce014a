package sim

import (
	"time"

	"github.com/tycoon-sim/tycoon/sim/calendar"
)

// TicksPerWeek is the number of ticks that make up one game week.
const TicksPerWeek uint64 = 10

// Epoch is the calendar point of tick 0.
var Epoch = calendar.New(2000, 1)

// Timeframe owns the tick counter, the tick interval and the wall-clock time
// of the last processed tick. It never decides on its own that a tick is due;
// see IsTickDue.
//
// Advancing the counter and recording the time are separate operations and
// a caller processing a tick performs both.
type Timeframe struct {
	speed        time.Duration
	gameTicks    uint64
	startTime    time.Time
	lastTickTime time.Time
}

// NewTimeframe creates a Timeframe with the given tick interval, starting at
// initialTicks.
func NewTimeframe(speed time.Duration, initialTicks uint64) *Timeframe {
	return &Timeframe{
		speed:     speed,
		gameTicks: initialTicks,
	}
}

// Start sets both the start reference and the last tick time to now.
func (tf *Timeframe) Start(now time.Time) {
	tf.startTime = now
	tf.lastTickTime = now
}

// AdvanceTick increments the tick counter by one.
func (tf *Timeframe) AdvanceTick() {
	tf.gameTicks++
}

// RecordTime stores now as the last tick time, even if it is earlier than the
// previous value.
func (tf *Timeframe) RecordTime(now time.Time) {
	tf.lastTickTime = now
}

// ElapsedSince returns the wall-clock time between start and the last
// recorded tick.
func (tf *Timeframe) ElapsedSince(start time.Time) time.Duration {
	return tf.lastTickTime.Sub(start)
}

// GameElapsed returns the wall-clock time from Start to the last recorded tick.
func (tf *Timeframe) GameElapsed() time.Duration {
	return tf.ElapsedSince(tf.startTime)
}

func (tf *Timeframe) Speed() time.Duration    { return tf.speed }
func (tf *Timeframe) GameTicks() uint64       { return tf.gameTicks }
func (tf *Timeframe) StartTime() time.Time    { return tf.startTime }
func (tf *Timeframe) LastTickTime() time.Time { return tf.lastTickTime }
func (tf *Timeframe) TicksPerWeek() uint64    { return TicksPerWeek }

// GameYearWeek is the number of whole game weeks since tick 0.
func (tf *Timeframe) GameYearWeek() uint64 {
	return tf.gameTicks / TicksPerWeek
}

// CurrentYearWeek is the calendar point of the current tick.
func (tf *Timeframe) CurrentYearWeek() calendar.YearWeek {
	return calendar.FromWeeks(Epoch, tf.GameYearWeek())
}

func (tf *Timeframe) GameYear() int {
	return tf.CurrentYearWeek().Year
}

// GameWeek is the week of the current game year, 1..52.
func (tf *Timeframe) GameWeek() int {
	return tf.CurrentYearWeek().Week
}

// GameMonth is the month of the current game year, 1..12.
func (tf *Timeframe) GameMonth() int {
	return calendar.Month(tf.GameWeek())
}
