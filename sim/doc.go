// Package sim provides the time-stepped core of the software business
// simulation.
//
// # Reading Guide
//
// Start with these files to understand a tick:
//   - timeframe.go: tick counter, tick interval, and the game calendar derived from ticks
//   - world.go: market scalars and World.Tick (advance, update step, record time)
//   - driver.go: when a tick is due, and the single-owner loop that applies commands
//
// # Architecture
//
// The sim package owns the world and the product model; collaborators live in
// sub-packages:
//   - sim/calendar/: YearWeek arithmetic on the 52-week game year
//   - sim/bounded/: the 0-100 Percent type whose arithmetic fails instead of wrapping
//   - sim/company/: the reference Company and its employee roster
//   - sim/trace/: per-tick trace recording
//   - sim/metrics/: Prometheus gauges fed from the update step
//
// # Extension Points
//
// Cross-entity rules attach as an UpdateFunc (WithUpdate). An update sees the
// company and software through CompanyView and SoftwareView and may not
// mutate them; mutations come from Commands applied by the Driver between
// ticks. The Clock interface keeps wall-clock reads out of the core.
package sim
