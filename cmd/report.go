package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/tycoon-sim/tycoon/sim"
	"github.com/tycoon-sim/tycoon/sim/company"
	"github.com/tycoon-sim/tycoon/sim/trace"
)

// RunReport is the state at the end of a run, laid out the way the
// interactive status screen groups it.
type RunReport struct {
	// Company
	Direction           company.Direction
	Employees           int
	Headcount           map[company.Role]int
	Cash                int64
	WeeklyPayroll       int64
	DevelopmentCapacity float64

	// Software
	Customers         uint32
	ActiveUsers       uint64
	RetailPrice       uint32
	LinesOfCode       uint32
	AgeOfCode         uint32
	Complexity        int
	Quality           int
	Usability         uint
	Popularity        uint
	Architecture      sim.Architecture
	MonetizationModel sim.MonetizationModel

	// World
	GlobalEconomy uint16
	Competition   uint16
	JobMarket     uint16
	Speed         time.Duration
	GameTicks     uint64
	TicksPerWeek  uint64
	GameYearWeek  uint64
	Year          int
	Month         int
	Week          int
	GameTime      time.Duration

	// Run
	Ticks    uint64
	Skipped  uint64
	WallTime time.Duration
	Trace    *trace.TraceSummary // nil unless per-tick tracing was on
}

func newRunReport(w *sim.World, c *company.Company, s *sim.Software, d *sim.Driver, wallTime time.Duration) *RunReport {
	return &RunReport{
		Direction:           c.Direction(),
		Employees:           len(c.Employees()),
		Headcount:           c.Headcount(),
		Cash:                c.CashInBank(),
		WeeklyPayroll:       c.WeeklyPayroll(),
		DevelopmentCapacity: c.DevelopmentCapacity(s.Reliability(), s.Quality()),

		Customers:         s.Customers(),
		ActiveUsers:       s.ActiveUsers(),
		RetailPrice:       s.CostOfService(),
		LinesOfCode:       s.LinesOfCode(),
		AgeOfCode:         s.AgeOfCode(),
		Complexity:        s.ComplexityOfCode().Int(),
		Quality:           s.Quality().Int(),
		Usability:         s.UsabilityFactor(),
		Popularity:        s.MarketPopularity(w.CurrentYearWeek()),
		Architecture:      s.Architecture(),
		MonetizationModel: s.MonetizationModel(),

		GlobalEconomy: w.GlobalEconomicFactors(),
		Competition:   w.CompetitionInMarket(),
		JobMarket:     w.JobMarket(),
		Speed:         w.Speed(),
		GameTicks:     w.GameTicks(),
		TicksPerWeek:  w.TicksPerWeek(),
		GameYearWeek:  w.GameYearWeek(),
		Year:          w.GameYear(),
		Month:         w.GameMonth(),
		Week:          w.GameWeek(),
		GameTime:      w.GameElapsedTime(),

		Ticks:    d.Ticks(),
		Skipped:  d.Skipped(),
		WallTime: wallTime,
	}
}

// Print writes the report as aligned label/value lines.
func (r *RunReport) Print(out io.Writer) {
	fmt.Fprintln(out, "=== Company ===")
	fmt.Fprintf(out, "Direction            : %s\n", r.Direction)
	fmt.Fprintf(out, "Employees            : %d\n", r.Employees)
	for _, role := range company.Roles {
		fmt.Fprintf(out, "  %-19s: %d\n", role, r.Headcount[role])
	}
	fmt.Fprintf(out, "Cash In Bank         : %d\n", r.Cash)
	fmt.Fprintf(out, "Weekly Payroll       : %d\n", r.WeeklyPayroll)
	fmt.Fprintf(out, "Dev Capacity         : %.2f\n", r.DevelopmentCapacity)

	fmt.Fprintln(out, "=== Software ===")
	fmt.Fprintf(out, "Customers            : %d\n", r.Customers)
	fmt.Fprintf(out, "Active Users         : %d\n", r.ActiveUsers)
	fmt.Fprintf(out, "Retail Price         : %d\n", r.RetailPrice)
	fmt.Fprintf(out, "Lines of Code        : %d\n", r.LinesOfCode)
	fmt.Fprintf(out, "Age of Code          : %d weeks\n", r.AgeOfCode)
	fmt.Fprintf(out, "Code Complexity      : %d\n", r.Complexity)
	fmt.Fprintf(out, "Quality              : %d\n", r.Quality)
	fmt.Fprintf(out, "Usability            : %d\n", r.Usability)
	fmt.Fprintf(out, "Market Popularity    : %d\n", r.Popularity)
	fmt.Fprintf(out, "Architecture         : %s\n", r.Architecture)
	fmt.Fprintf(out, "Monetization Model   : %s\n", r.MonetizationModel)

	fmt.Fprintln(out, "=== World ===")
	fmt.Fprintf(out, "Global Economy       : %d\n", r.GlobalEconomy)
	fmt.Fprintf(out, "Competition          : %d\n", r.Competition)
	fmt.Fprintf(out, "Job Market           : %d\n", r.JobMarket)
	fmt.Fprintf(out, "Speed                : %s\n", r.Speed)
	fmt.Fprintf(out, "Game Ticks           : %d\n", r.GameTicks)
	fmt.Fprintf(out, "Ticks per Week       : %d\n", r.TicksPerWeek)
	fmt.Fprintf(out, "Year - Week          : %d\n", r.GameYearWeek)
	fmt.Fprintf(out, "Year - Month         : %d-%2d (%d)\n", r.Year, r.Month, r.Week)
	fmt.Fprintf(out, "Game Time            : %s\n", r.GameTime)

	fmt.Fprintln(out, "=== Run ===")
	fmt.Fprintf(out, "Ticks                : %d\n", r.Ticks)
	fmt.Fprintf(out, "Skipped Ticks        : %d\n", r.Skipped)
	fmt.Fprintf(out, "Wall Time            : %s\n", r.WallTime.Round(time.Millisecond))
	if r.Trace != nil {
		fmt.Fprintf(out, "Traced Ticks         : %d (weeks %d)\n", r.Trace.TotalTicks, r.Trace.WeeksCovered)
		fmt.Fprintf(out, "Peak Active Users    : %d\n", r.Trace.PeakActiveUsers)
		fmt.Fprintf(out, "Mean Tick Interval   : %s\n", r.Trace.MeanInterval)
	}
}
