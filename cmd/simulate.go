package cmd

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tycoon-sim/tycoon/sim"
	"github.com/tycoon-sim/tycoon/sim/metrics"
	"github.com/tycoon-sim/tycoon/sim/trace"
)

// runOptions carries the run-time settings that are not part of a scenario.
type runOptions struct {
	MaxTicks    uint64
	HaltOnError bool
	TraceLevel  trace.TraceLevel
	MetricsOut  string
	Clock       sim.Clock
}

// simulate builds sc, drives it until ctx ends or MaxTicks is reached, and
// reports the final state. Metrics and the trace are fed from the world's
// update step.
func simulate(ctx context.Context, sc sim.Scenario, opts runOptions) (*RunReport, error) {
	recorder := metrics.NewRecorder()
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel})

	w, c, s, err := sc.Build(sim.WithUpdate(recorder.Update, sim.TraceUpdate(st)))
	if err != nil {
		return nil, err
	}

	d := sim.NewDriver(w, c, s, opts.Clock, sim.DriverConfig{
		MaxTicks:    opts.MaxTicks,
		HaltOnError: opts.HaltOnError,
	})

	started := time.Now()
	if err := d.Run(ctx); err != nil {
		return nil, err
	}
	wallTime := time.Since(started)

	if opts.MetricsOut != "" {
		if err := recorder.WriteTextfile(opts.MetricsOut); err != nil {
			return nil, err
		}
		logrus.Infof("Metrics written to %s", opts.MetricsOut)
	}

	report := newRunReport(w, c, s, d, wallTime)
	if opts.TraceLevel.RecordsTicks() {
		report.Trace = trace.Summarize(st)
	}
	return report, nil
}
