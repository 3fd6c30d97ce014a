package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tycoon-sim/tycoon/sim"
	"github.com/tycoon-sim/tycoon/sim/trace"
)

var (
	// CLI flags for the run command
	configPath  string        // Scenario file (.yaml, .yml or .toml)
	seed        int64         // Seed for customer draws; overrides the scenario
	logLevel    string        // Log verbosity level
	speed       time.Duration // Tick interval; overrides the scenario
	maxTicks    uint64        // Stop after this many ticks (0 = until interrupted)
	metricsOut  string        // Prometheus textfile written at the end of the run
	traceLevel  string        // Per-tick trace level (none, ticks)
	haltOnError bool          // Stop on the first failed tick instead of skipping it
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tycoon",
	Short: "Time-stepped software business simulation",
}

// runCmd runs the simulation headless using the scenario and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (want none or ticks)", traceLevel)
		}

		sc, err := scenarioFromFlags(cmd)
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}

		logrus.Infof("Starting simulation: speed=%s, max ticks=%d, seed=%d", sc.World.Speed, maxTicks, sc.Seed)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, err := simulate(ctx, sc, runOptions{
			MaxTicks:    maxTicks,
			HaltOnError: haltOnError,
			TraceLevel:  trace.TraceLevel(traceLevel),
			MetricsOut:  metricsOut,
			Clock:       sim.RealClock{},
		})
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		report.Print(cmd.OutOrStdout())

		logrus.Info("Simulation complete.")
	},
}

// scenarioFromFlags loads the scenario named by --config, or the default
// one, and applies the flags the user set explicitly.
func scenarioFromFlags(cmd *cobra.Command) (sim.Scenario, error) {
	sc := sim.DefaultScenario()
	if configPath != "" {
		loaded, err := sim.LoadScenario(configPath)
		if err != nil {
			return sim.Scenario{}, err
		}
		sc = loaded
	}
	if cmd.Flags().Changed("seed") {
		sc.Seed = seed
	}
	if cmd.Flags().Changed("speed") {
		sc.World.Speed = speed
	}
	if err := sc.Validate(); err != nil {
		return sim.Scenario{}, err
	}
	return sc, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Scenario file (.yaml, .yml or .toml); defaults to the built-in start state")
	runCmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Seed for random customer draws (overrides the scenario)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().DurationVar(&speed, "speed", 100*time.Millisecond, "Wall-clock interval between ticks (overrides the scenario)")
	runCmd.Flags().Uint64Var(&maxTicks, "ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write final Prometheus metrics to this textfile")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Per-tick trace level (none, ticks)")
	runCmd.Flags().BoolVar(&haltOnError, "halt-on-error", false, "Stop on the first failed tick instead of skipping it")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(calendarCmd)
}
