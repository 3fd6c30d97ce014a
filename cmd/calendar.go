package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tycoon-sim/tycoon/sim"
	"github.com/tycoon-sim/tycoon/sim/calendar"
)

// calendarCmd prints the number of game weeks between two calendar points
var calendarCmd = &cobra.Command{
	Use:   "calendar FROM TO",
	Short: "Weeks between two game calendar points (e.g. 2000-W01 2001-W10)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := calendar.Parse(args[0])
		if err != nil {
			return err
		}
		to, err := calendar.Parse(args[1])
		if err != nil {
			return err
		}
		weeks := calendar.WeeksBetween(from, to)
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d weeks (%d ticks)\n", from, to, weeks, int64(weeks)*int64(sim.TicksPerWeek))
		return nil
	},
}
