package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/seat-arranger/pkg/core/services"
)

// ScheduleCmd creates the schedule command
func ScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List the upcoming reshuffle dates from the configured rotation rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, _ := cmd.Flags().GetString("rrule")
			if rule == "" {
				rule = app.Cfg.Rotation.RRule
			}
			if rule == "" {
				return fmt.Errorf("no rotation rule: set rotation.rrule in the config or pass --rrule")
			}
			count, _ := cmd.Flags().GetInt("count")

			from := time.Now()
			if raw, _ := cmd.Flags().GetString("from"); raw != "" {
				parsed, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --from date %q (expected YYYY-MM-DD)", raw)
				}
				from = parsed
			}

			dates, err := services.UpcomingRotations(rule, from, count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Next %d reshuffle date(s):\n", len(dates))
			for _, date := range dates {
				fmt.Fprintf(out, "  %s\n", date.Format("Mon 2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().Int("count", 5, "Number of dates to list")
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD), today when empty")
	cmd.Flags().String("rrule", "", "Rotation rule overriding the config")

	return cmd
}
