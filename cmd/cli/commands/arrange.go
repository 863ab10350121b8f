package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/seat-arranger/pkg/core/services"
)

// PlanCmd creates the plan command
func PlanCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Preview the group sizes an arrangement would aim for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, err := app.Workspace.PlanSizes(app.Ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planned sizes: %s\n", formatSizes(sizes))
			return nil
		},
	}
}

// ArrangeCmd creates the arrange command
func ArrangeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arrange",
		Short: "Arrange everyone who is not locked into groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			req := services.ArrangeRequest{DryRun: dryRun}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetUint64("seed")
				req.Seed = &seed
			}

			outcome, err := app.Workspace.Arrange(app.Ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, "DRY RUN - nothing saved")
			}
			fmt.Fprintf(out, "Planned sizes: %s\n", formatSizes(outcome.Targets))
			printGroups(out, outcome.Snapshot)
			fmt.Fprintf(out, "\nConstraint fixes: %d, rebalance moves: %d\n", outcome.ReconcileChanges, outcome.RebalanceMoves)
			printWarnings(out, outcome.Warnings)
			return nil
		},
	}

	cmd.Flags().Uint64("seed", 0, "Seed for random decisions")
	cmd.Flags().Bool("dry-run", false, "Show the arrangement without saving it")

	return cmd
}

// CheckCmd creates the check command
func CheckCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report every constraint the current groups leave unsatisfied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			warnings, err := app.Workspace.Check(app.Ctx)
			if err != nil {
				return err
			}
			printWarnings(cmd.OutOrStdout(), warnings)
			return nil
		},
	}
}
