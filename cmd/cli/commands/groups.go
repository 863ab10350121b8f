package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <name|id> <group number>",
		Short: "Place an individual into a group, checked against the placement rules",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid group number %q", args[1])
			}

			individual, err := app.Workspace.Assign(app.Ctx, args[0], groupNumber)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %s\n", individual.Name, model.GroupLabel(groupNumber-1))
			return nil
		},
	}
}

// UnassignCmd creates the unassign command
func UnassignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <name|id>",
		Short: "Return an individual to the unplaced pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			individual, err := app.Workspace.Unassign(app.Ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now unplaced\n", individual.Name)
			return nil
		},
	}
}

// ClearCmd creates the clear command
func ClearCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty every group and unlock everyone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workspace.ClearGroups(app.Ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all groups")
			return nil
		},
	}
}

// SettingsCmd creates the settings command. Without flags it prints the current settings.
func SettingsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the group count, size bounds and gender policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := app.Workspace.Current(app.Ctx)
			if err != nil {
				return err
			}

			settings := snapshot.Settings()
			flags := cmd.Flags()
			changed := false
			for _, flag := range []struct {
				name  string
				field *int
			}{
				{"groups", &settings.GroupCount},
				{"min", &settings.MinPerGroup},
				{"max", &settings.MaxPerGroup},
			} {
				if flags.Changed(flag.name) {
					*flag.field, _ = flags.GetInt(flag.name)
					changed = true
				}
			}
			if flags.Changed("policy") {
				raw, _ := flags.GetString("policy")
				if settings.Policy, err = model.ParseGenderPolicy(raw); err != nil {
					return err
				}
				changed = true
			}

			if changed {
				if snapshot, err = app.Workspace.UpdateSettings(app.Ctx, settings); err != nil {
					return err
				}
			}

			printSettings(cmd.OutOrStdout(), snapshot)
			return nil
		},
	}

	cmd.Flags().Int("groups", 0, "Number of groups (2-8)")
	cmd.Flags().Int("min", 0, "Minimum individuals per group (2-8)")
	cmd.Flags().Int("max", 0, "Maximum individuals per group (2-8)")
	cmd.Flags().String("policy", "", "Gender policy: balanced, random or separate")

	return cmd
}
