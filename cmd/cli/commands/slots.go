package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SaveCmd creates the save command
func SaveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "save <slot>",
		Short: "Save the working snapshot under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workspace.SaveAs(app.Ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to slot %q\n", args[0])
			return nil
		},
	}
}

// LoadCmd creates the load command
func LoadCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "load <slot>",
		Short: "Replace the working snapshot with a saved one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := app.Workspace.LoadFrom(app.Ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded slot %q (%d individual(s))\n", args[0], len(snapshot.Roster))
			return nil
		},
	}
}

// SlotsCmd creates the slots command
func SlotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List the saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := app.Workspace.Slots(app.Ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(slots) == 0 {
				fmt.Fprintln(out, "No saved slots")
				return nil
			}
			fmt.Fprintf(out, "Found %d saved slot(s):\n", len(slots))
			for _, slot := range slots {
				fmt.Fprintf(out, "  %-24s %s\n", slot.Name, slot.SavedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

// DeleteSlotCmd creates the delete-slot command
func DeleteSlotCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-slot <slot>",
		Short: "Delete a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workspace.DeleteSlot(app.Ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted slot %q\n", args[0])
			return nil
		},
	}
}
