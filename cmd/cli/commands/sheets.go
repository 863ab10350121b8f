package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errSheetsNotConfigured = errors.New("sheets section of the config is incomplete")

// SheetsPullCmd creates the sheets-pull command
func SheetsPullCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets-pull",
		Short: "Add the roster from the configured spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets := app.Cfg.Sheets
			if sheets.RosterSheetID == "" || sheets.RosterRange == "" {
				return fmt.Errorf("%w: rosterSheetID and rosterRange are required", errSheetsNotConfigured)
			}

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			added, err := app.Workspace.PullRoster(app.Ctx, client, sheets.RosterSheetID, sheets.RosterRange)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d individual(s) from %s\n", len(added), sheets.RosterRange)
			return nil
		},
	}
}

// SheetsPushCmd creates the sheets-push command
func SheetsPushCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets-push",
		Short: "Publish the current groups to the configured spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets := app.Cfg.Sheets
			if sheets.ArrangementSheetID == "" || sheets.ArrangementRange == "" {
				return fmt.Errorf("%w: arrangementSheetID and arrangementRange are required", errSheetsNotConfigured)
			}

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			if err := app.Workspace.PushArrangement(app.Ctx, client, sheets.ArrangementSheetID, sheets.ArrangementRange); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published groups to %s\n", sheets.ArrangementRange)
			return nil
		},
	}
}
