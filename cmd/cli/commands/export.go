package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/seat-arranger/pkg/importer"
)

// ExportCmd creates the export command
func ExportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the groups as csv or the whole snapshot as json (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			snapshot, err := app.Workspace.Current(app.Ctx)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if len(args) == 1 {
				file, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", args[0], err)
				}
				defer file.Close()
				out = file
			}

			switch format {
			case "csv":
				err = importer.ExportCSV(out, snapshot.Groups)
			case "json":
				err = importer.EncodeSnapshot(out, snapshot)
			default:
				return fmt.Errorf("unknown export format %q (expected csv or json)", format)
			}
			if err != nil {
				return err
			}

			if len(args) == 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", format, args[0])
			}
			return nil
		},
	}

	cmd.Flags().String("format", "csv", "Output format: csv or json")

	return cmd
}
