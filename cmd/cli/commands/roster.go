package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/seat-arranger/pkg/core/model"
	"github.com/jakechorley/seat-arranger/pkg/importer"
)

// AddCmd creates the add command
func AddCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name[/gender]>...",
		Short: "Add individuals to the roster, e.g. add \"Kim/M\" \"Lee f\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			individuals := importer.ParseBulk(strings.Join(args, "\n"))
			added, err := app.Workspace.AddIndividuals(app.Ctx, individuals)
			if err != nil {
				return fmt.Errorf("failed to add individuals: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %d individual(s)\n", len(added))
			for _, individual := range added {
				fmt.Fprintf(out, "  + %s (%s)\n", describeIndividual(individual), individual.ID)
			}
			return nil
		},
	}
}

// ImportCmd creates the import command
func ImportCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a roster (csv or text) or replace the working snapshot (json)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, _ := cmd.Flags().GetString("format")
			if format == "" {
				format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer file.Close()

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				snapshot, err := importer.DecodeSnapshot(file)
				if err != nil {
					return err
				}
				if err := app.Workspace.Replace(app.Ctx, snapshot); err != nil {
					return err
				}
				fmt.Fprintf(out, "Loaded snapshot with %d individual(s) from %s\n", len(snapshot.Roster), path)
				return nil
			case "csv":
				individuals, err := importer.ParseCSV(file)
				if err != nil {
					return err
				}
				return addImported(app, cmd, individuals, path)
			case "txt", "text":
				data, err := io.ReadAll(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				return addImported(app, cmd, importer.ParseBulk(string(data)), path)
			default:
				return fmt.Errorf("unknown import format %q (expected csv, json or text)", format)
			}
		},
	}

	cmd.Flags().String("format", "", "Input format: csv, json or text (defaults to the file extension)")

	return cmd
}

func addImported(app *AppContext, cmd *cobra.Command, individuals []model.Individual, path string) error {
	added, err := app.Workspace.AddIndividuals(app.Ctx, individuals)
	if err != nil {
		return fmt.Errorf("failed to add individuals: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d individual(s) from %s\n", len(added), path)
	return nil
}

// ListCmd creates the list command
func ListCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the settings, groups, unplaced individuals and pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := app.Workspace.Current(app.Ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Roster: %d individual(s), %d placed\n", len(snapshot.Roster), snapshot.PlacedCount())
			printSettings(out, snapshot)
			printGroups(out, snapshot)
			printPairs(out, snapshot)
			return nil
		},
	}
}

// RemoveCmd creates the remove command
func RemoveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name|id>",
		Short: "Remove an individual from the roster, their group and every pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Workspace.RemoveIndividual(app.Ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", removed.Name)
			return nil
		},
	}
}

// LockCmd creates the lock command
func LockCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lock <name|id>",
		Short: "Toggle whether an individual keeps their group when arranging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			individual, err := app.Workspace.ToggleLock(app.Ctx, args[0])
			if err != nil {
				return err
			}
			state := "unlocked"
			if individual.Locked {
				state = "locked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", individual.Name, state)
			return nil
		},
	}
}
