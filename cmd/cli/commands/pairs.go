package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/seat-arranger/pkg/core/services"
)

// TogetherCmd creates the together command
func TogetherCmd(app *AppContext) *cobra.Command {
	return pairCmd(app, services.PairTogether, "together", "Keep two individuals in the same group")
}

// ApartCmd creates the apart command
func ApartCmd(app *AppContext) *cobra.Command {
	return pairCmd(app, services.PairApart, "apart", "Keep two individuals in different groups")
}

func pairCmd(app *AppContext, kind services.PairKind, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name|id> <name|id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Workspace.AddPair(app.Ctx, kind, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s pair: %s, %s\n", kind, args[0], args[1])
			return nil
		},
	}
}

// UnpairCmd creates the unpair command
func UnpairCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unpair <name|id> <name|id>",
		Short: "Remove the together or apart constraint between two individuals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workspace.RemovePair(app.Ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed pair: %s, %s\n", args[0], args[1])
			return nil
		},
	}
}
