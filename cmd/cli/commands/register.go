package commands

import "github.com/spf13/cobra"

// Register adds every command to the root command
func Register(rootCmd *cobra.Command, app *AppContext) {
	rootCmd.AddCommand(
		AddCmd(app),
		ImportCmd(app),
		ListCmd(app),
		RemoveCmd(app),
		LockCmd(app),
		AssignCmd(app),
		UnassignCmd(app),
		ClearCmd(app),
		SettingsCmd(app),
		TogetherCmd(app),
		ApartCmd(app),
		UnpairCmd(app),
		PlanCmd(app),
		ArrangeCmd(app),
		CheckCmd(app),
		ExportCmd(app),
		SaveCmd(app),
		LoadCmd(app),
		SlotsCmd(app),
		DeleteSlotCmd(app),
		SheetsPullCmd(app),
		SheetsPushCmd(app),
		ScheduleCmd(app),
		InteractiveCmd(app),
	)
}
