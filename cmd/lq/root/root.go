package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "lq",
	Short:         "Lifequest — gamified habit and task tracker",
	Long:          "Lifequest is a local-first habit/task tracker with RPG progression: XP, levels, streaks, points, quests and a shop.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newTaskCmd(),
		newQuestsCmd(),
		newAcceptCmd(),
		newAdvanceCmd(),
		newDungeonCmd(),
		newShopCmd(),
		newBuyCmd(),
		newUseCmd(),
		newEquipCmd(),
		newClassCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
