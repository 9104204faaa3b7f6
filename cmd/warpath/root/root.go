package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wichardvalente37/war-path-progress/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "warpath",
	Short:         "Warpath — gamified mission and goal tracker",
	Long:          "Warpath tracks missions and long-term goals, rewarding completions with XP, levels and achievements. Run it locally from the CLI or serve the HTTP API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newServeCmd(),
		newAddCmd(),
		newCompleteCmd(),
		newFailCmd(),
		newListCmd(),
		newGoalsCmd(),
		newStatusCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
