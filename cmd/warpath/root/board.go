package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wichardvalente37/war-path-progress/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, userID, cleanup, err := openLocal(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc, userID, cmd.OutOrStdout())
		},
	}

	return cmd
}
