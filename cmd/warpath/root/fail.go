package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wichardvalente37/war-path-progress/internal/ui"
)

func newFailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fail <id>",
		Short: "Mark a mission as failed (no reward, can be retried)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.ParseInt(args[0], 10, 64)

			ctx := context.Background()
			svc, userID, cleanup, err := openLocal(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.FailMission(ctx, userID, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.IconFail+" "+ui.Bad.Render(fmt.Sprintf("Mission %d failed.", id))+" "+ui.Muted.Render("Complete it later to still collect the XP."))
			return nil
		},
	}

	return cmd
}
