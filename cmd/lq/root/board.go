package root

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"lifequest/internal/clock"
	"lifequest/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, led, cfg, cleanup, err := openServices(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			refresh := time.Duration(cfg.BoardRefreshSec) * time.Second
			return tui.RunBoard(ctx, svc, led, clock.System{}, refresh, cmd.OutOrStdout())
		},
	}

	return cmd
}
