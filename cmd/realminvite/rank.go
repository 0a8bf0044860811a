package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dep2p/go-realminvite/internal/core/invite"
)

func newRankCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Print community peers ordered by observed connection quality",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.community == "" {
				return fmt.Errorf("--community is required")
			}
			app, err := flags.newApp()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.Start(context.Background()); err != nil {
				return err
			}

			ranked, err := app.RankedPeers()
			if err != nil {
				return err
			}
			snap := app.Telemetry().Snapshot()
			for _, addr := range ranked {
				line := addr
				if id, err := invite.PeerIDFromAddr(addr); err == nil {
					if t, ok := snap.Lookup(id); ok {
						line = fmt.Sprintf("%s\tlastSeen=%d\tduration=%ds", addr, t.LastSeen, t.ConnectionDuration)
					}
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
