package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	realminvite "github.com/dep2p/go-realminvite"
	"github.com/dep2p/go-realminvite/pkg/types"
)

var errNotReady = errors.New("invitation not ready: community data incomplete or no usable peers")

func newBuildCmd(flags *rootFlags) *cobra.Command {
	var (
		version string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an invitation link from a community file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.community == "" {
				return fmt.Errorf("--community is required")
			}

			var extra []realminvite.Option
			if baseURL != "" {
				extra = append(extra, realminvite.WithBaseURL(baseURL))
			}
			app, err := flags.newApp(extra...)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.Start(context.Background()); err != nil {
				return err
			}

			v := app.Config().Invite.Version()
			if version != "" {
				if v, err = types.ParseSchemaVersion(version); err != nil {
					return err
				}
			}

			link := app.InvitationURL(v)
			if link == "" {
				return errNotReady
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), link)
			return err
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "link schema version (v1|v2, default from config)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "link prefix (default from config)")
	return cmd
}
