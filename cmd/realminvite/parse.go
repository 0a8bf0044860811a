package main

import (
	"github.com/spf13/cobra"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// parseResult parse 子命令的输出
type parseResult struct {
	Payload     *types.InvitationPayload `json:"payload"`
	Diagnostics *types.DecodeDiagnostics `json:"diagnostics,omitempty"`
}

func newParseCmd(flags *rootFlags) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "parse <link>",
		Short: "Validate an invitation link and print its payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := flags.newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			var (
				payload *types.InvitationPayload
				diag    *types.DecodeDiagnostics
			)
			if version == "" {
				payload, diag, err = app.Parse(args[0])
			} else {
				v, verr := types.ParseSchemaVersion(version)
				if verr != nil {
					return verr
				}
				payload, diag, err = app.ParseVersion(args[0], v)
			}
			if err != nil {
				return err
			}

			if diag.Clean() {
				diag = nil
			}
			return writeJSON(cmd.OutOrStdout(), parseResult{Payload: payload, Diagnostics: diag})
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "force link schema version (v1|v2); detected when empty")
	return cmd
}
