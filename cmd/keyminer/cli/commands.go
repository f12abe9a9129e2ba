// Package cli wires the keyminer commands.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/storacha/go-keyminer/cmd/keyminer/cli/options"
)

func New() *cobra.Command {
	ro := &options.RootOptions{}

	cmd := &cobra.Command{
		Use:               "keyminer",
		Short:             "MD5 key mining and digest tools.",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return ro.SetupLogging()
		},
	}
	ro.AddFlags(cmd)

	cmd.AddCommand(Digest(ro))
	cmd.AddCommand(Mine(ro))
	cmd.AddCommand(Verify(ro))
	cmd.AddCommand(Door(ro))
	cmd.AddCommand(Stretch(ro))
	return cmd
}
