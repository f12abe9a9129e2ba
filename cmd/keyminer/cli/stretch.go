package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storacha/go-keyminer/cmd/keyminer/cli/options"
	"github.com/storacha/go-keyminer/core/stretch"
)

func Stretch(ro *options.RootOptions) *cobra.Command {
	var nth, rounds, cacheSize int

	cmd := &cobra.Command{
		Use:   "stretch <salt>",
		Short: "Find the index of the nth one-time-pad key for a salt.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := ro.Context(cmd)
			defer cancel()

			idx, err := stretch.KeyIndex(ctx, args[0], nth,
				stretch.WithRounds(rounds),
				stretch.WithCacheSize(cacheSize),
			)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), idx)
			return nil
		},
	}
	cmd.Flags().IntVar(&nth, "nth", 64, "which key to find")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "extra hashing rounds per digest")
	cmd.Flags().IntVar(&cacheSize, "cache-size", stretch.DefaultCacheSize, "memoized digests")
	return cmd
}
