package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storacha/go-keyminer/cmd/keyminer/cli/options"
	"github.com/storacha/go-keyminer/core/doorcode"
)

func Door(ro *options.RootOptions) *cobra.Command {
	var positional, quiet bool
	search := &options.SearchFlags{}

	cmd := &cobra.Command{
		Use:   "door <id>",
		Short: "Derive the password for a door ID.",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return search.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := ro.Context(cmd)
			defer cancel()

			opts := []doorcode.Option{
				doorcode.WithZeroes(search.Zeroes),
				doorcode.WithMineOptions(search.MineOptions()...),
			}
			if !quiet {
				opts = append(opts, doorcode.WithProgress(func(s string) {
					fmt.Fprintf(cmd.ErrOrStderr(), "\r%s", s)
				}))
			}

			derive := doorcode.Password
			if positional {
				derive = doorcode.PositionalPassword
			}
			pw, err := derive(ctx, args[0], opts...)
			if !quiet {
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pw)
			return nil
		},
	}
	cmd.Flags().BoolVar(&positional, "positional", false, "use the second digit as the character and the first as its position")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not animate progress on stderr")
	search.AddFlags(cmd)
	return cmd
}
