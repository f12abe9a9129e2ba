package cli

import (
	"bytes"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/spf13/cobra"
	"github.com/storacha/go-keyminer/cmd/keyminer/cli/options"
	"github.com/storacha/go-keyminer/core/ipld/hash"
	"github.com/storacha/go-keyminer/core/ipld/hash/md5"
	engine "github.com/storacha/go-keyminer/core/md5"
)

func Digest(_ *options.RootOptions) *cobra.Command {
	var base, check string

	cmd := &cobra.Command{
		Use:   "digest <text>...",
		Short: "Print the MD5 digest and raw CID of each argument.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var expected *engine.Digest
			if check != "" {
				d, err := engine.ParseHex(check)
				if err != nil {
					return err
				}
				expected = &d
			}
			for _, arg := range args {
				d, err := md5.Hasher.Sum([]byte(arg))
				if err != nil {
					return err
				}
				rendered, err := hash.Format(d, base)
				if err != nil {
					return fmt.Errorf("rendering digest: %w", err)
				}
				if base == "base16" {
					// drop the multibase prefix for the conventional form
					rendered = rendered[1:]
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%q\n", rendered, cid.NewCidV1(cid.Raw, d.Bytes()), arg)
				if expected != nil && !bytes.Equal(expected[:], d.Digest()) {
					return fmt.Errorf("digest of %q does not match %s", arg, expected)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&check, "check", "", "fail unless every digest equals this hex digest")
	cmd.Flags().StringVar(&base, "base", "base16", "multibase used to render the digest (base16, base32, base58btc, ...)")
	return cmd
}
