package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/multiformats/go-multicodec"
	"github.com/spf13/cobra"
	"github.com/storacha/go-keyminer/cmd/keyminer/cli/options"
	"github.com/storacha/go-keyminer/core/car"
	"github.com/storacha/go-keyminer/core/failure"
	"github.com/storacha/go-keyminer/core/ipld"
	"github.com/storacha/go-keyminer/core/ipld/hash"
	"github.com/storacha/go-keyminer/core/md5"
	"github.com/storacha/go-keyminer/core/proof"
)

func Verify(_ *options.RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file.car>",
		Short: "Verify every mining proof stored in a CAR file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			_, blocks, err := car.Decode(f)
			if err != nil {
				return fmt.Errorf("reading CAR %s: %w", args[0], err)
			}

			var invalid []error
			for {
				blk, err := blocks.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("reading CAR %s: %w", args[0], err)
				}
				p, err := proof.FromBlock(blk)
				if err != nil {
					return fmt.Errorf("block %s: %w", blk.Link(), err)
				}
				if err := p.Verify(); err != nil {
					m := failure.FromError(err)
					name := "Error"
					if m.Name != nil {
						name = *m.Name
					}
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL\t%s\t%s\t%s\n", blk.Link(), name, m.Message)
					invalid = append(invalid, err)
					continue
				}
				hasher, err := linkHasher(blk.Link())
				if err != nil {
					return fmt.Errorf("block %s: %w", blk.Link(), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OK\t%s\t%s\t%d\t%s\t%d\t%s\n", blk.Link(), p.Key, p.Steps, p.Digest, md5.LeadingZeroes(p.Digest), hasher)
			}
			if len(invalid) > 0 {
				return fmt.Errorf("%d invalid proofs: %w", len(invalid), errors.Join(invalid...))
			}
			return nil
		},
	}
}

// linkHasher names the multihash function that addressed the link.
func linkHasher(link ipld.Link) (string, error) {
	cl, ok := link.(cidlink.Link)
	if !ok {
		return "", fmt.Errorf("unsupported link type: %T", link)
	}
	d, err := hash.Decode(cl.Cid.Hash())
	if err != nil {
		return "", err
	}
	return multicodec.Code(d.Code()).String(), nil
}
