package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/storacha/go-keyminer/cmd/keyminer/cli/options"
	"github.com/storacha/go-keyminer/core/car"
	"github.com/storacha/go-keyminer/core/dag/blockstore"
	"github.com/storacha/go-keyminer/core/ipld"
	"github.com/storacha/go-keyminer/core/ipld/codec/json"
	"github.com/storacha/go-keyminer/core/ipld/hash"
	"github.com/storacha/go-keyminer/core/ipld/hash/md5"
	"github.com/storacha/go-keyminer/core/ipld/hash/sha256"
	"github.com/storacha/go-keyminer/core/key"
	"github.com/storacha/go-keyminer/core/mine"
	"github.com/storacha/go-keyminer/core/proof"
)

func Mine(ro *options.RootOptions) *cobra.Command {
	search := &options.SearchFlags{}
	output := &options.MineOutputFlags{}

	cmd := &cobra.Command{
		Use:   "mine <seed>...",
		Short: "Find the first counter suffix whose MD5 digest starts with enough zeroes.",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := search.Validate(); err != nil {
				return err
			}
			return output.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := ro.Context(cmd)
			defer cancel()

			store, err := blockstore.NewBlockStore()
			if err != nil {
				return err
			}
			var roots []ipld.Link
			for _, seed := range args {
				res, err := mine.Search(ctx, key.New(seed), search.Zeroes, search.MineOptions()...)
				if err != nil {
					return fmt.Errorf("mining %q: %w", seed, err)
				}
				p := proof.New(seed, search.Zeroes, res)

				blk, err := p.Block(hasherByName(output.Hasher))
				if err != nil {
					return fmt.Errorf("encoding proof block: %w", err)
				}
				if err := store.Put(blk); err != nil {
					return err
				}
				roots = append(roots, blk.Link())

				switch output.Format {
				case "json":
					b, err := proof.Encode(p, json.Codec)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(b))
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", p.Steps, p.Key, p.Digest)
				}
			}

			if output.CARPath != "" {
				return writeCAR(output.CARPath, roots, store)
			}
			return nil
		},
	}
	options.AddAllFlags(cmd, search, output)
	return cmd
}

func hasherByName(name string) hash.Hasher {
	if name == "sha2-256" {
		return sha256.Hasher
	}
	return md5.Hasher
}

func writeCAR(path string, roots []ipld.Link, store blockstore.BlockReader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CAR file %s: %w", path, err)
	}
	defer f.Close()

	r := car.Encode(roots, store.Iterator())
	defer r.Close()

	if _, err := f.ReadFrom(r); err != nil {
		return fmt.Errorf("writing CAR file %s: %w", path, err)
	}
	return f.Close()
}
