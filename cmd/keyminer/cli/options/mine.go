package options

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/spf13/cobra"
	"github.com/storacha/go-keyminer/core/md5"
	"github.com/storacha/go-keyminer/core/mine"
)

// ValidOutputFormats lists the valid result formats.
var ValidOutputFormats = []string{"text", "json"}

// SearchFlags configures a key search.
type SearchFlags struct {
	// Zeroes is the number of leading zero hex digits a digest must have.
	Zeroes int
	// Workers is the number of parallel workers, 1 for the sequential search.
	Workers int
	// Batch is the number of steps a parallel worker claims at once.
	Batch int
}

func (o *SearchFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.Zeroes, "zeroes", "z", 5, "leading zero hex digits required")
	cmd.Flags().IntVarP(&o.Workers, "workers", "w", runtime.NumCPU(), "parallel workers, 1 searches sequentially")
	cmd.Flags().IntVar(&o.Batch, "batch", mine.DefaultBatchSize, "steps claimed per worker batch")
}

func (o *SearchFlags) Validate() error {
	if o.Zeroes < 0 || o.Zeroes > md5.Digits {
		return fmt.Errorf("--zeroes must be between 0 and %d", md5.Digits)
	}
	return nil
}

// MineOptions converts the flags into search options.
func (o *SearchFlags) MineOptions() []mine.Option {
	return []mine.Option{mine.WithWorkers(o.Workers), mine.WithBatchSize(o.Batch)}
}

// MineOutputFlags controls how mined proofs are reported.
type MineOutputFlags struct {
	// Format is the stdout format (text, json).
	Format string
	// CARPath, when set, receives the proof as a dag-cbor block in a CAR file.
	CARPath string
	// Hasher names the multihash used to address the proof block (md5, sha2-256).
	Hasher string
}

func (o *MineOutputFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().StringVar(&o.CARPath, "car", "", "write the proof to a CAR file")
	cmd.Flags().StringVar(&o.Hasher, "hasher", "md5", "multihash for the proof block link (md5, sha2-256)")
}

func (o *MineOutputFlags) Validate() error {
	if !slices.Contains(ValidOutputFormats, o.Format) {
		return fmt.Errorf("invalid format %q, expected one of %v", o.Format, ValidOutputFormats)
	}
	if o.Hasher != "md5" && o.Hasher != "sha2-256" {
		return fmt.Errorf("invalid hasher %q, expected md5 or sha2-256", o.Hasher)
	}
	return nil
}
