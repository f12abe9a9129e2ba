// Package options defines the command-line options and flags for the keyminer
// CLI.
package options

import (
	"context"
	"fmt"
	"slices"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
)

// FlagAdder is implemented by any flag group that can register itself to a cobra command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// ValidLogFormats lists the valid log format strings.
var ValidLogFormats = []string{"text", "json", "color"}

// RootOptions defines flags available to every subcommand.
type RootOptions struct {
	// LogLevel sets the minimum log level (debug, info, warn, error).
	LogLevel string
	// LogFormat sets the log output format (text, json, color).
	LogFormat string
	// Timeout bounds command execution. Zero means no limit.
	Timeout time.Duration
}

var _ FlagAdder = (*RootOptions)(nil)

func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "warn",
		"set the minimum log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "text",
		"set the log output format (text, json, color)")
	cmd.PersistentFlags().DurationVarP(&o.Timeout, "timeout", "t", 0,
		"timeout for commands, 0 for none")
}

// SetupLogging configures every keyminer subsystem logger to write to stderr.
func (o *RootOptions) SetupLogging() error {
	lvl, err := logging.LevelFromString(o.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
	}
	if !slices.Contains(ValidLogFormats, o.LogFormat) {
		return fmt.Errorf("invalid log format %q, expected one of %v", o.LogFormat, ValidLogFormats)
	}

	format := logging.PlaintextOutput
	switch o.LogFormat {
	case "json":
		format = logging.JSONOutput
	case "color":
		format = logging.ColorizedOutput
	}

	logging.SetupLogging(logging.Config{
		Format: format,
		Level:  lvl,
		Stderr: true,
	})
	return nil
}

// Context derives the command context, applying Timeout when set.
func (o *RootOptions) Context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.Timeout > 0 {
		return context.WithTimeout(ctx, o.Timeout)
	}
	return context.WithCancel(ctx)
}

// AddAllFlags is a helper function to register multiple flag groups at once.
func AddAllFlags(cmd *cobra.Command, flagGroups ...FlagAdder) {
	for _, fg := range flagGroups {
		fg.AddFlags(cmd)
	}
}
