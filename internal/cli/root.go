// Package cli implements the confroute command-line interface.
//
// Commands map one-to-one onto the facade: get, set, and delete operate on a
// single config file, and history inspects the change journal. Exit codes
// follow the facade's error split: 0 for success, 1 for recoverable outcomes
// (absent route, update not applied), 2 for filesystem and usage errors.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/confroute/confroute/codec"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the confroute CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "confroute",
		Short:         "Routed access to JSON/YAML config files",
		Long:          "Read, update, and delete nested values in JSON or YAML config files,\naddressed by a dotted route of keys. Writes are atomic: the file on disk\nis never left half-written.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := log.WarnLevel
			if opts.Verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// flagCodec interprets a --codec flag value, case-insensitively. The common
// "yml" spelling is accepted as an alias for yaml, mirroring extension
// inference.
func flagCodec(s string) codec.Codec {
	s = strings.ToLower(s)
	if s == "yml" {
		return codec.YAML
	}
	return codec.Codec(s)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
