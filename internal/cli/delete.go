package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confroute/confroute"
	"github.com/confroute/confroute/codec"
	"github.com/confroute/confroute/journal"
	"github.com/confroute/confroute/route"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Codec   string
	Workers int
	Prune   bool
	Journal string
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete <file> <route>",
		Short: "Remove a nested value from a config file",
		Long: `Remove the value at the given dotted route and persist the result
atomically. A route that does not resolve leaves the file unchanged and
exits 1.

With --prune, mapping parents left empty by the removal are removed as
well, bottom-up.

Example:
  confroute delete config.yaml server.host --prune`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, cmd, args[0], route.Parse(args[1]))
		},
	}

	cmd.Flags().StringVar(&opts.Codec, "codec", "", "force format (json|yaml|yml) instead of inferring from the extension")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "offload parse/serialize to a worker pool of this size (0 = inline)")
	cmd.Flags().BoolVar(&opts.Prune, "prune", false, "remove mapping parents left empty by the removal")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the change in this SQLite journal")

	return cmd
}

func runDelete(opts *DeleteOptions, cmd *cobra.Command, file string, r route.Route) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	logger := loggerFromContext(cmd.Context())

	c, err := codec.Infer(file, flagCodec(opts.Codec))
	if err != nil {
		out.Error(ErrCodeUnsupported, err.Error())
		return NewExitError(ExitFailure, err.Error())
	}
	logger.Debug("deleting from config",
		"file", file, "route", r.String(), "codec", c, "prune", opts.Prune)

	callOpts := []confroute.Option{confroute.WithCodec(c)}
	if opts.Prune {
		callOpts = append(callOpts, confroute.WithPrune())
	}
	if opts.Workers > 0 {
		callOpts = append(callOpts, confroute.WithExecutor(confroute.NewWorkerPool(opts.Workers)))
	}

	if opts.Journal != "" {
		j, err := journal.Open(opts.Journal)
		if err != nil {
			out.Error(ErrCodeJournal, err.Error())
			return WrapExitError(ExitCommandError, "journal", err)
		}
		defer j.Close()
		callOpts = append(callOpts, confroute.WithJournal(j))
	}

	ok, err := confroute.Delete(cmd.Context(), file, r, callOpts...)
	if err != nil {
		code := ErrCodeFilesystem
		if ok {
			code = ErrCodeJournal
		}
		out.Error(code, err.Error())
		return WrapExitError(ExitCommandError, "delete failed", err)
	}
	if !ok {
		out.Error(ErrCodeAbsent, "nothing to delete: "+routeLabel(r))
		return NewExitError(ExitFailure, "nothing to delete")
	}

	return out.Success(fmt.Sprintf("deleted %s from %s", routeLabel(r), file))
}
