package cli

import (
	"github.com/spf13/cobra"

	"github.com/confroute/confroute"
	"github.com/confroute/confroute/codec"
	"github.com/confroute/confroute/document"
	"github.com/confroute/confroute/route"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Codec   string
	Workers int
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <file> [route]",
		Short: "Read a nested value from a config file",
		Long: `Read a config file and print the value at the given dotted route.
Without a route the whole document is printed.

A missing route (or a malformed document) exits 1 with a not-found message;
filesystem errors exit 2.

Example:
  confroute get config.yaml server.port`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r route.Route
			if len(args) == 2 {
				r = route.Parse(args[1])
			}
			return runGet(opts, cmd, args[0], r)
		},
	}

	cmd.Flags().StringVar(&opts.Codec, "codec", "", "force format (json|yaml|yml) instead of inferring from the extension")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "offload parsing to a worker pool of this size (0 = inline)")

	return cmd
}

func runGet(opts *GetOptions, cmd *cobra.Command, file string, r route.Route) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	logger := loggerFromContext(cmd.Context())

	c, err := codec.Infer(file, flagCodec(opts.Codec))
	if err != nil {
		out.Error(ErrCodeUnsupported, err.Error())
		return NewExitError(ExitFailure, err.Error())
	}
	logger.Debug("reading config", "file", file, "route", r.String(), "codec", c)

	callOpts := []confroute.Option{confroute.WithCodec(c)}
	if opts.Workers > 0 {
		callOpts = append(callOpts, confroute.WithExecutor(confroute.NewWorkerPool(opts.Workers)))
	}

	val, ok, err := confroute.Get(cmd.Context(), file, r, callOpts...)
	if err != nil {
		out.Error(ErrCodeFilesystem, err.Error())
		return WrapExitError(ExitCommandError, "read failed", err)
	}
	if !ok {
		out.Error(ErrCodeAbsent, "not found: "+routeLabel(r))
		return NewExitError(ExitFailure, "not found")
	}

	return out.Success(document.ToGo(val))
}

func routeLabel(r route.Route) string {
	if r.IsEmpty() {
		return "(document root)"
	}
	return r.String()
}
