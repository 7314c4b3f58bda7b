package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/confroute/confroute"
	"github.com/confroute/confroute/codec"
	"github.com/confroute/confroute/document"
	"github.com/confroute/confroute/engine"
	"github.com/confroute/confroute/journal"
	"github.com/confroute/confroute/route"
)

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	Codec              string
	Workers            int
	OverwriteConflicts bool
	Journal            string
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <file> <route> <value>",
		Short: "Write a nested value into a config file",
		Long: `Update a config file at the given dotted route and persist the result
atomically. Missing intermediate mappings are created. The value is parsed
as JSON; anything that is not valid JSON is taken as a plain string.

An empty route ("") replaces the whole document.

By default a non-mapping value sitting on the route is a conflict and the
update is refused (exit 1). With --overwrite-conflicts such values are
destructively replaced by empty mappings.

Example:
  confroute set config.json features.beta true
  confroute set config.yaml server.host localhost`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(opts, cmd, args[0], route.Parse(args[1]), args[2])
		},
	}

	cmd.Flags().StringVar(&opts.Codec, "codec", "", "force format (json|yaml|yml) instead of inferring from the extension")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "offload parse/serialize to a worker pool of this size (0 = inline)")
	cmd.Flags().BoolVar(&opts.OverwriteConflicts, "overwrite-conflicts", false, "replace non-mapping values on the route with empty mappings")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the change in this SQLite journal")

	return cmd
}

func runSet(opts *SetOptions, cmd *cobra.Command, file string, r route.Route, rawValue string) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	logger := loggerFromContext(cmd.Context())

	c, err := codec.Infer(file, flagCodec(opts.Codec))
	if err != nil {
		out.Error(ErrCodeUnsupported, err.Error())
		return NewExitError(ExitFailure, err.Error())
	}

	value, err := parseValueArg(rawValue)
	if err != nil {
		out.Error(ErrCodeGeneric, err.Error())
		return WrapExitError(ExitCommandError, "invalid value", err)
	}

	policy := engine.Strict
	if opts.OverwriteConflicts {
		policy = engine.OverwriteConflicts
	}
	logger.Debug("updating config",
		"file", file, "route", r.String(), "codec", c, "policy", policy.String())

	callOpts := []confroute.Option{
		confroute.WithCodec(c),
		confroute.WithConflictPolicy(policy),
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

	ok, err := confroute.Set(cmd.Context(), file, r, value, callOpts...)
	if err != nil {
		code := ErrCodeFilesystem
		if ok {
			code = ErrCodeJournal
		}
		out.Error(code, err.Error())
		return WrapExitError(ExitCommandError, "write failed", err)
	}
	if !ok {
		out.Error(ErrCodeNotApplied, "update not applied: "+routeLabel(r))
		return NewExitError(ExitFailure, "update not applied")
	}

	return out.Success(fmt.Sprintf("updated %s", file))
}

// parseValueArg interprets a CLI value argument. Valid JSON is decoded into a
// document value; anything else is taken as a plain string, so bare words do
// not need shell-level quoting gymnastics.
func parseValueArg(raw string) (document.Value, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return document.String(raw), nil
	}
	// Trailing garbage after a JSON value means it was not meant as JSON
	if _, err := dec.Token(); err != io.EOF {
		return document.String(raw), nil
	}
	return document.FromGo(v)
}
