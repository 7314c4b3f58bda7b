package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confroute/confroute/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Path  string
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history <journal>",
		Short: "List recorded config changes",
		Long: `List changes recorded in a SQLite journal, newest first. Journals are
written by set/delete when invoked with --journal.

Example:
  confroute history changes.db --path config.json --limit 20`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Path, "path", "", "only show changes to this file")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of changes to show (0 = all)")

	return cmd
}

// historyEntry is the JSON shape of one listed change.
type historyEntry struct {
	RecordedAt string `json:"recorded_at"`
	Path       string `json:"path"`
	Route      string `json:"route"`
	Op         string `json:"op"`
	Value      string `json:"value,omitempty"`
	DocHash    string `json:"doc_hash"`
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command, journalPath string) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	j, err := journal.Open(journalPath)
	if err != nil {
		out.Error(ErrCodeJournal, err.Error())
		return WrapExitError(ExitCommandError, "journal", err)
	}
	defer j.Close()

	changes, err := j.Recent(cmd.Context(), opts.Path, opts.Limit)
	if err != nil {
		out.Error(ErrCodeJournal, err.Error())
		return WrapExitError(ExitCommandError, "journal", err)
	}

	if opts.Format == "json" {
		entries := make([]historyEntry, len(changes))
		for i, ch := range changes {
			entries[i] = historyEntry{
				RecordedAt: ch.RecordedAt,
				Path:       ch.Path,
				Route:      ch.Route,
				Op:         string(ch.Op),
				Value:      ch.Value,
				DocHash:    ch.DocHash,
			}
		}
		return out.Success(entries)
	}

	for _, ch := range changes {
		line := fmt.Sprintf("%s  %-6s  %s", ch.RecordedAt, ch.Op, ch.Path)
		if ch.Route != "" {
			line += "  " + ch.Route
		}
		if ch.Op == journal.OpSet {
			line += " = " + ch.Value
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	if len(changes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no changes recorded")
	}
	return nil
}
