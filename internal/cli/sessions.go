package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emergylab/emergia/internal/session"
)

// SessionOptions holds flags shared by the session subcommands.
type SessionOptions struct {
	*RootOptions
	Database string
}

// NewSessionCommand creates the session command group. It bridges JSON
// session files and the durable sqlite session store.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage named sessions in the sqlite store",
		Long: `Manage named sessions stored in a sqlite database.

Sessions travel as JSON files on disk and as named records in the store.
save imports a JSON file under a name, load exports a named record back to
JSON, list and delete enumerate and remove records.

Example:
  emergia session save farm2024 --session farm.json --db sessions.db
  emergia session load farm2024 --db sessions.db --out restored.json`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to sqlite session database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newSessionSaveCommand(opts))
	cmd.AddCommand(newSessionLoadCommand(opts))
	cmd.AddCommand(newSessionListCommand(opts))
	cmd.AddCommand(newSessionDeleteCommand(opts))

	return cmd
}

func newSessionSaveCommand(opts *SessionOptions) *cobra.Command {
	var sessionFile string

	cmd := &cobra.Command{
		Use:           "save <name>",
		Short:         "Save a JSON session file under a name",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			snap, err := readSnapshot(sessionFile)
			if err != nil {
				return failWith(formatter, err)
			}

			st, err := openSessionStore(opts.Database)
			if err != nil {
				return failWith(formatter, err)
			}
			defer st.Close()

			if err := st.Save(commandContext(cmd), args[0], snap); err != nil {
				return failWith(formatter, err)
			}
			return formatter.Success(fmt.Sprintf("session %q saved", args[0]))
		},
	}

	cmd.Flags().StringVar(&sessionFile, "session", "", "path to JSON session file (required)")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func newSessionLoadCommand(opts *SessionOptions) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:           "load <name>",
		Short:         "Export a named session back to JSON",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			st, err := openSessionStore(opts.Database)
			if err != nil {
				return failWith(formatter, err)
			}
			defer st.Close()

			snap, err := st.Load(commandContext(cmd), args[0])
			if err != nil {
				return failWith(formatter, err)
			}

			data, err := session.EncodeJSON(snap)
			if err != nil {
				return failWith(formatter, err)
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, data, 0o644); err != nil {
					return failWith(formatter, &IOError{Op: "write session file", Path: outFile, Err: err})
				}
				return formatter.Success(fmt.Sprintf("session %q written to %s", args[0], outFile))
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "write the JSON session to this file instead of stdout")

	return cmd
}

func newSessionListCommand(opts *SessionOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List named sessions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			st, err := openSessionStore(opts.Database)
			if err != nil {
				return failWith(formatter, err)
			}
			defer st.Close()

			infos, err := st.List(commandContext(cmd))
			if err != nil {
				return failWith(formatter, err)
			}

			if opts.Format == "json" {
				return formatter.Success(infos)
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved sessions")
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t(updated %s)\n", info.Name, info.UpdatedAt)
			}
			return nil
		},
	}
}

func newSessionDeleteCommand(opts *SessionOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a named session",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			st, err := openSessionStore(opts.Database)
			if err != nil {
				return failWith(formatter, err)
			}
			defer st.Close()

			if err := st.Delete(commandContext(cmd), args[0]); err != nil {
				return failWith(formatter, err)
			}
			return formatter.Success(fmt.Sprintf("session %q deleted", args[0]))
		},
	}
}

func openSessionStore(path string) (*session.Store, error) {
	st, err := session.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open session database", Path: path, Err: err}
	}
	return st, nil
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
