package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file.json>",
		Short: "Print the LCI matrix, units, and transformities of a session file",
		Long: `Print the contents of a JSON session file.

Cells that were never given a value are shown as "-", never as 0; a stored
zero and an unset cell are different things.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	st, err := loadStore(path)
	if err != nil {
		return failWith(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(st.Snapshot())
	}

	w := formatter.Writer
	flows := st.Flows()
	processes := st.Processes()

	fmt.Fprintf(w, "LCI matrix (%d flows × %d processes):\n", len(flows), len(processes))
	if len(flows) == 0 {
		fmt.Fprintln(w, "  (no flows)")
	}
	for _, flow := range flows {
		cells := make([]string, len(processes))
		for j, proc := range processes {
			if v, ok := st.Value(flow, proc); ok {
				cells[j] = fmt.Sprintf("%s=%g", proc, v)
			} else {
				cells[j] = proc + "=-"
			}
		}
		label := flow
		if unit := st.Unit(flow); unit != "" {
			label = fmt.Sprintf("%s [%s]", flow, unit)
		}
		fmt.Fprintf(w, "  %s: %s\n", label, strings.Join(cells, ", "))
	}

	trans := st.Transformities()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Transformities (%d):\n", len(trans))
	names := make([]string, 0, len(trans))
	for name := range trans {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := trans[name]
		fmt.Fprintf(w, "  %s: %.2e %s\n", name, t.Value, t.Unit)
	}

	return nil
}
