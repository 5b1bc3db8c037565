package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sachitrajbhandari/swrlapi/internal/builtin"
)

// BuiltInInfo describes one catalogued built-in.
type BuiltInInfo struct {
	Name  string `json:"name"`
	IRI   string `json:"iri"`
	Arity string `json:"arity"`
}

// NewBuiltInsCommand creates the builtins command.
func NewBuiltInsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "builtins",
		Short:         "List the built-in catalogue",
		Long:          `List every built-in the runtime knows with its accepted argument count.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuiltIns(rootOpts, cmd)
		},
	}
	return cmd
}

// ListBuiltIns returns the catalogue of a default runtime, sorted by name.
func ListBuiltIns() []BuiltInInfo {
	rt := builtin.NewRuntime()
	names := rt.Names()
	infos := make([]BuiltInInfo, 0, len(names))
	for _, name := range names {
		b, _ := builtin.ParseBuiltIn(name)
		arity, _ := rt.Arity(name)
		infos = append(infos, BuiltInInfo{Name: name, IRI: b.IRI(), Arity: arity.String()})
	}
	return infos
}

func runBuiltIns(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	infos := ListBuiltIns()

	if opts.Format == "json" {
		return formatter.Success(infos)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tARITY")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\n", info.Name, info.Arity)
	}
	return tw.Flush()
}
