package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sachitrajbhandari/swrlapi/internal/builtin"
	"github.com/sachitrajbhandari/swrlapi/internal/factory"
	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Prefixes []string // "prefix=namespace" mappings
}

// EvalResult is the outcome of one built-in call.
type EvalResult struct {
	BuiltIn   string         `json:"builtin"`
	Satisfied bool           `json:"satisfied"`
	Bindings  map[string]any `json:"bindings,omitempty"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <builtin> [args...]",
		Short: "Evaluate one built-in",
		Long: `Evaluate one SWRL built-in and print its result and bindings.

Arguments are typed as tag:value (int:20, double:2.5, string:abc,
boolean:true, dateTime:2002-10-10T17:00:00Z, class:test:C1) or ?name for an
unbound variable. Entity names use the standard prefixes plus any given
with --prefix.

Exit codes:
  0 - Built-in satisfied
  1 - Built-in not satisfied, or it rejected the argument values
  2 - Command error (unknown built-in, wrong arity, malformed argument)

Examples:
  swrlapi eval add ?x int:20 int:30
  swrlapi eval tokenize ?t "string:a,b" string:,
  swrlapi eval --prefix test=http://example.org/test# equal class:test:C1 class:test:C1`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Prefixes, "prefix", nil, "prefix mapping prefix=namespace (repeatable)")

	return cmd
}

func runEval(opts *EvalOptions, name string, rawArgs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	f, err := newFactory(opts.Prefixes)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInvalidArg, err.Error(), nil)
	}

	args, vars, err := parseArguments(f, rawArgs)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInvalidArg, err.Error(), nil)
	}

	rt := builtin.NewRuntime(builtin.WithLogger(slog.Default()))
	satisfied, err := rt.Evaluate(builtin.Invocation{Name: name, Args: args})
	if err != nil {
		var (
			details any
			ee      *builtin.EvalError
		)
		if errors.As(err, &ee) {
			details = map[string]any{"builtin": ee.BuiltIn, "code": string(ee.Code), "argument": ee.Argument}
		}
		if builtin.IsShapeError(err) {
			return formatter.fail(ExitCommandError, ErrCodeBuiltInShape, err.Error(), details)
		}
		return formatter.fail(ExitFailure, ErrCodeBuiltInValue, err.Error(), details)
	}

	result := EvalResult{BuiltIn: name, Satisfied: satisfied, Bindings: encodeBindings(vars)}
	if b, ok := builtin.ParseBuiltIn(name); ok {
		result.BuiltIn = b.String()
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		printEvalText(formatter, result, vars)
	}

	if !satisfied {
		return NewExitError(ExitFailure, fmt.Sprintf("%s is not satisfied", result.BuiltIn))
	}
	return nil
}

// newFactory creates a value factory with the standard prefixes plus
// "prefix=namespace" mappings.
func newFactory(prefixes []string) (*factory.ValueFactory, error) {
	resolver := factory.NewIRIResolver()
	for _, p := range prefixes {
		prefix, ns, ok := strings.Cut(p, "=")
		if !ok || ns == "" {
			return nil, fmt.Errorf("invalid --prefix %q: expected prefix=namespace", p)
		}
		resolver.SetPrefix(prefix, ns)
	}
	return factory.NewValueFactory(resolver), nil
}

// parseArguments converts command-line arguments. "?name" is a variable;
// repeated names share one variable. vars lists variables in first-use
// order.
func parseArguments(f *factory.ValueFactory, raw []string) ([]builtin.Argument, []*builtin.Variable, error) {
	var (
		args   = make([]builtin.Argument, 0, len(raw))
		vars   []*builtin.Variable
		byName = make(map[string]*builtin.Variable)
	)
	for i, r := range raw {
		if name, ok := strings.CutPrefix(r, "?"); ok {
			v, seen := byName[name]
			if !seen {
				v = builtin.Var(name)
				byName[name] = v
				vars = append(vars, v)
			}
			args = append(args, v)
			continue
		}
		val, err := f.ParseTagged(r)
		if err != nil {
			return nil, nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		args = append(args, builtin.Val(val))
	}
	return args, vars, nil
}

// encodeBindings renders bound variables in canonical value form. A
// multi-value binding becomes a list.
func encodeBindings(vars []*builtin.Variable) map[string]any {
	bound := make(map[string]any)
	for _, v := range vars {
		if val, ok := v.Value(); ok {
			bound[v.Name] = ir.Encode(val)
		} else if m, ok := v.MultiValue(); ok {
			bound[v.Name] = ir.EncodeRow(m.Values())
		}
	}
	if len(bound) == 0 {
		return nil
	}
	return bound
}

func printEvalText(formatter *OutputFormatter, result EvalResult, vars []*builtin.Variable) {
	w := formatter.Writer
	fmt.Fprintf(w, "%s: %t\n", result.BuiltIn, result.Satisfied)
	for _, v := range vars {
		if val, ok := v.Value(); ok {
			fmt.Fprintf(w, "  ?%s = %s\n", v.Name, describeValue(val))
		} else if m, ok := v.MultiValue(); ok {
			parts := make([]string, len(m.Values()))
			for i, val := range m.Values() {
				parts[i] = describeValue(val)
			}
			fmt.Fprintf(w, "  ?%s = [%s]\n", v.Name, strings.Join(parts, ", "))
		}
	}
}

// describeValue renders a value as "datatype lexical", e.g. "xsd:int 20".
func describeValue(v ir.Value) string {
	return ir.Datatype(v) + " " + v.Lexical()
}
