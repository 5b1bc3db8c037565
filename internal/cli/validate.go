package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sachitrajbhandari/swrlapi/internal/query"
)

// ValidationIssue is one error or warning found in a query.
type ValidationIssue struct {
	Query   string `json:"query,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Queries  int               `json:"queries"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
	Warnings []ValidationIssue `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate query specs without executing them",
		Long: `Validate CUE query specs without building result tables.

Performs schema checking and query validation for every query and reports
all errors and warnings at once. Faster than query for development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Prefixes, "prefix", nil, "prefix mapping prefix=namespace (repeatable)")

	return cmd
}

func runValidate(opts *QueryOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	f, err := newFactory(opts.Prefixes)
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeInvalidArg, err.Error(), nil)
	}

	// Collect every compile error rather than stopping at the first
	loadResult, loadErrors := LoadQueries(path, f, LoadModeCollectAll)
	if loadResult == nil {
		return failLoad(formatter, loadErrors[0])
	}
	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, path)

	result := validateAll(loadResult.Queries, formatter)
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			issue := ValidationIssue{Code: loadErr.Code, Message: loadErr.Message}
			if loadErr.Pos.IsValid() {
				issue.Line = loadErr.Pos.Line()
			}
			result.Errors = append(result.Errors, issue)
		}
	}
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// validateAll runs query validation over compiled queries.
func validateAll(queries []query.Query, formatter *OutputFormatter) ValidationResult {
	result := ValidationResult{Queries: len(queries)}
	for _, q := range queries {
		formatter.VerboseLog("Validating query: %s", q.Name)
		v := query.Validate(q)
		for _, msg := range v.Errors {
			result.Errors = append(result.Errors, ValidationIssue{Query: q.Name, Code: ErrCodeInvalidQuery, Message: msg})
		}
		for _, msg := range v.Warnings {
			result.Warnings = append(result.Warnings, ValidationIssue{Query: q.Name, Code: "W001", Message: msg})
		}
	}
	return result
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "warning: %s: %s\n", w.Query, w.Message)
	}
	fmt.Fprintf(formatter.Writer, "✓ %d queries valid\n", result.Queries)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	first := result.Errors[0]
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    first.Code,
				Message: first.Message,
			},
			TraceID: formatter.TraceID,
		}
		if err := formatter.encode(response); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range result.Errors {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		if err.Query != "" {
			fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Query, err.Message)
		} else {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
		}
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}
