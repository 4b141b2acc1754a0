package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscript/pkg/display"
	"github.com/leapstack-labs/leapscript/pkg/interactive"
	"github.com/leapstack-labs/leapscript/pkg/scope"
)

// NewInspectCmd returns the inspect command.
func NewInspectCmd() *cobra.Command {
	var (
		cursor    int
		detail    int
		scopePath string
		sandbox   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Look up documentation for the token at the cursor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			s, err := loadScope(scopePath)
			if err != nil {
				return err
			}
			if cursor < 0 {
				cursor = len(code)
			}

			var eval scope.Evaluator = scope.PathEvaluator{}
			if sandbox {
				eval = scope.StarlarkEvaluator{}
			}

			result := interactive.Inspect(code, cursor, detail, s, eval)
			if !result.Found {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "not found")
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Data[display.MimeText])
			return err
		},
	}

	cmd.Flags().IntVar(&cursor, "cursor", -1, "cursor byte offset (-1 for end of input)")
	cmd.Flags().IntVar(&detail, "detail", 0, "detail level (1 includes full function source)")
	cmd.Flags().StringVar(&scopePath, "scope", "", "JSON file of scope bindings")
	cmd.Flags().BoolVar(&sandbox, "sandbox-eval", false, "evaluate full expressions in the Starlark sandbox")
	return cmd
}
