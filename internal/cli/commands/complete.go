package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscript/pkg/interactive"
	"github.com/leapstack-labs/leapscript/pkg/scope"
)

// loadScope builds a completion scope from an optional JSON file of
// name/value bindings.
func loadScope(path string) (*scope.Scope, error) {
	s := scope.New()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scope %s: %w", path, err)
	}
	var bindings map[string]any
	if err := json.Unmarshal(data, &bindings); err != nil {
		return nil, fmt.Errorf("decode scope %s: %w", path, err)
	}
	for name, value := range bindings {
		s.Set(name, value)
	}
	return s, nil
}

// NewCompleteCmd returns the complete command.
func NewCompleteCmd() *cobra.Command {
	var (
		cursor    int
		scopePath string
	)

	cmd := &cobra.Command{
		Use:   "complete [file]",
		Short: "Complete the identifier ending at the cursor",
		Long: `Complete reads a snippet and returns the names reachable on the scope that
match the prefix ending at the cursor offset. A negative cursor means end of
input. Completion requires the cursor at the exact end of its line.`,
		Args: cobra.MaximumNArgs(1),
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

			result := interactive.Complete(code, cursor, s, scope.PathEvaluator{})

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Match"})
			for _, m := range result.Matches {
				t.AppendRow(table.Row{m})
			}
			t.Render()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "(%d matches, span %d-%d, %s)\n",
				len(result.Matches), result.CursorStart, result.CursorEnd, result.Status)
			return err
		},
	}

	cmd.Flags().IntVar(&cursor, "cursor", -1, "cursor byte offset (-1 for end of input)")
	cmd.Flags().StringVar(&scopePath, "scope", "", "JSON file of scope bindings")
	return cmd
}
