package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscript/pkg/parser"
)

// NewCheckCmd returns the check command.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Classify a snippet as complete, incomplete, or invalid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			result := parser.CheckCompleteness(code)
			out := cmd.OutOrStdout()
			if result.Status == parser.StatusIncomplete {
				_, err = fmt.Fprintf(out, "%s indent=%q\n", result.Status, result.Indent)
				return err
			}
			_, err = fmt.Fprintln(out, result.Status)
			return err
		},
	}
}
