package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewTransformCmd returns the transform command.
func NewTransformCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "transform [file]",
		Short: "Rewrite a snippet into an executable async unit body",
		Long: `Transform reads a JavaScript snippet from a file or stdin and prints the
composed async function body: rewritten imports, hoist statements, and the
optional synthesized return.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			code, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			k := newKernel(cmd, cfg)
			unit, err := k.Transform(cmd.Context(), code)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"body":          unit.Body,
					"capturesValue": unit.CapturesValue,
					"imports":       unit.Imports,
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), unit.Body)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit unit metadata as JSON")
	return cmd
}
