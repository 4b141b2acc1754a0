package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscript/internal/state"
	"github.com/leapstack-labs/leapscript/pkg/transform"
)

// openStore opens the configured state database, creating the schema when
// missing.
func openStore(path string) (*state.Store, error) {
	st := state.NewStore()
	if err := st.Open(path); err != nil {
		return nil, err
	}
	if err := st.InitSchema(); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// NewImportsCmd returns the imports command group.
func NewImportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imports",
		Short: "Manage recorded import specifiers",
	}
	cmd.AddCommand(newImportsListCmd())
	cmd.AddCommand(newImportsReplayCmd())
	return cmd
}

func newImportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imports recorded in the state database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cfg.State.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.ListImports()
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Source", "Default", "Namespace", "Named"})
			for _, rec := range records {
				t.AppendRow(table.Row{
					rec.Source,
					rec.Spec.DefaultLocal,
					rec.Spec.NamespaceLocal,
					len(rec.Spec.Named),
				})
			}
			t.Render()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "(%d imports)\n", len(records))
			return err
		},
	}
}

func newImportsReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay",
		Short: "Emit code that re-establishes every recorded import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cfg.State.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.ListImports()
			if err != nil {
				return err
			}

			code := transform.GenerateImportCode(records, newResolver(cfg))
			_, err = fmt.Fprint(cmd.OutOrStdout(), code)
			return err
		},
	}
}
