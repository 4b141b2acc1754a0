package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscript/internal/state"
	"github.com/leapstack-labs/leapscript/pkg/kernel"
	"github.com/leapstack-labs/leapscript/pkg/parser"
)

const replPrompt = "leapscript> "
const replContinue = "       ...> "

// NewReplCmd returns the repl command.
func NewReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive transform session",
		Long: `Repl reads snippets line by line, buffering input while the completeness
check reports it incomplete, then transforms each finished snippet and prints
the generated function body. Imports and submissions are recorded in the
state database.`,
		Args: cobra.NoArgs,
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

			k := newKernel(cmd, cfg)
			return runRepl(cmd, k, st, cfg.State.Path)
		},
	}
}

func runRepl(cmd *cobra.Command, k *kernel.Kernel, st *state.Store, statePath string) error {
	ctx := cmd.Context()

	historyFile := filepath.Join(filepath.Dir(statePath), "repl_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    &kernelCompleter{kernel: k},
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "LeapScript REPL (state: %s)\n", statePath)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		if buffer.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ".") {
				if handleReplCommand(cmd, st, trimmed) {
					if trimmed == ".quit" || trimmed == ".exit" {
						break
					}
					continue
				}
			}
		}

		buffer.WriteString(line)
		snippet := buffer.String()

		check := k.CheckComplete(snippet)
		if check.Status == parser.StatusIncomplete {
			buffer.WriteString("\n")
			rl.SetPrompt(replContinue)
			continue
		}
		rl.SetPrompt(replPrompt)
		buffer.Reset()

		unit, err := k.Transform(ctx, snippet)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}

		for _, spec := range unit.Imports {
			if _, err := st.RecordImport(spec); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		}
		if _, err := st.RecordSubmission(snippet, unit.CapturesValue); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), unit.Body)
	}

	return nil
}

func handleReplCommand(cmd *cobra.Command, st *state.Store, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(cmd.OutOrStdout())
		return true

	case ".imports":
		if err := printReplImports(cmd.OutOrStdout(), st); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return true

	case ".history":
		if err := printReplHistory(cmd.OutOrStdout(), st); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .imports        List imports recorded this session and before
  .history        Show recent submissions
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - Input buffers across lines until the snippet parses as complete
  - Use arrow keys to navigate history
  - Tab completion works for scope names and properties
`
	_, _ = fmt.Fprintln(w, help)
}

func printReplImports(w io.Writer, st *state.Store) error {
	records, err := st.ListImports()
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
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
	return nil
}

func printReplHistory(w io.Writer, st *state.Store) error {
	subs, err := st.ListSubmissions(10)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "Captures", "Code"})
	for _, sub := range subs {
		code := sub.Code
		if i := strings.IndexByte(code, '\n'); i >= 0 {
			code = code[:i] + " ..."
		}
		t.AppendRow(table.Row{sub.CreatedAt.Format("15:04:05"), sub.CapturesValue, code})
	}
	t.Render()
	return nil
}

// kernelCompleter adapts kernel completion to the readline interface.
type kernelCompleter struct {
	kernel *kernel.Kernel
}

func (c *kernelCompleter) Do(line []rune, pos int) ([][]rune, int) {
	code := string(line[:pos])
	result := c.kernel.Complete(code, len(code))

	prefixLen := result.CursorEnd - result.CursorStart
	var suffixes [][]rune
	for _, m := range result.Matches {
		if len(m) < prefixLen {
			continue
		}
		suffixes = append(suffixes, []rune(m[prefixLen:]))
	}
	return suffixes, prefixLen
}
