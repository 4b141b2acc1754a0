// Package cli provides the command-line interface for LeapScript.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscript/internal/cli/commands"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leapscript",
		Short: "LeapScript - JavaScript notebook kernel engine",
		Long: `LeapScript transforms JavaScript snippets into executable async units:
static imports become awaited dynamic imports with CDN-resolvable URLs,
top-level declarations are hoisted into a shared namespace, and trailing
expressions are captured as results. It also provides completion,
inspection, completeness checking, and value serialization for
notebook-style frontends.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: leapscript.yaml in project root)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().String("state", "", "path to state database (overrides config)")
	rootCmd.PersistentFlags().String("base-url", "", "CDN base URL for import resolution (overrides config)")

	rootCmd.AddCommand(
		commands.NewTransformCmd(),
		commands.NewCheckCmd(),
		commands.NewCompleteCmd(),
		commands.NewInspectCmd(),
		commands.NewImportsCmd(),
		commands.NewReplCmd(),
		commands.NewVersionCmd(Version, BuildDate, GitCommit),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
