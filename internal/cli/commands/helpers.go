// Package commands implements the leapscript CLI commands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscript/internal/config"
	"github.com/leapstack-labs/leapscript/pkg/kernel"
	"github.com/leapstack-labs/leapscript/pkg/transform"
)

// loadConfig reads the configuration honoring the root --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.LoadWithFlags(path, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newKernel builds a kernel from configuration.
func newKernel(cmd *cobra.Command, cfg *config.Config) *kernel.Kernel {
	return kernel.New(
		kernel.WithResolver(newResolver(cfg)),
		kernel.WithLogger(newLogger(cmd, cfg)),
	)
}

func newResolver(cfg *config.Config) transform.Resolver {
	return transform.Resolver{
		Enabled: cfg.MagicImports.Enabled,
		BaseURL: cfg.MagicImports.BaseURL,
		AutoNPM: cfg.MagicImports.AutoNPM,
	}
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	} else {
		switch cfg.Log.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// readSource reads snippet source from the file argument, or stdin when the
// argument is absent or "-".
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
