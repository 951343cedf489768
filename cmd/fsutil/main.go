// Package main implements the fsutil command line tool and MCP server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/fsutil/internal/config"
	"github.com/taigrr/fsutil/internal/fileutil"
	"github.com/taigrr/fsutil/internal/logging"
	"github.com/taigrr/fsutil/internal/pathfilter"
)

var (
	cfg          = config.Default()
	logger       = logging.NewNop()
	helper       = fileutil.New(nil)
	outputFormat = "text"
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "fsutil",
		Short: "Filesystem helpers for scripts and MCP clients",
		Long: `fsutil lists, moves, renames, measures, creates and deletes files.
Listings skip hidden entries and can be narrowed to a path suffix.
Run "fsutil serve" to expose the same operations as MCP tools.`,
		Example: `fsutil ls ./src --ext .go
fsutil chext notes/data.txt json
fsutil size ~/Downloads --human`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(configPath, debug)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultPath(), "path to the YAML config file")
	flags.StringVarP(&outputFormat, "output", "o", "text", "output format: text, yaml or json")
	flags.BoolVar(&debug, "debug", false, "log debug output to stderr")

	cmd.AddCommand(
		newListCmd(),
		newMoveCmd(),
		newRenameCmd(),
		newChangeExtCmd(),
		newExtCmd(),
		newBaseCmd(),
		newSizeCmd(),
		newExistsCmd(),
		newMkdirCmd(),
		newRemoveCmd(),
		newTempDirCmd(),
		newServeCmd(),
	)
	return cmd
}

func setup(configPath string, debug bool) error {
	switch outputFormat {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	if debug {
		logCfg.Level = "debug"
		logCfg.Development = true
	}
	l, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l

	helper = fileutil.New(nil).WithFilter(pathfilter.New(cfg.PathFilter()))
	return nil
}
