package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [root]",
		Short: "Run an MCP server on stdio exposing the filesystem tools",
		Long: `serve runs a Model Context Protocol server over stdio.
When a root is given (argument or "root" in the config file), tool paths
are resolved inside it and may not escape it.`,
		Example: `fsutil serve ~/projects`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	root := cfg.Root
	if len(args) > 0 {
		root = args[0]
	}
	if err := setToolRoot(root); err != nil {
		return err
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "fsutil",
		Version: version,
	}, nil)

	registerTools(server)

	logger.Info("serving on stdio",
		zap.String("root", toolRoot),
		zap.Strings("ignore", helper.IgnorePatterns()),
		zap.String("version", version),
	)
	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}

	return nil
}

func setToolRoot(root string) error {
	if root == "" {
		toolRoot = ""
		return nil
	}

	absPath, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("invalid root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root is not a directory: %s", absPath)
	}

	toolRoot = absPath
	return nil
}
