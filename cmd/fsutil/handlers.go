package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/fsutil/internal/fileutil"
	"github.com/taigrr/fsutil/internal/types"
	"go.uber.org/zap"
)

// toolRoot confines tool paths when non-empty. It is absolute.
var toolRoot string

// resolvePath maps a tool path onto the filesystem. With a root set, the
// path is taken relative to it and must stay inside it.
func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if toolRoot == "" {
		if path == "" {
			return "", fmt.Errorf("path is required")
		}
		return path, nil
	}

	normalizedPath := strings.TrimPrefix(filepath.ToSlash(path), "/")
	absPath, err := filepath.Abs(filepath.Join(toolRoot, filepath.FromSlash(normalizedPath)))
	if err != nil {
		return "", err
	}

	relPath, err := filepath.Rel(toolRoot, absPath)
	if err != nil {
		return "", err
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed: %s", path)
	}

	return absPath, nil
}

// displayPath reverses resolvePath for results.
func displayPath(fullPath string) string {
	if toolRoot == "" {
		return fullPath
	}
	if rel, err := filepath.Rel(toolRoot, fullPath); err == nil {
		return filepath.ToSlash(rel)
	}
	return fullPath
}

func toolFailure(op string, err error) (*mcp.CallToolResult, error) {
	logger.Op(op).Warn("tool call failed", ioFields(err)...)
	return &mcp.CallToolResult{IsError: true}, err
}

func handleListFiles(ctx context.Context, req *mcp.CallToolRequest, input ListFilesInput) (*mcp.CallToolResult, types.FileListing, error) {
	root, err := resolvePath(input.Root)
	if err != nil {
		res, err := toolFailure("list", err)
		return res, types.FileListing{}, err
	}

	h := helper
	if len(input.Ignore) > 0 {
		h = helper.WithIgnore(slices.Concat(cfg.Ignore, input.Ignore)...)
	}

	files, err := h.Files(root, input.Extension)
	if err != nil {
		res, err := toolFailure("list", err)
		return res, types.FileListing{}, err
	}

	listing := types.FileListing{Root: input.Root, Files: make([]string, 0, len(files))}
	for _, f := range files {
		listing.Files = append(listing.Files, displayPath(f))
	}
	listing.Count = len(listing.Files)
	return nil, listing, nil
}

func handleMove(ctx context.Context, req *mcp.CallToolRequest, input MoveInput) (*mcp.CallToolResult, types.MoveResult, error) {
	return moveTool("move", input.Source, func(src string) (string, error) {
		dst, err := resolvePath(input.Destination)
		if err != nil {
			return "", err
		}
		return helper.Move(src, dst)
	})
}

func handleRename(ctx context.Context, req *mcp.CallToolRequest, input RenameInput) (*mcp.CallToolResult, types.MoveResult, error) {
	newName := strings.TrimSpace(input.NewName)
	if newName == "" || strings.ContainsAny(newName, `/\`) {
		return moveFailure("rename", input.Path, fmt.Errorf("newName must be a bare file name: %q", input.NewName))
	}
	return moveTool("rename", input.Path, func(src string) (string, error) {
		return helper.Rename(src, newName)
	})
}

func handleChangeExtension(ctx context.Context, req *mcp.CallToolRequest, input ChangeExtensionInput) (*mcp.CallToolResult, types.MoveResult, error) {
	ext := strings.TrimPrefix(strings.TrimSpace(input.Extension), ".")
	if ext == "" {
		return moveFailure("rename", input.Path, fmt.Errorf("extension is required"))
	}

	if input.DryRun {
		src, err := resolvePath(input.Path)
		if err != nil {
			return moveFailure("rename", input.Path, err)
		}
		return nil, types.MoveResult{
			Success: true,
			OldPath: displayPath(src),
			NewPath: displayPath(fileutil.PathWithNewExtension(src, ext)),
			DryRun:  true,
		}, nil
	}

	return moveTool("rename", input.Path, func(src string) (string, error) {
		return helper.RenameExtension(src, ext)
	})
}

func moveTool(op, path string, do func(src string) (string, error)) (*mcp.CallToolResult, types.MoveResult, error) {
	src, err := resolvePath(path)
	if err != nil {
		return moveFailure(op, path, err)
	}

	dst, err := do(src)
	if err != nil {
		return moveFailure(op, path, err)
	}

	logger.Op(op).Info("moved", zap.String("path", src), zap.String("dest", dst))
	return nil, types.MoveResult{
		Success: true,
		OldPath: displayPath(src),
		NewPath: displayPath(dst),
	}, nil
}

func moveFailure(op, path string, err error) (*mcp.CallToolResult, types.MoveResult, error) {
	res, err := toolFailure(op, err)
	return res, types.MoveResult{Success: false, OldPath: path, Message: err.Error()}, err
}

func handleSize(ctx context.Context, req *mcp.CallToolRequest, input SizeInput) (*mcp.CallToolResult, types.SizeResult, error) {
	path, err := resolvePath(input.Path)
	if err != nil {
		res, err := toolFailure("size", err)
		return res, types.SizeResult{}, err
	}

	result := sizeResult(path, input.Human)
	result.Path = input.Path
	return nil, result, nil
}

func handleExists(ctx context.Context, req *mcp.CallToolRequest, input PathInput) (*mcp.CallToolResult, types.ExistsResult, error) {
	path, err := resolvePath(input.Path)
	if err != nil {
		res, err := toolFailure("exists", err)
		return res, types.ExistsResult{}, err
	}
	return nil, types.ExistsResult{Path: input.Path, Exists: helper.Exists(path)}, nil
}

func handleMkdir(ctx context.Context, req *mcp.CallToolRequest, input MkdirInput) (*mcp.CallToolResult, types.PathResult, error) {
	path, err := resolvePath(input.Path)
	if err != nil {
		res, err := toolFailure("mkdir", err)
		return res, types.PathResult{Path: input.Path}, err
	}

	ensure := helper.EnsureDir
	if input.Parent {
		ensure = helper.EnsureParent
	}
	dir, err := ensure(path)
	if err != nil {
		res, err := toolFailure("mkdir", err)
		return res, types.PathResult{Path: input.Path, Message: err.Error()}, err
	}
	return nil, types.PathResult{Success: true, Path: displayPath(dir)}, nil
}

func handleDelete(ctx context.Context, req *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, types.PathResult, error) {
	if input.Confirm != "yes" {
		return &mcp.CallToolResult{IsError: true}, types.PathResult{Path: input.Path},
			fmt.Errorf("deletion not confirmed: set confirm='yes' to proceed")
	}

	path, err := resolvePath(input.Path)
	if err != nil {
		res, err := toolFailure("delete", err)
		return res, types.PathResult{Path: input.Path}, err
	}
	if toolRoot != "" && path == toolRoot {
		res, err := toolFailure("delete", fmt.Errorf("refusing to delete the server root"))
		return res, types.PathResult{Path: input.Path}, err
	}

	if err := helper.Delete(path); err != nil {
		res, err := toolFailure("delete", err)
		return res, types.PathResult{Path: input.Path, Message: err.Error()}, err
	}

	logger.Op("delete").Info("deleted", zap.String("path", path))
	return nil, types.PathResult{
		Success: true,
		Path:    input.Path,
		Message: "deleted; this action cannot be undone",
	}, nil
}

func handleTempDir(ctx context.Context, req *mcp.CallToolRequest, input TempDirInput) (*mcp.CallToolResult, types.PathResult, error) {
	prefix := strings.TrimSpace(input.Prefix)
	if prefix == "" {
		prefix = cfg.TempPrefix
	}

	// With a root set the directory is created directly under it.
	dir, err := helper.TempDirIn(toolRoot, prefix)
	if err != nil {
		res, err := toolFailure("tempdir", err)
		return res, types.PathResult{}, err
	}
	return nil, types.PathResult{Success: true, Path: displayPath(dir)}, nil
}
