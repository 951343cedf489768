package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/taigrr/fsutil/internal/fileutil"
	"github.com/taigrr/fsutil/internal/types"
	"go.uber.org/zap"
)

func newListCmd() *cobra.Command {
	var (
		ext    string
		ignore []string
	)

	cmd := &cobra.Command{
		Use:     "ls [root]",
		Aliases: []string{"list"},
		Short:   "List regular files under a directory, recursively",
		Long: `List every non-hidden regular file under root (default ".").
--ext keeps paths ending with the given text; it is a plain suffix,
so pass ".txt" rather than "txt".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			h := helper
			if len(ignore) > 0 {
				h = helper.WithIgnore(slices.Concat(cfg.Ignore, ignore)...)
			}

			out := cmd.OutOrStdout()
			if outputFormat == "text" {
				// Stream paths as the walk produces them.
				for path, err := range h.Walk(root, ext) {
					if err != nil {
						logger.Op("list").Debug("listing failed", ioFields(err)...)
						return err
					}
					fmt.Fprintln(out, path)
				}
				return nil
			}

			files, err := h.Files(root, ext)
			if err != nil {
				logger.Op("list").Debug("listing failed", ioFields(err)...)
				return err
			}
			if files == nil {
				files = []string{}
			}
			return render(out, types.FileListing{Root: root, Files: files, Count: len(files)}, nil)
		},
	}

	cmd.Flags().StringVarP(&ext, "ext", "e", "", "keep only paths ending with this suffix")
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "doublestar pattern to skip, relative to root (repeatable)")
	return cmd
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <source> <destination>",
		Short: "Move a file or directory; fails if the destination exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newPath, err := helper.Move(args[0], args[1])
			return reportMove(cmd.OutOrStdout(), "move", args[0], newPath, err)
		},
	}
}

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a file or directory within its parent directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newPath, err := helper.Rename(args[0], args[1])
			return reportMove(cmd.OutOrStdout(), "rename", args[0], newPath, err)
		},
	}
}

func newChangeExtCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "chext <path> <extension>",
		Short:   "Replace the extension of a file",
		Example: "fsutil chext data.txt json   # data.txt -> data.json",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				target := fileutil.PathWithNewExtension(args[0], args[1])
				return renderLine(cmd.OutOrStdout(),
					types.MoveResult{Success: true, OldPath: args[0], NewPath: target, DryRun: true},
					target)
			}
			newPath, err := helper.RenameExtension(args[0], args[1])
			return reportMove(cmd.OutOrStdout(), "rename", args[0], newPath, err)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the new path without renaming")
	return cmd
}

func reportMove(w io.Writer, op, oldPath, newPath string, err error) error {
	if err != nil {
		logger.Op(op).Debug(op+" failed", ioFields(err)...)
		return err
	}
	logger.Op(op).Debug(op+" done", zap.String("path", oldPath), zap.String("dest", newPath))
	return renderLine(w, types.MoveResult{Success: true, OldPath: oldPath, NewPath: newPath}, newPath)
}

func newExtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ext <path>",
		Short: "Print the extension of a path (without the dot)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := nameInfo(args[0])
			return renderLine(cmd.OutOrStdout(), info, info.Extension)
		},
	}
}

func newBaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "base <path>",
		Short: "Print the file name of a path without its extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := nameInfo(args[0])
			return renderLine(cmd.OutOrStdout(), info, info.Base)
		},
	}
}

func nameInfo(path string) types.NameInfo {
	return types.NameInfo{
		Path:      path,
		Base:      fileutil.NameWithoutExtension(path),
		Extension: fileutil.Extension(path),
	}
}

func newSizeCmd() *cobra.Command {
	var human bool

	cmd := &cobra.Command{
		Use:   "size <path>",
		Short: "Print the size of a file, or the total size of the files under a directory",
		Long: `Print the size in bytes of a file, or the summed size of every
non-hidden regular file under a directory. Unreadable entries count as zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := sizeResult(args[0], human)
			line := fmt.Sprintf("%d", result.Bytes)
			if human {
				line = result.Human
			}
			return renderLine(cmd.OutOrStdout(), result, line)
		},
	}

	cmd.Flags().BoolVarP(&human, "human", "H", false, "print a human readable size")
	return cmd
}

func sizeResult(path string, human bool) types.SizeResult {
	bytes := helper.Size(path)
	result := types.SizeResult{Path: path, Bytes: bytes}
	if human {
		result.Human = humanize.IBytes(uint64(bytes))
	}
	return result
}

func newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <path>",
		Short: "Report whether a path exists; exits non-zero when it does not",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exists := helper.Exists(args[0])
			if err := renderLine(cmd.OutOrStdout(),
				types.ExistsResult{Path: args[0], Exists: exists},
				fmt.Sprintf("%t", exists)); err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("path does not exist: %s", args[0])
			}
			return nil
		},
	}
}

func newMkdirCmd() *cobra.Command {
	var parent bool

	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory and any missing parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ensure := helper.EnsureDir
			if parent {
				ensure = helper.EnsureParent
			}
			dir, err := ensure(args[0])
			if err != nil {
				logger.Op("mkdir").Debug("mkdir failed", ioFields(err)...)
				return err
			}
			return renderLine(cmd.OutOrStdout(), types.PathResult{Success: true, Path: dir}, dir)
		},
	}

	cmd.Flags().BoolVarP(&parent, "parent", "p", false, "create the parent directory of path instead")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a file or directory tree, forcing through read-only directories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := helper.Delete(args[0]); err != nil {
				logger.Op("delete").Debug("delete failed", ioFields(err)...)
				return err
			}
			return renderLine(cmd.OutOrStdout(), types.PathResult{Success: true, Path: args[0]}, args[0])
		},
	}
}

func newTempDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tmpdir [prefix]",
		Short: "Create a new empty temporary directory and print its path",
		Long: `Create a new empty directory under the system temp area and print its path.
The directory is not removed automatically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := cfg.TempPrefix
			if len(args) > 0 {
				prefix = args[0]
			}
			dir, err := helper.TempDir(prefix)
			if err != nil {
				logger.Op("tempdir").Debug("tempdir failed", ioFields(err)...)
				return err
			}
			return renderLine(cmd.OutOrStdout(), types.PathResult{Success: true, Path: dir}, dir)
		},
	}
}
