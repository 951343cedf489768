// Package fileutil provides stateless helpers over a filesystem: recursive
// listing with hidden-entry and suffix filtering, move and rename, extension
// rewriting, size aggregation, directory creation and forced deletion.
//
// Every operation re-queries live filesystem state; nothing is cached.
package fileutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/taigrr/fsutil/internal/pathfilter"
)

// DefaultTempPrefix is used by TempDir when no prefix is given.
const DefaultTempPrefix = "fsutil-"

// Helper performs filesystem operations against an afero.Fs.
type Helper struct {
	fs         afero.Fs
	pathFilter *pathfilter.PathFilter
}

// New creates a Helper. A nil fs means the host filesystem.
func New(fsys afero.Fs) *Helper {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Helper{
		fs:         fsys,
		pathFilter: pathfilter.New(nil),
	}
}

// WithFilter returns a copy of h whose listings also apply pf's ignore
// patterns. Hidden entries are excluded regardless of pf.
func (h *Helper) WithFilter(pf *pathfilter.PathFilter) *Helper {
	if pf == nil {
		pf = pathfilter.New(nil)
	}
	return &Helper{fs: h.fs, pathFilter: pf}
}

// WithIgnore is shorthand for WithFilter with only ignore patterns set.
func (h *Helper) WithIgnore(patterns ...string) *Helper {
	return h.WithFilter(pathfilter.NewWithPatterns(patterns...))
}

// IgnorePatterns returns the ignore patterns applied to listings.
func (h *Helper) IgnorePatterns() []string {
	return h.pathFilter.Patterns()
}

// Fs returns the underlying filesystem.
func (h *Helper) Fs() afero.Fs {
	return h.fs
}

// Move relocates a file or directory tree to dst and returns dst. It fails
// if dst already exists. Across devices a regular file is copied and the
// source removed; a non-empty directory cannot be moved that way and fails.
func (h *Helper) Move(src, dst string) (string, error) {
	return h.move("move", src, dst)
}

func (h *Helper) move(op, src, dst string) (string, error) {
	if h.present(dst) {
		return "", &IOError{Op: op, Path: src, Dest: dst, Err: ErrDestinationExists}
	}
	err := h.fs.Rename(src, dst)
	if errors.Is(err, syscall.EXDEV) {
		err = h.moveAcrossDevices(src, dst, err)
	}
	if err != nil {
		return "", &IOError{Op: op, Path: src, Dest: dst, Err: err}
	}
	return dst, nil
}

// moveAcrossDevices handles a rename that failed with EXDEV. renameErr is
// returned for entries that can only be renamed, such as symlinks.
func (h *Helper) moveAcrossDevices(src, dst string, renameErr error) error {
	info, err := h.lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode().IsRegular():
		if err := h.copyFile(src, dst, info); err != nil {
			return err
		}
		return h.fs.Remove(src)
	case info.IsDir():
		entries, err := afero.ReadDir(h.fs, src)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			return ErrDirectoryNotEmpty
		}
		if err := h.fs.Mkdir(dst, info.Mode().Perm()); err != nil {
			return err
		}
		return h.fs.Remove(src)
	default:
		return renameErr
	}
}

func (h *Helper) copyFile(src, dst string, info fs.FileInfo) error {
	in, err := h.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := h.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = h.fs.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = h.fs.Remove(dst)
		return err
	}
	_ = h.fs.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

// Rename moves path to a sibling named newName in the same directory.
func (h *Helper) Rename(path, newName string) (string, error) {
	return h.move("rename", path, sibling(path, newName))
}

// RenameExtension renames path so its extension becomes newExt
// ("data.txt", "json" -> "data.json").
func (h *Helper) RenameExtension(path, newExt string) (string, error) {
	return h.move("rename", path, PathWithNewExtension(path, newExt))
}

// TempDir creates a new, empty, uniquely named directory under the system
// temp area. The caller owns its removal.
func (h *Helper) TempDir(prefix string) (string, error) {
	return h.TempDirIn("", prefix)
}

// TempDirIn is TempDir under dir. An empty dir means the system temp area.
func (h *Helper) TempDirIn(dir, prefix string) (string, error) {
	if prefix == "" {
		prefix = DefaultTempPrefix
	}
	path, err := afero.TempDir(h.fs, dir, prefix)
	if err != nil {
		if dir == "" {
			dir = os.TempDir()
		}
		return "", ioError("tempdir", filepath.Join(dir, prefix), err)
	}
	return path, nil
}

// Exists reports whether path currently resolves to any entry.
func (h *Helper) Exists(path string) bool {
	_, err := h.fs.Stat(path)
	return err == nil
}

// present is Exists without following a final symlink, so a dangling link
// still counts as an occupied destination.
func (h *Helper) present(path string) bool {
	_, err := h.lstat(path)
	return err == nil
}

func (h *Helper) lstat(path string) (fs.FileInfo, error) {
	if lfs, ok := h.fs.(afero.Lstater); ok {
		info, _, err := lfs.LstatIfPossible(path)
		return info, err
	}
	return h.fs.Stat(path)
}

// EnsureDir creates path and any missing parents. Existing directories are
// left alone.
func (h *Helper) EnsureDir(path string) (string, error) {
	if err := h.fs.MkdirAll(path, 0o755); err != nil {
		return "", ioError("mkdir", path, err)
	}
	return path, nil
}

// EnsureParent creates the parent directory of path and returns it.
func (h *Helper) EnsureParent(path string) (string, error) {
	return h.EnsureDir(filepath.Dir(path))
}

// Delete removes path and everything under it. A missing path is not an
// error. Directories that block removal through their permissions are made
// writable and the removal is retried.
func (h *Helper) Delete(path string) error {
	if err := h.fs.RemoveAll(path); err == nil {
		return nil
	}

	_ = afero.Walk(h.fs, path, func(p string, info os.FileInfo, err error) error {
		if err != nil || info == nil || !info.IsDir() {
			return nil
		}
		_ = h.fs.Chmod(p, info.Mode().Perm()|0o700)
		return nil
	})

	return ioError("delete", path, h.fs.RemoveAll(path))
}

func sibling(path, name string) string {
	return filepath.Join(filepath.Dir(path), name)
}
