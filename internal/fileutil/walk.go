package fileutil

import (
	"errors"
	"iter"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/taigrr/fsutil/internal/pathfilter"
)

var errStopWalk = errors.New("walk stopped")

// Walk returns a lazy sequence of every regular file under root, depth first
// in lexical order. Hidden entries are skipped. When ext is not blank only
// paths whose string ends with ext are yielded; the match is a raw suffix, so
// pass ".txt" rather than "txt" to avoid matching "footxt".
//
// root is cleaned first, so "./dir" and "dir" list the same paths. Symlinks
// to regular files are listed; linked directories are not descended.
//
// Each range over the sequence walks the tree again. A traversal failure is
// yielded once as an *IOError and ends the sequence.
func (h *Helper) Walk(root, ext string) iter.Seq2[string, error] {
	root = filepath.Clean(root)
	return func(yield func(string, error) bool) {
		stopped := false
		err := afero.Walk(h.fs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !h.listed(root, path, info, ext) {
				return nil
			}
			if !yield(path, nil) {
				stopped = true
				return errStopWalk
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", ioError("list", root, err))
		}
	}
}

// Files collects Walk into a slice. On failure no partial result is returned.
func (h *Helper) Files(root, ext string) ([]string, error) {
	var files []string
	for path, err := range h.Walk(root, ext) {
		if err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

// AllFiles is Files with no extension filter.
func (h *Helper) AllFiles(root string) ([]string, error) {
	return h.Files(root, "")
}

func (h *Helper) listed(root, path string, info os.FileInfo, ext string) bool {
	if !h.isRegular(path, info) {
		return false
	}
	if !h.pathFilter.IsAllowed(path) || !pathfilter.MatchesSuffix(path, ext) {
		return false
	}
	if rel, err := filepath.Rel(root, path); err == nil && h.pathFilter.IsIgnored(rel) {
		return false
	}
	return true
}

// isRegular reports whether the walked entry is a regular file. info comes
// from lstat, so a symlink is resolved here.
func (h *Helper) isRegular(path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink == 0 {
		return info.Mode().IsRegular()
	}
	target, err := h.fs.Stat(path)
	return err == nil && target.Mode().IsRegular()
}
