package fileutil

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Size returns the byte length of a regular file, or the summed length of
// every listed file under a directory. It never fails: anything that cannot
// be walked or measured counts as zero.
func (h *Helper) Size(path string) int64 {
	path = filepath.Clean(path)
	var total int64
	_ = afero.Walk(h.fs, path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if h.listed(path, p, info, "") {
			total += orZero(h.fileSize(p))
		}
		return nil
	})
	return total
}

// fileSize re-stats p so a file removed since the walk listed it reports an
// error rather than a stale length.
func (h *Helper) fileSize(p string) (int64, error) {
	info, err := h.fs.Stat(p)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func orZero[T any](v T, err error) T {
	if err != nil {
		var zero T
		return zero
	}
	return v
}
