package fileutil

import (
	"path/filepath"
	"strings"
)

// Extension returns the text after the last '.' of the final path component,
// or "" when there is none. "a.b.txt" -> "txt", ".bashrc" -> "bashrc".
func Extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(filepath.Base(path)), ".")
}

// NameWithoutExtension returns the final path component with its extension
// removed. "dir/a.b.txt" -> "a.b", "noext" -> "noext".
func NameWithoutExtension(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// NameWithNewExtension returns the bare file name of nameOrPath with its
// extension replaced. Directories are dropped: "dir/data.txt" -> "data.json".
func NameWithNewExtension(nameOrPath, newExt string) string {
	return NameWithoutExtension(nameOrPath) + "." + newExt
}

// PathWithNewExtension is NameWithNewExtension resolved as a sibling of path.
// It does not touch the filesystem.
func PathWithNewExtension(path, newExt string) string {
	return sibling(path, NameWithNewExtension(path, newExt))
}
