package fileutil

import "iter"

// std backs the package-level functions with the host filesystem.
var std = New(nil)

func Walk(root, ext string) iter.Seq2[string, error] { return std.Walk(root, ext) }
func Files(root, ext string) ([]string, error) { return std.Files(root, ext) }
func AllFiles(root string) ([]string, error) { return std.AllFiles(root) }
func Move(src, dst string) (string, error) { return std.Move(src, dst) }
func Rename(path, newName string) (string, error) { return std.Rename(path, newName) }
func TempDir(prefix string) (string, error) { return std.TempDir(prefix) }
func TempDirIn(dir, prefix string) (string, error) { return std.TempDirIn(dir, prefix) }
func Size(path string) int64 { return std.Size(path) }
func Exists(path string) bool { return std.Exists(path) }
func EnsureDir(path string) (string, error) { return std.EnsureDir(path) }
func EnsureParent(path string) (string, error) { return std.EnsureParent(path) }
func Delete(path string) error { return std.Delete(path) }

func RenameExtension(path, newExt string) (string, error) {
	return std.RenameExtension(path, newExt)
}
