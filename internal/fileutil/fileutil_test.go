package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelper_RenameExtension(t *testing.T) {
	h := setupMemTree(t, map[string]string{"/d/data.txt": "payload"})

	got, err := h.RenameExtension("/d/data.txt", "json")
	require.NoError(t, err)
	assert.Equal(t, "/d/data.json", got)
	assert.True(t, h.Exists("/d/data.json"))
	assert.False(t, h.Exists("/d/data.txt"))

	content, err := afero.ReadFile(h.Fs(), "/d/data.json")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
}

func TestHelper_Rename(t *testing.T) {
	h := setupMemTree(t, map[string]string{"/d/sub/old.md": "x"})

	got, err := h.Rename("/d/sub/old.md", "new.md")
	require.NoError(t, err)
	assert.Equal(t, "/d/sub/new.md", got)
	assert.True(t, h.Exists("/d/sub/new.md"))
	assert.False(t, h.Exists("/d/sub/old.md"))
}

func TestHelper_Move(t *testing.T) {
	t.Run("moves file", func(t *testing.T) {
		h := setupMemTree(t, map[string]string{"/a/file.txt": "x"})
		require.NoError(t, h.Fs().MkdirAll("/b", 0o755))

		got, err := h.Move("/a/file.txt", "/b/file.txt")
		require.NoError(t, err)
		assert.Equal(t, "/b/file.txt", got)
		assert.False(t, h.Exists("/a/file.txt"))
		assert.True(t, h.Exists("/b/file.txt"))
	})

	t.Run("refuses existing destination", func(t *testing.T) {
		h := setupMemTree(t, map[string]string{
			"/a/src.txt": "src",
			"/a/dst.txt": "dst",
		})

		_, err := h.Move("/a/src.txt", "/a/dst.txt")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDestinationExists))
		assert.True(t, errors.Is(err, fs.ErrExist))

		content, err := afero.ReadFile(h.Fs(), "/a/dst.txt")
		require.NoError(t, err)
		assert.Equal(t, "dst", string(content))
	})

	t.Run("missing source", func(t *testing.T) {
		h := New(afero.NewMemMapFs())

		_, err := h.Move("/nope", "/elsewhere")
		require.Error(t, err)

		ioErr, ok := AsIOError(err)
		require.True(t, ok)
		assert.Equal(t, "move", ioErr.Op)
		assert.Equal(t, "/nope", ioErr.Path)
		assert.Equal(t, "/elsewhere", ioErr.Dest)
	})

	t.Run("moves directory tree", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src")
		require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "f.txt"), []byte("abc"), 0o644))

		dst := filepath.Join(dir, "dst")
		got, err := New(nil).Move(src, dst)
		require.NoError(t, err)
		assert.Equal(t, dst, got)
		assert.NoDirExists(t, src)
		assert.FileExists(t, filepath.Join(dst, "nested", "f.txt"))
	})
}

func TestHelper_MoveAcrossDevices(t *testing.T) {
	newCrossDevice := func(t *testing.T, files map[string]string) *Helper {
		t.Helper()
		return New(&crossDeviceFs{Fs: setupMemTree(t, files).Fs()})
	}

	t.Run("copies file and removes source", func(t *testing.T) {
		h := newCrossDevice(t, map[string]string{"/a/f.txt": "payload"})
		require.NoError(t, h.Fs().Chmod("/a/f.txt", 0o600))
		require.NoError(t, h.Fs().MkdirAll("/b", 0o755))

		got, err := h.Move("/a/f.txt", "/b/f.txt")
		require.NoError(t, err)
		assert.Equal(t, "/b/f.txt", got)
		assert.False(t, h.Exists("/a/f.txt"))

		content, err := afero.ReadFile(h.Fs(), "/b/f.txt")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(content))

		info, err := h.Fs().Stat("/b/f.txt")
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("recreates empty directory", func(t *testing.T) {
		h := New(&crossDeviceFs{Fs: afero.NewMemMapFs()})
		require.NoError(t, h.Fs().MkdirAll("/a/empty", 0o755))
		require.NoError(t, h.Fs().MkdirAll("/b", 0o755))

		_, err := h.Move("/a/empty", "/b/empty")
		require.NoError(t, err)
		assert.False(t, h.Exists("/a/empty"))
		info, err := h.Fs().Stat("/b/empty")
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("refuses non-empty directory", func(t *testing.T) {
		h := newCrossDevice(t, map[string]string{"/a/full/x.txt": "x"})
		require.NoError(t, h.Fs().MkdirAll("/b", 0o755))

		_, err := h.Move("/a/full", "/b/full")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDirectoryNotEmpty))

		ioErr, ok := AsIOError(err)
		require.True(t, ok)
		assert.Equal(t, "move", ioErr.Op)
		assert.True(t, h.Exists("/a/full/x.txt"))
		assert.False(t, h.Exists("/b/full"))
	})
}

func TestHelper_MoveToAnotherMount(t *testing.T) {
	other, err := os.MkdirTemp("/dev/shm", "fsutil-test-")
	if err != nil {
		t.Skipf("no second filesystem available: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(other) })

	dir := t.TempDir()
	scratch := filepath.Join(dir, "scratch")
	require.NoError(t, os.WriteFile(scratch, nil, 0o644))
	if err := os.Rename(scratch, filepath.Join(other, "scratch")); !errors.Is(err, syscall.EXDEV) {
		t.Skip("temp directories share a device")
	}

	src := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	dst := filepath.Join(other, "a.txt")

	got, err := New(nil).Move(src, dst)
	require.NoError(t, err)
	assert.Equal(t, dst, got)
	assert.NoFileExists(t, src)

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
}

func TestHelper_EnsureDir(t *testing.T) {
	h := New(afero.NewMemMapFs())

	for range 2 {
		got, err := h.EnsureDir("/x/y/z")
		require.NoError(t, err)
		assert.Equal(t, "/x/y/z", got)
	}

	info, err := h.Fs().Stat("/x/y/z")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := afero.ReadDir(h.Fs(), "/x/y")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHelper_EnsureDirOverFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := New(nil).EnsureDir(file)
	require.Error(t, err)

	ioErr, ok := AsIOError(err)
	require.True(t, ok)
	assert.Equal(t, "mkdir", ioErr.Op)
}

func TestHelper_EnsureParent(t *testing.T) {
	h := New(afero.NewMemMapFs())

	got, err := h.EnsureParent("/out/reports/2024/summary.csv")
	require.NoError(t, err)
	assert.Equal(t, "/out/reports/2024", got)
	assert.True(t, h.Exists("/out/reports/2024"))
	assert.False(t, h.Exists("/out/reports/2024/summary.csv"))
}

func TestHelper_Exists(t *testing.T) {
	h := New(afero.NewMemMapFs())

	assert.False(t, h.Exists("/fresh"))
	_, err := h.EnsureDir("/fresh")
	require.NoError(t, err)
	assert.True(t, h.Exists("/fresh"))
}

func TestHelper_Delete(t *testing.T) {
	t.Run("removes nested tree", func(t *testing.T) {
		h := setupMemTree(t, map[string]string{
			"/tree/a.txt":       "",
			"/tree/b/c.txt":     "",
			"/tree/b/d/e/f.txt": "",
			"/tree/.hidden":     "",
		})

		require.NoError(t, h.Delete("/tree"))
		assert.False(t, h.Exists("/tree"))
		assert.False(t, h.Exists("/tree/b/d/e/f.txt"))
	})

	t.Run("removes single file", func(t *testing.T) {
		h := setupMemTree(t, map[string]string{"/d/f.txt": ""})

		require.NoError(t, h.Delete("/d/f.txt"))
		assert.False(t, h.Exists("/d/f.txt"))
		assert.True(t, h.Exists("/d"))
	})

	t.Run("missing path is not an error", func(t *testing.T) {
		h := New(afero.NewMemMapFs())
		assert.NoError(t, h.Delete("/never/created"))
	})

	t.Run("forces removal of read-only directories", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("directory permissions differ on windows")
		}

		dir := t.TempDir()
		locked := filepath.Join(dir, "locked")
		inner := filepath.Join(locked, "inner")
		require.NoError(t, os.MkdirAll(inner, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(inner, "f.txt"), []byte("x"), 0o444))
		require.NoError(t, os.Chmod(inner, 0o500))
		require.NoError(t, os.Chmod(locked, 0o500))

		require.NoError(t, New(nil).Delete(locked))
		assert.NoDirExists(t, locked)
	})
}

func TestHelper_TempDir(t *testing.T) {
	h := New(nil)

	t.Run("uses prefix", func(t *testing.T) {
		dir, err := h.TempDir("report-")
		require.NoError(t, err)
		t.Cleanup(func() { os.RemoveAll(dir) })

		assert.True(t, strings.HasPrefix(filepath.Base(dir), "report-"))
		assert.DirExists(t, dir)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("blank prefix uses default", func(t *testing.T) {
		dir, err := h.TempDir("")
		require.NoError(t, err)
		t.Cleanup(func() { os.RemoveAll(dir) })

		assert.True(t, strings.HasPrefix(filepath.Base(dir), DefaultTempPrefix))
	})

	t.Run("unique per call", func(t *testing.T) {
		a, err := h.TempDir("uniq-")
		require.NoError(t, err)
		t.Cleanup(func() { os.RemoveAll(a) })
		b, err := h.TempDir("uniq-")
		require.NoError(t, err)
		t.Cleanup(func() { os.RemoveAll(b) })

		assert.NotEqual(t, a, b)
	})

	t.Run("inside a directory", func(t *testing.T) {
		h := New(afero.NewMemMapFs())
		require.NoError(t, h.Fs().MkdirAll("/work", 0o755))

		dir, err := h.TempDirIn("/work", "job-")
		require.NoError(t, err)
		assert.Equal(t, "/work", filepath.Dir(dir))
		assert.True(t, strings.HasPrefix(filepath.Base(dir), "job-"))
		assert.True(t, h.Exists(dir))
	})
}

func TestIOError(t *testing.T) {
	cause := &os.PathError{Op: "rename", Path: "a", Err: fs.ErrPermission}

	single := &IOError{Op: "delete", Path: "/x", Err: cause}
	assert.Equal(t, "delete /x: rename a: permission denied", single.Error())
	assert.True(t, errors.Is(single, fs.ErrPermission))

	pair := &IOError{Op: "move", Path: "/a", Dest: "/b", Err: ErrDestinationExists}
	assert.Equal(t, "move /a -> /b: destination already exists: file already exists", pair.Error())

	_, ok := AsIOError(errors.New("plain"))
	assert.False(t, ok)
}

func TestPackageFunctions(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "nested", "data.txt")

	_, err := EnsureParent(file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".secret"), []byte("s"), 0o644))

	files, err := Files(dir, ".txt")
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
	assert.Equal(t, int64(5), Size(dir))

	renamed, err := RenameExtension(file, "json")
	require.NoError(t, err)
	assert.True(t, Exists(renamed))
	assert.False(t, Exists(file))

	moved, err := Rename(renamed, "final.json")
	require.NoError(t, err)

	all, err := AllFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{moved}, all)

	require.NoError(t, Delete(filepath.Join(dir, "nested")))
	assert.False(t, Exists(filepath.Join(dir, "nested")))

	scratch, err := TempDirIn(dir, "pkg-")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(scratch))
}

// crossDeviceFs fails every rename the way a move between mounts does.
type crossDeviceFs struct {
	afero.Fs
}

func (c *crossDeviceFs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EXDEV}
}
