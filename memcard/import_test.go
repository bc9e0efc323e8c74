package memcard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rstms/sdfs"
)

func TestDeviceImport(t *testing.T) {
	host := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(host, "a.txt"), []byte("hello"), 0600))
	require.Nil(t, os.Mkdir(filepath.Join(host, "sub"), 0700))
	require.Nil(t, os.WriteFile(filepath.Join(host, "sub", "b.txt"), []byte("worldwide"), 0600))

	d := newMounted(t)
	require.Nil(t, d.Import(host))

	info, res := d.Stat("/a.txt")
	require.Equal(t, sdfs.OK, res)
	require.Equal(t, uint32(5), info.Size)
	require.False(t, info.IsDir())

	hostInfo, err := os.Stat(filepath.Join(host, "a.txt"))
	require.Nil(t, err)
	require.Equal(t, hostInfo.ModTime(), info.ModTime)

	info, res = d.Stat("/sub")
	require.Equal(t, sdfs.OK, res)
	require.True(t, info.IsDir())

	h, res := d.OpenFile("/sub/b.txt", sdfs.ModeRead)
	require.Equal(t, sdfs.OK, res)
	buf := make([]byte, 16)
	n, res := h.Read(buf)
	require.Equal(t, sdfs.OK, res)
	require.Equal(t, "worldwide", string(buf[:n]))
	require.Equal(t, sdfs.OK, h.Close())

	// no handles leaked by the import
	require.Equal(t, 0, d.inUse)
}

func TestDeviceImportExistingDirs(t *testing.T) {
	host := t.TempDir()
	require.Nil(t, os.Mkdir(filepath.Join(host, "sub"), 0700))
	require.Nil(t, os.WriteFile(filepath.Join(host, "sub", "b.txt"), []byte("worldwide"), 0600))

	d := newMounted(t)
	require.Equal(t, sdfs.OK, d.Mkdir("/sub"))

	// an already-present directory is not an import failure
	require.Nil(t, d.Import(host))
	info, res := d.Stat("/sub/b.txt")
	require.Equal(t, sdfs.OK, res)
	require.Equal(t, uint32(9), info.Size)

	// importing the same tree again overwrites in place
	require.Nil(t, d.Import(host))
	require.Equal(t, 0, d.inUse)
}

func TestDeviceImportMissing(t *testing.T) {
	d := newMounted(t)
	require.NotNil(t, d.Import(filepath.Join(t.TempDir(), "nope")))
}
