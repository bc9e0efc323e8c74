package memcard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rstms/sdfs"
)

func TestDeviceImplementsDriver(t *testing.T) {
	var raw interface{}
	raw = new(Device)
	if _, ok := raw.(sdfs.Driver); !ok {
		t.Fatal("Device should be a Driver")
	}
	if _, ok := raw.(sdfs.Card); !ok {
		t.Fatal("Device should be a Card")
	}
}

func newMounted(t *testing.T) *Device {
	d := New()
	require.Equal(t, sdfs.OK, d.Init(sdfs.DetectConfig{}))
	require.Equal(t, sdfs.OK, d.Mount())
	return d
}

func TestDeviceMountGating(t *testing.T) {
	d := New()

	_, res := d.Stat("/")
	require.Equal(t, sdfs.NotReady, res)
	require.Equal(t, sdfs.NotReady, d.Mkdir("/a"))
	require.Equal(t, sdfs.NotReady, d.Mount())

	require.Equal(t, sdfs.OK, d.Init(sdfs.DetectConfig{}))
	require.Equal(t, sdfs.OK, d.Mount())
	_, res = d.Stat("/")
	require.Equal(t, sdfs.OK, res)

	require.Equal(t, sdfs.OK, d.Unmount())
	require.Equal(t, sdfs.NotReady, d.Unmount())
	require.Equal(t, sdfs.OK, d.Deinit())
	require.Equal(t, sdfs.NotReady, d.Deinit())
}

func TestDeviceOpenModes(t *testing.T) {
	d := newMounted(t)

	_, res := d.OpenFile("/f", sdfs.ModeRead)
	require.Equal(t, sdfs.NotFound, res)

	h, res := d.OpenFile("/f", sdfs.ModeWrite|sdfs.ModeCreateNew)
	require.Equal(t, sdfs.OK, res)
	_, res = h.Write([]byte("abc"))
	require.Equal(t, sdfs.OK, res)
	require.Equal(t, sdfs.OK, h.Close())

	_, res = d.OpenFile("/f", sdfs.ModeWrite|sdfs.ModeCreateNew)
	require.Equal(t, sdfs.Exists, res)

	// OpenAlways keeps existing contents
	h, res = d.OpenFile("/f", sdfs.ModeRead|sdfs.ModeOpenAlways)
	require.Equal(t, sdfs.OK, res)
	require.Equal(t, uint32(3), h.Size())
	require.Equal(t, sdfs.OK, h.Close())

	// CreateAlways truncates
	h, res = d.OpenFile("/f", sdfs.ModeWrite|sdfs.ModeCreateAlways)
	require.Equal(t, sdfs.OK, res)
	require.Equal(t, uint32(0), h.Size())
	require.Equal(t, sdfs.OK, h.Close())
}

func TestDeviceReadWriteDenied(t *testing.T) {
	d := newMounted(t)

	h, res := d.OpenFile("/f", sdfs.ModeWrite|sdfs.ModeCreateAlways)
	require.Equal(t, sdfs.OK, res)
	buf := make([]byte, 4)
	_, res = h.Read(buf)
	require.Equal(t, sdfs.Denied, res)
	require.Equal(t, sdfs.OK, h.Close())

	h, res = d.OpenFile("/f", sdfs.ModeRead)
	require.Equal(t, sdfs.OK, res)
	_, res = h.Write([]byte("x"))
	require.Equal(t, sdfs.Denied, res)
	require.Equal(t, sdfs.OK, h.Close())
}

func TestDeviceOpenDirOnFile(t *testing.T) {
	d := newMounted(t)

	h, res := d.OpenFile("/f", sdfs.ModeWrite|sdfs.ModeCreateAlways)
	require.Equal(t, sdfs.OK, res)
	require.Equal(t, sdfs.OK, h.Close())

	_, res = d.OpenDir("/f")
	require.Equal(t, sdfs.Denied, res)
	_, res = d.OpenFile("/", sdfs.ModeRead)
	require.Equal(t, sdfs.Denied, res)
}

func TestDeviceSlotPool(t *testing.T) {
	d := newMounted(t).WithSlots(2)

	a, res := d.OpenFile("/a", sdfs.ModeWrite|sdfs.ModeCreateAlways)
	require.Equal(t, sdfs.OK, res)
	b, res := d.OpenDir("/")
	require.Equal(t, sdfs.OK, res)

	_, res = d.OpenFile("/c", sdfs.ModeWrite|sdfs.ModeCreateAlways)
	require.Equal(t, sdfs.NoSlots, res)
	_, res = d.OpenDir("/")
	require.Equal(t, sdfs.NoSlots, res)

	require.Equal(t, sdfs.OK, a.Close())
	c, res := d.OpenDir("/")
	require.Equal(t, sdfs.OK, res)
	require.Equal(t, sdfs.OK, c.Close())
	require.Equal(t, sdfs.OK, b.Close())

	// double close neither succeeds nor frees another slot
	require.Equal(t, sdfs.Invalid, b.Close())
}

func TestDeviceUnlink(t *testing.T) {
	d := newMounted(t)

	require.Equal(t, sdfs.OK, d.Mkdir("/a"))
	h, res := d.OpenFile("/a/f", sdfs.ModeWrite|sdfs.ModeCreateAlways)
	require.Equal(t, sdfs.OK, res)
	require.Equal(t, sdfs.OK, h.Close())

	require.Equal(t, sdfs.Denied, d.Unlink("/a"))
	require.Equal(t, sdfs.OK, d.Unlink("/a/f"))
	require.Equal(t, sdfs.OK, d.Unlink("/a"))
	require.Equal(t, sdfs.NotFound, d.Unlink("/a"))
}

func TestDeviceDirectoryIteration(t *testing.T) {
	d := newMounted(t)
	for _, name := range []string{"/b", "/a", "/c"} {
		h, res := d.OpenFile(name, sdfs.ModeWrite|sdfs.ModeCreateAlways)
		require.Equal(t, sdfs.OK, res)
		require.Equal(t, sdfs.OK, h.Close())
	}

	dh, res := d.OpenDir("/")
	require.Equal(t, sdfs.OK, res)
	var names []string
	for {
		info, res := dh.ReadNext()
		require.Equal(t, sdfs.OK, res)
		if info.Name == "" {
			break
		}
		names = append(names, info.Name)
	}
	require.Equal(t, []string{"a", "b", "c"}, names)
	require.Equal(t, sdfs.OK, dh.Close())
}
