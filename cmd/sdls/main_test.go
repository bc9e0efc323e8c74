package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newHostTree(t *testing.T) string {
	host := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(host, "a.txt"), []byte("hello"), 0600))
	require.Nil(t, os.Mkdir(filepath.Join(host, "sub"), 0700))
	require.Nil(t, os.WriteFile(filepath.Join(host, "sub", "b.txt"), []byte("worldwide"), 0600))
	return host
}

func TestRunRecursiveListing(t *testing.T) {
	host := newHostTree(t)

	var buf bytes.Buffer
	require.Nil(t, run([]string{"-r", "-s", host}, &buf))
	require.Equal(t, "a.txt 5\nsub\n  b.txt 9\n", buf.String())
}

func TestRunSubPath(t *testing.T) {
	host := newHostTree(t)

	var buf bytes.Buffer
	require.Nil(t, run([]string{host, "/sub"}, &buf))
	require.Equal(t, "b.txt\n", buf.String())
}

func TestRunOutputFile(t *testing.T) {
	host := newHostTree(t)
	outFile := filepath.Join(t.TempDir(), "listing.txt")

	var buf bytes.Buffer
	require.Nil(t, run([]string{"-s", "-o", outFile, host}, &buf))
	require.Equal(t, "", buf.String())

	data, err := os.ReadFile(outFile)
	require.Nil(t, err)
	require.Equal(t, "a.txt 5\nsub\n", string(data))
}

func TestRunBadArgs(t *testing.T) {
	var buf bytes.Buffer
	require.NotNil(t, run([]string{}, &buf))

	host := newHostTree(t)
	require.NotNil(t, run([]string{filepath.Join(host, "a.txt")}, &buf))
	require.NotNil(t, run([]string{host, "/missing"}, &buf))
}
