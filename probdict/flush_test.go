package probdict

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlushToFileWritesExactlySizeRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.freq")

	tbl := NewTable(false)
	for id := range 3 {
		require.NoError(t, tbl.Set(id, Entry{Flags: uint8(id), Probability: 10 + id}))
	}
	require.NoError(t, tbl.FlushToFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 10, 1, 11, 2, 12}, data)

	// Simulate a stale tail: the buffer still holds 3 records.
	require.NoError(t, tbl.Truncate(1))
	require.Equal(t, 3*tbl.EntrySize(), tbl.TailPosition())

	require.NoError(t, tbl.FlushToFile(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, tbl.EntrySize())
	require.Equal(t, []byte{0, 10}, data)

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFlushThenReadTableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.freq")

	src := newPopulatedTable(t, true, 12)
	require.NoError(t, src.FlushToFile(path))

	got, err := ReadTableFile(path, true)
	require.NoError(t, err)
	require.Equal(t, src.Size(), got.Size())
	for id := range src.Size() {
		require.Equal(t, src.Get(id), got.Get(id))
	}

	_, err = ReadTableFile(filepath.Join(t.TempDir(), "missing"), true)
	require.Error(t, err)
}

func TestWriteToMatchesFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.freq")

	tbl := newPopulatedTable(t, true, 5)
	require.NoError(t, tbl.Truncate(4))
	require.NoError(t, tbl.FlushToFile(path))

	var buf bytes.Buffer
	n, err := tbl.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(4*tbl.EntrySize()), n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, buf.Bytes())
}

func TestFlushToFileMissingDirFails(t *testing.T) {
	tbl := newPopulatedTable(t, false, 1)
	err := tbl.FlushToFile(filepath.Join(t.TempDir(), "nope", "main.freq"))
	require.Error(t, err)
}
