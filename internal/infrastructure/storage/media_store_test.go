package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "Morning_reading.wav", FileName("Morning reading", ".wav"))
	assert.Equal(t, "check-in_2.mp3", FileName("  check-in #2!  ", ".mp3"))

	// A title with no safe characters falls back to a generated name
	generated := FileName("???", ".wav")
	assert.NotEqual(t, ".wav", generated)
	assert.Equal(t, ".wav", filepath.Ext(generated))
}

func TestSaveAndRemove(t *testing.T) {
	store, err := NewMediaStore(t.TempDir())
	require.NoError(t, err)

	rel, size, err := store.Save(7, "note.wav", bytes.NewReader([]byte("payload")))
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)
	assert.Equal(t, filepath.Join("patients", "7", "note.wav"), rel)

	data, err := os.ReadFile(store.Abs(rel))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(store.Abs(rel))
	assert.True(t, os.IsNotExist(err))

	// Removing a missing file is not an error
	assert.NoError(t, store.Remove(rel))
}

func TestSwap(t *testing.T) {
	store, err := NewMediaStore(t.TempDir())
	require.NoError(t, err)

	rel, _, err := store.Save(3, "original.wav", bytes.NewReader([]byte("original")))
	require.NoError(t, err)

	staged := store.StagingPath(".mp3")
	require.NoError(t, os.WriteFile(staged, []byte("converted audio"), 0o644))

	newRel, size, err := store.Swap(rel, staged, "original.mp3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("patients", "3", "original.mp3"), newRel)
	assert.Equal(t, int64(15), size)

	// The original is gone, the converted file took its place
	_, err = os.Stat(store.Abs(rel))
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(store.Abs(newRel))
	require.NoError(t, err)
	assert.Equal(t, []byte("converted audio"), data)

	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err))
}
