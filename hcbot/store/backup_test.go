package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRotator_Snapshot(t *testing.T) {
	dir := t.TempDir()
	r := NewRotator(filepath.Join(dir, "backups"), 3)

	ok := r.Snapshot([]byte(`{"metadata":{}}`), "auto_save")
	require.True(t, ok)

	entries, err := os.ReadDir(filepath.Join(dir, "backups"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	name := entries[0].Name()
	require.True(t, strings.HasPrefix(name, "backup_"))
	require.True(t, strings.HasSuffix(name, "_auto_save.json"))
}

func TestRotator_prune(t *testing.T) {
	dir := t.TempDir()
	r := NewRotator(dir, 3)

	// Distinct reasons keep the names unique within one second.
	for i := 0; i < 6; i++ {
		require.True(t, r.Snapshot([]byte("{}"), fmt.Sprintf("reason_%d", i)))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestRotator_pruneIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep me"), 0o644))

	r := NewRotator(dir, 1)
	for i := 0; i < 3; i++ {
		require.True(t, r.Snapshot([]byte("{}"), fmt.Sprintf("r%d", i)))
	}

	_, err := os.Stat(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
}
