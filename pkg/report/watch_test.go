package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	w, err := NewWatcher(path, 200*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"accounts": []}`), 0644))
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}

	select {
	case <-w.Changes():
		t.Fatal("a burst of writes is one change")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	w, err := NewWatcher(path, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
