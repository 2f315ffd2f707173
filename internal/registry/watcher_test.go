package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneBoard = `boards:
  - name: solo
    chip: esp32s2
    board_macro: SOLO
    flash_mb: 4
    vendor: Acme
    product: Solo
`

func startWatcher(t *testing.T, ctx context.Context, path string) (*Watcher, <-chan *Registry) {
	t.Helper()
	changes := make(chan *Registry, 4)
	w, err := NewWatcher(path, func(_ context.Context, r *Registry) { changes <- r })
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(ctx))
	return w, changes
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(oneBoard), 0644))

	w, changes := startWatcher(t, context.Background(), path)
	defer w.Stop()
	assert.True(t, w.IsWatching())

	updated := strings.Replace(oneBoard, "product: Solo", "product: Solo Mk2", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	select {
	case r := <-changes:
		require.Len(t, r.Boards, 1)
		assert.Equal(t, "Solo Mk2", r.Boards[0].Product)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
	assert.GreaterOrEqual(t, w.GetStats().Reloads, 1)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(oneBoard), 0644))

	w, changes := startWatcher(t, context.Background(), path)
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))

	select {
	case <-changes:
		t.Fatal("unexpected reload")
	case <-time.After(200 * time.Millisecond):
	}
	assert.Zero(t, w.GetStats().Events)
}

func TestWatcherSkipsInvalidRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(oneBoard), 0644))

	w, changes := startWatcher(t, context.Background(), path)
	defer w.Stop()

	broken := strings.Replace(oneBoard, "flash_mb: 4", "flash_mb: 32", 1)
	require.NoError(t, os.WriteFile(path, []byte(broken), 0644))

	require.Eventually(t, func() bool { return w.GetStats().Errors > 0 }, 5*time.Second, 10*time.Millisecond)
	select {
	case <-changes:
		t.Fatal("callback ran for an invalid registry")
	default:
	}
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(oneBoard), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	w, _ := startWatcher(t, ctx, path)
	cancel()

	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not exit after cancel")
	}
	w.Stop()
}

func TestWatcherStartFailsForMissingDir(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "boards.yaml"), nil)
	require.NoError(t, err)
	assert.Error(t, w.Start(context.Background()))
	assert.False(t, w.IsWatching())
	w.Stop()
}
