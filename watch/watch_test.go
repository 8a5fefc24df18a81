package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAddSourcesDedupsContainingDirectories(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.onyx")
	b := filepath.Join(dir, "b.onyx")
	require.NoError(t, os.WriteFile(a, []byte(""), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(""), 0o644))

	w, err := New(10 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.AddSources([]string{a, b}))
}

func TestAddSourcesExpandsGlobPatterns(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "x.onyx"), []byte(""), 0o644))

	w, err := New(10 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.AddSources([]string{filepath.Join(dir, "**", "*.onyx")}))
}

func TestWatcherFiresOnChangeForFileWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.onyx")
	require.NoError(t, os.WriteFile(target, []byte("first"), 0o644))

	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	changes := make(chan Event, 8)
	w.OnChange = func(ev Event) { changes <- ev }

	require.NoError(t, w.Add(dir))
	w.Start()

	require.NoError(t, os.WriteFile(target, []byte("second"), 0o644))

	select {
	case ev := <-changes:
		require.Equal(t, target, ev.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a change event")
	}
}

func TestWatcherSkipsTouchWithoutContentChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.onyx")
	require.NoError(t, os.WriteFile(target, []byte("same"), 0o644))

	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	require.False(t, w.contentUnchanged(target), "first observation always reports a change")
	require.True(t, w.contentUnchanged(target), "re-reading identical bytes reports no change")

	require.NoError(t, os.WriteFile(target, []byte("different"), 0o644))
	require.False(t, w.contentUnchanged(target))
}

func TestStopInterruptsRunLoop(t *testing.T) {
	w, err := New(10 * time.Millisecond)
	require.NoError(t, err)

	w.Start()
	done := make(chan struct{})
	go func() {
		require.NoError(t, w.Stop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return promptly")
	}
}
