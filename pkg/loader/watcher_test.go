package loader

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArielEspinoza07/console-forge/pkg/event"
	"github.com/ArielEspinoza07/console-forge/pkg/registry"
)

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: greet\n"), 0o644))

	bus := event.NewBus()
	defer bus.Close()

	var mu sync.Mutex
	var reloads []event.ReloadData
	bus.Subscribe(event.ConfigReloaded, func(e event.Event) {
		mu.Lock()
		defer mu.Unlock()
		reloads = append(reloads, e.Data.(event.ReloadData))
	})

	var got *registry.Registry
	w, err := New(WithBus(bus)).NewWatcher(dir, func(reg *registry.Registry, err error) {
		require.NoError(t, err)
		got = reg
	})
	require.NoError(t, err)
	defer w.Stop()

	w.Reload()
	require.NotNil(t, got)
	assert.Equal(t, []string{"greet"}, got.Names())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: greet\n"), 0o644))
	w.onReload = func(reg *registry.Registry, err error) {
		assert.ErrorIs(t, err, registry.ErrDuplicate)
		assert.Nil(t, reg)
	}
	w.Reload()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reloads, 2)
	assert.Equal(t, []string{"greet"}, reloads[0].Commands)
	assert.Empty(t, reloads[0].Error)
	assert.NotEmpty(t, reloads[1].Error)
}

func TestWatcher_DetectsChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))

	reloaded := make(chan []string, 8)
	w, err := New().NewWatcher(dir, func(reg *registry.Registry, err error) {
		if err == nil {
			reloaded <- reg.Names()
		}
	})
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	w.Start()
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "deploy.json"), []byte(`{"name":"deploy"}`), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case names := <-reloaded:
			if len(names) == 1 && names[0] == "deploy" {
				return
			}
		case <-deadline:
			t.Fatal("Timed out waiting for reload")
		}
	}
}

func TestWatcher_StopTwice(t *testing.T) {
	w, err := New().NewWatcher(t.TempDir(), nil)
	require.NoError(t, err)
	w.Start()
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := New().NewWatcher(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}
