package loader

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/ArielEspinoza07/console-forge/pkg/event"
	"github.com/ArielEspinoza07/console-forge/pkg/registry"
)

// DefaultDebounce groups bursts of file events into a single reload.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives the registry built from the directory after a change,
// or the error that prevented building it.
type ReloadFunc func(*registry.Registry, error)

// Watcher reloads a configuration directory when its files change. It
// watches the OS filesystem regardless of the loader's afero backend, so
// the loader should read from the same tree.
type Watcher struct {
	loader   *Loader
	dir      string
	onReload ReloadFunc
	debounce time.Duration

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	mu      sync.Mutex
}

// NewWatcher watches dir and every directory below it.
func (l *Loader) NewWatcher(dir string, onReload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, err
	}

	log.Info().Str("dir", dir).Msg("config watcher initialized")
	return &Watcher{
		loader:   l,
		dir:      dir,
		onReload: onReload,
		debounce: DefaultDebounce,
		watcher:  fw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the quiet period before a reload. Call it before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()
	go w.run()
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.Reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("config watcher error")
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(ev.Name); err != nil {
				log.Warn().Err(err).Str("dir", ev.Name).Msg("cannot watch new directory")
			}
			return true
		}
	}
	_, ok := FormatOf(ev.Name)
	return ok
}

// Reload loads the directory now, hands the result to the callback and
// publishes config.reloaded.
func (w *Watcher) Reload() {
	reg, err := w.loader.LoadRegistry(w.dir)

	data := event.ReloadData{Dir: w.dir}
	if err != nil {
		data.Error = err.Error()
		log.Warn().Err(err).Str("dir", w.dir).Msg("config reload failed")
	} else {
		data.Commands = reg.Names()
		log.Info().Str("dir", w.dir).Int("commands", reg.Len()).Msg("config reloaded")
	}

	if w.onReload != nil {
		w.onReload(reg, err)
	}
	if w.loader.bus != nil {
		w.loader.bus.PublishSync(event.Event{Type: event.ConfigReloaded, Data: data})
	}
}

// Stop stops the watcher and waits for the loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()

	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}

	if started {
		<-w.doneCh
	}
	return w.watcher.Close()
}
