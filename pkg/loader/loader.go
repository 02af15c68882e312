// Package loader discovers command definitions in configuration files and
// turns them into validated descriptors.
//
// Files under the configuration directory matching **/*.{yaml,yml,json,jsonc}
// are read in lexical order. Each file holds a single command, a list of
// commands, or {commands: [...]}, and is checked against an embedded JSON
// Schema before any descriptor is built.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/ArielEspinoza07/console-forge/pkg/descriptor"
	"github.com/ArielEspinoza07/console-forge/pkg/event"
	"github.com/ArielEspinoza07/console-forge/pkg/handler"
	"github.com/ArielEspinoza07/console-forge/pkg/registry"
)

// DefaultDir is the configuration directory used when none is given.
const DefaultDir = "config"

// Pattern selects configuration files below the directory.
const Pattern = "**/*.{yaml,yml,json,jsonc}"

// Loader reads command definitions from a filesystem.
type Loader struct {
	fs      afero.Fs
	catalog *handler.Catalog
	bus     *event.Bus
}

// Option configures a Loader.
type Option func(*Loader)

// WithFs reads from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) { l.fs = fs }
}

// WithCatalog resolves handler names against c instead of
// handler.DefaultCatalog.
func WithCatalog(c *handler.Catalog) Option {
	return func(l *Loader) { l.catalog = c }
}

// WithBus attaches bus to the registries built by LoadRegistry and to the
// watcher's reload notifications.
func WithBus(bus *event.Bus) Option {
	return func(l *Loader) { l.bus = bus }
}

// New creates a loader.
func New(opts ...Option) *Loader {
	l := &Loader{fs: afero.NewOsFs(), catalog: handler.DefaultCatalog}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fs returns the filesystem the loader reads from.
func (l *Loader) Fs() afero.Fs { return l.fs }

// Files lists the configuration files under dir in lexical order. A missing
// directory has no files.
func (l *Loader) Files(dir string) ([]string, error) {
	ok, err := afero.DirExists(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !ok {
		return nil, nil
	}

	var files []string
	err = afero.Walk(l.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if match, _ := doublestar.Match(Pattern, filepath.ToSlash(rel)); match {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile reads one file and builds its commands.
func (l *Loader) LoadFile(path string) ([]*descriptor.Command, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported file type", path)
	}
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, err
	}
	cmds, err := l.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("file", path).Int("commands", len(cmds)).Msg("config file loaded")
	return cmds, nil
}

// Parse decodes, validates and builds the commands in data.
func (l *Loader) Parse(data []byte, format Format) ([]*descriptor.Command, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	defs, err := Normalize(doc)
	if err != nil {
		return nil, err
	}

	cmds := make([]*descriptor.Command, 0, len(defs))
	for _, def := range defs {
		cmd, err := Build(def, l.catalog)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// LoadDir loads every file under dir and stops at the first error.
func (l *Loader) LoadDir(dir string) ([]*descriptor.Command, error) {
	files, err := l.Files(dir)
	if err != nil {
		return nil, err
	}
	var cmds []*descriptor.Command
	for _, f := range files {
		loaded, err := l.LoadFile(f)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, loaded...)
	}
	return cmds, nil
}

// LoadRegistry loads dir into a new registry. Duplicate names across files
// fail with registry.ErrDuplicate.
func (l *Loader) LoadRegistry(dir string) (*registry.Registry, error) {
	cmds, err := l.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	var opts []registry.Option
	if l.bus != nil {
		opts = append(opts, registry.WithBus(l.bus))
	}
	reg := registry.New(opts...)
	if err := reg.Add(cmds...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Check validates every file under dir and reports all failures at once,
// including names defined more than once.
func (l *Loader) Check(dir string) ([]*descriptor.Command, error) {
	files, err := l.Files(dir)
	if err != nil {
		return nil, err
	}

	var result *multierror.Error
	var cmds []*descriptor.Command
	origin := make(map[string]string)
	for _, f := range files {
		loaded, err := l.LoadFile(f)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		for _, cmd := range loaded {
			if first, ok := origin[cmd.Name()]; ok {
				result = multierror.Append(result, fmt.Errorf("%s: %w: %s (first defined in %s)", f, registry.ErrDuplicate, cmd.Name(), first))
				continue
			}
			origin[cmd.Name()] = f
			cmds = append(cmds, cmd)
		}
	}
	return cmds, result.ErrorOrNil()
}
