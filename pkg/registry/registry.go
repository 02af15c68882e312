// Package registry stores validated command descriptors by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/btree"

	"github.com/ArielEspinoza07/console-forge/pkg/descriptor"
	"github.com/ArielEspinoza07/console-forge/pkg/event"
)

var (
	ErrNotFound  = errors.New("command not found")
	ErrDuplicate = errors.New("command already registered")
)

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// NotFoundError is returned by Get for an unknown name.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("command %q not found", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Registry is a name-keyed, sorted store of command descriptors. It is
// safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	cmds *btree.Map[string, *descriptor.Command]
	bus  *event.Bus
}

// Option configures a Registry.
type Option func(*Registry)

// WithBus publishes lifecycle events on bus.
func WithBus(bus *event.Bus) Option {
	return func(r *Registry) { r.bus = bus }
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{cmds: btree.NewMap[string, *descriptor.Command](0)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers cmds. Names must be unique across the registry and the
// batch; if any name clashes, nothing is added.
func (r *Registry) Add(cmds ...*descriptor.Command) error {
	r.mu.Lock()
	if err := r.checkNew(cmds); err != nil {
		r.mu.Unlock()
		return err
	}
	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		r.cmds.Set(cmd.Name(), cmd)
		names[i] = cmd.Name()
	}
	r.mu.Unlock()

	for _, name := range names {
		log.Debug().Str("command", name).Msg("command registered")
		r.publish(event.CommandRegistered, event.CommandData{Name: name})
	}
	return nil
}

// checkNew must be called with mu held.
func (r *Registry) checkNew(cmds []*descriptor.Command) error {
	seen := make(map[string]bool, len(cmds))
	for _, cmd := range cmds {
		if cmd == nil {
			return fmt.Errorf("register: nil command")
		}
		if _, ok := r.cmds.Get(cmd.Name()); ok || seen[cmd.Name()] {
			return fmt.Errorf("%w: %s", ErrDuplicate, cmd.Name())
		}
		seen[cmd.Name()] = true
	}
	return nil
}

// Get returns the command called name.
func (r *Registry) Get(name string) (*descriptor.Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.cmds.Get(name); ok {
		return cmd, nil
	}
	return nil, &NotFoundError{Name: name, Suggestions: r.suggest(name)}
}

// Has reports whether a command called name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.cmds.Get(name)
	return ok
}

// Remove deletes the command called name and reports whether it existed.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	_, ok := r.cmds.Delete(name)
	r.mu.Unlock()

	if ok {
		r.publish(event.CommandRemoved, event.CommandData{Name: name})
	}
	return ok
}

// Clear removes every command.
func (r *Registry) Clear() {
	r.mu.Lock()
	n := r.cmds.Len()
	r.cmds = btree.NewMap[string, *descriptor.Command](0)
	r.mu.Unlock()

	r.publish(event.RegistryCleared, event.ClearedData{Count: n})
}

// All returns the commands sorted by name.
func (r *Registry) All() []*descriptor.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*descriptor.Command, 0, r.cmds.Len())
	r.cmds.Scan(func(_ string, cmd *descriptor.Command) bool {
		out = append(out, cmd)
		return true
	})
	return out
}

// Names returns the registered names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, r.cmds.Len())
	r.cmds.Scan(func(name string, _ *descriptor.Command) bool {
		out = append(out, name)
		return true
	})
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cmds.Len()
}

// suggest ranks known names by edit distance to name. Caller holds the lock.
func (r *Registry) suggest(name string) []string {
	type candidate struct {
		name string
		dist int
	}
	limit := max(2, len(name)/3)

	var found []candidate
	r.cmds.Scan(func(known string, _ *descriptor.Command) bool {
		d := levenshtein.ComputeDistance(name, known)
		if d <= limit || strings.HasPrefix(known, name) {
			found = append(found, candidate{known, d})
		}
		return true
	})
	sort.SliceStable(found, func(i, j int) bool { return found[i].dist < found[j].dist })

	var out []string
	for i := 0; i < len(found) && i < maxSuggestions; i++ {
		out = append(out, found[i].name)
	}
	return out
}

func (r *Registry) publish(t event.EventType, data any) {
	if r.bus != nil {
		r.bus.PublishSync(event.Event{Type: t, Data: data})
	}
}
