package handler

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Factory builds a fresh instance of a catalog type.
type Factory func() any

// Catalog maps names to handler functions and handler types so that
// string references in descriptors and config files can be resolved.
type Catalog struct {
	mu    sync.RWMutex
	funcs map[string]*Func
	types map[string]Factory
}

// DefaultCatalog is used when a descriptor does not name its own catalog.
var DefaultCatalog = NewCatalog()

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		funcs: make(map[string]*Func),
		types: make(map[string]Factory),
	}
}

// RegisterFunc adds or replaces a named function.
func (c *Catalog) RegisterFunc(name string, fn any, decls ...Decl) error {
	if name == "" {
		return fmt.Errorf("register func: empty name")
	}
	f := NewFunc(fn, decls...)
	if f.fn.Kind() != reflect.Func || f.fn.IsNil() {
		return fmt.Errorf("register func %q: %T is not a function", name, fn)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs[name] = f
	return nil
}

// RegisterType adds or replaces a named type.
func (c *Catalog) RegisterType(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("register type: empty name")
	}
	if factory == nil {
		return fmt.Errorf("register type %q: nil factory", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[name] = factory
	return nil
}

// UnregisterFunc removes a function by name.
func (c *Catalog) UnregisterFunc(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.funcs, name)
}

// UnregisterType removes a type by name.
func (c *Catalog) UnregisterType(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.types, name)
}

func (c *Catalog) lookupFunc(name string) (*Func, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.funcs[name]
	return f, ok
}

func (c *Catalog) lookupType(name string) (Factory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.types[name]
	return f, ok
}

// Funcs returns the registered function names, sorted.
func (c *Catalog) Funcs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.funcs))
	for name := range c.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns the registered type names, sorted.
func (c *Catalog) Types() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterFunc adds fn to DefaultCatalog.
func RegisterFunc(name string, fn any, decls ...Decl) error {
	return DefaultCatalog.RegisterFunc(name, fn, decls...)
}

// RegisterType adds factory to DefaultCatalog.
func RegisterType(name string, factory Factory) error {
	return DefaultCatalog.RegisterType(name, factory)
}
