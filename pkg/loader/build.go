package loader

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"

	"github.com/ArielEspinoza07/console-forge/pkg/descriptor"
	"github.com/ArielEspinoza07/console-forge/pkg/handler"
	"github.com/ArielEspinoza07/console-forge/pkg/script"
	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

var (
	ErrConfigShape = errors.New("invalid configuration shape")
	ErrSchema      = errors.New("configuration does not match schema")
)

// Normalize flattens the accepted document shapes into a list of command
// definitions: a single command object, a list of them, or an object whose
// only key is "commands". A nil document yields no commands.
func Normalize(doc any) ([]map[string]any, error) {
	switch d := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return commandList(d)
	case map[string]any:
		if list, ok := d["commands"]; ok && len(d) == 1 {
			items, ok := list.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: commands must be a list, got %T", ErrConfigShape, list)
			}
			return commandList(items)
		}
		return []map[string]any{d}, nil
	}
	return nil, fmt.Errorf("%w: expected a command, a list of commands or {commands: [...]}, got %T", ErrConfigShape, doc)
}

func commandList(items []any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is %T, not a command", ErrConfigShape, i, item)
		}
		out = append(out, m)
	}
	return out, nil
}

// Build turns one command definition into a validated descriptor.
// Handler names are resolved against cat.
func Build(def map[string]any, cat *handler.Catalog) (*descriptor.Command, error) {
	name, err := stringField(def, "name")
	if err != nil {
		return nil, err
	}
	spec := descriptor.CommandSpec{Name: name, Catalog: cat}

	if spec.Description, err = stringField(def, "description"); err != nil {
		return nil, err
	}
	if spec.Help, err = stringField(def, "help"); err != nil {
		return nil, err
	}
	if spec.Hidden, err = boolField(def, "hidden"); err != nil {
		return nil, err
	}
	if raw, ok := def["extra"]; ok && raw != nil {
		extra, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: extra of %s must be a mapping", ErrConfigShape, name)
		}
		spec.Extra = extra
	}

	for i, raw := range listField(def, "args") {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: argument %d of %s must be a mapping", ErrConfigShape, i, name)
		}
		a, err := buildArg(m)
		if err != nil {
			return nil, err
		}
		spec.Args = append(spec.Args, a)
	}
	for i, raw := range listField(def, "opts") {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: option %d of %s must be a mapping", ErrConfigShape, i, name)
		}
		o, err := buildOpt(m)
		if err != nil {
			return nil, err
		}
		spec.Opts = append(spec.Opts, o)
	}

	if spec.Handler, err = handlerRef(def["handler"]); err != nil {
		return nil, fmt.Errorf("command %s: %w", name, err)
	}
	return descriptor.NewCommand(spec)
}

func buildArg(m map[string]any) (*descriptor.Arg, error) {
	var spec descriptor.ArgSpec
	var err error
	if spec.Name, err = stringField(m, "name"); err != nil {
		return nil, err
	}
	if spec.Description, err = stringField(m, "description"); err != nil {
		return nil, err
	}
	if spec.Required, err = boolField(m, "required"); err != nil {
		return nil, err
	}
	if spec.IsArray, err = boolField(m, "array"); err != nil {
		return nil, err
	}
	def, hasDefault := m["default"]
	spec.Default = value.Of(def)
	if spec.IsArray && !spec.Required && !hasDefault {
		spec.Default = value.List()
	}
	return descriptor.NewArg(spec)
}

func buildOpt(m map[string]any) (*descriptor.Opt, error) {
	var spec descriptor.OptSpec
	var err error
	if spec.Name, err = stringField(m, "name"); err != nil {
		return nil, err
	}
	if spec.Shortcut, err = stringField(m, "shortcut"); err != nil {
		return nil, err
	}
	if spec.Description, err = stringField(m, "description"); err != nil {
		return nil, err
	}
	if spec.Negatable, err = boolField(m, "negatable"); err != nil {
		return nil, err
	}
	if spec.AcceptValue, err = boolField(m, "accept_value"); err != nil {
		return nil, err
	}
	if spec.IsArray, err = boolField(m, "array"); err != nil {
		return nil, err
	}
	def, hasDefault := m["default"]
	spec.Default = value.Of(def)
	if spec.IsArray && !hasDefault {
		spec.Default = value.List()
	}
	return descriptor.NewOpt(spec)
}

// handlerRef maps the configured handler onto a reference the catalog can
// resolve.
func handlerRef(raw any) (any, error) {
	switch h := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return h, nil
	case []any:
		return h, nil
	case map[string]any:
		if src, ok := h["script"]; ok {
			source, err := cast.ToStringE(src)
			if err != nil {
				return nil, fmt.Errorf("%w: script: %v", ErrConfigShape, err)
			}
			return script.New(source)
		}
		typ, err := cast.ToStringE(h["type"])
		if err != nil || typ == "" {
			return nil, fmt.Errorf("%w: handler needs a type or a script", ErrConfigShape)
		}
		method := cast.ToString(h["method"])
		if method == "" {
			method = "Invoke"
		}
		return handler.Pair{Target: typ, Method: method}, nil
	}
	return nil, fmt.Errorf("%w: unsupported handler %T", ErrConfigShape, raw)
}

func stringField(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrConfigShape, key, err)
	}
	return s, nil
}

func boolField(m map[string]any, key string) (bool, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return false, nil
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrConfigShape, key, err)
	}
	return b, nil
}

func listField(m map[string]any, key string) []any {
	list, _ := m[key].([]any)
	return list
}
