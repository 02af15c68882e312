package bridge

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/ArielEspinoza07/console-forge/pkg/descriptor"
	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

var ErrFlagConflict = errors.New("flag already defined")

// optFlag is the set of pflag flags backing one option: the primary flag,
// hidden aliases for extra shortcuts, and the hidden --no-<name> flag of
// negatable options.
type optFlag struct {
	fs      *pflag.FlagSet
	primary *pflag.Flag
	aliases []*pflag.Flag
	negated *pflag.Flag
}

func addFlag(fs *pflag.FlagSet, o *descriptor.Opt) (*optFlag, error) {
	if o.Negatable() && (o.AcceptValue() || o.IsArray()) {
		return nil, fmt.Errorf("%w: --%s", ErrNegatableOption, o.Name())
	}

	name := o.Name()
	shortcuts := o.Shortcuts()
	names := []string{name}
	if o.Negatable() {
		names = append(names, "no-"+name)
	}
	for _, s := range shortcuts[min(1, len(shortcuts)):] {
		names = append(names, aliasName(name, s))
	}
	for _, n := range names {
		if fs.Lookup(n) != nil {
			return nil, fmt.Errorf("%w: --%s", ErrFlagConflict, n)
		}
	}
	for _, s := range shortcuts {
		if fs.ShorthandLookup(s) != nil {
			return nil, fmt.Errorf("%w: -%s", ErrFlagConflict, s)
		}
	}

	short := ""
	if len(shortcuts) > 0 {
		short = shortcuts[0]
	}
	switch {
	case !o.AcceptValue():
		fs.BoolP(name, short, false, o.Description())
	case o.IsArray():
		fs.StringArrayP(name, short, defaultList(o.Default()), o.Description())
	default:
		fs.StringP(name, short, defaultText(o.Default()), o.Description())
	}

	f := &optFlag{fs: fs, primary: fs.Lookup(name)}
	for _, s := range shortcuts[min(1, len(shortcuts)):] {
		alias := fs.VarPF(f.primary.Value, aliasName(name, s), s, o.Description())
		alias.NoOptDefVal = f.primary.NoOptDefVal
		alias.Hidden = true
		f.aliases = append(f.aliases, alias)
	}
	if o.Negatable() {
		fs.Bool("no-"+name, false, "Negate --"+name)
		f.negated = fs.Lookup("no-" + name)
		f.negated.Hidden = true
	}
	return f, nil
}

func aliasName(name, shortcut string) string {
	return name + "." + shortcut
}

func (f *optFlag) changed() bool {
	if f.primary.Changed {
		return true
	}
	for _, a := range f.aliases {
		if a.Changed {
			return true
		}
	}
	return false
}

// value returns the option's input value and whether it came from the
// command line. Unset flags fall back to false, or null when negatable;
// unset value options fall back to the descriptor default.
func (f *optFlag) value(o *descriptor.Opt) (value.Value, bool) {
	if f.negated != nil && f.negated.Changed {
		if negated, _ := strconv.ParseBool(f.negated.Value.String()); negated {
			return value.Bool(false), true
		}
	}
	changed := f.changed()

	switch {
	case !o.AcceptValue():
		if changed {
			b, _ := strconv.ParseBool(f.primary.Value.String())
			return value.Bool(b), true
		}
		if o.Negatable() {
			return value.Null(), false
		}
		return value.Bool(false), false
	case !changed:
		return o.Default(), false
	case o.IsArray():
		items, _ := f.fs.GetStringArray(o.Name())
		return value.Strings(items...), true
	default:
		return value.String(f.primary.Value.String()), true
	}
}

func defaultText(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return ""
	case value.KindString:
		s, _ := v.AsString()
		return s
	}
	return v.String()
}

func defaultList(v value.Value) []string {
	items, _ := v.AsList()
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = defaultText(item)
	}
	return out
}
