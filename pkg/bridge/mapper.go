// Package bridge turns command descriptors into cobra commands.
package bridge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ArielEspinoza07/console-forge/pkg/console"
	"github.com/ArielEspinoza07/console-forge/pkg/descriptor"
	"github.com/ArielEspinoza07/console-forge/pkg/event"
	"github.com/ArielEspinoza07/console-forge/pkg/handler"
	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

var (
	ErrNegatableOption = errors.New("negatable options cannot accept values or be arrays")
	ErrNoHandler       = errors.New("command has no handler")
)

// ExitError carries a non-zero exit code returned by a handler.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
}

// Mapper builds cobra commands that invoke descriptor handlers through a
// resolver.
type Mapper struct {
	resolver *handler.Resolver
	bus      *event.Bus
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithResolver invokes handlers through r.
func WithResolver(r *handler.Resolver) MapperOption {
	return func(m *Mapper) { m.resolver = r }
}

// WithBus publishes command.invoked and command.failed events on bus.
func WithBus(bus *event.Bus) MapperOption {
	return func(m *Mapper) { m.bus = bus }
}

// NewMapper creates a mapper.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{resolver: handler.NewResolver()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach adds a cobra command for every descriptor to root.
func (m *Mapper) Attach(root *cobra.Command, descs ...*descriptor.Command) error {
	for _, d := range descs {
		cmd, err := m.Command(d)
		if err != nil {
			return err
		}
		root.AddCommand(cmd)
	}
	return nil
}

// Command translates d into a cobra command.
func (m *Mapper) Command(d *descriptor.Command) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:    use(d),
		Short:  d.Description(),
		Long:   d.Help(),
		Hidden: d.Hidden(),
		Args:   arity(d.Args()),
	}
	if group, ok := d.Extra()["group"].(string); ok {
		cmd.Annotations = map[string]string{"group": group}
	}

	flags := make(map[string]*optFlag, len(d.Opts()))
	for _, o := range d.Opts() {
		f, err := addFlag(cmd.Flags(), o)
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", d.Name(), err)
		}
		flags[o.Name()] = f
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		in, err := input(cmd, d, args, flags)
		if err != nil {
			return err
		}
		return m.run(cmd, d, in)
	}
	return cmd, nil
}

func (m *Mapper) run(cmd *cobra.Command, d *descriptor.Command, in console.Input) error {
	if d.Callable() == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, d.Name())
	}

	id := ulid.Make().String()
	logger := log.With().Str("invocation", id).Str("command", d.Name()).Logger()
	logger.Debug().Str("handler", d.Callable().String()).Msg("invoking command")

	out := console.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	code, err := m.resolver.Invoke(cmd.Context(), d.Callable(), in, out)

	data := event.InvocationData{ID: id, Command: d.Name(), ExitCode: code}
	if err != nil {
		data.Error = err.Error()
		logger.Debug().Err(err).Msg("command failed")
		m.publish(event.CommandFailed, data)
		return err
	}
	logger.Debug().Int("exitCode", code).Msg("command finished")
	m.publish(event.CommandInvoked, data)

	if code != 0 {
		return &ExitError{Command: d.Name(), Code: code}
	}
	return nil
}

func (m *Mapper) publish(t event.EventType, data event.InvocationData) {
	if m.bus != nil {
		m.bus.PublishSync(event.Event{Type: t, Data: data})
	}
}

// use renders "name <required> [optional] [items...]".
func use(d *descriptor.Command) string {
	parts := []string{d.Name()}
	for _, a := range d.Args() {
		name := a.Name()
		if a.IsArray() {
			name += "..."
		}
		if a.Required() {
			parts = append(parts, "<"+name+">")
		} else {
			parts = append(parts, "["+name+"]")
		}
	}
	return strings.Join(parts, " ")
}

func arity(args []*descriptor.Arg) cobra.PositionalArgs {
	required := 0
	array := false
	for _, a := range args {
		if a.Required() {
			required++
		}
		if a.IsArray() {
			array = true
		}
	}
	if array {
		return cobra.MinimumNArgs(required)
	}
	return cobra.RangeArgs(required, len(args))
}

// input collects the parsed positional arguments and flags. Values given on
// the command line go through the descriptor's coercer; defaults do not.
func input(cmd *cobra.Command, d *descriptor.Command, args []string, flags map[string]*optFlag) (*console.MapInput, error) {
	in := console.NewMapInput(cmd.InOrStdin())

	for i, a := range d.Args() {
		var v value.Value
		supplied := i < len(args)
		switch {
		case !supplied:
			v = a.Default()
		case a.IsArray():
			v = value.Strings(args[i:]...)
		default:
			v = value.String(args[i])
		}
		if supplied && a.Coercer() != nil {
			coerced, err := a.Coercer()(v)
			if err != nil {
				return nil, fmt.Errorf("argument %s: %w", a.Name(), err)
			}
			v = coerced
		}
		in.SetArgument(a.Name(), v)
	}

	for _, o := range d.Opts() {
		f := flags[o.Name()]
		v, supplied := f.value(o)
		if supplied && o.Coercer() != nil {
			coerced, err := o.Coercer()(v)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", o.Name(), err)
			}
			v = coerced
		}
		in.SetOption(o.Name(), v)
	}
	return in, nil
}
