// Package console holds the I/O objects a command handler can ask for:
// the parsed input, the output sink, the styled helper and the IO facade.
package console

import (
	"io"
	"os"

	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

// Entry is one named input value.
type Entry struct {
	Name  string
	Value value.Value
}

// Input exposes the parsed arguments and options of one invocation.
type Input interface {
	HasArgument(name string) bool
	Argument(name string) value.Value
	HasOption(name string) bool
	Option(name string) value.Value

	// Arguments returns the arguments in declaration order.
	Arguments() []Entry
	// Options returns the options in declaration order.
	Options() []Entry

	// Stream is where interactive answers are read from.
	Stream() io.Reader
}

// MapInput is an in-memory Input. It is built once per invocation and must
// not be shared between concurrent invocations while being filled.
type MapInput struct {
	args   []Entry
	opts   []Entry
	stream io.Reader
}

// NewMapInput returns an empty input reading answers from stream.
// A nil stream reads from os.Stdin.
func NewMapInput(stream io.Reader) *MapInput {
	if stream == nil {
		stream = os.Stdin
	}
	return &MapInput{stream: stream}
}

// SetArgument adds or replaces an argument value.
func (in *MapInput) SetArgument(name string, v value.Value) *MapInput {
	in.args = set(in.args, name, v)
	return in
}

// SetOption adds or replaces an option value.
func (in *MapInput) SetOption(name string, v value.Value) *MapInput {
	in.opts = set(in.opts, name, v)
	return in
}

func (in *MapInput) HasArgument(name string) bool     { return index(in.args, name) >= 0 }
func (in *MapInput) Argument(name string) value.Value { return get(in.args, name) }
func (in *MapInput) HasOption(name string) bool       { return index(in.opts, name) >= 0 }
func (in *MapInput) Option(name string) value.Value   { return get(in.opts, name) }
func (in *MapInput) Stream() io.Reader                { return in.stream }

func (in *MapInput) Arguments() []Entry {
	return append([]Entry(nil), in.args...)
}

func (in *MapInput) Options() []Entry {
	return append([]Entry(nil), in.opts...)
}

func index(entries []Entry, name string) int {
	for i, e := range entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

func get(entries []Entry, name string) value.Value {
	if i := index(entries, name); i >= 0 {
		return entries[i].Value
	}
	return value.Null()
}

func set(entries []Entry, name string, v value.Value) []Entry {
	if i := index(entries, name); i >= 0 {
		entries[i].Value = v
		return entries
	}
	return append(entries, Entry{Name: name, Value: v})
}
