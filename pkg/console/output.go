package console

import (
	"io"
	"os"
)

// Output is the sink a handler writes to.
type Output interface {
	io.Writer
	// Stderr is the diagnostic stream. It may be the same writer.
	Stderr() io.Writer
}

// StreamOutput writes to a pair of writers.
type StreamOutput struct {
	out    io.Writer
	errOut io.Writer
}

// NewOutput returns an Output over out and errOut. A nil errOut falls back
// to out.
func NewOutput(out, errOut io.Writer) *StreamOutput {
	if errOut == nil {
		errOut = out
	}
	return &StreamOutput{out: out, errOut: errOut}
}

// StdOutput writes to os.Stdout and os.Stderr.
func StdOutput() *StreamOutput {
	return NewOutput(os.Stdout, os.Stderr)
}

func (o *StreamOutput) Write(p []byte) (int, error) { return o.out.Write(p) }
func (o *StreamOutput) Stderr() io.Writer           { return o.errOut }
