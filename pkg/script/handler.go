// Package script runs shell snippets as command handlers.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/ArielEspinoza07/console-forge/pkg/console"
	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

// Handler is an invokable handler that interprets Source with a bash
// compatible interpreter. Arguments and options are exported as upper
// snake case variables (user-name becomes USER_NAME) and the argument
// values are the positional parameters.
type Handler struct {
	Source string
	// Dir is the working directory; empty means the process directory.
	Dir string
}

// New parses source up front so that syntax errors surface when the
// command is loaded rather than when it runs.
func New(source string) (*Handler, error) {
	if _, err := parse(source); err != nil {
		return nil, err
	}
	return &Handler{Source: source}, nil
}

func parse(source string) (*syntax.File, error) {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	prog, err := parser.Parse(strings.NewReader(source), "handler")
	if err != nil {
		return nil, fmt.Errorf("script: parse: %w", err)
	}
	return prog, nil
}

// Invoke runs the script. The shell exit status is the exit code.
func (h *Handler) Invoke(ctx context.Context, in console.Input, out console.Output) (int, error) {
	prog, err := parse(h.Source)
	if err != nil {
		return 1, err
	}

	env := append(os.Environ(), Environ(in)...)
	runner, err := interp.New(
		interp.StdIO(in.Stream(), out, out.Stderr()),
		interp.Env(expand.ListEnviron(env...)),
		interp.Dir(h.Dir),
		interp.Params(append([]string{"--"}, Positional(in)...)...),
	)
	if err != nil {
		return 1, fmt.Errorf("script: create runner: %w", err)
	}

	err = runner.Run(ctx, prog)
	var status interp.ExitStatus
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &status):
		log.Debug().Int("status", int(status)).Msg("script exited")
		return int(status), nil
	default:
		return 1, fmt.Errorf("script: %w", err)
	}
}

// VarName converts an input name to its environment variable form.
func VarName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Environ renders every argument and option as NAME=value. Options are
// written first so an argument wins when both map to the same variable.
func Environ(in console.Input) []string {
	var env []string
	for _, e := range in.Options() {
		env = append(env, VarName(e.Name)+"="+Format(e.Value))
	}
	for _, e := range in.Arguments() {
		env = append(env, VarName(e.Name)+"="+Format(e.Value))
	}
	return env
}

// Positional flattens the argument values in order; list arguments
// contribute one parameter per item and null arguments none.
func Positional(in console.Input) []string {
	var params []string
	for _, e := range in.Arguments() {
		switch {
		case e.Value.IsNull():
		case e.Value.IsList():
			items, _ := e.Value.AsList()
			for _, item := range items {
				params = append(params, Format(item))
			}
		default:
			params = append(params, Format(e.Value))
		}
	}
	return params
}

// Format renders v the way shell scripts expect: true is "1", false and
// null are empty and lists are space separated.
func Format(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return ""
	case value.KindBool:
		if b, _ := v.AsBool(); b {
			return "1"
		}
		return ""
	case value.KindString:
		s, _ := v.AsString()
		return s
	case value.KindInt:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10)
	case value.KindList:
		items, _ := v.AsList()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = Format(item)
		}
		return strings.Join(parts, " ")
	default:
		return v.String()
	}
}
