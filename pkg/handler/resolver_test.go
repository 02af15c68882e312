package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArielEspinoza07/console-forge/pkg/console"
	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

type Priority int

const (
	Low    Priority = 1
	Medium Priority = 2
	High   Priority = 3
)

func (Priority) EnumCases() []EnumCase {
	return []EnumCase{
		{Name: "Low", Backing: 1, Member: Low},
		{Name: "Medium", Backing: 2, Member: Medium},
		{Name: "High", Backing: 3, Member: High},
	}
}

type Level string

func (Level) EnumCases() []EnumCase {
	return []EnumCase{
		{Name: "Debug", Backing: "debug", Member: Level("debug")},
		{Name: "Half", Backing: "1.5", Member: Level("half")},
	}
}

type Direction int

const (
	Up Direction = iota
	Down
)

func (Direction) EnumCases() []EnumCase {
	return []EnumCase{{Name: "Up", Member: Up}, {Name: "Down", Member: Down}}
}

func mustResolve(t *testing.T, h any) *Callable {
	t.Helper()
	c, err := NewCatalog().Resolve(h)
	require.NoError(t, err)
	return c
}

func bindOne(t *testing.T, h any, in console.Input) (any, error) {
	t.Helper()
	args, err := NewResolver().Bind(context.Background(), mustResolve(t, h), in, nil)
	if err != nil {
		return nil, err
	}
	require.Len(t, args, 1)
	return args[0], nil
}

func TestResolver_IntCoercion(t *testing.T) {
	h := NewFunc(func(userName int) {}, Name("userName"))

	got, err := bindOne(t, h, console.NewMapInput(nil).SetArgument("userName", value.String("42")))
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = bindOne(t, h, console.NewMapInput(nil).SetArgument("userName", value.String("abc")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCoercion)
	assert.Contains(t, err.Error(), "userName")

	var cerr *CoercionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "userName", cerr.Param)
	assert.Equal(t, "int", cerr.Type)
}

func TestResolver_IntCoercionForms(t *testing.T) {
	h := NewFunc(func(n int8) {}, Name("n"))
	tests := []struct {
		in   value.Value
		want any
		ok   bool
	}{
		{value.Int(7), int8(7), true},
		{value.Float(3), int8(3), true},
		{value.Float(3.5), nil, false},
		{value.String("-12"), int8(-12), true},
		{value.String("1e3"), nil, false},
		{value.String(" 1"), nil, false},
		{value.Bool(true), nil, false},
		{value.Int(300), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got, err := bindOne(t, h, console.NewMapInput(nil).SetArgument("n", tt.in))
			if !tt.ok {
				assert.ErrorIs(t, err, ErrCoercion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_BoolCoercion(t *testing.T) {
	h := NewFunc(func(flag bool) {}, Name("flag"))
	tests := map[string]bool{
		"1": true, "true": true, "On": true, "YES": true,
		"0": false, "false": false, "off": false, "no": false, "": false, "maybe": false,
	}
	for in, want := range tests {
		got, err := bindOne(t, h, console.NewMapInput(nil).SetOption("flag", value.String(in)))
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	numbers := []struct {
		in   value.Value
		want bool
	}{
		{value.Int(1), true},
		{value.Float(1), true},
		{value.Int(0), false},
		{value.Int(5), false},
		{value.Float(0.5), false},
	}
	for _, tt := range numbers {
		got, err := bindOne(t, h, console.NewMapInput(nil).SetOption("flag", tt.in))
		require.NoError(t, err, tt.in.String())
		assert.Equal(t, tt.want, got, tt.in.String())
	}
}

func TestResolver_FloatAndStringCoercion(t *testing.T) {
	f := NewFunc(func(ratio float64) {}, Name("ratio"))
	got, err := bindOne(t, f, console.NewMapInput(nil).SetArgument("ratio", value.String("1.25")))
	require.NoError(t, err)
	assert.Equal(t, 1.25, got)

	got, err = bindOne(t, f, console.NewMapInput(nil).SetArgument("ratio", value.String(" 2.5 ")))
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)

	got, err = bindOne(t, f, console.NewMapInput(nil).SetArgument("ratio", value.Int(3)))
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	for _, bad := range []value.Value{value.String("x"), value.String("NaN"), value.Bool(true)} {
		_, err = bindOne(t, f, console.NewMapInput(nil).SetArgument("ratio", bad))
		assert.ErrorIs(t, err, ErrCoercion, bad.String())
	}

	s := NewFunc(func(label string) {}, Name("label"))
	got, err = bindOne(t, s, console.NewMapInput(nil).SetArgument("label", value.Int(5)))
	require.NoError(t, err)
	assert.Equal(t, "5", got)

	got, err = bindOne(t, s, console.NewMapInput(nil).SetArgument("label", value.Float(0.25)))
	require.NoError(t, err)
	assert.Equal(t, "0.25", got)

	got, err = bindOne(t, s, console.NewMapInput(nil).SetArgument("label", value.Bool(false)))
	require.NoError(t, err)
	assert.Equal(t, "false", got)

	got, err = bindOne(t, s, console.NewMapInput(nil).SetArgument("label", value.Object(High)))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCoercion)
	assert.Nil(t, got)

	got, err = bindOne(t, s, console.NewMapInput(nil).SetArgument("label", value.Object(stringer("hi"))))
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

type stringer string

func (s stringer) String() string { return string(s) }

func TestResolver_ListCoercion(t *testing.T) {
	h := NewFunc(func(ids []int) {}, Name("ids"))

	got, err := bindOne(t, h, console.NewMapInput(nil).SetOption("ids", value.String("1,2,3")))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)

	got, err = bindOne(t, h, console.NewMapInput(nil).SetOption("ids", value.String("")))
	require.NoError(t, err)
	assert.Equal(t, []int{}, got)

	got, err = bindOne(t, h, console.NewMapInput(nil).SetOption("ids", value.Int(9)))
	require.NoError(t, err)
	assert.Equal(t, []int{9}, got)

	_, err = bindOne(t, h, console.NewMapInput(nil).SetOption("ids", value.Strings("1", "x")))
	assert.ErrorIs(t, err, ErrCoercion)

	anyList := NewFunc(func(items []any) {}, Name("items"))
	got, err = bindOne(t, anyList, console.NewMapInput(nil).SetOption("items", value.Strings("a", "b")))
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestResolver_BackedEnum(t *testing.T) {
	h := NewFunc(func(p Priority) {}, Name("priority"))

	got, err := bindOne(t, h, console.NewMapInput(nil).SetArgument("priority", value.String("2")))
	require.NoError(t, err)
	assert.Equal(t, Medium, got)

	got, err = bindOne(t, h, console.NewMapInput(nil).SetArgument("priority", value.Float(3)))
	require.NoError(t, err)
	assert.Equal(t, High, got)

	_, err = bindOne(t, h, console.NewMapInput(nil).SetArgument("priority", value.String("9")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnum)
	assert.Contains(t, err.Error(), "Priority")
	assert.Contains(t, err.Error(), "priority")
}

func TestResolver_NullableEnum(t *testing.T) {
	h := NewFunc(func(p *Priority) {}, Name("priority"))

	got, err := bindOne(t, h, console.NewMapInput(nil).SetArgument("priority", value.String("9")))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = bindOne(t, h, console.NewMapInput(nil).SetArgument("priority", value.Int(1)))
	require.NoError(t, err)
	require.IsType(t, (*Priority)(nil), got)
	assert.Equal(t, Low, *got.(*Priority))
}

func TestResolver_StringBackedEnum(t *testing.T) {
	h := NewFunc(func(l Level) {}, Name("level"))

	got, err := bindOne(t, h, console.NewMapInput(nil).SetOption("level", value.String("debug")))
	require.NoError(t, err)
	assert.Equal(t, Level("debug"), got)

	got, err = bindOne(t, h, console.NewMapInput(nil).SetOption("level", value.Float(1.5)))
	require.NoError(t, err)
	assert.Equal(t, Level("half"), got)
}

func TestResolver_UnitEnum(t *testing.T) {
	h := NewFunc(func(d Direction) {}, Name("dir"))

	got, err := bindOne(t, h, console.NewMapInput(nil).SetArgument("dir", value.String("Down")))
	require.NoError(t, err)
	assert.Equal(t, Down, got)

	_, err = bindOne(t, h, console.NewMapInput(nil).SetArgument("dir", value.String("down")))
	assert.ErrorIs(t, err, ErrEnum)
}

func TestResolver_EnumDefault(t *testing.T) {
	h := NewFunc(func(p Priority) {}, Default("priority", High))
	got, err := bindOne(t, h, console.NewMapInput(nil))
	require.NoError(t, err)
	assert.Equal(t, High, got)
}

func TestResolver_Variadic(t *testing.T) {
	h := NewFunc(func(tags ...string) {}, Name("tags"))

	got, err := bindOne(t, h, console.NewMapInput(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)

	got, err = bindOne(t, h, console.NewMapInput(nil).SetArgument("tags", value.String("one")))
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, got)

	got, err = bindOne(t, h, console.NewMapInput(nil).SetArgument("tags", value.Strings("a", "b")))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestResolver_VariadicInvoke(t *testing.T) {
	var seen []string
	h := NewFunc(func(tags ...string) int {
		seen = tags
		return len(tags)
	}, Name("tags"))

	code, err := NewResolver().Invoke(context.Background(), mustResolve(t, h),
		console.NewMapInput(nil).SetArgument("tags", value.Strings("a", "b")), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestResolver_NameCandidates(t *testing.T) {
	h := NewFunc(func(v string) {}, Name("userName"))

	got, err := bindOne(t, h, console.NewMapInput(nil).SetArgument("user_name", value.String("snake")))
	require.NoError(t, err)
	assert.Equal(t, "snake", got)

	got, err = bindOne(t, h, console.NewMapInput(nil).SetOption("user-name", value.String("kebab")))
	require.NoError(t, err)
	assert.Equal(t, "kebab", got)

	// exact name beats the derived forms, argument beats option
	in := console.NewMapInput(nil).
		SetOption("userName", value.String("opt")).
		SetArgument("userName", value.String("arg")).
		SetArgument("user_name", value.String("snake"))
	got, err = bindOne(t, h, in)
	require.NoError(t, err)
	assert.Equal(t, "arg", got)
}

func TestResolver_DefaultsAndNull(t *testing.T) {
	h := NewFunc(func(greeting string, count *int) {}, Default("greeting", "Hello"), Name("count"))
	args, err := NewResolver().Bind(context.Background(), mustResolve(t, h), console.NewMapInput(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello", args[0])
	assert.Nil(t, args[1])

	// a null input value is a hit, not a miss
	args, err = NewResolver().Bind(context.Background(), mustResolve(t, h),
		console.NewMapInput(nil).SetArgument("greeting", value.Null()), nil)
	require.NoError(t, err)
	assert.Equal(t, "", args[0])
}

func TestResolver_PassThrough(t *testing.T) {
	raw := NewFunc(func(v value.Value) {}, Name("v"))
	got, err := bindOne(t, raw, console.NewMapInput(nil).SetArgument("v", value.Int(3)))
	require.NoError(t, err)
	assert.True(t, value.Int(3).Equal(got.(value.Value)))

	untyped := NewFunc(func(v any) {}, Name("v"))
	got, err = bindOne(t, untyped, console.NewMapInput(nil).SetArgument("v", value.String("x")))
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	typed := NewFunc(func(buf *bytes.Buffer) {}, Name("buf"))
	_, err = bindOne(t, typed, console.NewMapInput(nil).SetArgument("buf", value.String("x")))
	assert.ErrorIs(t, err, ErrArgumentType)

	b := &bytes.Buffer{}
	got, err = bindOne(t, typed, console.NewMapInput(nil).SetArgument("buf", value.Object(b)))
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestResolver_Injection(t *testing.T) {
	var (
		gotCtx   context.Context
		gotIn    console.Input
		gotOut   console.Output
		gotStyle *console.Style
		gotIO    *console.IO
	)
	h := func(ctx context.Context, in console.Input, out console.Output, s *console.Style, io *console.IO) {
		gotCtx, gotIn, gotOut, gotStyle, gotIO = ctx, in, out, s, io
	}

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	in := console.NewMapInput(nil)
	out := console.NewOutput(&bytes.Buffer{}, nil)

	code, err := NewResolver().Invoke(ctx, mustResolve(t, h), in, out)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "v", gotCtx.Value(key{}))
	assert.Same(t, in, gotIn)
	assert.Same(t, out, gotOut)
	require.NotNil(t, gotStyle)
	require.NotNil(t, gotIO)
	assert.Same(t, gotStyle, gotIO.Style())
}

func TestResolver_GreetScenario(t *testing.T) {
	greet := NewFunc(func(io *console.IO, name string, yell bool) int {
		msg := "Hello, " + name
		if yell {
			msg = strings.ToUpper(msg)
		}
		io.Writeln(msg)
		return 0
	}, Name("name"), Default("yell", false))

	c := mustResolve(t, greet)
	r := NewResolver()

	var buf bytes.Buffer
	code, err := r.Invoke(context.Background(), c,
		console.NewMapInput(nil).SetArgument("name", value.String("Ada")).SetOption("yell", value.Bool(true)),
		console.NewOutput(&buf, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "HELLO, ADA\n", buf.String())

	buf.Reset()
	_, err = r.Invoke(context.Background(), c,
		console.NewMapInput(nil).SetArgument("name", value.String("Ada")),
		console.NewOutput(&buf, nil))
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ada\n", buf.String())
}

func TestResolver_Results(t *testing.T) {
	r := NewResolver()
	boom := errors.New("boom")

	code, err := r.Invoke(context.Background(), mustResolve(t, func() int { return 3 }), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, code)

	code, err = r.Invoke(context.Background(), mustResolve(t, func() (int, error) { return 2, boom }), nil, nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, code)

	_, err = r.Invoke(context.Background(), mustResolve(t, func() error { return nil }), nil, nil)
	require.NoError(t, err)

	code, err = r.Invoke(context.Background(), mustResolve(t, func() string { return "ignored" }), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestResolver_NoPartialSuccess(t *testing.T) {
	called := false
	h := NewFunc(func(a int, b int) { called = true }, Name("a"), Name("b"))
	_, err := NewResolver().Invoke(context.Background(), mustResolve(t, h),
		console.NewMapInput(nil).SetArgument("a", value.Int(1)).SetArgument("b", value.String("x")), nil)
	require.Error(t, err)
	assert.False(t, called)
}

func TestResolver_Concurrent(t *testing.T) {
	h := NewFunc(func(n int) int { return n }, Name("n"))
	c := mustResolve(t, h)
	r := NewResolver()

	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			code, err := r.Invoke(context.Background(), c, console.NewMapInput(nil).SetArgument("n", value.Int(int64(i))), nil)
			if err == nil && code != i {
				err = fmt.Errorf("got %d, want %d", code, i)
			}
			errs <- err
		}(i)
	}
	for i := 0; i < 20; i++ {
		assert.NoError(t, <-errs)
	}
}
