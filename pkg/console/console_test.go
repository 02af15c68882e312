package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func newTestIO(input string) (*IO, *bytes.Buffer) {
	var out bytes.Buffer
	in := NewMapInput(strings.NewReader(input))
	return NewIO(NewStyle(in, NewOutput(&out, &out))), &out
}

func TestMapInput(t *testing.T) {
	in := NewMapInput(nil).
		SetArgument("name", value.String("Ada")).
		SetArgument("files", value.Strings("a", "b")).
		SetOption("yell", value.Bool(true))

	assert.True(t, in.HasArgument("name"))
	assert.False(t, in.HasArgument("yell"))
	assert.True(t, in.HasOption("yell"))
	assert.True(t, in.Argument("missing").IsNull())

	in.SetArgument("name", value.String("Grace"))
	s, _ := in.Argument("name").AsString()
	assert.Equal(t, "Grace", s)

	args := in.Arguments()
	require.Len(t, args, 2)
	assert.Equal(t, "name", args[0].Name)
	assert.Equal(t, "files", args[1].Name)
	assert.Len(t, in.Options(), 1)
}

func TestStyle_Blocks(t *testing.T) {
	io, out := newTestIO("")
	io.Success("done")
	io.Error("failed")
	io.Note("careful")

	text := out.String()
	assert.Contains(t, text, " [OK] done ")
	assert.Contains(t, text, " [ERROR] failed ")
	assert.Contains(t, text, " ! [NOTE] careful ")
}

func TestStyle_TitleAndTable(t *testing.T) {
	io, out := newTestIO("")
	io.Title("Deploy")
	io.Table([]string{"NAME", "ENV"}, [][]string{{"api", "prod"}, {"worker", "staging"}})

	text := out.String()
	assert.Contains(t, text, "Deploy\n======")
	assert.Contains(t, text, "NAME    ENV\n----    ---\napi     prod\nworker  staging\n")
}

func TestStyle_Ask(t *testing.T) {
	io, _ := newTestIO("Ada\n\n")

	answer, err := io.Ask("Name?", "anon")
	require.NoError(t, err)
	assert.Equal(t, "Ada", answer)

	answer, err = io.Ask("Name?", "anon")
	require.NoError(t, err)
	assert.Equal(t, "anon", answer)

	answer, err = io.Ask("Name?", "anon")
	require.NoError(t, err)
	assert.Equal(t, "anon", answer)
}

func TestStyle_Confirm(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"yes\n", false, true},
		{"N\n", true, false},
		{"\n", true, true},
		{"maybe\n", false, false},
	}
	for _, tt := range tests {
		io, _ := newTestIO(tt.input)
		got, err := io.Confirm("Continue?", tt.def)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestStyle_Choice(t *testing.T) {
	choices := []string{"dev", "staging", "prod"}

	io, out := newTestIO("2\n")
	got, err := io.Choice("Environment", choices, "dev")
	require.NoError(t, err)
	assert.Equal(t, "prod", got)
	assert.Contains(t, out.String(), "  [1] staging\n")

	io, _ = newTestIO("staging\n")
	got, err = io.Choice("Environment", choices, "dev")
	require.NoError(t, err)
	assert.Equal(t, "staging", got)

	io, _ = newTestIO("\n")
	got, err = io.Choice("Environment", choices, "dev")
	require.NoError(t, err)
	assert.Equal(t, "dev", got)

	io, _ = newTestIO("qa\n")
	_, err = io.Choice("Environment", choices, "dev")
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestNotices(t *testing.T) {
	n := WarningNotice("The file x.yaml already exists.", "Use --force to overwrite it.")
	assert.Equal(t, "The file x.yaml already exists. (Use --force to overwrite it.)", n.Text())
	assert.Equal(t, "plain", InfoNotice("plain", "").Text())

	io, out := newTestIO("")
	io.Render(SuccessNotice("Created", "a.yaml"))
	assert.Contains(t, out.String(), " [OK] Created (a.yaml) ")

	out.Reset()
	io.WithRenderer(BadgeRenderer{}).Render(ErrorNotice("Failed", "boom"))
	assert.Equal(t, "✖ error Failed boom\n", out.String())

	out.Reset()
	io.Render(InfoNotice("still styled", ""))
	assert.Contains(t, out.String(), " [INFO] still styled ")
}

func TestStreamOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	o := NewOutput(&out, &errOut)
	o.Write([]byte("hi"))
	o.Stderr().Write([]byte("oops"))
	assert.Equal(t, "hi", out.String())
	assert.Equal(t, "oops", errOut.String())
}
