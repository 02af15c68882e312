package console

// IO is the facade most handlers ask for. It forwards to a Style and adds
// notice rendering.
type IO struct {
	style    *Style
	renderer NoticeRenderer
}

// NewIO wraps style. Notices are rendered with StyleRenderer.
func NewIO(style *Style) *IO {
	return &IO{style: style, renderer: StyleRenderer{}}
}

// WithRenderer returns a copy of io that renders notices with r.
func (io *IO) WithRenderer(r NoticeRenderer) *IO {
	return &IO{style: io.style, renderer: r}
}

func (io *IO) Style() *Style                           { return io.style }
func (io *IO) Writeln(messages ...string)              { io.style.Writeln(messages...) }
func (io *IO) NewLine(n int)                           { io.style.NewLine(n) }
func (io *IO) Title(message string)                    { io.style.Title(message) }
func (io *IO) Section(message string)                  { io.style.Section(message) }
func (io *IO) Success(message string)                  { io.style.Success(message) }
func (io *IO) Error(message string)                    { io.style.Error(message) }
func (io *IO) Warning(message string)                  { io.style.Warning(message) }
func (io *IO) Info(message string)                     { io.style.Info(message) }
func (io *IO) Note(message string)                     { io.style.Note(message) }
func (io *IO) Caution(message string)                  { io.style.Caution(message) }
func (io *IO) Table(headers []string, rows [][]string) { io.style.Table(headers, rows) }

func (io *IO) Ask(question, def string) (string, error) {
	return io.style.Ask(question, def)
}

func (io *IO) Confirm(question string, def bool) (bool, error) {
	return io.style.Confirm(question, def)
}

func (io *IO) Choice(question string, choices []string, def string) (string, error) {
	return io.style.Choice(question, choices, def)
}

// Render writes n with the configured renderer.
func (io *IO) Render(n Notice) {
	io.renderer.Render(n, io)
}
