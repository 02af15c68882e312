package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ErrInvalidChoice is returned by Choice when the answer matches no option.
var ErrInvalidChoice = errors.New("invalid choice")

var (
	titleColor   = color.New(color.FgYellow, color.Bold)
	commentColor = color.New(color.FgHiBlack)
	questionTint = color.New(color.FgGreen)
)

// block styles, keyed by the label printed in front of the message.
var (
	successBlock = blockStyle{label: "[OK]", c: color.New(color.FgBlack, color.BgGreen)}
	errorBlock   = blockStyle{label: "[ERROR]", c: color.New(color.FgWhite, color.BgRed)}
	warningBlock = blockStyle{label: "[WARNING]", c: color.New(color.FgBlack, color.BgYellow)}
	infoBlock    = blockStyle{label: "[INFO]", c: color.New(color.FgGreen)}
	noteBlock    = blockStyle{label: "! [NOTE]", c: color.New(color.FgYellow)}
	cautionBlock = blockStyle{label: "! [CAUTION]", c: color.New(color.FgWhite, color.BgRed)}
)

type blockStyle struct {
	label string
	c     *color.Color
}

// Style is the styled output helper handed to handlers. It writes to the
// invocation's Output and reads answers from the Input stream.
type Style struct {
	in     Input
	out    Output
	reader *bufio.Reader
}

// NewStyle returns a Style over in and out. in may be nil for output-only use.
func NewStyle(in Input, out Output) *Style {
	return &Style{in: in, out: out}
}

// Output returns the underlying sink.
func (s *Style) Output() Output { return s.out }

// Writeln writes each message on its own line.
func (s *Style) Writeln(messages ...string) {
	for _, m := range messages {
		fmt.Fprintln(s.out, m)
	}
}

// NewLine writes n blank lines (at least one).
func (s *Style) NewLine(n int) {
	if n < 1 {
		n = 1
	}
	fmt.Fprint(s.out, strings.Repeat("\n", n))
}

func (s *Style) Title(message string) {
	s.heading(message, "=")
}

func (s *Style) Section(message string) {
	s.heading(message, "-")
}

func (s *Style) heading(message, underline string) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, titleColor.Sprint(message))
	fmt.Fprintln(s.out, titleColor.Sprint(strings.Repeat(underline, len([]rune(message)))))
	fmt.Fprintln(s.out)
}

func (s *Style) Success(message string) { s.block(successBlock, message) }
func (s *Style) Error(message string)   { s.block(errorBlock, message) }
func (s *Style) Warning(message string) { s.block(warningBlock, message) }
func (s *Style) Info(message string)    { s.block(infoBlock, message) }
func (s *Style) Note(message string)    { s.block(noteBlock, message) }
func (s *Style) Caution(message string) { s.block(cautionBlock, message) }

func (s *Style) block(b blockStyle, message string) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, b.c.Sprintf(" %s %s ", b.label, message))
	fmt.Fprintln(s.out)
}

// Table writes rows aligned under headers.
func (s *Style) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		seps := make([]string, len(headers))
		for i, h := range headers {
			seps[i] = strings.Repeat("-", len([]rune(h)))
		}
		fmt.Fprintln(w, strings.Join(seps, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// Ask prints question and returns the answer line, or def when it is empty.
func (s *Style) Ask(question, def string) (string, error) {
	prompt := " " + questionTint.Sprint(question)
	if def != "" {
		prompt += commentColor.Sprintf(" [%s]", def)
	}
	fmt.Fprintln(s.out, prompt+":")
	fmt.Fprint(s.out, " > ")

	answer, err := s.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question.
func (s *Style) Confirm(question string, def bool) (bool, error) {
	hint := "yes"
	if !def {
		hint = "no"
	}
	answer, err := s.Ask(question+" (yes/no)", hint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return def, nil
}

// Choice asks the user to pick one of choices, by position or by value.
func (s *Style) Choice(question string, choices []string, def string) (string, error) {
	fmt.Fprintln(s.out, " "+questionTint.Sprint(question)+commentColor.Sprintf(" [%s]", def)+":")
	for i, c := range choices {
		fmt.Fprintf(s.out, "  [%d] %s\n", i, c)
	}
	fmt.Fprint(s.out, " > ")

	answer, err := s.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		answer = def
	}
	if i, err := strconv.Atoi(answer); err == nil && i >= 0 && i < len(choices) {
		return choices[i], nil
	}
	for _, c := range choices {
		if c == answer {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidChoice, answer)
}

func (s *Style) readLine() (string, error) {
	if s.reader == nil {
		var r io.Reader = strings.NewReader("")
		if s.in != nil && s.in.Stream() != nil {
			r = s.in.Stream()
		}
		s.reader = bufio.NewReader(r)
	}
	line, err := s.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
