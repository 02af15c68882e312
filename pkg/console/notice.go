package console

import (
	"fmt"

	"github.com/fatih/color"
)

// NoticeType classifies a Notice.
type NoticeType string

const (
	NoticeSuccess NoticeType = "success"
	NoticeError   NoticeType = "error"
	NoticeWarning NoticeType = "warning"
	NoticeInfo    NoticeType = "info"
)

// Color returns the foreground color used for badges of this type.
func (t NoticeType) Color() color.Attribute {
	switch t {
	case NoticeSuccess:
		return color.FgGreen
	case NoticeError:
		return color.FgRed
	case NoticeWarning:
		return color.FgYellow
	default:
		return color.FgBlue
	}
}

// Icon returns the badge glyph for this type.
func (t NoticeType) Icon() string {
	switch t {
	case NoticeSuccess:
		return "✔"
	case NoticeError:
		return "✖"
	case NoticeWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// Notice is a one-line status message with optional detail.
type Notice struct {
	Type    NoticeType
	Message string
	Detail  string
}

func SuccessNotice(message, detail string) Notice { return Notice{NoticeSuccess, message, detail} }
func ErrorNotice(message, detail string) Notice   { return Notice{NoticeError, message, detail} }
func WarningNotice(message, detail string) Notice { return Notice{NoticeWarning, message, detail} }
func InfoNotice(message, detail string) Notice    { return Notice{NoticeInfo, message, detail} }

// Text joins message and detail.
func (n Notice) Text() string {
	if n.Detail == "" {
		return n.Message
	}
	return fmt.Sprintf("%s (%s)", n.Message, n.Detail)
}

// NoticeRenderer writes a notice through an IO.
type NoticeRenderer interface {
	Render(n Notice, io *IO)
}

// StyleRenderer maps notices onto the matching styled block.
type StyleRenderer struct{}

func (StyleRenderer) Render(n Notice, io *IO) {
	switch n.Type {
	case NoticeSuccess:
		io.Success(n.Text())
	case NoticeError:
		io.Error(n.Text())
	case NoticeWarning:
		io.Warning(n.Text())
	default:
		io.Info(n.Text())
	}
}

// BadgeRenderer writes a single colored line: icon, type label, message.
type BadgeRenderer struct{}

func (BadgeRenderer) Render(n Notice, io *IO) {
	badge := color.New(n.Type.Color(), color.Bold).Sprintf("%s %s", n.Type.Icon(), n.Type)
	line := badge + " " + n.Message
	if n.Detail != "" {
		line += " " + color.New(color.FgHiBlack).Sprint(n.Detail)
	}
	io.Writeln(line)
}
