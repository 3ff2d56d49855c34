package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Style tags a status line. Each style maps to one terminal color.
type Style int

const (
	StyleError Style = iota
	StyleInfo
	StyleWarning
	StyleAction
	StyleTell
)

var styleColors = map[Style]text.Colors{
	StyleError:   {text.FgRed},
	StyleInfo:    {text.FgWhite},
	StyleWarning: {text.FgYellow},
	StyleAction:  {text.FgGreen},
	StyleTell:    {text.FgBlue},
}

// String returns the lowercase name of the style
func (s Style) String() string {
	switch s {
	case StyleError:
		return "error"
	case StyleInfo:
		return "info"
	case StyleWarning:
		return "warning"
	case StyleAction:
		return "action"
	case StyleTell:
		return "tell"
	default:
		return "unknown"
	}
}

// Console prints color-tagged status lines for the interactive front-ends
type Console struct {
	out        io.Writer
	ShowColors bool
	Verbose    bool
	mu         sync.Mutex
}

// New creates a console writing to out
func New(out io.Writer) *Console {
	return &Console{
		out:        out,
		ShowColors: true,
	}
}

// Writer returns the underlying writer
func (c *Console) Writer() io.Writer {
	return c.out
}

// Line prints msg on its own line with the given style
func (c *Console) Line(style Style, format string, args ...interface{}) {
	c.write(style, fmt.Sprintf(format, args...)+"\n")
}

// Inline prints msg without a trailing newline, used for inline input prompts
func (c *Console) Inline(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) write(style Style, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ShowColors {
		fmt.Fprint(c.out, msg)
		return
	}
	// keep the newline outside the escape sequence
	body := msg
	nl := ""
	if n := len(body); n > 0 && body[n-1] == '\n' {
		body, nl = body[:n-1], "\n"
	}
	fmt.Fprint(c.out, styleColors[style].Sprint(body)+nl)
}

// Error prints an error-styled line
func (c *Console) Error(format string, args ...interface{}) {
	c.Line(StyleError, format, args...)
}

// Info prints an info-styled line
func (c *Console) Info(format string, args ...interface{}) {
	c.Line(StyleInfo, format, args...)
}

// Warning prints a warning-styled line
func (c *Console) Warning(format string, args ...interface{}) {
	c.Line(StyleWarning, format, args...)
}

// Action prints an action-styled line
func (c *Console) Action(format string, args ...interface{}) {
	c.Line(StyleAction, format, args...)
}

// Tell prints a tell-styled line
func (c *Console) Tell(format string, args ...interface{}) {
	c.Line(StyleTell, format, args...)
}

// Debug prints an info-styled line only in verbose mode
func (c *Console) Debug(format string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.Line(StyleInfo, "[DEBUG] "+format, args...)
}
