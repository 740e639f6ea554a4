package progress

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Console prints progress lines to a terminal. Completion messages (those
// starting with "✅") are highlighted.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	step   *color.Color
	done   *color.Color
	prefix string
}

// NewConsole returns a console reporter writing to w. Colors follow
// fatih/color's terminal detection (disabled when w is not a TTY or NO_COLOR
// is set).
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:      w,
		step:   color.New(color.FgCyan),
		done:   color.New(color.FgGreen, color.Bold),
		prefix: "» ",
	}
}

// Report implements Reporter.
func (c *Console) Report(_ context.Context, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.HasPrefix(msg, "✅") {
		c.done.Fprintln(c.w, msg)
		return
	}
	c.step.Fprint(c.w, c.prefix)
	io.WriteString(c.w, msg+"\n")
}
