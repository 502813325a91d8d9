package notify

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// consoleSink renders notices as a one-line toast on stderr.
type consoleSink struct {
	id    string
	mu    sync.Mutex
	out   io.Writer
	style *color.Color
}

func newConsoleSink(_ context.Context, cfg SinkConfig, _ Logger) (Sink, error) {
	return NewConsoleSink(cfg.ID, os.Stderr), nil
}

// NewConsoleSink builds a console sink writing to out.
func NewConsoleSink(id string, out io.Writer) Sink {
	if id == "" {
		id = TypeConsole
	}
	return &consoleSink{
		id:    id,
		out:   out,
		style: color.New(color.FgHiWhite, color.BgRed, color.Bold),
	}
}

func (c *consoleSink) ID() string   { return c.id }
func (c *consoleSink) Type() string { return TypeConsole }

func (c *consoleSink) Send(_ context.Context, n Notice) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.style.Fprint(c.out, " ✖ "); err != nil {
		return err
	}
	_, err := color.New(color.FgRed).Fprintf(c.out, " %s\n", n.Message)
	return err
}
