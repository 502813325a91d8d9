package notify

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Build loads the sinks declared in path and returns a Fanout over the
// enabled ones together with the built sinks, so callers can close them.
// A missing or empty path falls back to a single console sink.
func Build(ctx context.Context, path, source string, log Logger) (*Fanout, []Sink, error) {
	log = ensureLogger(log)

	cfgs, err := sinkConfigs(path)
	if err != nil {
		return nil, nil, err
	}
	if len(cfgs) == 0 {
		log.WarnObj("no notifiers configured; using console", "notifiers_file", path)
		cfgs = []SinkConfig{{ID: TypeConsole, Type: TypeConsole}}
	}

	sinks, err := BuildAll(ctx, DefaultRegistry(), cfgs, log)
	if err != nil {
		return nil, nil, fmt.Errorf("build notifiers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(sinks))
	for _, s := range sinks {
		summaries = append(summaries, map[string]string{"id": s.ID(), "type": s.Type()})
	}
	log.InfoObj("notifiers loaded", "notifiers_meta", map[string]any{
		"count": len(summaries),
		"sinks": summaries,
	})

	return NewFanout(source, sinks, log), sinks, nil
}

func sinkConfigs(path string) ([]SinkConfig, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	reg, err := LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load notifiers registry: %w", err)
	}
	return reg.Enabled(), nil
}
