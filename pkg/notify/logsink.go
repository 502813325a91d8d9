package notify

import "context"

// logSink records notices through the structured logger.
type logSink struct {
	id  string
	log Logger
}

func newLogSink(_ context.Context, cfg SinkConfig, log Logger) (Sink, error) {
	return &logSink{id: cfg.ID, log: ensureLogger(log)}, nil
}

func (l *logSink) ID() string   { return l.id }
func (l *logSink) Type() string { return TypeLog }

func (l *logSink) Send(_ context.Context, n Notice) error {
	l.log.WarnObj("user notified", "notice", n)
	return nil
}
