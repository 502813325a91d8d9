package notify

import (
	"context"
	"errors"
	"fmt"
)

// Fanout dispatches notices to all configured sinks.
type Fanout struct {
	source string
	sinks  []Sink
	log    Logger
}

// NewFanout builds a dispatcher that fans out notices across sinks.
func NewFanout(source string, sinks []Sink, log Logger) *Fanout {
	cp := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s == nil {
			continue
		}
		cp = append(cp, s)
	}
	return &Fanout{source: source, sinks: cp, log: ensureLogger(log)}
}

// Notify sends message to every sink. Delivery failures are logged only.
func (f *Fanout) Notify(ctx context.Context, message string) {
	if f == nil {
		return
	}
	if _, err := f.Send(ctx, NewNotice(f.source, message)); err != nil {
		f.log.WarnObj("notification delivery incomplete", "notify_error", map[string]any{
			"message": message,
			"error":   err.Error(),
		})
	}
}

// Send forwards the notice to every registered sink.
// It returns the number of sinks that successfully handled the notice.
func (f *Fanout) Send(ctx context.Context, n Notice) (int, error) {
	if f == nil || len(f.sinks) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, s := range f.sinks {
		if err := s.Send(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s sink[%s]: %w", s.Type(), s.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Size returns the number of active sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}
