package notify

import "context"

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Sink delivers notices to one destination (console, webhook, queue, ...).
type Sink interface {
	ID() string
	Type() string
	Send(ctx context.Context, n Notice) error
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, message string)

// Notify calls f.
func (f Func) Notify(ctx context.Context, message string) {
	if f != nil {
		f(ctx, message)
	}
}
