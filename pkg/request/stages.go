package request

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Adda-Baaj/portal-client/pkg/l10n"
)

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Messages maps an HTTP status (0 for no response) to a user-facing text.
type Messages interface {
	StatusMessage(status int) string
}

// NotifyStage reports pre-dispatch failures to the user and passes them on.
type NotifyStage struct {
	Notifier Notifier
}

func (NotifyStage) OnRequest(context.Context, *Call) error { return nil }

func (s NotifyStage) OnRequestError(ctx context.Context, _ *Call, err error) error {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, err.Error())
	}
	return err
}

// EnvelopeStage unwraps {code, message, data} bodies and maps transport
// failures to user-facing messages. Each failure is notified once.
type EnvelopeStage struct {
	Notifier Notifier
	Messages Messages
	Log      Logger
}

func (s EnvelopeStage) OnResponse(ctx context.Context, call *Call, reply *Reply) (*Reply, error) {
	env, err := decodeEnvelope(reply.Body)
	if err != nil {
		err = fmt.Errorf("decode response envelope: %w", err)
		s.notify(ctx, err.Error())
		return nil, err
	}
	if !env.OK() {
		berr := env.failure()
		s.log().DebugObj("business failure", "request_business_error", map[string]any{
			"method":       call.Method,
			"url":          call.URL,
			"code":         berr.Code,
			"missing_code": berr.MissingCode,
			"message":      berr.Message,
		})
		s.notify(ctx, berr.Message)
		return nil, berr
	}
	return &Reply{StatusCode: reply.StatusCode, Header: reply.Header, Body: env.Data}, nil
}

func (s EnvelopeStage) OnResponseError(ctx context.Context, call *Call, err error) (*Reply, error) {
	status := StatusOf(err)
	fields := map[string]any{
		"method": call.Method,
		"url":    call.URL,
		"status": status,
		"error":  err.Error(),
	}
	var se *StatusError
	if errors.As(err, &se) {
		if detail := summarizeBody(se.Header, se.Body); detail != "" {
			fields["detail"] = detail
		}
	}
	s.log().WarnObj("transport failure", "request_transport_error", fields)

	messages := s.Messages
	if messages == nil {
		messages = l10n.Default()
	}
	s.notify(ctx, messages.StatusMessage(status))
	return nil, err
}

func (s EnvelopeStage) notify(ctx context.Context, message string) {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, message)
	}
}

func (s EnvelopeStage) log() Logger { return ensureLogger(s.Log) }

// TokenSource yields the current session token, if any.
type TokenSource interface {
	Token() (string, bool, error)
}

// BearerToken attaches "Authorization: Bearer <token>" unless the call
// already carries an Authorization header.
type BearerToken struct {
	Source TokenSource
}

func (b BearerToken) OnRequest(_ context.Context, call *Call) error {
	if b.Source == nil {
		return nil
	}
	if _, ok := call.Options.Header("Authorization"); ok {
		return nil
	}
	token, ok, err := b.Source.Token()
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}
	if !ok || strings.TrimSpace(token) == "" {
		return nil
	}
	WithHeader("Authorization", "Bearer "+token)(&call.Options)
	return nil
}

func (BearerToken) OnRequestError(_ context.Context, _ *Call, err error) error { return err }

// LogoutOnUnauthorized runs Logout when the server rejects the session with
// HTTP 401. The original error is always passed on.
type LogoutOnUnauthorized struct {
	Logout func(ctx context.Context) error
	Log    Logger
}

func (LogoutOnUnauthorized) OnResponse(_ context.Context, _ *Call, reply *Reply) (*Reply, error) {
	return reply, nil
}

func (l LogoutOnUnauthorized) OnResponseError(ctx context.Context, call *Call, err error) (*Reply, error) {
	if l.Logout != nil && StatusOf(err) == http.StatusUnauthorized {
		if lerr := l.Logout(ctx); lerr != nil {
			ensureLogger(l.Log).WarnObj("logout after 401 failed", "session_error", map[string]any{
				"url":   call.URL,
				"error": lerr.Error(),
			})
		}
	}
	return nil, err
}
