// Package request is the single point of HTTP dispatch for the portal API.
// It runs every call through an explicit pipeline of request and response
// stages, unwraps {code, message, data} envelopes and surfaces transport and
// business failures through one error return.
package request

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Adda-Baaj/portal-client/pkg/httpclient"
	"github.com/Adda-Baaj/portal-client/pkg/l10n"
)

// Client owns a configured transport and the pipeline applied to it.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	transport httpclient.Client
	pipeline  Pipeline
}

// New builds a Client over transport with an explicit pipeline.
func New(transport httpclient.Client, pipeline Pipeline) (*Client, error) {
	if transport == nil {
		return nil, errors.New("request: transport must not be nil")
	}
	p := Pipeline{
		Request:  append([]RequestStage(nil), pipeline.Request...),
		Response: append([]ResponseStage(nil), pipeline.Response...),
		Notifier: pipeline.Notifier,
	}
	return &Client{transport: transport, pipeline: p}, nil
}

// DefaultPipeline is the standard stage list: every failing call notifies
// the user exactly once. A nil messages uses the built-in English table.
func DefaultPipeline(notifier Notifier, messages Messages, log Logger) Pipeline {
	if messages == nil {
		messages = l10n.Default()
	}
	return Pipeline{
		Request:  []RequestStage{NotifyStage{Notifier: notifier}},
		Response: []ResponseStage{EnvelopeStage{Notifier: notifier, Messages: messages, Log: log}},
		Notifier: notifier,
	}
}

// Transport returns the underlying transport, bypassing the pipeline.
func (c *Client) Transport() httpclient.Client { return c.transport }

// Do sends one call through the pipeline and returns the unwrapped reply.
func (c *Client) Do(ctx context.Context, method, url string, body any, opts ...Option) (*Reply, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	call := &Call{
		Method:  strings.ToUpper(strings.TrimSpace(method)),
		URL:     url,
		Body:    body,
		Options: buildOptions(opts),
	}

	if err := c.pipeline.runRequest(ctx, call, validateCall(call)); err != nil {
		return nil, err
	}

	reply, err := c.dispatch(ctx, call)
	return c.pipeline.runResponse(ctx, call, reply, err)
}

func (c *Client) dispatch(ctx context.Context, call *Call) (*Reply, error) {
	resp, err := c.transport.Do(ctx, httpclient.Request{
		Method:  call.Method,
		URL:     call.URL,
		Headers: call.Options.Headers,
		Query:   call.Options.Query,
		Body:    call.Body,
	})
	if err != nil {
		return nil, err
	}
	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, &StatusError{
			Method:     call.Method,
			URL:        call.URL,
			StatusCode: status,
			Header:     resp.Header(),
			Body:       resp.Body(),
		}
	}
	return &Reply{StatusCode: status, Header: resp.Header(), Body: resp.Body()}, nil
}

func validateCall(call *Call) error {
	switch call.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodHead:
	default:
		return fmt.Errorf("unsupported request method %q", call.Method)
	}
	if strings.TrimSpace(call.URL) == "" {
		return errors.New("request url is empty")
	}
	if call.Body != nil {
		if _, err := httpclient.JSON.Marshal(call.Body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}
	return nil
}
