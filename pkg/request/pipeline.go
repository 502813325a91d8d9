package request

import (
	"context"
	"net/http"
)

// Call is one outbound request as seen by the pipeline.
type Call struct {
	Method  string
	URL     string
	Body    any
	Options Options
}

// Reply is the response as it moves through the response stages. Stages
// may replace Body; the envelope stage swaps it for the envelope's data.
type Reply struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// RequestStage runs before dispatch. OnRequestError is called instead of
// OnRequest when an earlier step already failed; returning nil recovers.
type RequestStage interface {
	OnRequest(ctx context.Context, call *Call) error
	OnRequestError(ctx context.Context, call *Call, err error) error
}

// ResponseStage runs after dispatch. OnResponseError receives the transport
// error or the error raised by an earlier stage.
type ResponseStage interface {
	OnResponse(ctx context.Context, call *Call, reply *Reply) (*Reply, error)
	OnResponseError(ctx context.Context, call *Call, err error) (*Reply, error)
}

// Pipeline is the ordered list of stages applied to every call. Notifier
// receives failures raised after the stages ran, such as a payload that does
// not decode into the caller's type.
type Pipeline struct {
	Request  []RequestStage
	Response []ResponseStage
	Notifier Notifier
}

func (p Pipeline) notify(ctx context.Context, message string) {
	if p.Notifier != nil {
		p.Notifier.Notify(ctx, message)
	}
}

func (p Pipeline) runRequest(ctx context.Context, call *Call, err error) error {
	for _, stage := range p.Request {
		if err != nil {
			err = stage.OnRequestError(ctx, call, err)
		} else {
			err = stage.OnRequest(ctx, call)
		}
	}
	return err
}

func (p Pipeline) runResponse(ctx context.Context, call *Call, reply *Reply, err error) (*Reply, error) {
	for _, stage := range p.Response {
		if err != nil {
			reply, err = stage.OnResponseError(ctx, call, err)
		} else {
			reply, err = stage.OnResponse(ctx, call, reply)
		}
	}
	return reply, err
}
