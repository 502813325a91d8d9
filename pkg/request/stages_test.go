package request

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

type staticToken struct {
	token string
	ok    bool
	err   error
}

func (s staticToken) Token() (string, bool, error) { return s.token, s.ok, s.err }

// traceStage records the order in which the pipeline calls it.
type traceStage struct {
	name  string
	trace *[]string
	fail  bool
}

func (s traceStage) OnRequest(context.Context, *Call) error {
	*s.trace = append(*s.trace, s.name+".request")
	if s.fail {
		return errors.New(s.name + " failed")
	}
	return nil
}

func (s traceStage) OnRequestError(_ context.Context, _ *Call, err error) error {
	*s.trace = append(*s.trace, s.name+".requestError")
	return err
}

func (s traceStage) OnResponse(_ context.Context, _ *Call, r *Reply) (*Reply, error) {
	*s.trace = append(*s.trace, s.name+".response")
	return r, nil
}

func (s traceStage) OnResponseError(_ context.Context, _ *Call, err error) (*Reply, error) {
	*s.trace = append(*s.trace, s.name+".responseError")
	return nil, err
}

func TestPipelineChainsStagesInOrder(t *testing.T) {
	var trace []string
	tr := &fakeTransport{resp: fakeResponse{status: 200, body: `{"code":0,"data":{}}`}}
	c, err := New(tr, Pipeline{
		Request:  []RequestStage{traceStage{name: "a", trace: &trace, fail: true}, traceStage{name: "b", trace: &trace}},
		Response: []ResponseStage{traceStage{name: "c", trace: &trace}},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.Do(context.Background(), http.MethodGet, "/x", nil); err == nil || err.Error() != "a failed" {
		t.Fatalf("expected stage a failure, got %v", err)
	}
	want := []string{"a.request", "b.requestError"}
	if !reflect.DeepEqual(trace, want) {
		t.Fatalf("trace = %v want %v", trace, want)
	}
	if len(tr.requests) != 0 {
		t.Fatalf("failed request stage must not dispatch")
	}
}

func TestPipelineBusinessErrorReachesLaterStages(t *testing.T) {
	var trace []string
	n := &recordingNotifier{}
	tr := &fakeTransport{resp: fakeResponse{status: 200, body: `{"code":3,"message":"locked"}`}}
	c, _ := New(tr, Pipeline{
		Response: []ResponseStage{EnvelopeStage{Notifier: n}, traceStage{name: "after", trace: &trace}},
	})

	_, err := c.Do(context.Background(), http.MethodGet, "/x", nil)
	if !IsBusiness(err) {
		t.Fatalf("expected business error, got %v", err)
	}
	if !reflect.DeepEqual(trace, []string{"after.responseError"}) {
		t.Fatalf("trace = %v", trace)
	}
	if len(n.all()) != 1 {
		t.Fatalf("expected a single notification, got %v", n.all())
	}
}

func TestBearerTokenAttachesHeader(t *testing.T) {
	call := &Call{Method: http.MethodGet, URL: "/user/info"}
	if err := (BearerToken{Source: staticToken{token: "t1", ok: true}}).OnRequest(context.Background(), call); err != nil {
		t.Fatalf("OnRequest: %v", err)
	}
	if got, _ := call.Options.Header("authorization"); got != "Bearer t1" {
		t.Fatalf("Authorization = %q", got)
	}
}

func TestBearerTokenKeepsExplicitHeader(t *testing.T) {
	call := &Call{Options: buildOptions([]Option{WithHeader("Authorization", "Basic x")})}
	if err := (BearerToken{Source: staticToken{token: "t1", ok: true}}).OnRequest(context.Background(), call); err != nil {
		t.Fatalf("OnRequest: %v", err)
	}
	if got := call.Options.Headers["Authorization"]; got != "Basic x" {
		t.Fatalf("Authorization overwritten: %q", got)
	}
}

func TestBearerTokenSkipsWithoutSession(t *testing.T) {
	call := &Call{}
	if err := (BearerToken{Source: staticToken{}}).OnRequest(context.Background(), call); err != nil {
		t.Fatalf("OnRequest: %v", err)
	}
	if len(call.Options.Headers) != 0 {
		t.Fatalf("unexpected headers %v", call.Options.Headers)
	}
}

func TestBearerTokenFailureIsNotifiedAsLocalError(t *testing.T) {
	n := &recordingNotifier{}
	tr := &fakeTransport{}
	c, _ := New(tr, Pipeline{
		Request: []RequestStage{BearerToken{Source: staticToken{err: errors.New("db locked")}}, NotifyStage{Notifier: n}},
	})

	_, err := c.Do(context.Background(), http.MethodGet, "/user/info", nil)
	if err == nil || !strings.Contains(err.Error(), "db locked") {
		t.Fatalf("expected token error, got %v", err)
	}
	if msgs := n.all(); len(msgs) != 1 || msgs[0] != err.Error() {
		t.Fatalf("notifications = %v", msgs)
	}
	if len(tr.requests) != 0 {
		t.Fatalf("request should not be dispatched")
	}
}

func TestLogoutOnUnauthorized(t *testing.T) {
	logouts := 0
	stage := LogoutOnUnauthorized{Logout: func(context.Context) error {
		logouts++
		return errors.New("store closed")
	}}
	call := &Call{URL: "/user/info"}

	orig := &StatusError{StatusCode: http.StatusUnauthorized}
	if _, err := stage.OnResponseError(context.Background(), call, orig); err != orig {
		t.Fatalf("expected original error, got %v", err)
	}
	if _, err := stage.OnResponseError(context.Background(), call, &StatusError{StatusCode: http.StatusForbidden}); err == nil {
		t.Fatalf("expected error to pass through")
	}
	if _, err := stage.OnResponseError(context.Background(), call, &BusinessError{Code: 401, Message: "x"}); err == nil {
		t.Fatalf("expected error to pass through")
	}
	if logouts != 1 {
		t.Fatalf("expected one logout, got %d", logouts)
	}
}

func TestSummarizeBody(t *testing.T) {
	html := http.Header{"Content-Type": []string{"text/html; charset=utf-8"}}
	page := `<html><head><title>502 Bad Gateway</title></head><body><h1>502</h1></body></html>`
	if got := summarizeBody(html, []byte(page)); got != "502 Bad Gateway" {
		t.Fatalf("title summary = %q", got)
	}
	noTitle := `<html><body><h1>Oops</h1>
	<p>try   again</p></body></html>`
	if got := summarizeBody(html, []byte(noTitle)); got != "Oops try again" {
		t.Fatalf("text summary = %q", got)
	}
	if got := summarizeBody(http.Header{}, []byte(strings.Repeat("x", 300))); len(got) != maxSnippetLen+3 {
		t.Fatalf("expected truncation, got len %d", len(got))
	}
	if got := summarizeBody(http.Header{}, nil); got != "" {
		t.Fatalf("empty body summary = %q", got)
	}
}

func TestEnvelopeStageWithoutMessagesUsesEnglishTable(t *testing.T) {
	n := &recordingNotifier{}
	stage := EnvelopeStage{Notifier: n}
	orig := &StatusError{Method: http.MethodGet, URL: "/x", StatusCode: http.StatusForbidden}

	if _, err := stage.OnResponseError(context.Background(), &Call{Method: http.MethodGet, URL: "/x"}, orig); err != orig {
		t.Fatalf("expected original error, got %v", err)
	}
	if msgs := n.all(); !reflect.DeepEqual(msgs, []string{"access denied"}) {
		t.Fatalf("notifications = %v", msgs)
	}
}
