package user_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Adda-Baaj/portal-client/internal/mockserver"
	"github.com/Adda-Baaj/portal-client/pkg/api/user"
	"github.com/Adda-Baaj/portal-client/pkg/httpclient"
	"github.com/Adda-Baaj/portal-client/pkg/request"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

type memToken struct{ token string }

func (m *memToken) Token() (string, bool, error) { return m.token, m.token != "", nil }

func newAPI(t *testing.T, baseURL string, pipeline request.Pipeline) *user.API {
	t.Helper()
	client, err := request.New(httpclient.NewRestyClient(baseURL, 3*time.Second), pipeline)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return user.New(client)
}

func TestGetUserInfoUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/user/info" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if body, _ := io.ReadAll(r.Body); len(body) != 0 {
			t.Errorf("GET must not carry a body, got %s", body)
		}
		_, _ = w.Write([]byte(`{"code":0,"message":"ok","data":{"id":1,"name":"alice"}}`))
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	api := newAPI(t, srv.URL+"/api", request.DefaultPipeline(n, nil, nil))

	info, err := api.GetUserInfo(context.Background())
	if err != nil {
		t.Fatalf("GetUserInfo: %v", err)
	}
	if !reflect.DeepEqual(info, user.UserInfoRes{ID: 1, Name: "alice"}) {
		t.Fatalf("unexpected info %+v", info)
	}
	if len(n.messages) != 0 {
		t.Fatalf("unexpected notifications %v", n.messages)
	}
}

func TestLoginPostsBodyAndUnwraps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Method != http.MethodPost || r.URL.Path != "/api/user/login" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if !strings.Contains(string(body), `"username":"alice"`) || !strings.Contains(string(body), `"password":"secret"`) {
			t.Errorf("unexpected body %s", body)
		}
		_, _ = w.Write([]byte(`{"code":0,"message":"ok","data":{"token":"t-1","expiresIn":60}}`))
	}))
	defer srv.Close()

	api := newAPI(t, srv.URL+"/api", request.DefaultPipeline(nil, nil, nil))
	res, err := api.Login(context.Background(), user.LoginData{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "t-1" || res.ExpiresIn != 60 {
		t.Fatalf("unexpected login result %+v", res)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":1001,"message":"bad credentials","data":null}`))
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	api := newAPI(t, srv.URL+"/api", request.DefaultPipeline(n, nil, nil))

	_, err := api.Login(context.Background(), user.LoginData{Username: "alice", Password: "nope"})
	if err == nil || err.Error() != "bad credentials" {
		t.Fatalf("expected bad credentials, got %v", err)
	}
	if !reflect.DeepEqual(n.messages, []string{"bad credentials"}) {
		t.Fatalf("notifications = %v", n.messages)
	}
}

func TestUnauthorizedWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	api := newAPI(t, srv.URL+"/api", request.DefaultPipeline(n, nil, nil))

	_, err := api.GetUserInfo(context.Background())
	var se *request.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected original 401 transport error, got %v", err)
	}
	if !reflect.DeepEqual(n.messages, []string{"token invalid, please re-authenticate"}) {
		t.Fatalf("notifications = %v", n.messages)
	}
}

func TestLoginRawBypassesPipeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":1001,"message":"bad credentials","data":null}`))
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	api := newAPI(t, srv.URL+"/api", request.DefaultPipeline(n, nil, nil))

	res, err := api.LoginRaw(context.Background(), user.LoginData{Username: "alice"})
	if err != nil {
		t.Fatalf("LoginRaw should not see business failures, got %v", err)
	}
	if res.Token != "" {
		t.Fatalf("raw envelope has no token field, got %+v", res)
	}
	if len(n.messages) != 0 {
		t.Fatalf("LoginRaw must not notify, got %v", n.messages)
	}
}

func TestLoginRawReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	api := newAPI(t, srv.URL+"/api", request.DefaultPipeline(n, nil, nil))

	_, err := api.LoginRaw(context.Background(), user.LoginData{})
	if request.StatusOf(err) != http.StatusInternalServerError {
		t.Fatalf("expected 500 StatusError, got %v", err)
	}
	if len(n.messages) != 0 {
		t.Fatalf("LoginRaw must not notify, got %v", n.messages)
	}
}

func TestLoginThenInfoAgainstMockBackend(t *testing.T) {
	backend := mockserver.New(mockserver.DefaultAccounts(), nil)
	srv := httptest.NewServer(backend.Handler())
	defer srv.Close()

	session := &memToken{}
	n := &recordingNotifier{}
	pipeline := request.DefaultPipeline(n, nil, nil)
	pipeline.Request = append([]request.RequestStage{request.BearerToken{Source: session}}, pipeline.Request...)
	pipeline.Response = append(pipeline.Response, request.LogoutOnUnauthorized{Logout: func(context.Context) error {
		session.token = ""
		return nil
	}})
	api := newAPI(t, srv.URL+"/api", pipeline)
	ctx := context.Background()

	if _, err := api.GetUserInfo(ctx); request.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %v", err)
	}

	res, err := api.Login(ctx, user.LoginData{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	session.token = res.Token

	info, err := api.GetUserInfo(ctx)
	if err != nil {
		t.Fatalf("GetUserInfo: %v", err)
	}
	if info.ID != 1 || info.Name != "alice" {
		t.Fatalf("unexpected info %+v", info)
	}

	session.token = "stale"
	if _, err := api.GetUserInfo(ctx); request.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 for stale token, got %v", err)
	}
	if session.token != "" {
		t.Fatalf("401 should clear the session")
	}

	want := []string{"token invalid, please re-authenticate", "token invalid, please re-authenticate"}
	if !reflect.DeepEqual(n.messages, want) {
		t.Fatalf("notifications = %v", n.messages)
	}
}
