// Package user binds the authentication endpoints to the request client.
package user

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Adda-Baaj/portal-client/pkg/httpclient"
	"github.com/Adda-Baaj/portal-client/pkg/request"
)

const (
	PathLogin = "/user/login"
	PathInfo  = "/user/info"
)

// API exposes the user endpoints.
type API struct {
	client *request.Client
}

// New returns an API bound to client.
func New(client *request.Client) *API {
	return &API{client: client}
}

// Login posts credentials and returns the unwrapped login payload.
func (a *API) Login(ctx context.Context, data LoginData) (LoginRes, error) {
	return request.Post[LoginRes](ctx, a.client, PathLogin, data)
}

// GetUserInfo returns the profile of the current session.
func (a *API) GetUserInfo(ctx context.Context) (UserInfoRes, error) {
	return request.Get[UserInfoRes](ctx, a.client, PathInfo)
}

// LoginRaw posts credentials on the bare transport. The response body is
// decoded into LoginRes as-is: no envelope unwrapping, no notification, and
// a non-2xx status is returned as *request.StatusError. Against the standard
// envelope this leaves LoginRes empty; prefer Login.
func (a *API) LoginRaw(ctx context.Context, data LoginData) (LoginRes, error) {
	var out LoginRes
	resp, err := a.client.Transport().Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    PathLogin,
		Body:   data,
	})
	if err != nil {
		return out, err
	}
	if status := resp.StatusCode(); status < http.StatusOK || status >= http.StatusMultipleChoices {
		return out, &request.StatusError{
			Method:     http.MethodPost,
			URL:        PathLogin,
			StatusCode: status,
			Header:     resp.Header(),
			Body:       resp.Body(),
		}
	}
	if err := httpclient.JSON.Unmarshal(resp.Body(), &out); err != nil {
		return out, fmt.Errorf("decode login response: %w", err)
	}
	return out, nil
}
