package request

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/Adda-Baaj/portal-client/pkg/httpclient"
)

// Get issues a GET and decodes the envelope data into T.
func Get[T any](ctx context.Context, c *Client, url string, opts ...Option) (T, error) {
	return send[T](ctx, c, http.MethodGet, url, nil, opts)
}

// Post issues a POST with body and decodes the envelope data into T.
func Post[T any](ctx context.Context, c *Client, url string, body any, opts ...Option) (T, error) {
	return send[T](ctx, c, http.MethodPost, url, body, opts)
}

// Put issues a PUT with body and decodes the envelope data into T.
func Put[T any](ctx context.Context, c *Client, url string, body any, opts ...Option) (T, error) {
	return send[T](ctx, c, http.MethodPut, url, body, opts)
}

// Delete issues a DELETE and decodes the envelope data into T.
func Delete[T any](ctx context.Context, c *Client, url string, opts ...Option) (T, error) {
	return send[T](ctx, c, http.MethodDelete, url, nil, opts)
}

func send[T any](ctx context.Context, c *Client, method, url string, body any, opts []Option) (T, error) {
	var out T
	if c == nil {
		return out, fmt.Errorf("request client is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	reply, err := c.Do(ctx, method, url, body, opts...)
	if err != nil {
		return out, err
	}
	if reply == nil {
		return out, nil
	}
	data := bytes.TrimSpace(reply.Body)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return out, nil
	}
	if err := httpclient.JSON.Unmarshal(data, &out); err != nil {
		err = fmt.Errorf("decode %s %s payload: %w", method, url, err)
		c.pipeline.notify(ctx, err.Error())
		return out, err
	}
	return out, nil
}
