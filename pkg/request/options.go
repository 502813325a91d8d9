package request

import "strings"

// Options is the per-call bag forwarded verbatim to the transport.
type Options struct {
	Headers map[string]string
	Query   map[string]string
}

// Option mutates the per-call Options.
type Option func(*Options)

// WithHeader sets a request header.
func WithHeader(key, value string) Option {
	return func(o *Options) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[key] = value
	}
}

// WithHeaders merges headers into the request.
func WithHeaders(headers map[string]string) Option {
	return func(o *Options) {
		for k, v := range headers {
			WithHeader(k, v)(o)
		}
	}
}

// WithQuery sets a query parameter.
func WithQuery(key, value string) Option {
	return func(o *Options) {
		if o.Query == nil {
			o.Query = make(map[string]string)
		}
		o.Query[key] = value
	}
}

// Header returns the value of key, matched case-insensitively.
func (o Options) Header(key string) (string, bool) {
	for k, v := range o.Headers {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
