package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage keeps the session token between CLI invocations.

// Store persists the current session token.
type Store interface {
	Close() error
	Token() (string, bool, error)
	SaveToken(token string) error
	ClearToken() error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	TokenTTL time.Duration
}

const defaultTokenTTL = 24 * time.Hour

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                 { return nil }
func (noopStore) Token() (string, bool, error) { return "", false, nil }
func (noopStore) SaveToken(string) error       { return nil }
func (noopStore) ClearToken() error            { return nil }
