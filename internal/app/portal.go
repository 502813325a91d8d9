package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adda-Baaj/portal-client/internal/config"
	"github.com/Adda-Baaj/portal-client/internal/logger"
	"github.com/Adda-Baaj/portal-client/internal/storage"
	"github.com/Adda-Baaj/portal-client/pkg/api/user"
	"github.com/Adda-Baaj/portal-client/pkg/httpclient"
	"github.com/Adda-Baaj/portal-client/pkg/l10n"
	"github.com/Adda-Baaj/portal-client/pkg/notify"
	"github.com/Adda-Baaj/portal-client/pkg/request"
)

// Portal is the client runtime. It owns the request client, the
// notification sinks and the session store, constructed once from config.
type Portal struct {
	cfg    *config.Config
	log    logger.Logger
	store  storage.Store
	sinks  []notify.Sink
	client *request.Client
	users  *user.API
}

// NewPortal wires config -> notifiers -> session -> request client -> APIs.
func NewPortal(ctx context.Context, cfg *config.Config, log logger.Logger) (*Portal, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	catalog, err := l10n.New(cfg.UILanguage)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	fanout, sinks, err := notify.Build(ctx, cfg.NotifiersFile, cfg.AppName, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.SessionStoreType, cfg.SessionPath, storage.Options{TokenTTL: cfg.SessionTTL})
	if err != nil {
		_ = notify.CloseAll(sinks)
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("session storage initialized", "storage_config", map[string]any{
		"type":              cfg.SessionStoreType,
		"path":              cfg.SessionPath,
		"token_ttl_seconds": int(cfg.SessionTTL.Seconds()),
	})

	pipeline := request.Pipeline{
		Request: []request.RequestStage{
			request.BearerToken{Source: store},
			request.NotifyStage{Notifier: fanout},
		},
		Response: []request.ResponseStage{
			request.EnvelopeStage{Notifier: fanout, Messages: catalog, Log: log},
			request.LogoutOnUnauthorized{Logout: func(context.Context) error { return store.ClearToken() }, Log: log},
		},
		Notifier: fanout,
	}
	transport := httpclient.NewRestyClient(cfg.BaseURL(), cfg.APITimeout)
	client, err := request.New(transport, pipeline)
	if err != nil {
		_ = store.Close()
		_ = notify.CloseAll(sinks)
		return nil, fmt.Errorf("init request client: %w", err)
	}
	log.InfoObj("request client initialized", "client_config", map[string]any{
		"base_url":   transport.BaseURL(),
		"timeout_ms": cfg.APITimeout.Milliseconds(),
		"language":   catalog.Language(),
		"notifiers":  fanout.Size(),
	})

	return &Portal{
		cfg:    cfg,
		log:    log,
		store:  store,
		sinks:  sinks,
		client: client,
		users:  user.New(client),
	}, nil
}

// Users exposes the user API bound to this runtime.
func (p *Portal) Users() *user.API { return p.users }

// Login authenticates and persists the returned token for later calls.
func (p *Portal) Login(ctx context.Context, data user.LoginData) (user.LoginRes, error) {
	res, err := p.users.Login(ctx, data)
	if err != nil {
		return res, err
	}
	if err := p.store.SaveToken(res.Token); err != nil {
		return res, fmt.Errorf("save session: %w", err)
	}
	p.log.InfoObj("session started", "session", map[string]any{"username": data.Username})
	return res, nil
}

// Logout drops the stored session token.
func (p *Portal) Logout() error {
	if err := p.store.ClearToken(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close releases the session store and notification sinks.
func (p *Portal) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.store != nil {
		if err := p.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	if err := notify.CloseAll(p.sinks); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
