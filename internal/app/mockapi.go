package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Adda-Baaj/portal-client/internal/config"
	"github.com/Adda-Baaj/portal-client/internal/logger"
	"github.com/Adda-Baaj/portal-client/internal/mockserver"
)

const shutdownTimeout = 5 * time.Second

// MockAPI serves the emulated backend until its context is cancelled.
type MockAPI struct {
	srv *http.Server
	log logger.Logger
}

// NewMockAPI builds the dev backend listening on cfg.MockAddr.
func NewMockAPI(cfg *config.Config, log logger.Logger) (*MockAPI, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	backend := mockserver.New(mockserver.DefaultAccounts(), log)
	return &MockAPI{
		srv: &http.Server{
			Addr:              cfg.MockAddr,
			Handler:           backend.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}, nil
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (m *MockAPI) Run(ctx context.Context) error {
	if m == nil || m.srv == nil {
		return fmt.Errorf("mock api is not initialized")
	}

	errCh := make(chan error, 1)
	go func() {
		m.log.InfoObj("mock api listening", "addr", m.srv.Addr)
		if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		m.log.InfoObj("mock api exiting", "reason", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return m.srv.Shutdown(shutdownCtx)
}
