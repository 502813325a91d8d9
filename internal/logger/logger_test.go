package logger

import (
	"testing"

	"github.com/Adda-Baaj/portal-client/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	S = nil
	InfoObj("ignored", "k", 1)
	ErrorObj("ignored", "k", 1)
	if err := Close(); err != nil {
		t.Fatalf("Close before Init: %v", err)
	}
}

func TestInitSetsPackageLogger(t *testing.T) {
	log, err := Init(&config.Config{AppName: "portal", Env: "test", LogLevel: "error"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if S == nil || log == nil {
		t.Fatalf("expected package logger to be set")
	}
	if S.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug level should be disabled at error level")
	}
	log.DebugObj("dropped", "k", 1)
	var _ Logger = &NopLogger{}
}
