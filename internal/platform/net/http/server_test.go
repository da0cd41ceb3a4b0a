package http

import (
	"testing"

	"clientele/internal/platform/config"
	"clientele/internal/platform/testkit"
)

func TestNewServer_PortFromEnv(t *testing.T) {
	t.Setenv("CORE_API_API_PORT", "5005")

	srv := NewServer(config.New().Prefix("CORE_API_"))
	if got := srv.Addr(); got != ":5005" {
		t.Fatalf("addr = %q, want :5005", got)
	}
}

func TestNewServer_DefaultPort(t *testing.T) {
	t.Parallel()

	srv := NewServer(config.New().Prefix("NEVER_SET_"))
	if got := srv.Addr(); got != ":4000" {
		t.Fatalf("addr = %q, want the :4000 default", got)
	}
}

func TestNewServer_RejectsBadPort(t *testing.T) {
	t.Setenv("CORE_API_API_PORT", ":4000")

	// the value is a bare port number; a stray colon must not slip through
	testkit.MustPanic(t, func() { NewServer(config.New().Prefix("CORE_API_")) })
}
