package config

import (
	"testing"
	"time"

	"clientele/internal/platform/testkit"
)

func TestPrefix_ScopesKeys(t *testing.T) {
	t.Setenv("CORE_API_NAME", "api")
	t.Setenv("SERVICE_PGSQL_NAME", "pg")

	root := New()
	if got := root.Prefix("CORE_API_").MustString("NAME"); got != "api" {
		t.Fatalf("CORE_API_ scope = %q, want api", got)
	}
	if got := root.Prefix("SERVICE_PGSQL_").MustString("NAME"); got != "pg" {
		t.Fatalf("SERVICE_PGSQL_ scope = %q, want pg", got)
	}
}

func TestMustString_PanicsOnMissing(t *testing.T) {
	t.Setenv("CORE_API_EMPTY", "   ")

	cfg := New().Prefix("CORE_API_")
	testkit.MustPanic(t, func() { cfg.MustString("EMPTY") })
	testkit.MustPanic(t, func() { cfg.MustString("NEVER_SET") })
}

func TestMustPort(t *testing.T) {
	t.Setenv("CORE_API_API_PORT", "4100")
	t.Setenv("CORE_API_BAD_PORT", "70000")
	t.Setenv("CORE_API_WORD_PORT", "http")

	cfg := New().Prefix("CORE_API_")
	if got := cfg.MustPort("API_PORT"); got != ":4100" {
		t.Fatalf("port = %q, want :4100", got)
	}
	testkit.MustPanic(t, func() { cfg.MustPort("BAD_PORT") })
	testkit.MustPanic(t, func() { cfg.MustPort("WORD_PORT") })
	testkit.MustPanic(t, func() { cfg.MustPort("UNSET_PORT") })
}

func TestMayGetters_Defaults(t *testing.T) {
	t.Setenv("CORE_API_CONNS", "8")
	t.Setenv("CORE_API_FEED", "false")
	t.Setenv("CORE_API_SLOW", "bogus")

	cfg := New().Prefix("CORE_API_")
	if got := cfg.MayString("MISSING", "fallback"); got != "fallback" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := cfg.MayInt("CONNS", 4); got != 8 {
		t.Fatalf("MayInt = %d, want 8", got)
	}
	if got := cfg.MayBool("FEED", true); got {
		t.Fatalf("MayBool should read false")
	}
	if got := cfg.MayInt("SLOW", 500); got != 500 {
		t.Fatalf("invalid int should fall back, got %d", got)
	}
	if got := cfg.MayDuration("WAIT", 2*time.Second); got != 2*time.Second {
		t.Fatalf("MayDuration default = %s", got)
	}
}
