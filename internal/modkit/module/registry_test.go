package module

import (
	"sync"
	"testing"
)

type listPort struct {
	Name  string
	Count int
}

// runs sequentially; Reset on the global registry must not race the
// parallel tests below
func TestRegistry_OverwriteAndReset(t *testing.T) {
	Reset()

	Register("tags", listPort{Name: "a"})
	Register("tags", listPort{Name: "b"})
	if got, _ := PortsAs[listPort]("tags"); got.Name != "b" {
		t.Fatalf("last registration should win, got %q", got.Name)
	}

	Reset()
	if _, ok := PortsAs[listPort]("tags"); ok {
		t.Fatalf("registry not empty after reset")
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	t.Parallel()

	want := listPort{Name: "clients", Count: 2}
	Register("clients", want)

	got, ok := PortsAs[listPort]("clients")
	if !ok {
		t.Fatalf("registered ports not found")
	}
	if got != want {
		t.Fatalf("ports = %v, want %v", got, want)
	}
}

func TestRegistry_MissingAndMismatch(t *testing.T) {
	t.Parallel()

	if got, ok := PortsAs[listPort]("nobody"); ok || got != (listPort{}) {
		t.Fatalf("missing name should yield zero value and false, got %v %v", got, ok)
	}

	Register("mismatch", listPort{Name: "mismatch"})
	if _, ok := PortsAs[string]("mismatch"); ok {
		t.Fatalf("type mismatch should yield false")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			Register("shared", listPort{Name: "shared", Count: i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, _ = PortsAs[listPort]("shared")
		}
	}()
	wg.Wait()

	got, ok := PortsAs[listPort]("shared")
	if !ok || got.Name != "shared" {
		t.Fatalf("final read = %v %v", got, ok)
	}
}
