package module

import (
	"strings"
	"testing"

	phttp "clientele/internal/platform/net/http"
)

// CountPort is a tiny interface a ports bundle can expose
type CountPort interface {
	Count() int
}

type countImpl struct{ n int }

func (c countImpl) Count() int { return c.n }

type stubModule struct {
	name  string
	ports any
}

func (m stubModule) Name() string             { return m.name }
func (m stubModule) Ports() any               { return m.ports }
func (m stubModule) MountRoutes(phttp.Router) {}

func TestPortsOf_NilPorts(t *testing.T) {
	t.Parallel()

	if _, ok := PortsOf[CountPort](stubModule{name: "empty"}); ok {
		t.Fatalf("nil ports should not satisfy any lookup")
	}
}

func TestPortsOf_DirectMatch(t *testing.T) {
	t.Parallel()

	m := stubModule{name: "direct", ports: CountPort(countImpl{n: 4})}
	got, ok := PortsOf[CountPort](m)
	if !ok || got.Count() != 4 {
		t.Fatalf("direct match = %v %v", got, ok)
	}
}

func TestPortsOf_BundleFields(t *testing.T) {
	t.Parallel()

	type bundle struct {
		Counter CountPort
		Extra   int
	}
	m := stubModule{name: "bundle", ports: bundle{Counter: countImpl{n: 9}, Extra: 1}}

	got, ok := PortsOf[CountPort](m)
	if !ok || got.Count() != 9 {
		t.Fatalf("bundle field lookup = %v %v", got, ok)
	}
}

func TestPortsOf_UnexportedFieldsIgnored(t *testing.T) {
	t.Parallel()

	type hidden struct {
		counter CountPort
	}
	m := stubModule{name: "hidden", ports: hidden{counter: countImpl{n: 1}}}

	if _, ok := PortsOf[CountPort](m); ok {
		t.Fatalf("unexported fields must stay invisible")
	}
}

func TestMustPortsOf(t *testing.T) {
	t.Parallel()

	m := stubModule{name: "clients", ports: CountPort(countImpl{n: 7})}
	if got := MustPortsOf[CountPort](m); got.Count() != 7 {
		t.Fatalf("must ports = %d, want 7", got.Count())
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic for a missing port")
		}
		msg, _ := r.(string)
		if !strings.Contains(msg, "clients") {
			t.Fatalf("panic should name the module, got %q", msg)
		}
	}()
	_ = MustPortsOf[CountPort](stubModule{name: "clients"})
}
