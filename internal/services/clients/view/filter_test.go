package view

import (
	"reflect"
	"testing"

	pstrings "clientele/internal/platform/strings"
	"clientele/internal/services/clients/domain"
)

func clientIDs(clients []domain.Client) []string {
	out := make([]string, 0, len(clients))
	for _, c := range clients {
		out = append(out, c.ID)
	}
	return out
}

func sampleClients() []domain.Client {
	return []domain.Client{
		{ID: "a", Name: "Ana", Phone: "11999990001", TotalVisits: 2, TotalSpent: "100"},
		{ID: "b", Name: "Beto", Phone: "11999990002", TotalVisits: 0, TotalSpent: "0"},
		{ID: "c", Name: "Ana Maria", Phone: "11999990003", TotalVisits: 5, TotalSpent: "0", ReferrerID: pstrings.Ptr("a")},
		{ID: "d", Name: "Carla", Phone: "21888880004", TotalVisits: 1, TotalSpent: "0", InstagramLink: "@carla.ana"},
	}
}

func TestFilter_Idempotent(t *testing.T) {
	t.Parallel()

	clients := sampleClients()
	criterias := []domain.Criteria{
		{Preset: domain.PresetAll},
		{Preset: domain.PresetWithVisits, Search: "ana"},
		{Preset: domain.PresetWithSales},
		{Preset: domain.PresetReferred, TagIDs: []string{"t1"}, TagClientIDs: []string{"c"}},
	}
	for _, cr := range criterias {
		once := Filter(clients, cr)
		twice := Filter(once, cr)
		if !reflect.DeepEqual(clientIDs(once), clientIDs(twice)) {
			t.Fatalf("filter not idempotent for %+v: %v then %v", cr, clientIDs(once), clientIDs(twice))
		}
	}
}

func TestFilter_PresetPredicates(t *testing.T) {
	t.Parallel()

	clients := sampleClients()

	got := Filter(clients, domain.Criteria{Preset: domain.PresetWithVisits})
	if want := []string{"a", "c", "d"}; !reflect.DeepEqual(clientIDs(got), want) {
		t.Fatalf("with_visits = %v, want %v", clientIDs(got), want)
	}

	got = Filter(clients, domain.Criteria{Preset: domain.PresetWithSales})
	if want := []string{"a"}; !reflect.DeepEqual(clientIDs(got), want) {
		t.Fatalf("with_sales = %v, want %v", clientIDs(got), want)
	}

	got = Filter(clients, domain.Criteria{Preset: domain.PresetReferred})
	if want := []string{"c"}; !reflect.DeepEqual(clientIDs(got), want) {
		t.Fatalf("referred = %v, want %v", clientIDs(got), want)
	}

	got = Filter(clients, domain.Criteria{Preset: domain.PresetAll})
	if len(got) != len(clients) {
		t.Fatalf("all kept %d of %d", len(got), len(clients))
	}
}

// string "0" must not count as sales while a real number does
func TestFilter_NumericCoercion(t *testing.T) {
	t.Parallel()

	clients := []domain.Client{
		{ID: "zero", TotalSpent: "0"},
		{ID: "rich", TotalSpent: "150"},
		{ID: "junk", TotalSpent: "not-a-number"},
	}
	got := Filter(clients, domain.Criteria{Preset: domain.PresetWithSales})
	if want := []string{"rich"}; !reflect.DeepEqual(clientIDs(got), want) {
		t.Fatalf("with_sales = %v, want %v", clientIDs(got), want)
	}
}

func TestFilter_SearchCoversNamePhoneAndSocials(t *testing.T) {
	t.Parallel()

	clients := sampleClients()

	// name, case-insensitive
	got := Filter(clients, domain.Criteria{Preset: domain.PresetAll, Search: "ANA"})
	if want := []string{"a", "c", "d"}; !reflect.DeepEqual(clientIDs(got), want) {
		t.Fatalf("search ana = %v, want %v (d matches on instagram)", clientIDs(got), want)
	}

	// raw phone substring
	got = Filter(clients, domain.Criteria{Preset: domain.PresetAll, Search: "21888"})
	if want := []string{"d"}; !reflect.DeepEqual(clientIDs(got), want) {
		t.Fatalf("search phone = %v, want %v", clientIDs(got), want)
	}

	// whitespace-only query is a no-op
	got = Filter(clients, domain.Criteria{Preset: domain.PresetAll, Search: "   "})
	if len(got) != len(clients) {
		t.Fatalf("blank search kept %d of %d", len(got), len(clients))
	}
}

func TestFilter_TagMembership(t *testing.T) {
	t.Parallel()

	clients := sampleClients()

	got := Filter(clients, domain.Criteria{
		Preset:       domain.PresetAll,
		TagIDs:       []string{"t1"},
		TagClientIDs: []string{"b", "c"},
	})
	if want := []string{"b", "c"}; !reflect.DeepEqual(clientIDs(got), want) {
		t.Fatalf("tag filter = %v, want %v", clientIDs(got), want)
	}
}

// a picked tag whose membership has not resolved yet must not filter;
// flashing an empty list while the lookup is in flight is worse than
// briefly showing everything
func TestFilter_TagResolutionInFlight_FailsOpen(t *testing.T) {
	t.Parallel()

	clients := sampleClients()
	got := Filter(clients, domain.Criteria{
		Preset: domain.PresetAll,
		TagIDs: []string{"t1"},
	})
	if len(got) != len(clients) {
		t.Fatalf("pending tag resolution filtered to %d, want all %d", len(got), len(clients))
	}
}

func TestFilter_PreservesInputOrderAndInput(t *testing.T) {
	t.Parallel()

	clients := sampleClients()
	before := clientIDs(clients)

	got := Filter(clients, domain.Criteria{Preset: domain.PresetWithVisits})
	if want := []string{"a", "c", "d"}; !reflect.DeepEqual(clientIDs(got), want) {
		t.Fatalf("order not preserved: %v", clientIDs(got))
	}
	if !reflect.DeepEqual(clientIDs(clients), before) {
		t.Fatalf("input mutated: %v", clientIDs(clients))
	}
}
