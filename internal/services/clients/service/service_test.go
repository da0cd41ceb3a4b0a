package service

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"clientele/internal/modkit/repokit"
	perr "clientele/internal/platform/errors"
	"clientele/internal/platform/store"
	pstrings "clientele/internal/platform/strings"
	"clientele/internal/platform/testkit"
	"clientele/internal/services/clients/domain"
	"clientele/internal/services/clients/repo"
)

// stubTx satisfies the TxRunner seam and counts transactions; repo calls are
// faked below it
type stubTx struct{ txCalls int }

func (s *stubTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (s *stubTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (s *stubTx) QueryRow(context.Context, string, ...any) store.Row             { return nil }

func (s *stubTx) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	s.txCalls++
	return fn(s)
}

// fakeRepo is an in-memory PersistencePort double
type fakeRepo struct {
	clients []domain.Client

	deleteAffected int64
	deleteCalls    [][]string

	reassignCalls int

	dupFailFor map[string]error

	phoneTaken *domain.Client
	createdIn  *domain.CreateClientInput
}

func (f *fakeRepo) FetchAll(context.Context) ([]domain.Client, error) {
	return append([]domain.Client(nil), f.clients...), nil
}

func (f *fakeRepo) Create(_ context.Context, in domain.CreateClientInput) (domain.Client, error) {
	f.createdIn = &in
	return domain.Client{ID: "new", Name: in.Name, Phone: in.Phone}, nil
}

func (f *fakeRepo) Update(_ context.Context, id string, in domain.UpdateClientInput) (domain.Client, error) {
	return domain.Client{ID: id, Name: in.Name, Phone: in.Phone}, nil
}

func (f *fakeRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	f.deleteCalls = append(f.deleteCalls, ids)
	return f.deleteAffected, nil
}

func (f *fakeRepo) UpdateReferrer(context.Context, []string, *string) error {
	f.reassignCalls++
	return nil
}

func (f *fakeRepo) DuplicateClient(_ context.Context, sourceID string) (domain.Client, error) {
	if err, ok := f.dupFailFor[sourceID]; ok {
		return domain.Client{}, err
	}
	return domain.Client{ID: sourceID + "-copy", Name: "copy of " + sourceID}, nil
}

func (f *fakeRepo) ResolveClientIDsByTags(context.Context, []string) ([]string, error) {
	return nil, nil
}

func (f *fakeRepo) CheckDuplicatePhone(context.Context, string, string) (*domain.Client, error) {
	return f.phoneTaken, nil
}

func newTestSvc(fr *fakeRepo) *Svc {
	s, _ := newTestSvcTx(fr)
	return s
}

func newTestSvcTx(fr *fakeRepo) (*Svc, *stubTx) {
	tx := &stubTx{}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return fr })
	return New(tx, binder), tx
}

func TestDelete_OutcomeClassification(t *testing.T) {
	t.Parallel()

	ids := []string{"1", "2", "3", "4", "5"}

	fr := &fakeRepo{deleteAffected: 3}
	out, err := newTestSvc(fr).Delete(context.Background(), ids)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if out.Requested != 5 || out.Affected != 3 || out.Status != domain.BulkPartial {
		t.Fatalf("outcome = %+v, want {requested:5 affected:3 partial}", out)
	}

	fr = &fakeRepo{deleteAffected: 0}
	out, err = newTestSvc(fr).Delete(context.Background(), ids)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if out.Status != domain.BulkNone {
		t.Fatalf("status = %s, want none", out.Status)
	}

	fr = &fakeRepo{deleteAffected: 5}
	out, err = newTestSvc(fr).Delete(context.Background(), ids)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if out.Status != domain.BulkFull || out.UndoHint {
		t.Fatalf("outcome = %+v, want full without undo hint for a batch", out)
	}
}

// a single fully deleted target carries the informational undo hint
func TestDelete_SingleTargetUndoHint(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{deleteAffected: 1}
	out, err := newTestSvc(fr).Delete(context.Background(), []string{"1"})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if out.Status != domain.BulkFull || !out.UndoHint {
		t.Fatalf("outcome = %+v, want full with undo hint", out)
	}
}

func TestDelete_EmptySelectionRejected(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	_, err := newTestSvc(fr).Delete(context.Background(), nil)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if len(fr.deleteCalls) != 0 {
		t.Fatalf("store called despite empty selection")
	}
}

// duplications are independent; one failure never blocks the rest
func TestDuplicate_AggregatesPerItemFailures(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{dupFailFor: map[string]error{
		"b": perr.DuplicateKeyf("phone already registered"),
	}}
	out, err := newTestSvc(fr).Duplicate(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if out.Status != domain.BulkPartial {
		t.Fatalf("status = %s, want partial", out.Status)
	}
	if len(out.Created) != 2 || len(out.Failures) != 1 {
		t.Fatalf("created %d failures %d, want 2 and 1", len(out.Created), len(out.Failures))
	}
	if out.Failures[0].ID != "b" || out.Failures[0].Reason == "" {
		t.Fatalf("failure = %+v, want id b with a reason", out.Failures[0])
	}
}

// every copy binds its own transaction so a failed tag copy cannot leave a
// half made client row behind
func TestDuplicate_EachItemOwnTransaction(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	svc, tx := newTestSvcTx(fr)

	out, err := svc.Duplicate(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if out.Status != domain.BulkFull {
		t.Fatalf("status = %s, want full", out.Status)
	}
	if tx.txCalls != 3 {
		t.Fatalf("transactions = %d, want one per item", tx.txCalls)
	}
}

// create and update run the duplicate check and the write in one transaction
func TestWrites_RunInTransaction(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	svc, tx := newTestSvcTx(fr)

	if _, err := svc.Create(context.Background(), domain.CreateClientInput{Name: "Ana", Phone: "1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.txCalls != 1 {
		t.Fatalf("create transactions = %d, want 1", tx.txCalls)
	}

	if _, err := svc.Update(context.Background(), "A", domain.UpdateClientInput{Name: "Ana", Phone: "1"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if tx.txCalls != 2 {
		t.Fatalf("update transactions = %d, want 2 total", tx.txCalls)
	}
}

// a referrer among the selected ids is rejected before any store call
func TestReassignReferrer_SelfInSelectionRejected(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	svc := newTestSvc(fr)

	_, err := svc.ReassignReferrer(context.Background(), []string{"A"}, pstrings.Ptr("A"))
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}

	_, err = svc.ReassignReferrer(context.Background(), []string{"x", "A", "y"}, pstrings.Ptr("A"))
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}

	if fr.reassignCalls != 0 {
		t.Fatalf("store called %d times despite rejection", fr.reassignCalls)
	}

	// nil referrer clears and is always fine
	out, err := svc.ReassignReferrer(context.Background(), []string{"A"}, nil)
	if err != nil {
		t.Fatalf("clear referrer: %v", err)
	}
	if out.Status != domain.BulkFull || fr.reassignCalls != 1 {
		t.Fatalf("clear outcome = %+v calls = %d", out, fr.reassignCalls)
	}
}

func TestCreate_NormalizesPhoneAndChecksDuplicates(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{}
	svc := newTestSvc(fr)

	_, err := svc.Create(context.Background(), domain.CreateClientInput{
		Name:  "Ana",
		Phone: "(11) 99999-0001",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if fr.createdIn == nil || fr.createdIn.Phone != "11999990001" {
		t.Fatalf("stored phone = %+v, want digits only", fr.createdIn)
	}

	// second writer already owns the phone
	fr.phoneTaken = &domain.Client{ID: "other", Name: "Beto"}
	_, err = svc.Create(context.Background(), domain.CreateClientInput{
		Name:  "Ana",
		Phone: "11999990001",
	})
	if !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("err = %v, want duplicate key", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "phone" {
		t.Fatalf("err field = %v, want phone", err)
	}
}

func TestUpdate_SelfReferrerRejected(t *testing.T) {
	t.Parallel()

	_, err := newTestSvc(&fakeRepo{}).Update(context.Background(), "A", domain.UpdateClientInput{
		Name:       "Ana",
		Phone:      "11999990001",
		ReferrerID: pstrings.Ptr("A"),
	})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestExportCSV_PicksOnlySelected(t *testing.T) {
	t.Parallel()

	fr := &fakeRepo{clients: []domain.Client{
		{ID: "1", Name: "Ana"},
		{ID: "2", Name: "Beto"},
		{ID: "3", Name: "Carla"},
	}}
	svc := newTestSvc(fr)

	payload, err := svc.ExportCSV(context.Background(), []string{"1", "3"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	body := string(payload)
	if !strings.Contains(body, `"Ana"`) || !strings.Contains(body, `"Carla"`) {
		t.Fatalf("selected rows missing: %q", body)
	}
	if strings.Contains(body, `"Beto"`) {
		t.Fatalf("unselected row exported: %q", body)
	}

	if _, err := svc.ExportCSV(context.Background(), nil); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("empty export err = %v, want validation", err)
	}
}

func TestNew_NilCollaboratorsPanic(t *testing.T) {
	t.Parallel()

	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return &fakeRepo{} })
	testkit.MustPanic(t, func() { New(nil, binder) })
	testkit.MustPanic(t, func() { New(&stubTx{}, nil) })
}

func TestResolveTagClients_EmptyShortCircuit(t *testing.T) {
	t.Parallel()

	got, err := newTestSvc(&fakeRepo{}).ResolveTagClients(context.Background(), nil)
	if err != nil || got != nil {
		t.Fatalf("resolve = %v, %v, want nil nil", got, err)
	}
	if !reflect.DeepEqual(got, []string(nil)) {
		t.Fatalf("resolve = %v", got)
	}
}
