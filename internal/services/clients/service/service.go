// Package service contains client workflows and the bulk action orchestrator
package service

import (
	"context"

	"clientele/internal/modkit/repokit"
	perr "clientele/internal/platform/errors"
	pstrings "clientele/internal/platform/strings"
	"clientele/internal/services/clients/domain"
	"clientele/internal/services/clients/repo"
)

// Service defines the service contract for clients
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new clients service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("clients.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("clients.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// withTxRepo binds a repo to one transaction for the duration of fn
func (s *Svc) withTxRepo(ctx context.Context, fn func(r repo.Repo) error) error {
	return repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return fn(repokit.MustBind(s.binder, q))
	})
}

// List returns the full client collection
func (s *Svc) List(ctx context.Context) ([]domain.Client, error) {
	return s.Repo.FetchAll(ctx)
}

// Counts returns the per-preset badge numbers over the full collection
func (s *Svc) Counts(ctx context.Context) (domain.PresetCounts, error) {
	clients, err := s.Repo.FetchAll(ctx)
	if err != nil {
		return domain.PresetCounts{}, err
	}
	var out domain.PresetCounts
	out.All = len(clients)
	for _, c := range clients {
		if domain.PresetWithVisits.Matches(c) {
			out.WithVisits++
		}
		if domain.PresetWithSales.Matches(c) {
			out.WithSales++
		}
		if domain.PresetReferred.Matches(c) {
			out.Referred++
		}
	}
	return out, nil
}

// Create normalizes the phone, enforces phone uniqueness, and stores the client.
// The proactive duplicate check can race another writer; the unique index is
// the backstop and its violation maps to the same duplicate key code
func (s *Svc) Create(ctx context.Context, in domain.CreateClientInput) (domain.Client, error) {
	in.Phone = pstrings.Digits(in.Phone)
	var out domain.Client
	err := s.withTxRepo(ctx, func(r repo.Repo) error {
		if err := rejectDuplicatePhone(ctx, r, in.Phone, ""); err != nil {
			return err
		}
		var err error
		out, err = r.Create(ctx, in)
		return err
	})
	if err != nil {
		return domain.Client{}, err
	}
	return out, nil
}

// Update normalizes the phone, enforces phone uniqueness against other
// clients, and stores the new attributes
func (s *Svc) Update(ctx context.Context, id string, in domain.UpdateClientInput) (domain.Client, error) {
	if id == "" {
		return domain.Client{}, perr.InvalidArgf("client id required")
	}
	if in.ReferrerID != nil && *in.ReferrerID == id {
		return domain.Client{}, perr.WithField(perr.Validationf("a client cannot refer itself"), "referrer_id")
	}
	in.Phone = pstrings.Digits(in.Phone)
	var out domain.Client
	err := s.withTxRepo(ctx, func(r repo.Repo) error {
		if err := rejectDuplicatePhone(ctx, r, in.Phone, id); err != nil {
			return err
		}
		var err error
		out, err = r.Update(ctx, id, in)
		return err
	})
	if err != nil {
		return domain.Client{}, err
	}
	return out, nil
}

func rejectDuplicatePhone(ctx context.Context, r repo.Repo, phone, excludeID string) error {
	existing, err := r.CheckDuplicatePhone(ctx, phone, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return perr.WithField(
			perr.DuplicateKeyf("phone already registered to %s", existing.Name), "phone")
	}
	return nil
}

// Delete issues one batched delete and classifies the outcome by comparing
// affected to requested. Zero affected is a warning outcome, not an error,
// and callers keep their selection so the user can retry
func (s *Svc) Delete(ctx context.Context, ids []string) (domain.DeleteOutcome, error) {
	if len(ids) == 0 {
		return domain.DeleteOutcome{}, perr.Validationf("no clients selected for deletion")
	}
	affected, err := s.Repo.DeleteMany(ctx, ids)
	if err != nil {
		return domain.DeleteOutcome{}, err
	}

	out := domain.DeleteOutcome{Requested: len(ids), Affected: int(affected)}
	switch {
	case affected == 0:
		out.Status = domain.BulkNone
	case int(affected) < len(ids):
		out.Status = domain.BulkPartial
	default:
		out.Status = domain.BulkFull
		// single target fully deleted, the caller may show an undo toast.
		// purely informational, the row is already gone
		out.UndoHint = len(ids) == 1
	}
	return out, nil
}

// Duplicate copies each selected client independently. A copy carries the
// static attributes and tag assignments but starts with zero activity.
// Failures are collected per item, never rolled into one opaque error.
// Each item runs in its own transaction so a failed tag copy rolls back its
// half made client row instead of leaving it behind
func (s *Svc) Duplicate(ctx context.Context, ids []string) (domain.DuplicateOutcome, error) {
	if len(ids) == 0 {
		return domain.DuplicateOutcome{}, perr.Validationf("no clients selected for duplication")
	}

	out := domain.DuplicateOutcome{Requested: len(ids)}
	for _, id := range ids {
		var copied domain.Client
		err := s.withTxRepo(ctx, func(r repo.Repo) error {
			var err error
			copied, err = r.DuplicateClient(ctx, id)
			return err
		})
		if err != nil {
			out.Failures = append(out.Failures, domain.ItemFailure{ID: id, Reason: err.Error()})
			continue
		}
		out.Created = append(out.Created, copied)
	}

	switch {
	case len(out.Created) == 0:
		out.Status = domain.BulkNone
	case len(out.Failures) > 0:
		out.Status = domain.BulkPartial
	default:
		out.Status = domain.BulkFull
	}
	return out, nil
}

// ReassignReferrer points every targeted client at referrerID in one batched
// update, or clears the referrer when referrerID is nil. A referrer that is
// itself among the targets is rejected before any store call
func (s *Svc) ReassignReferrer(
	ctx context.Context,
	ids []string,
	referrerID *string,
) (domain.ReassignOutcome, error) {
	if len(ids) == 0 {
		return domain.ReassignOutcome{}, perr.Validationf("no clients selected")
	}
	if referrerID != nil {
		for _, id := range ids {
			if id == *referrerID {
				return domain.ReassignOutcome{}, perr.WithField(
					perr.Validationf("referrer %s is among the selected clients", *referrerID),
					"referrer_id")
			}
		}
	}
	if err := s.Repo.UpdateReferrer(ctx, ids, referrerID); err != nil {
		return domain.ReassignOutcome{}, err
	}
	return domain.ReassignOutcome{Requested: len(ids), Status: domain.BulkFull}, nil
}

// ResolveTagClients translates tag ids into the set of client ids carrying
// any of those tags
func (s *Svc) ResolveTagClients(ctx context.Context, tagIDs []string) ([]string, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	return s.Repo.ResolveClientIDsByTags(ctx, tagIDs)
}

// ExportCSV fetches the collection, narrows it to ids, and serializes the
// fixed column schema. No store mutation, the only I/O is the fetch
func (s *Svc) ExportCSV(ctx context.Context, ids []string) ([]byte, error) {
	if len(ids) == 0 {
		return nil, perr.Validationf("no clients selected for export")
	}
	clients, err := s.Repo.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	picked := make([]domain.Client, 0, len(ids))
	for _, c := range clients {
		if _, ok := want[c.ID]; ok {
			picked = append(picked, c)
		}
	}
	return MarshalCSV(picked), nil
}

// ensure Svc satisfies the port at compile time
var _ domain.ServicePort = (*Svc)(nil)
