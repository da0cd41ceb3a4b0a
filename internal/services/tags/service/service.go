// Package service contains tag workflows
package service

import (
	"context"
	"strings"

	"clientele/internal/modkit/repokit"
	perr "clientele/internal/platform/errors"
	"clientele/internal/services/tags/domain"
	"clientele/internal/services/tags/repo"
)

// Service defines the service contract for tags
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new tags service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("tags.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("tags.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// List returns every tag with its member count
func (s *Svc) List(ctx context.Context) ([]domain.Tag, error) {
	return s.Repo.List(ctx)
}

// Create stores a tag after trimming the name
func (s *Svc) Create(ctx context.Context, in domain.CreateTagInput) (domain.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Tag{}, perr.WithField(perr.Validationf("tag name required"), "name")
	}
	return s.Repo.Create(ctx, name)
}

// Rename changes a tag's name
func (s *Svc) Rename(ctx context.Context, id string, in domain.RenameTagInput) (domain.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Tag{}, perr.WithField(perr.Validationf("tag name required"), "name")
	}
	return s.Repo.Rename(ctx, id, name)
}

// Delete removes a tag and its assignments
func (s *Svc) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// Assign attaches a tag to a client; idempotent
func (s *Svc) Assign(ctx context.Context, clientID, tagID string) error {
	return s.Repo.Assign(ctx, clientID, tagID)
}

// Unassign detaches a tag from a client; idempotent
func (s *Svc) Unassign(ctx context.Context, clientID, tagID string) error {
	return s.Repo.Unassign(ctx, clientID, tagID)
}

var _ domain.ServicePort = (*Svc)(nil)
