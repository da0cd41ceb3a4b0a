// Package repo provides postgres access for tags
package repo

import (
	"context"

	"clientele/internal/modkit/repokit"
	perr "clientele/internal/platform/errors"
	"clientele/internal/platform/store"
	"clientele/internal/services/tags/domain"

	"github.com/google/uuid"
)

// Repo defines the repository contract for tags
type Repo interface {
	List(ctx context.Context) ([]domain.Tag, error)
	Create(ctx context.Context, name string) (domain.Tag, error)
	Rename(ctx context.Context, id, name string) (domain.Tag, error)
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, clientID, tagID string) error
	Unassign(ctx context.Context, clientID, tagID string) error
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const selectTag = `
select t.id::text, t.name, t.created_at,
       (select count(*) from client_tag_assignments a where a.tag_id = t.id)
from client_tags t
`

func scanTag(r store.Row) (domain.Tag, error) {
	var t domain.Tag
	err := r.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.ClientCount)
	return t, err
}

func (r *queries) List(ctx context.Context) ([]domain.Tag, error) {
	out, err := store.Many(ctx, r.q, scanTag, selectTag+`order by lower(t.name)`)
	if err != nil {
		return nil, perr.FromPostgres(err, "list tags")
	}
	return out, nil
}

// Create inserts a tag. The unique lower(name) index enforces the
// case-insensitive name rule; violations map to a duplicate key error
func (r *queries) Create(ctx context.Context, name string) (domain.Tag, error) {
	id := uuid.NewString()
	_, err := r.q.Exec(ctx,
		`insert into client_tags (id, name, created_at) values ($1, $2, now())`, id, name)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return domain.Tag{}, perr.WithField(perr.DuplicateKeyf("tag %q already exists", name), "name")
		}
		return domain.Tag{}, perr.FromPostgres(err, "create tag")
	}
	return r.byID(ctx, id)
}

func (r *queries) Rename(ctx context.Context, id, name string) (domain.Tag, error) {
	tag, err := r.q.Exec(ctx, `update client_tags set name = $2 where id = $1`, id, name)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return domain.Tag{}, perr.WithField(perr.DuplicateKeyf("tag %q already exists", name), "name")
		}
		return domain.Tag{}, perr.FromPostgres(err, "rename tag")
	}
	if tag.RowsAffected() == 0 {
		return domain.Tag{}, perr.NotFoundf("tag %s not found", id)
	}
	return r.byID(ctx, id)
}

// Delete removes the tag; assignments cascade at the schema level
func (r *queries) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `delete from client_tags where id = $1`, id)
	if err != nil {
		return perr.FromPostgres(err, "delete tag")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("tag %s not found", id)
	}
	return nil
}

func (r *queries) Assign(ctx context.Context, clientID, tagID string) error {
	const sql = `
insert into client_tag_assignments (client_id, tag_id)
values ($1, $2)
on conflict do nothing
`
	if _, err := r.q.Exec(ctx, sql, clientID, tagID); err != nil {
		return perr.FromPostgres(err, "assign tag")
	}
	return nil
}

func (r *queries) Unassign(ctx context.Context, clientID, tagID string) error {
	_, err := r.q.Exec(ctx,
		`delete from client_tag_assignments where client_id = $1 and tag_id = $2`, clientID, tagID)
	if err != nil {
		return perr.FromPostgres(err, "unassign tag")
	}
	return nil
}

func (r *queries) byID(ctx context.Context, id string) (domain.Tag, error) {
	t, err := store.One(ctx, r.q, scanTag, selectTag+`where t.id = $1`, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Tag{}, err
		}
		return domain.Tag{}, perr.FromPostgres(err, "load tag")
	}
	return t, nil
}
