// Package repo provides postgres access for clients
package repo

import (
	"context"

	"clientele/internal/modkit/repokit"
	perr "clientele/internal/platform/errors"
	"clientele/internal/platform/store"
	pstrings "clientele/internal/platform/strings"
	"clientele/internal/services/clients/domain"

	"github.com/google/uuid"
)

// Repo defines the repository contract for clients
type Repo interface {
	domain.PersistencePort
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

// selectClient is the shared projection. total_spent stays text so legacy
// numeric strings round-trip untouched; tag ids aggregate into a text array
const selectClient = `
select c.id::text, c.name, c.phone, c.birthday, coalesce(c.notes, ''),
       c.referrer_id::text,
       coalesce(c.whatsapp_link, ''), coalesce(c.facebook_link, ''),
       coalesce(c.instagram_link, ''), coalesce(c.tiktok_link, ''),
       coalesce(c.total_spent::text, '0'), coalesce(c.total_visits, 0),
       c.last_visit_date, c.created_by_user_id::text, c.created_at,
       coalesce(
         (select array_agg(a.tag_id::text order by a.tag_id)
          from client_tag_assignments a where a.client_id = c.id),
         '{}')
from clients c
`

func scanClient(r store.Row) (domain.Client, error) {
	var c domain.Client
	err := r.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Birthday,
		&c.Notes,
		&c.ReferrerID,
		&c.WhatsappLink,
		&c.FacebookLink,
		&c.InstagramLink,
		&c.TiktokLink,
		&c.TotalSpent,
		&c.TotalVisits,
		&c.LastVisitDate,
		&c.CreatedByUserID,
		&c.CreatedAt,
		&c.TagIDs,
	)
	return c, err
}

// FetchAll returns the whole collection ordered by creation time
func (r *queries) FetchAll(ctx context.Context) ([]domain.Client, error) {
	out, err := store.Many(ctx, r.q, scanClient, selectClient+`order by c.created_at desc`)
	if err != nil {
		return nil, perr.FromPostgres(err, "fetch clients")
	}
	return out, nil
}

// Create inserts a client and its tag assignments in one transaction seam.
// The unique phone index is the backstop for the proactive duplicate check
func (r *queries) Create(ctx context.Context, in domain.CreateClientInput) (domain.Client, error) {
	id := uuid.NewString()
	const sql = `
insert into clients
  (id, name, phone, birthday, notes, referrer_id,
   whatsapp_link, facebook_link, instagram_link, tiktok_link, created_at)
values ($1, $2, $3, $4::date, nullif($5, ''), $6,
        nullif($7, ''), nullif($8, ''), nullif($9, ''), nullif($10, ''), now())
`
	if _, err := r.q.Exec(ctx, sql,
		id, in.Name, in.Phone, in.Birthday, in.Notes, pstrings.SQLNullPtr(in.ReferrerID),
		in.WhatsappLink, in.FacebookLink, in.InstagramLink, in.TiktokLink,
	); err != nil {
		return domain.Client{}, perr.AttachFieldFromPg(perr.FromPostgres(err, "create client"))
	}
	if err := r.assignTags(ctx, id, in.TagIDs); err != nil {
		return domain.Client{}, err
	}
	return r.byID(ctx, id)
}

// Update rewrites the static attributes and replaces tag assignments
func (r *queries) Update(ctx context.Context, id string, in domain.UpdateClientInput) (domain.Client, error) {
	const sql = `
update clients set
  name = $2, phone = $3, birthday = $4::date, notes = nullif($5, ''), referrer_id = $6,
  whatsapp_link = nullif($7, ''), facebook_link = nullif($8, ''),
  instagram_link = nullif($9, ''), tiktok_link = nullif($10, '')
where id = $1
`
	tag, err := r.q.Exec(ctx, sql,
		id, in.Name, in.Phone, in.Birthday, in.Notes, pstrings.SQLNullPtr(in.ReferrerID),
		in.WhatsappLink, in.FacebookLink, in.InstagramLink, in.TiktokLink,
	)
	if err != nil {
		return domain.Client{}, perr.AttachFieldFromPg(perr.FromPostgres(err, "update client"))
	}
	if tag.RowsAffected() == 0 {
		return domain.Client{}, perr.NotFoundf("client %s not found", id)
	}
	if _, err := r.q.Exec(ctx, `delete from client_tag_assignments where client_id = $1`, id); err != nil {
		return domain.Client{}, perr.FromPostgres(err, "clear tag assignments")
	}
	if err := r.assignTags(ctx, id, in.TagIDs); err != nil {
		return domain.Client{}, err
	}
	return r.byID(ctx, id)
}

// DeleteMany removes clients in one statement and reports the affected count.
// Ids that no longer exist simply do not count, the caller classifies that
func (r *queries) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	tag, err := r.q.Exec(ctx, `delete from clients where id = any($1::uuid[])`, ids)
	if err != nil {
		return 0, perr.FromPostgres(err, "delete clients")
	}
	return tag.RowsAffected(), nil
}

// UpdateReferrer points every targeted client at referrerID, nil clears it
func (r *queries) UpdateReferrer(ctx context.Context, ids []string, referrerID *string) error {
	_, err := r.q.Exec(ctx,
		`update clients set referrer_id = $2 where id = any($1::uuid[])`,
		ids, pstrings.SQLNullPtr(referrerID))
	if err != nil {
		return perr.FromPostgres(err, "reassign referrer")
	}
	return nil
}

// DuplicateClient copies the static attributes of sourceID into a fresh row
// with zeroed activity counters, then carries the tag assignments over.
// The service binds this inside a transaction so the row and its tags land
// together or not at all
func (r *queries) DuplicateClient(ctx context.Context, sourceID string) (domain.Client, error) {
	id := uuid.NewString()
	const sql = `
insert into clients
  (id, name, phone, birthday, notes, referrer_id,
   whatsapp_link, facebook_link, instagram_link, tiktok_link, created_at)
select $2, name || ' (copy)', phone, birthday, notes, referrer_id,
       whatsapp_link, facebook_link, instagram_link, tiktok_link, now()
from clients where id = $1
`
	tag, err := r.q.Exec(ctx, sql, sourceID, id)
	if err != nil {
		return domain.Client{}, perr.FromPostgres(err, "duplicate client")
	}
	if tag.RowsAffected() == 0 {
		return domain.Client{}, perr.NotFoundf("client %s not found", sourceID)
	}
	const copyTags = `
insert into client_tag_assignments (client_id, tag_id)
select $2, tag_id from client_tag_assignments where client_id = $1
`
	if _, err := r.q.Exec(ctx, copyTags, sourceID, id); err != nil {
		return domain.Client{}, perr.FromPostgres(err, "copy tag assignments")
	}
	return r.byID(ctx, id)
}

// ResolveClientIDsByTags returns the ids of clients carrying any of tagIDs
func (r *queries) ResolveClientIDsByTags(ctx context.Context, tagIDs []string) ([]string, error) {
	const sql = `
select distinct client_id::text
from client_tag_assignments
where tag_id = any($1::uuid[])
`
	out, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	}, sql, tagIDs)
	if err != nil {
		return nil, perr.FromPostgres(err, "resolve tag membership")
	}
	return out, nil
}

// CheckDuplicatePhone finds another client already holding phone, nil when free
func (r *queries) CheckDuplicatePhone(ctx context.Context, phone, excludeID string) (*domain.Client, error) {
	// nullif keeps the empty exclude case away from the uuid cast without
	// leaning on boolean evaluation order
	c, err := store.One(ctx, r.q, scanClient,
		selectClient+`where c.phone = $1 and c.id is distinct from nullif($2, '')::uuid limit 1`,
		phone, excludeID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return nil, nil
		}
		return nil, perr.FromPostgres(err, "check duplicate phone")
	}
	return &c, nil
}

func (r *queries) byID(ctx context.Context, id string) (domain.Client, error) {
	c, err := store.One(ctx, r.q, scanClient, selectClient+`where c.id = $1`, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Client{}, err
		}
		return domain.Client{}, perr.FromPostgres(err, "load client")
	}
	return c, nil
}

func (r *queries) assignTags(ctx context.Context, clientID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	const sql = `
insert into client_tag_assignments (client_id, tag_id)
select $1, t from unnest($2::uuid[]) as t
on conflict do nothing
`
	if _, err := r.q.Exec(ctx, sql, clientID, tagIDs); err != nil {
		return perr.FromPostgres(err, "assign tags")
	}
	return nil
}
