package domain

import "context"

// PersistencePort is the storage contract the clients service depends on.
// Implementations may fail with transient errors; callers propagate, never retry
type PersistencePort interface {
	FetchAll(ctx context.Context) ([]Client, error)
	Create(ctx context.Context, in CreateClientInput) (Client, error)
	Update(ctx context.Context, id string, in UpdateClientInput) (Client, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	UpdateReferrer(ctx context.Context, ids []string, referrerID *string) error
	DuplicateClient(ctx context.Context, sourceID string) (Client, error)
	ResolveClientIDsByTags(ctx context.Context, tagIDs []string) ([]string, error)
	CheckDuplicatePhone(ctx context.Context, phone, excludeID string) (*Client, error)
}

// ServicePort defines the service contract for clients
type ServicePort interface {
	List(ctx context.Context) ([]Client, error)
	Counts(ctx context.Context) (PresetCounts, error)
	Create(ctx context.Context, in CreateClientInput) (Client, error)
	Update(ctx context.Context, id string, in UpdateClientInput) (Client, error)
	Delete(ctx context.Context, ids []string) (DeleteOutcome, error)
	Duplicate(ctx context.Context, ids []string) (DuplicateOutcome, error)
	ReassignReferrer(ctx context.Context, ids []string, referrerID *string) (ReassignOutcome, error)
	ExportCSV(ctx context.Context, ids []string) ([]byte, error)
	ResolveTagClients(ctx context.Context, tagIDs []string) ([]string, error)
}

// ChangeFeed yields payload-free pings whenever the client table changed.
// Subscribers re-fetch the whole collection; pings are never incremental patches
type ChangeFeed interface {
	Subscribe() chan struct{}
	Unsubscribe(ch chan struct{})
}
