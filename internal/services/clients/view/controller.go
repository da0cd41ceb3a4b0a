package view

import (
	"context"
	"sync"

	"clientele/internal/platform/logger"
	"clientele/internal/services/clients/domain"
)

// Controller owns the filter, search, tag and sort state, keeps a read-only
// snapshot of the raw collection, and recomputes the derived view on demand.
// Recomputation is always filter first, then sort
type Controller struct {
	log  logger.Logger
	svc  domain.ServicePort
	feed domain.ChangeFeed
	sel  *Selection

	mu       sync.Mutex
	raw      []domain.Client
	criteria domain.Criteria
	field    domain.SortField
	dir      domain.SortDirection

	// tagGen stamps each tag resolution request. A completion whose stamp no
	// longer matches is stale and must be discarded, not applied
	tagGen uint64
}

// NewController builds a controller with the default preset and sort
func NewController(svc domain.ServicePort, feed domain.ChangeFeed, log logger.Logger) *Controller {
	return &Controller{
		log:  log.With().Str("component", "clients_view").Logger(),
		svc:  svc,
		feed: feed,
		sel:  NewSelection(),
		criteria: domain.Criteria{
			Preset: domain.PresetAll,
		},
		field: domain.SortByName,
		dir:   domain.SortAsc,
	}
}

// Refresh pulls a fresh snapshot of the raw collection
func (c *Controller) Refresh(ctx context.Context) error {
	clients, err := c.svc.List(ctx)
	if err != nil {
		return err
	}
	c.SetSnapshot(clients)
	return nil
}

// SetSnapshot replaces the raw collection snapshot
func (c *Controller) SetSnapshot(clients []domain.Client) {
	c.mu.Lock()
	c.raw = clients
	c.mu.Unlock()
}

// View recomputes and returns the derived view: filter then sort
func (c *Controller) View() ([]domain.Client, error) {
	c.mu.Lock()
	raw := c.raw
	cr := c.criteria
	field, dir := c.field, c.dir
	c.mu.Unlock()

	return Sort(Filter(raw, cr), field, dir)
}

// Counts computes the preset badge numbers over the unfiltered snapshot.
// Search and tag criteria deliberately do not participate so switching
// presets never moves its own badge
func (c *Controller) Counts() domain.PresetCounts {
	c.mu.Lock()
	raw := c.raw
	c.mu.Unlock()

	var out domain.PresetCounts
	out.All = len(raw)
	for _, cl := range raw {
		if domain.PresetWithVisits.Matches(cl) {
			out.WithVisits++
		}
		if domain.PresetWithSales.Matches(cl) {
			out.WithSales++
		}
		if domain.PresetReferred.Matches(cl) {
			out.Referred++
		}
	}
	return out
}

// SetSearch updates the free-text query
func (c *Controller) SetSearch(q string) {
	c.mu.Lock()
	c.criteria.Search = q
	c.mu.Unlock()
}

// SetPreset switches the active list filter
func (c *Controller) SetPreset(p domain.Preset) {
	c.mu.Lock()
	c.criteria.Preset = p
	c.mu.Unlock()
}

// SetTags replaces the picked tag set and kicks off an asynchronous membership
// resolution. Until the resolution lands the tag filter fails open
func (c *Controller) SetTags(ctx context.Context, tagIDs []string) {
	c.mu.Lock()
	c.criteria.TagIDs = append([]string(nil), tagIDs...)
	c.criteria.TagClientIDs = nil
	c.tagGen++
	gen := c.tagGen
	c.mu.Unlock()

	if len(tagIDs) == 0 {
		return
	}

	// the lookup outlives the caller. A request-scoped ctx gets cancelled as
	// soon as the handler returns, which would abort every resolution and
	// leave the tag filter permanently open. Keep the values, drop the cancel
	ctx = context.WithoutCancel(ctx)

	go func() {
		ids, err := c.svc.ResolveTagClients(ctx, tagIDs)
		if err != nil {
			c.log.Warn().Err(err).Msg("tag resolution failed, filter stays open")
			return
		}
		c.applyTagResolution(gen, ids)
	}()
}

// applyTagResolution installs a resolved membership set unless the tag pick
// changed again while the lookup was in flight
func (c *Controller) applyTagResolution(gen uint64, clientIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.tagGen {
		return
	}
	c.criteria.TagClientIDs = clientIDs
}

// ToggleSort flips direction when field is already active, otherwise switches
// to the new field ascending
func (c *Controller) ToggleSort(field domain.SortField) error {
	if !field.Valid() {
		// surface the contract violation the same way Sort would
		_, err := Sort(nil, field, domain.SortAsc)
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.field == field {
		c.dir = c.dir.Flip()
		return nil
	}
	c.field = field
	c.dir = domain.SortAsc
	return nil
}

// SortState returns the active sort field and direction
func (c *Controller) SortState() (domain.SortField, domain.SortDirection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.field, c.dir
}

// Run subscribes to the change feed and re-fetches the collection on every
// ping until ctx is done. Pings carry no payload; a ping only means re-fetch
func (c *Controller) Run(ctx context.Context) {
	ch := c.feed.Subscribe()
	defer c.feed.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			if err := c.Refresh(ctx); err != nil {
				c.log.Warn().Err(err).Msg("refresh after change ping failed")
			}
		}
	}
}

// Selection helpers. SelectAll scopes to the current derived view

// SelectAll selects exactly the ids visible right now, or clears when unchecked
func (c *Controller) SelectAll(checked bool) error {
	v, err := c.View()
	if err != nil {
		return err
	}
	c.sel.SelectAll(checked, v)
	return nil
}

// SelectOne toggles a single id
func (c *Controller) SelectOne(id string, checked bool) { c.sel.SelectOne(id, checked) }

// ClearSelection empties the selection
func (c *Controller) ClearSelection() { c.sel.Clear() }

// Selected returns the selected ids
func (c *Controller) Selected() []string { return c.sel.IDs() }

// Bulk wrappers. Selection state only mutates after the store answered,
// never optimistically

// DeleteSelected deletes the selected clients. On a none outcome the selection
// stays so the user can retry; otherwise it is cleared and the snapshot refreshed
func (c *Controller) DeleteSelected(ctx context.Context) (domain.DeleteOutcome, error) {
	out, err := c.svc.Delete(ctx, c.sel.IDs())
	if err != nil {
		return domain.DeleteOutcome{}, err
	}
	if out.Status != domain.BulkNone {
		c.sel.Clear()
		if rerr := c.Refresh(ctx); rerr != nil {
			c.log.Warn().Err(rerr).Msg("refresh after delete failed")
		}
	}
	return out, nil
}

// DuplicateSelected duplicates the selected clients. Originals stay valid so
// the selection is kept; the snapshot refreshes to pick up the copies
func (c *Controller) DuplicateSelected(ctx context.Context) (domain.DuplicateOutcome, error) {
	out, err := c.svc.Duplicate(ctx, c.sel.IDs())
	if err != nil {
		return domain.DuplicateOutcome{}, err
	}
	if rerr := c.Refresh(ctx); rerr != nil {
		c.log.Warn().Err(rerr).Msg("refresh after duplicate failed")
	}
	return out, nil
}

// ReassignSelected points every selected client at referrerID (nil clears)
func (c *Controller) ReassignSelected(ctx context.Context, referrerID *string) (domain.ReassignOutcome, error) {
	out, err := c.svc.ReassignReferrer(ctx, c.sel.IDs(), referrerID)
	if err != nil {
		return domain.ReassignOutcome{}, err
	}
	if rerr := c.Refresh(ctx); rerr != nil {
		c.log.Warn().Err(rerr).Msg("refresh after reassign failed")
	}
	return out, nil
}

// ExportSelected serializes the selected clients to CSV bytes
func (c *Controller) ExportSelected(ctx context.Context) ([]byte, error) {
	return c.svc.ExportCSV(ctx, c.sel.IDs())
}
