// Package view derives the visible client list from the raw collection
// and coordinates the selection set that bulk actions consume
package view

import (
	"strings"

	"clientele/internal/services/clients/domain"
)

// Filter reduces clients to the subset matching cr. It preserves input order,
// never mutates its input, and never fails; numeric fields that do not parse
// count as zero
func Filter(clients []domain.Client, cr domain.Criteria) []domain.Client {
	tagSet := tagSetOf(cr)
	query := strings.ToLower(strings.TrimSpace(cr.Search))

	out := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if !cr.Preset.Matches(c) {
			continue
		}
		if tagSet != nil {
			if _, ok := tagSet[c.ID]; !ok {
				continue
			}
		}
		if query != "" && !matchesSearch(c, query) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// tagSetOf returns nil when the tag filter should not apply. A non-empty tag
// pick with an empty resolved set means resolution is still in flight, and the
// filter fails open rather than flashing an empty list
func tagSetOf(cr domain.Criteria) map[string]struct{} {
	if len(cr.TagIDs) == 0 || len(cr.TagClientIDs) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(cr.TagClientIDs))
	for _, id := range cr.TagClientIDs {
		set[id] = struct{}{}
	}
	return set
}

// matchesSearch checks the lowercased query against name, raw phone,
// and the four social handles
func matchesSearch(c domain.Client, query string) bool {
	for _, hay := range []string{
		c.Name,
		c.Phone,
		c.WhatsappLink,
		c.FacebookLink,
		c.InstagramLink,
		c.TiktokLink,
	} {
		if hay == "" {
			continue
		}
		if strings.Contains(strings.ToLower(hay), query) {
			return true
		}
	}
	return false
}
