package view

import (
	"sort"
	"time"

	perr "clientele/internal/platform/errors"
	"clientele/internal/services/clients/domain"

	"golang.org/x/text/cases"
)

// folder is shared; cases.Fold casers are safe for concurrent use
var folder = cases.Fold()

// Sort returns a new slice ordered by field and direction. Equal keys keep
// their relative input order. An unknown field is a caller contract violation
func Sort(clients []domain.Client, field domain.SortField, dir domain.SortDirection) ([]domain.Client, error) {
	if !field.Valid() {
		return nil, perr.InvalidArgf("invalid sort field %q", string(field))
	}

	out := make([]domain.Client, len(clients))
	copy(out, clients)

	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j], field)
		if dir == domain.SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out, nil
}

func compare(a, b domain.Client, field domain.SortField) int {
	switch field {
	case domain.SortByName:
		fa, fb := folder.String(a.Name), folder.String(b.Name)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case domain.SortByTotalSpent:
		return cmpFloat(a.SpentAmount(), b.SpentAmount())
	case domain.SortByTotalVisits:
		return cmpFloat(float64(a.TotalVisits), float64(b.TotalVisits))
	case domain.SortByLastVisitDate:
		return cmpTime(orEpoch(a.LastVisitDate), orEpoch(b.LastVisitDate))
	default: // created_at, validated by the caller
		return cmpTime(a.CreatedAt, b.CreatedAt)
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// orEpoch maps an absent visit date to epoch 0 so it sorts before any real date
func orEpoch(t *time.Time) time.Time {
	if t == nil {
		return time.Unix(0, 0).UTC()
	}
	return *t
}
